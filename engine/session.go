package engine

import (
	"errors"
	"fmt"
	"time"

	"chainclash/agent"
	"chainclash/experiments/metrics"
	"chainclash/game"
	"chainclash/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Options configures a session. Zero delays run turns back to back.
type Options struct {
	Rules        game.Rules
	Roster       []game.Participant
	Agents       map[game.Participant]agent.Agent // One per agent in the roster
	AgentDelay   time.Duration
	TriggerDelay time.Duration
	StepDelay    time.Duration
	MaxTurns     int
	Seed         uint64
	Logger       zerolog.Logger
}

// ParticipantStatus is one row of the status panel.
type ParticipantStatus struct {
	Participant game.Participant
	Active      bool
	Territory   int
	Base        game.Cell
	HasBase     bool
}

// Session drives one game. Every method must run on the scheduler: the UI posts
// SelectCell into it and agents, chain reactions and timers are scheduled through it.
type Session struct {
	ID string

	options    Options
	state      *game.GameState
	scheduler  Scheduler
	observer   Observer
	log        zerolog.Logger
	rng        *rand.Rand
	busy       bool
	epoch      int // Bumped by Restart to drop pending agent turns
	episode    *game.Episode
	eliminated map[game.Participant]bool
	metric     metrics.GameMetric
	moves      []metrics.MoveMetric
}

func NewSession(options Options, scheduler Scheduler, observer Observer) (*Session, error) {
	state, err := game.NewGameState(options.Rules, options.Roster)
	if err != nil {
		return nil, err
	}
	for _, p := range options.Roster {
		if _, ok := options.Agents[p]; p.IsAgent() && !ok {
			return nil, fmt.Errorf("no policy for %s", p)
		}
	}
	if options.MaxTurns <= 0 {
		options.MaxTurns = meta.MAX_TURNS
	}
	if observer == nil {
		observer = NopObserver{}
	}

	id := uuid.NewString()
	s := &Session{
		ID:        id,
		options:   options,
		state:     state,
		scheduler: scheduler,
		observer:  observer,
		log:       options.Logger.With().Str("component", "session").Str("session", id).Logger(),
		rng:       rand.New(rand.NewSource(options.Seed)),
	}
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.busy = false
	s.episode = nil
	s.eliminated = make(map[game.Participant]bool, len(s.options.Roster))
	s.moves = nil
	roster := make([]string, len(s.options.Roster))
	for i, p := range s.options.Roster {
		roster[i] = p.String()
	}
	s.metric = metrics.GameMetric{SessionID: s.ID, Roster: roster}
}

// State exposes the game state for reading. Callers must not mutate it.
func (s *Session) State() *game.GameState {
	return s.state
}

func (s *Session) Busy() bool {
	return s.busy
}

func (s *Session) Metric() metrics.GameMetric {
	return s.metric
}

func (s *Session) Moves() []metrics.MoveMetric {
	return s.moves
}

// Statuses reports every roster entry in roster order.
func (s *Session) Statuses() []ParticipantStatus {
	statuses := make([]ParticipantStatus, 0, len(s.state.Roster))
	for _, p := range s.state.Roster {
		base, ok := s.state.Bases[p]
		statuses = append(statuses, ParticipantStatus{
			Participant: p,
			Active:      !s.state.Board.IsEliminated(p),
			Territory:   s.state.Board.Territory(p),
			Base:        base,
			HasBase:     ok,
		})
	}
	return statuses
}

// Start renders the empty board and opens base placement. Agents place immediately once
// every human has placed; a roster without humans goes straight to the first turn.
func (s *Session) Start() error {
	s.metric.StartTime = time.Now()
	s.log.Info().Strs("roster", s.metric.Roster).Int("size", s.state.Rules.BoardSize).Msg("session started")
	for _, c := range s.state.Board.Cells() {
		s.notify(c)
	}
	return s.continueSetup()
}

// Restart clears the board and starts over with the same roster.
// A running chain reaction always completes first.
func (s *Session) Restart() error {
	if s.episode != nil {
		return ErrBusy
	}
	state, err := game.NewGameState(s.options.Rules, s.options.Roster)
	if err != nil {
		return err
	}
	s.epoch++
	s.state = state
	s.reset()
	s.log.Info().Msg("session restarted")
	return s.Start()
}

// SelectCell is the only input event: a base during setup, a move during play.
func (s *Session) SelectCell(row, col int) error {
	c := game.Cell{Row: row, Col: col}
	switch s.state.Phase {
	case game.OverPhase, game.AbortedPhase:
		return ErrGameOver
	}
	if s.busy {
		return ErrBusy
	}
	if !s.state.Board.InBounds(c) {
		return fmt.Errorf("(%d,%d): %w", row, col, game.ErrOutOfBounds)
	}

	if s.state.Phase == game.SetupPhase {
		p, ok := s.state.NextToPlace()
		if !ok || p.IsAgent() {
			return ErrNotYourTurn
		}
		if err := s.state.PlaceBase(p, c); err != nil {
			s.observer.Status(err.Error())
			return err
		}
		s.notify(c)
		s.observer.Status(fmt.Sprintf("%s placed a base at (%d,%d)", p.DisplayName(), row, col))
		return s.continueSetup()
	}

	if s.state.Current().IsAgent() {
		return ErrNotYourTurn
	}
	return s.play(game.Increment(c))
}

func (s *Session) continueSetup() error {
	p, ok := s.state.NextToPlace()
	if ok && !p.IsAgent() {
		s.observer.Status(fmt.Sprintf("%s, choose a cell for your base", p.DisplayName()))
		return nil
	}

	for _, p := range s.state.PlacementOrder() {
		if _, placed := s.state.Bases[p]; placed {
			continue
		}
		c, err := s.state.PlaceRandomBase(p, s.rng)
		if err != nil {
			s.state.Phase = game.AbortedPhase
			s.log.Error().Err(err).Msg("base placement failed")
			s.observer.Status(fmt.Sprintf("No room left for %s's base, the game cannot start", p.DisplayName()))
			return err
		}
		s.notify(c)
		s.log.Debug().Str("participant", p.String()).Int("row", c.Row).Int("col", c.Col).Msg("base placed")
	}
	return s.begin()
}

func (s *Session) begin() error {
	first := s.rng.Intn(len(s.state.Roster))
	if err := s.state.Begin(first); err != nil {
		return err
	}
	starter := s.state.Current()
	s.metric.StartingPlayer = starter.String()
	s.log.Info().Str("starting", starter.String()).Msg("turns started")
	s.observer.Status(fmt.Sprintf("%s goes first", starter.DisplayName()))
	s.nextTurn()
	return nil
}

func (s *Session) nextTurn() {
	p := s.state.Current()
	if !p.IsAgent() {
		s.observer.Status(fmt.Sprintf("%s's turn", p.DisplayName()))
		return
	}

	s.busy = true
	s.observer.Status(fmt.Sprintf("%s is thinking...", p.DisplayName()))
	epoch := s.epoch
	s.scheduler.After(s.options.AgentDelay, func() {
		if epoch != s.epoch {
			return
		}
		s.agentTurn()
	})
}

func (s *Session) agentTurn() {
	s.busy = false
	p := s.state.Current()
	move, metric := s.options.Agents[p].FindMove(s.state)
	s.moves = append(s.moves, metrics.MoveMetric{Turn: s.state.Turn, Player: p.String(), SearchMetric: metric})
	s.log.Debug().Str("participant", p.String()).Stringer("move", move).Msg("agent move")

	if err := s.play(move); err != nil {
		// A policy bug must not stall the game
		s.log.Error().Err(err).Str("participant", p.String()).Msg("agent played an illegal move, passing")
		if err := s.play(game.Pass()); err != nil {
			s.log.Error().Err(err).Msg("pass failed")
		}
	}
}

func (s *Session) play(move game.Move) error {
	p := s.state.Current()
	episode, err := s.state.Resolve(move)
	if err != nil {
		s.observer.Status(err.Error())
		return err
	}

	switch move.Type {
	case game.PassAction:
		s.observer.Status(fmt.Sprintf("%s passes", p.DisplayName()))
	case game.ClaimAction:
		s.notify(move.Cell)
		s.observer.Status(fmt.Sprintf("%s claimed (%d,%d)", p.DisplayName(), move.Cell.Row, move.Cell.Col))
	default:
		s.notify(move.Cell)
	}

	if episode != nil {
		s.busy = true
		s.episode = episode
		s.observer.Status(fmt.Sprintf("%s triggered a chain reaction!", p.DisplayName()))
		s.scheduler.After(s.options.TriggerDelay, s.step)
		return nil
	}
	s.endTurn()
	return nil
}

func (s *Session) step() {
	for _, c := range s.episode.Step() {
		s.notify(c)
	}
	if !s.episode.Done() {
		s.scheduler.After(s.options.StepDelay, s.step)
		return
	}

	episode := s.episode
	s.episode = nil
	s.busy = false
	s.metric.AddEpisode(episode.Steps())
	s.log.Debug().Int("detonations", episode.Steps()).Int("affected", episode.Affected()).Msg("chain reaction done")
	s.observer.Status(fmt.Sprintf("%s completed the chain reaction, affecting %d cells", episode.Owner().DisplayName(), episode.Affected()))
	s.endTurn()
}

func (s *Session) endTurn() {
	s.announceEliminations()

	err := s.state.Advance()
	if s.state.Phase == game.OverPhase {
		s.finish(err)
		return
	}
	if s.state.Turn >= s.options.MaxTurns {
		s.state.Phase = game.OverPhase
		s.state.Won = game.None
		s.finish(fmt.Errorf("turn limit %d reached: %w", s.options.MaxTurns, game.ErrStalemate))
		return
	}
	s.nextTurn()
}

func (s *Session) announceEliminations() {
	for _, p := range s.state.Roster {
		if s.eliminated[p] || !s.state.Board.IsEliminated(p) {
			continue
		}
		s.eliminated[p] = true
		s.log.Info().Str("participant", p.String()).Int("turn", s.state.Turn).Msg("eliminated")
		s.observer.Status(fmt.Sprintf("%s has been eliminated", p.DisplayName()))
	}
}

func (s *Session) finish(err error) {
	s.metric.EndTime = time.Now()
	s.metric.Duration = s.metric.EndTime.Sub(s.metric.StartTime)
	s.metric.Turns = s.state.Turn
	s.metric.Winner = s.state.Winner()

	winner := s.state.Won
	if errors.Is(err, game.ErrStalemate) || winner.IsNone() {
		s.log.Info().Int("turns", s.state.Turn).AnErr("reason", err).Msg("game drawn")
		s.observer.Status("Stalemate, nobody wins")
	} else {
		s.log.Info().Str("winner", winner.String()).Int("turns", s.state.Turn).Msg("game won")
		s.observer.Status(fmt.Sprintf("%s wins!", winner.DisplayName()))
	}
	s.observer.GameOver(winner)
}

func (s *Session) notify(c game.Cell) {
	s.observer.CellChanged(CellUpdate{
		Cell:   c,
		Points: s.state.Board.PointsAt(c),
		Owner:  s.state.Board.OwnerAt(c),
		IsBase: s.state.IsBase(c),
	})
}

package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"maps"
	"slices"

	"chainclash/meta"
	"chainclash/utils"
)

type Phase int

const (
	SetupPhase Phase = iota
	ActivePhase
	OverPhase
	AbortedPhase
)

func (p Phase) String() string {
	switch p {
	case SetupPhase:
		return "setup"
	case ActivePhase:
		return "active"
	case OverPhase:
		return "over"
	case AbortedPhase:
		return "aborted"
	default:
		return "unknown"
	}
}

// GameState is everything a session mutates: the board, the roster in rotation order,
// the bases and whose turn it is.
type GameState struct {
	Board         *Board
	Rules         Rules
	Roster        []Participant        // Fixed order, also the turn rotation order
	Bases         map[Participant]Cell // Set once per participant during setup
	Razed         map[Participant]bool // Bases that detonated lose their marker for good
	CurrentPlayer int                  // Index into Roster, -1 until turns start
	Phase         Phase
	Won           Participant // None while playing and on a draw
	Turn          int         // Completed turns
	LastMove      Move
}

// NewGameState validates the roster and returns an empty board in the setup phase.
func NewGameState(rules Rules, roster []Participant) (*GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}
	return &GameState{
		Board:         NewBoard(rules.BoardSize),
		Rules:         rules,
		Roster:        slices.Clone(roster),
		Bases:         make(map[Participant]Cell, len(roster)),
		CurrentPlayer: -1,
		Phase:         SetupPhase,
	}, nil
}

// ValidateRoster checks roster size and that every entry is a distinct participant.
func ValidateRoster(roster []Participant) error {
	if len(roster) < meta.MIN_PARTICIPANTS || len(roster) > meta.MAX_PARTICIPANTS {
		return fmt.Errorf("roster must have %d to %d participants, got %d", meta.MIN_PARTICIPANTS, meta.MAX_PARTICIPANTS, len(roster))
	}
	humans, agents := 0, 0
	for i, p := range roster {
		if p.IsNone() {
			return fmt.Errorf("roster entry %d is empty", i)
		}
		if utils.FindIndex(roster, p) != i {
			return fmt.Errorf("participant %s appears twice in the roster", p)
		}
		if p.IsAgent() {
			agents++
		} else {
			humans++
		}
	}
	if humans > meta.MAX_HUMANS {
		return fmt.Errorf("at most %d humans can play, got %d", meta.MAX_HUMANS, humans)
	}
	if agents > meta.MAX_AGENTS {
		return fmt.Errorf("at most %d agents can play, got %d", meta.MAX_AGENTS, agents)
	}
	return nil
}

func (gs *GameState) Copy() *GameState {
	basesCopy := make(map[Participant]Cell, len(gs.Bases))
	for p, c := range gs.Bases {
		basesCopy[p] = c
	}

	return &GameState{
		Board:         gs.Board.Copy(),
		Rules:         gs.Rules,
		Roster:        slices.Clone(gs.Roster),
		Bases:         basesCopy,
		Razed:         maps.Clone(gs.Razed),
		CurrentPlayer: gs.CurrentPlayer,
		Phase:         gs.Phase,
		Won:           gs.Won,
		Turn:          gs.Turn,
		LastMove:      gs.LastMove,
	}
}

// Current returns the participant whose turn it is, or None outside the active phase.
func (gs *GameState) Current() Participant {
	if gs.CurrentPlayer < 0 || gs.CurrentPlayer >= len(gs.Roster) {
		return None
	}
	return gs.Roster[gs.CurrentPlayer]
}

// IsBase reports whether c is the base of its current owner.
func (gs *GameState) IsBase(c Cell) bool {
	owner := gs.Board.OwnerAt(c)
	if owner.IsNone() {
		return false
	}
	base, ok := gs.Bases[owner]
	return ok && base == c && !gs.Razed[owner]
}

func (gs *GameState) raze(c Cell) {
	for p, base := range gs.Bases {
		if base != c {
			continue
		}
		if gs.Razed == nil {
			gs.Razed = make(map[Participant]bool)
		}
		gs.Razed[p] = true
	}
}

// Active returns the non-eliminated participants in roster order.
func (gs *GameState) Active() []Participant {
	return utils.Filter(gs.Roster, func(p Participant) bool {
		return !gs.Board.IsEliminated(p)
	})
}

// Begin starts the turn rotation with the given roster index.
func (gs *GameState) Begin(first int) error {
	if gs.Phase != SetupPhase {
		return fmt.Errorf("cannot begin turns in the %s phase", gs.Phase)
	}
	if p, ok := gs.NextToPlace(); ok {
		return fmt.Errorf("%s has not placed a base yet", p)
	}
	if first < 0 || first >= len(gs.Roster) {
		return fmt.Errorf("starting index %d outside the roster", first)
	}
	gs.Phase = ActivePhase
	gs.CurrentPlayer = first
	return nil
}

// ValidateMove checks that p may add a point to c.
func (gs *GameState) ValidateMove(p Participant, c Cell) error {
	if !gs.Board.InBounds(c) {
		return fmt.Errorf("(%d,%d): %w", c.Row, c.Col, ErrOutOfBounds)
	}
	owner := gs.Board.OwnerAt(c)
	switch {
	case gs.Board.PointsAt(c) > 0 && owner == p:
		return nil
	case !owner.IsNone():
		return &IllegalMoveError{Cell: c, Owner: owner, Reason: OwnedByOther}
	default:
		return &IllegalMoveError{Cell: c, Reason: EmptyCell}
	}
}

// Resolve applies the immediate effect of the current participant's move.
// A returned Episode has not run yet: the caller drives it and then calls Advance.
func (gs *GameState) Resolve(move Move) (*Episode, error) {
	if gs.Phase != ActivePhase {
		return nil, fmt.Errorf("cannot play in the %s phase", gs.Phase)
	}
	p := gs.Current()

	switch move.Type {
	case IncrementAction:
		if err := gs.ValidateMove(p, move.Cell); err != nil {
			return nil, err
		}
		points := gs.Board.PointsAt(move.Cell) + 1
		gs.Board.Set(move.Cell, points, p)
		gs.LastMove = move
		if points >= gs.Rules.CriticalThreshold {
			episode := NewEpisode(gs.Board, move.Cell, p, gs.Rules.CriticalThreshold)
			episode.onDetonate = gs.raze
			return episode, nil
		}
	case ClaimAction:
		if !gs.Board.InBounds(move.Cell) {
			return nil, fmt.Errorf("(%d,%d): %w", move.Cell.Row, move.Cell.Col, ErrOutOfBounds)
		}
		if owner := gs.Board.OwnerAt(move.Cell); !owner.IsNone() {
			return nil, &IllegalMoveError{Cell: move.Cell, Owner: owner, Reason: OwnedByOther}
		}
		gs.Board.Set(move.Cell, 1, p)
		gs.LastMove = move
	case PassAction:
		gs.LastMove = move
	default:
		panic(fmt.Sprintf("unknown action type %d", move.Type))
	}
	return nil, nil
}

// Advance ends the current turn: it detects a single survivor, otherwise rotates to the
// next non-eliminated participant. ErrStalemate means the game ended without a winner.
func (gs *GameState) Advance() error {
	if gs.Phase != ActivePhase {
		return fmt.Errorf("cannot advance in the %s phase", gs.Phase)
	}
	gs.Turn++

	active := gs.Active()
	switch len(active) {
	case 0:
		gs.Phase = OverPhase
		gs.Won = None
		return ErrStalemate
	case 1:
		gs.Phase = OverPhase
		gs.Won = active[0]
		return nil
	}

	n := len(gs.Roster)
	for i := 1; i <= n; i++ {
		next := (gs.CurrentPlayer + i) % n
		if !gs.Board.IsEliminated(gs.Roster[next]) {
			gs.CurrentPlayer = next
			return nil
		}
	}
	gs.Phase = OverPhase
	gs.Won = None
	return ErrStalemate
}

// Player returns the identifier of the current participant.
func (gs *GameState) Player() string {
	return gs.Current().String()
}

// LegalMoves returns the increments open to the current participant.
func (gs *GameState) LegalMoves() []Move {
	if gs.Phase != ActivePhase {
		return nil
	}
	owned := gs.Board.OwnedBy(gs.Current())
	moves := make([]Move, 0, len(owned))
	for _, c := range owned {
		moves = append(moves, Increment(c))
	}
	return moves
}

// Play returns a copy of the state with the move and its whole chain reaction applied.
func (gs *GameState) Play(move Move) State {
	newGs := gs.Copy()
	episode, err := newGs.Resolve(move)
	if err != nil {
		panic(err)
	}
	if episode != nil {
		episode.Run()
	}
	// A stalemate is a valid terminal state with no winner
	_ = newGs.Advance()
	return newGs
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentPlayer))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Phase))
	gs.Board.writeHash(hasher)

	return StateHash(hasher.Sum64())
}

// Winner returns the winner's identifier, "" while playing or after a draw.
func (gs *GameState) Winner() string {
	if gs.Phase != OverPhase || gs.Won.IsNone() {
		return ""
	}
	return gs.Won.String()
}

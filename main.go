// chainclash is a chain-reaction territory game for the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chainclash/agent"
	"chainclash/config"
	"chainclash/engine"
	"chainclash/experiments"
	"chainclash/game"
	"chainclash/ui"
)

// Command-line flags
var (
	flagConfig   = flag.String("config", "", "Config file (default: chainclash/config.yaml in the XDG config dirs)")
	flagEnv      = flag.String("env", "", "Env file with CHAINCLASH_* variables (default: ./.env if present)")
	flagMode     = flag.String("mode", "", "Mode: pvai, pvp, pvaiai, aionly or custom")
	flagSize     = flag.Int("size", 0, "Board size")
	flagSeed     = flag.Uint64("seed", 0, "Random seed, 0 for a fresh one")
	flagStrategy = flag.String("strategy", "", "Agent strategy: rules or mcts")
	flagNoAttack = flag.Bool("no-attack", false, "Disable the agents' opportunistic strike tier")
	flagSimulate = flag.Int("simulate", 0, "Play this many agent-only games headless and write CSV results")
	flagOut      = flag.String("out", "", "Output directory for -simulate results")
	flagLogLevel = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the XDG config dir and exit")
)

var cfg *config.Config

func main() {
	flag.Parse()

	var err error
	cfg, err = loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagSave {
		if err := cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = uint64(time.Now().UnixNano())
	}

	if *flagSimulate > 0 {
		setupLogging(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		if err := simulate(*flagSimulate); err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		return
	}

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	setupLogging(logFile)

	runUI()
}

func loadConfig() (*config.Config, error) {
	var envFiles []string
	if *flagEnv != "" {
		envFiles = append(envFiles, *flagEnv)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, err
	}

	var c *config.Config
	var err error
	if *flagConfig != "" {
		c, err = config.LoadFile(*flagConfig)
	} else {
		c, err = config.InitConfig()
	}
	if err != nil {
		return nil, err
	}

	// Flags override the file and the environment
	if *flagMode != "" {
		c.Game.Mode = game.Mode(*flagMode)
	}
	if *flagSize > 0 {
		c.Game.BoardSize = *flagSize
	}
	if *flagSeed != 0 {
		c.Game.Seed = *flagSeed
	}
	if *flagStrategy != "" {
		c.Agent.Strategy = agent.Strategy(*flagStrategy)
	}
	if *flagNoAttack {
		c.Game.AttackTier = false
	}
	if *flagOut != "" {
		c.Tournament.OutputDir = *flagOut
	}
	if *flagLogLevel != "" {
		c.Log.Level = *flagLogLevel
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setupLogging(w io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// openLogFile keeps log output off the terminal the UI draws on.
func openLogFile() (*os.File, error) {
	path := cfg.Log.File
	if path == "" {
		var err error
		path, err = xdg.StateFile("chainclash/chainclash.log")
		if err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func simulate(games int) error {
	roster, err := cfg.Roster()
	if err != nil {
		return err
	}
	seats := 0
	for _, p := range roster {
		if p.IsAgent() {
			seats++
		}
	}
	// Humans sit out a headless run, their seats go to agents
	if seats < 2 {
		seats = 2
	}

	agents := make([]agent.Config, seats)
	for i := range agents {
		agents[i] = cfg.AgentPolicy(0)
	}

	records, err := experiments.RunTournament(experiments.Tournament{
		Name:      string(cfg.Agent.Strategy),
		Games:     games,
		Rules:     cfg.Rules(),
		Agents:    agents,
		Seed:      cfg.Game.Seed,
		MaxTurns:  cfg.Game.MaxTurns,
		OutputDir: cfg.Tournament.OutputDir,
		Logger:    log.Logger,
	})
	if err != nil {
		return err
	}

	wins := map[string]int{}
	for _, r := range records {
		wins[r.Winner]++
	}
	for i := 1; i <= seats; i++ {
		p := game.AgentPlayer(i)
		fmt.Printf("%-5s %d wins\n", p.DisplayName(), wins[p.String()])
	}
	fmt.Printf("draws %d\n", wins[""])
	return nil
}

var (
	app        *tview.Application
	rootPage   *tview.Pages
	gameBoard  *ui.BoardUI
	stopLoop   context.CancelFunc
	gameNumber uint64
)

func runUI() {
	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" chainclash ")

	status, players := ui.NewStatusViews()
	gameBoard = ui.NewBoardUI(app, status, players)
	gameFrame := ui.CreateGameLayout(gameBoard, status, players)

	gameFrame.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			stopGame()
			rootPage.SwitchToPage("setup")
			return nil
		}
		return event
	})

	initial := ui.SetupChoice{
		Mode:      cfg.Game.Mode,
		BoardSize: cfg.Game.BoardSize,
		Humans:    cfg.Game.Humans,
		Agents:    cfg.Game.Agents,
	}
	setupUI := ui.NewGameSetup(initial, startGame, func() { app.Stop() })

	rootPage.AddPage("setup", setupUI.Form(), true, true)
	rootPage.AddPage("gameview", gameFrame, true, false)

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		stopGame()
		log.Fatal().Err(err).Msg("terminal UI failed")
	}
	stopGame()
}

// startGame builds a session for the chosen mode on its own loop.
func startGame(choice ui.SetupChoice) {
	c := *cfg
	c.Game.Mode = choice.Mode
	c.Game.BoardSize = choice.BoardSize
	c.Game.Humans = choice.Humans
	c.Game.Agents = choice.Agents
	c.Game.Seats = nil

	feed := gameBoard.NewFeed()
	session, loop, err := newSession(&c, feed)
	if err != nil {
		showError(err)
		return
	}

	stopGame()
	gameBoard.Connect(feed, session, c.Game.BoardSize, loop.Post)
	ctx, cancel := context.WithCancel(context.Background())
	stopLoop = cancel
	go loop.Run(ctx)

	loop.Post(func() {
		if err := session.Start(); err != nil {
			log.Error().Err(err).Str("session", session.ID).Msg("session could not start")
		}
	})
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

func newSession(c *config.Config, observer engine.Observer) (*engine.Session, *engine.Loop, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	roster, err := c.Roster()
	if err != nil {
		return nil, nil, err
	}

	gameNumber++
	seed := c.Game.Seed + gameNumber
	agents := map[game.Participant]agent.Agent{}
	for i, p := range roster {
		if !p.IsAgent() {
			continue
		}
		a, err := agent.New(c.AgentPolicy(seed + uint64(i) + 1))
		if err != nil {
			return nil, nil, err
		}
		agents[p] = a
	}

	loop := engine.NewLoop()
	session, err := engine.NewSession(engine.Options{
		Rules:        c.Rules(),
		Roster:       roster,
		Agents:       agents,
		AgentDelay:   c.Pacing.AgentDelay,
		TriggerDelay: c.Pacing.TriggerDelay,
		StepDelay:    c.Pacing.StepDelay,
		MaxTurns:     c.Game.MaxTurns,
		Seed:         seed,
		Logger:       log.Logger,
	}, loop, observer)
	if err != nil {
		return nil, nil, err
	}
	return session, loop, nil
}

func stopGame() {
	if stopLoop != nil {
		stopLoop()
		stopLoop = nil
	}
}

func showError(err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

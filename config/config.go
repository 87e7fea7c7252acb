package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"chainclash/agent"
	"chainclash/game"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile   = "chainclash/config.yaml"
	envPrefix = "CHAINCLASH_"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type GameConfig struct {
	BoardSize       int       `yaml:"board_size"`
	Mode            game.Mode `yaml:"mode"`
	Humans          int       `yaml:"humans"`          // Custom mode only
	Agents          int       `yaml:"agents"`          // Custom and agent-only modes
	Seats           []string  `yaml:"seats,omitempty"` // Explicit roster in turn order, overrides the mode
	AttackTier      bool      `yaml:"attack_tier"`
	MinBaseDistance int       `yaml:"min_base_distance"`
	Seed            uint64    `yaml:"seed"` // 0 picks a fresh seed every run
	MaxTurns        int       `yaml:"max_turns"`
}

type AgentConfig struct {
	Strategy   agent.Strategy `yaml:"strategy"`
	Goroutines int            `yaml:"goroutines"`
	Episodes   int            `yaml:"episodes"`
	Duration   time.Duration  `yaml:"duration"`
	Cutoff     int            `yaml:"cutoff"`
}

type PacingConfig struct {
	AgentDelay   time.Duration `yaml:"agent_delay"`
	TriggerDelay time.Duration `yaml:"trigger_delay"`
	StepDelay    time.Duration `yaml:"step_delay"`
}

type TournamentConfig struct {
	Games     int    `yaml:"games"`
	OutputDir string `yaml:"output_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty means a file in the XDG state directory
}

type Config struct {
	Game       GameConfig       `yaml:"game"`
	Agent      AgentConfig      `yaml:"agent"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Tournament TournamentConfig `yaml:"tournament"`
	Log        LogConfig        `yaml:"log"`
}

// InitConfig layers the user's config file and CHAINCLASH_* variables over DefaultConfig.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	return finish(&config)
}

// LoadFile is InitConfig with an explicit file instead of the XDG lookup.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	return finish(&config)
}

func finish(config *Config) (*Config, error) {
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnv exports the variables of the given .env files, ./.env by default.
// Missing files are skipped and variables already set win.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from CHAINCLASH_* environment variables.
func (c *Config) ApplyEnv() error {
	ints := map[string]*int{
		"BOARD_SIZE":        &c.Game.BoardSize,
		"HUMANS":            &c.Game.Humans,
		"AGENTS":            &c.Game.Agents,
		"MIN_BASE_DISTANCE": &c.Game.MinBaseDistance,
		"MAX_TURNS":         &c.Game.MaxTurns,
		"GOROUTINES":        &c.Agent.Goroutines,
		"EPISODES":          &c.Agent.Episodes,
		"CUTOFF":            &c.Agent.Cutoff,
		"GAMES":             &c.Tournament.Games,
	}
	for name, field := range ints {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return &InvalidConfig{fmt.Sprintf("%s%s must be an integer, got %q", envPrefix, name, v)}
			}
			*field = n
		}
	}

	durations := map[string]*time.Duration{
		"AGENT_DELAY":     &c.Pacing.AgentDelay,
		"TRIGGER_DELAY":   &c.Pacing.TriggerDelay,
		"STEP_DELAY":      &c.Pacing.StepDelay,
		"SEARCH_DURATION": &c.Agent.Duration,
	}
	for name, field := range durations {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return &InvalidConfig{fmt.Sprintf("%s%s must be a duration, got %q", envPrefix, name, v)}
			}
			*field = d
		}
	}

	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%sSEED must be an unsigned integer, got %q", envPrefix, v)}
		}
		c.Game.Seed = seed
	}
	if v, ok := lookup("ATTACK_TIER"); ok {
		attack, err := strconv.ParseBool(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%sATTACK_TIER must be a boolean, got %q", envPrefix, v)}
		}
		c.Game.AttackTier = attack
	}
	if v, ok := lookup("SEATS"); ok {
		c.Game.Seats = strings.Split(v, ",")
	}
	if v, ok := lookup("MODE"); ok {
		c.Game.Mode = game.Mode(v)
	}
	if v, ok := lookup("AGENT_STRATEGY"); ok {
		c.Agent.Strategy = agent.Strategy(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := lookup("OUTPUT_DIR"); ok {
		c.Tournament.OutputDir = v
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	return v, ok && v != ""
}

func (c *Config) Validate() error {
	if c.Game.BoardSize < 2 || c.Game.BoardSize > 26 {
		return &InvalidConfig{fmt.Sprintf("board size must be between 2 and 26, got %d", c.Game.BoardSize)}
	}
	if _, err := c.Roster(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if err := c.Rules().Validate(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	switch c.Agent.Strategy {
	case agent.RulesStrategy:
	case agent.SearchStrategy:
		if c.Agent.Episodes <= 0 && c.Agent.Duration <= 0 {
			return &InvalidConfig{"the mcts strategy needs episodes or a duration"}
		}
	default:
		return &InvalidConfig{fmt.Sprintf("unknown agent strategy %q", c.Agent.Strategy)}
	}
	for _, d := range []time.Duration{c.Pacing.AgentDelay, c.Pacing.TriggerDelay, c.Pacing.StepDelay} {
		if d < 0 {
			return &InvalidConfig{"delays cannot be negative"}
		}
	}
	if c.Tournament.Games < 0 {
		return &InvalidConfig{"tournament games cannot be negative"}
	}
	return nil
}

// Roster resolves the configured seats, or the mode when no seats are set.
func (c *Config) Roster() ([]game.Participant, error) {
	if len(c.Game.Seats) > 0 {
		return c.seats()
	}
	switch c.Game.Mode {
	case game.CustomRosterMode:
		return game.NewRoster(c.Game.Humans, c.Game.Agents)
	case game.AgentsOnlyMode:
		return game.NewRoster(0, c.Game.Agents)
	default:
		return c.Game.Mode.Roster()
	}
}

func (c *Config) seats() ([]game.Participant, error) {
	roster := make([]game.Participant, 0, len(c.Game.Seats))
	for _, seat := range c.Game.Seats {
		p, err := game.ParseParticipant(strings.TrimSpace(seat))
		if err != nil {
			return nil, err
		}
		roster = append(roster, p)
	}
	if err := game.ValidateRoster(roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (c *Config) Rules() game.Rules {
	rules := game.NewStandardRules()
	rules.BoardSize = c.Game.BoardSize
	rules.MinBaseDistance = c.Game.MinBaseDistance
	rules.AttackTier = c.Game.AttackTier
	return rules
}

// AgentPolicy returns the policy settings shared by every agent seat.
func (c *Config) AgentPolicy(seed uint64) agent.Config {
	return agent.Config{
		Strategy:   c.Agent.Strategy,
		Seed:       seed,
		Goroutines: c.Agent.Goroutines,
		Episodes:   c.Agent.Episodes,
		Duration:   c.Agent.Duration,
		Cutoff:     c.Agent.Cutoff,
	}
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, c *Config, perm fs.FileMode) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, perm)
}

func readCfgFile(filePath string, c *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}

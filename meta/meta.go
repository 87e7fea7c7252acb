// meta/meta.go
package meta

import "time"

// BOARD_SIZE defines the default number of rows and columns.
const BOARD_SIZE = 8

// CRITICAL_THRESHOLD defines the point count at which a cell detonates.
const CRITICAL_THRESHOLD = 4

// MIN_BASE_DISTANCE defines the minimum Manhattan distance between two bases.
const MIN_BASE_DISTANCE = 4

// MAX_HUMANS defines how many human seats a roster may have.
const MAX_HUMANS = 2

// MAX_AGENTS defines how many agent seats a roster may have.
const MAX_AGENTS = 5

// MIN_PARTICIPANTS and MAX_PARTICIPANTS bound the roster size.
const MIN_PARTICIPANTS = 2
const MAX_PARTICIPANTS = MAX_HUMANS + MAX_AGENTS - 1

// AGENT_DELAY is the pause before an agent decides, so spectators can follow.
const AGENT_DELAY = time.Second

// TRIGGER_DELAY is the pause between a threshold move and its first detonation.
const TRIGGER_DELAY = 100 * time.Millisecond

// STEP_DELAY is the pause between two detonation steps of one episode.
const STEP_DELAY = 200 * time.Millisecond

// GO_ROUTINES defines the number of goroutines to use for search agents.
const GO_ROUTINES = 4

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 300

// WITH_CUTOFF defines the rollout depth cutoff for MCTS.
const WITH_CUTOFF = 60

// MAX_TURNS caps headless games that never converge.
const MAX_TURNS = 1000

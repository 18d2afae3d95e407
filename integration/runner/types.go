package runner

import (
	"time"

	"github.com/google/uuid"
)

// Special command values that trigger non-game actions
const (
	ResetSessionCommand = "RESET_SESSION"
)

// TestSuite defines a scripted play-through against the session API.
// It either has Steps or sequences other case files through Cases.
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"`
	Cases []string   `json:"cases,omitempty"`
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep submits one command to one console and checks the outcome.
// Use command: "RESET_SESSION" to start over with a fresh session.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Command      string       `json:"command"`
	Timeline     string       `json:"timeline,omitempty"` // "present" (default) or "past"
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a step executes. Nil and empty
// fields are not checked.
type Expectations struct {
	Location         *string  `json:"location,omitempty"`
	Inventory        []string `json:"inventory,omitempty"`         // Full inventory contents (order independent)
	Unlocked         []string `json:"unlocked,omitempty"`          // Locations that must be unlocked
	Locked           []string `json:"locked,omitempty"`            // Locations that must still be locked
	Convinced        []string `json:"convinced,omitempty"`         // Residents that must be convinced
	NotConvinced     []string `json:"not_convinced,omitempty"`     // Residents that must not be convinced yet
	TimePortalActive *bool    `json:"time_portal_active,omitempty"` // Portal latch
	IsMapOpen        *bool    `json:"is_map_open,omitempty"`

	// Output analysis, over the lines the command appended to its console
	OutputContains    []string `json:"output_contains,omitempty"`
	OutputNotContains []string `json:"output_not_contains,omitempty"`
	OutputRegex       string   `json:"output_regex,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName   string
	Success    bool
	Error      error
	Duration   time.Duration
	OutputText string
	IsReset    bool // True for RESET_SESSION steps, which don't count toward pass/fail metrics
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the last session used by this run
}

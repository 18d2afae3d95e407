package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/pompeii/pkg/state"
	"github.com/jwebster45206/pompeii/pkg/world"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes scripted play-throughs against a running pompeii API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite plays a suite's steps in order against one session
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	created, err := CreateSession(ctx, r.Client, r.BaseURL)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	sessionID := created.ID
	result.Session = sessionID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), stepLabel(step))

		var stepResult TestResult
		if step.Command == ResetSessionCommand {
			var newID uuid.UUID
			stepResult, newID = r.resetSession(ctx, sessionID, step)
			if stepResult.Success {
				sessionID = newID
				result.Session = sessionID
			}
		} else {
			stepResult = r.executeStep(ctx, sessionID, step)
		}
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), stepLabel(step), stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, stepLabel(step), stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), stepLabel(step), stepResult.Duration)
	}

	if err := DeleteSession(ctx, r.Client, r.BaseURL, sessionID); err != nil {
		r.Logger("    Warning: failed to delete session %s: %v", sessionID, err)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func stepLabel(step TestStep) string {
	if step.Name != "" {
		return step.Name
	}
	if step.Timeline != "" {
		return step.Timeline + ": " + step.Command
	}
	return step.Command
}

// resetSession discards the current session and starts a fresh one
func (r *Runner) resetSession(ctx context.Context, old uuid.UUID, step TestStep) (TestResult, uuid.UUID) {
	start := time.Now()
	result := TestResult{StepName: stepLabel(step), IsReset: true}

	if err := DeleteSession(ctx, r.Client, r.BaseURL, old); err != nil {
		result.Error = fmt.Errorf("failed to delete session: %w", err)
		result.Duration = time.Since(start)
		return result, uuid.Nil
	}
	created, err := CreateSession(ctx, r.Client, r.BaseURL)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, uuid.Nil
	}
	if err := checkExpectations(step.Expectations, created.State, nil); err != nil {
		result.Error = fmt.Errorf("reset expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result, uuid.Nil
	}

	result.Success = true
	result.OutputText = "[SESSION RESET]"
	result.Duration = time.Since(start)
	return result, created.ID
}

// executeStep submits the step's command and checks its expectations
func (r *Runner) executeStep(ctx context.Context, id uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: stepLabel(step),
	}

	stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	resp, err := PostCommand(stepCtx, r.Client, r.BaseURL, id, step.Command, step.Timeline)
	if err != nil {
		result.Error = fmt.Errorf("failed to post command: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	result.OutputText = strings.Join(resp.Output, "\n")

	if err := checkExpectations(step.Expectations, resp.State, resp.Output); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkExpectations validates the step expectations against the session
// state and the lines the command produced
func checkExpectations(exp Expectations, s state.SessionState, output []string) error {
	if exp.Location != nil && string(s.CurrentLocation) != *exp.Location {
		return fmt.Errorf("expected location %s, got %s", *exp.Location, s.CurrentLocation)
	}

	// Full inventory check (order independent)
	if len(exp.Inventory) > 0 {
		actual := make([]string, len(s.Inventory))
		for i, id := range s.Inventory {
			actual[i] = string(id)
		}
		expected := slices.Clone(exp.Inventory)
		slices.Sort(actual)
		slices.Sort(expected)
		if !slices.Equal(actual, expected) {
			return fmt.Errorf("expected inventory %v, got %v", exp.Inventory, s.Inventory)
		}
	}

	for _, loc := range exp.Unlocked {
		if !s.IsUnlocked(world.LocationID(loc)) {
			return fmt.Errorf("expected %s to be unlocked. Unlocked: %v", loc, s.UnlockedLocations)
		}
	}
	for _, loc := range exp.Locked {
		if s.IsUnlocked(world.LocationID(loc)) {
			return fmt.Errorf("expected %s to still be locked", loc)
		}
	}
	for _, npc := range exp.Convinced {
		if !s.IsConvinced(world.NPCID(npc)) {
			return fmt.Errorf("expected %s to be convinced. Convinced: %v", npc, s.ConvincedResidents)
		}
	}
	for _, npc := range exp.NotConvinced {
		if s.IsConvinced(world.NPCID(npc)) {
			return fmt.Errorf("expected %s not to be convinced yet", npc)
		}
	}

	if exp.TimePortalActive != nil && s.TimePortalActive != *exp.TimePortalActive {
		return fmt.Errorf("expected time_portal_active to be %t, got %t", *exp.TimePortalActive, s.TimePortalActive)
	}
	if exp.IsMapOpen != nil && s.IsMapOpen != *exp.IsMapOpen {
		return fmt.Errorf("expected is_map_open to be %t, got %t", *exp.IsMapOpen, s.IsMapOpen)
	}

	outputText := strings.Join(output, "\n")
	lowerOutput := strings.ToLower(outputText)
	for _, expectedText := range exp.OutputContains {
		if !strings.Contains(lowerOutput, strings.ToLower(expectedText)) {
			return fmt.Errorf("expected output to contain '%s', got: %q", expectedText, outputText)
		}
	}
	for _, unexpectedText := range exp.OutputNotContains {
		if strings.Contains(lowerOutput, strings.ToLower(unexpectedText)) {
			return fmt.Errorf("expected output to NOT contain '%s', but it did", unexpectedText)
		}
	}

	if exp.OutputRegex != "" {
		matched, err := regexp.MatchString(exp.OutputRegex, outputText)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("output didn't match regex pattern: %s", exp.OutputRegex)
		}
	}

	return nil
}

package cli

import (
	"fmt"
	"log"

	"github.com/themizzi/shopcheck/internal/services"
)

// CheckSetup names the check stored when the flow could not be attempted,
// e.g. because the browser failed to launch.
const CheckSetup = "browser setup"

// RecordSmoke opens a run in runs, calls smoke with a recorder for its checks
// and finishes the run on every path. An error from smoke is stored as a
// failed CheckSetup so the run ends failed instead of staying running.
func RecordSmoke(runs services.RunService, baseURL, username string, smoke func(record func(CheckReport)) (SmokeReport, error)) (SmokeReport, error) {
	run, err := runs.StartRun("smoke", baseURL, username)
	if err != nil {
		return SmokeReport{}, fmt.Errorf("failed to start recorded run: %w", err)
	}

	record := func(c CheckReport) {
		if _, err := runs.RecordCheck(run.ID, c.Name, c.Passed, c.Attempts, c.Elapsed, c.Detail); err != nil {
			log.Printf("Warning: could not record check %s: %v", c.Name, err)
		}
	}

	report, smokeErr := smoke(record)
	if smokeErr != nil {
		record(CheckReport{Name: CheckSetup, Detail: smokeErr.Error()})
	}

	if _, err := runs.FinishRun(run.ID); err != nil {
		if smokeErr != nil {
			log.Printf("Warning: could not finish run %s: %v", run.ID, err)
			return report, smokeErr
		}
		return report, fmt.Errorf("failed to finish recorded run: %w", err)
	}
	return report, smokeErr
}

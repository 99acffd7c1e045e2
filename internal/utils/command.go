package utils

import (
	"time"

	"github.com/jeeftor/wordgrid/internal/logging"
)

// CommandExecutor provides standardized timing and logging for a CLI run
type CommandExecutor struct {
	RunID     string
	Operation string
	Timer     *logging.Timer
	Logger    *logging.ContextualLogger
}

// NewCommandExecutor creates a new executor with a fresh run id
func NewCommandExecutor(operation string) *CommandExecutor {
	runID := logging.NewRunID()
	return &CommandExecutor{
		RunID:     runID,
		Operation: operation,
		Timer:     logging.StartTimer(operation, runID),
		Logger:    logging.NewContextualLogger(runID, operation),
	}
}

// ExecuteWithMetrics executes a function with standardized timing and error handling
func (ce *CommandExecutor) ExecuteWithMetrics(stage string, fn func() error, metrics map[string]interface{}) error {
	ce.Logger.Debug("Starting execution stage", "stage", stage)

	start := time.Now()
	err := fn()
	if err != nil {
		ce.Logger.Error("Execution stage failed", "stage", stage, "error", err)
		logging.Fail(ce.Operation, stage)

		stageMetrics := map[string]interface{}{
			"stage": stage,
		}
		for k, v := range metrics {
			stageMetrics[k] = v
		}

		ce.Timer.StopWithError(err, stageMetrics)
		return err
	}

	ce.Logger.Debug("Execution stage completed successfully", "stage", stage, "duration", time.Since(start))
	return nil
}

// ExecuteCommand runs stages in order, stopping at the first failure
func (ce *CommandExecutor) ExecuteCommand(stages []CommandStage) error {
	for _, stage := range stages {
		if err := ce.ExecuteWithMetrics(stage.Name, stage.Function, stage.Metrics); err != nil {
			return err
		}
	}
	return nil
}

// FinishSuccess completes the command execution successfully with metrics
func (ce *CommandExecutor) FinishSuccess(metrics map[string]interface{}) time.Duration {
	return ce.Timer.Stop(true, metrics)
}

// CommandStage represents a single stage in command execution
type CommandStage struct {
	Name     string
	Function func() error
	Metrics  map[string]interface{}
}

// NewCommandStage creates a new command stage
func NewCommandStage(name string, fn func() error, metrics map[string]interface{}) CommandStage {
	return CommandStage{
		Name:     name,
		Function: fn,
		Metrics:  metrics,
	}
}

package saga

import (
	"context"
	"strconv"
	"time"

	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/common/logger"
	"engdata-admin/internal/common/metrics"
)

// Definition is one business operation expressed as ordered steps.
type Definition struct {
	Operation      string
	SuccessMessage string
	Steps          []Step
}

func (d Definition) successMessage() string {
	if d.SuccessMessage != "" {
		return d.SuccessMessage
	}
	return d.Operation + " completed successfully"
}

// Recorder receives one measurement per finished run.
type Recorder interface {
	RecordRun(ctx context.Context, operation, outcome string, steps int, duration time.Duration)
}

type Orchestrator struct {
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	recorder   Recorder
}

type Option func(*Orchestrator)

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

func NewOrchestrator(log logger.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	o := &Orchestrator{logger: log, errHandler: errors.NewErrorHandler(log)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the steps of def strictly in order on the calling goroutine.
// A required failure stops the run; optional failures are recorded and the run
// continues. Run never panics: unexpected faults become an INTERNAL_ERROR
// composite.
func (o *Orchestrator) Run(ctx context.Context, def Definition) (composite *Composite) {
	start := time.Now()
	metrics.SagaRunsActive.WithLabelValues(def.Operation).Inc()
	defer metrics.SagaRunsActive.WithLabelValues(def.Operation).Dec()

	log := logger.ForOperation(o.logger, def.Operation)

	var records []StepRecord
	defer func() {
		if r := recover(); r != nil {
			stdErr := errors.NewInternalError(def.Operation, r)
			log.Error("Saga aborted by unexpected fault", map[string]interface{}{
				"panic":          stdErr.Details,
				"stepsCompleted": len(records),
			})
			composite = &Composite{
				Operation:  def.Operation,
				Success:    false,
				StatusCode: errors.HTTPStatus(stdErr.Code, stdErr.StatusCode),
				Code:       stdErr.Code,
				Message:    stdErr.Message,
				Steps:      records,
			}
		}
		o.finish(ctx, log, composite, start)
	}()

	sc := newContext()
	for _, step := range def.Steps {
		log.Debug("Executing saga step", logger.StepFields(step.Name, step.Required, nil))

		res := step.Invoke(ctx, sc)
		if res.Success && step.Required && step.IDKey != "" && res.ResourceID == "" {
			res = missingIDResult(step, res)
		}

		rec := StepRecord{Name: step.Name, Required: step.Required, Result: res, done: step.doneLabel()}
		records = append(records, rec)

		if res.Success {
			if step.IDKey != "" && res.ResourceID != "" {
				sc.record(step.IDKey, res.ResourceID)
			}
			continue
		}

		metrics.SagaStepFailures.WithLabelValues(def.Operation, step.Name, strconv.FormatBool(step.Required)).Inc()

		if step.Required {
			o.errHandler.Handle(def.Operation, stepError(step.Name, res))
			if sc.Len() > 0 {
				// No compensation: resources created by earlier steps stay behind.
				log.Warn("Required step failed after earlier steps created resources", logger.StepFields(step.Name, true, map[string]interface{}{
					"message":     res.Message,
					"orphanedIds": sc.IDs(),
				}))
			}
			return aggregateFailure(def, records, rec, sc)
		}

		log.Warn("Optional step failed", logger.StepFields(step.Name, false, map[string]interface{}{
			"message": res.Message,
		}))
	}

	return aggregateSuccess(def, records, sc)
}

func (o *Orchestrator) finish(ctx context.Context, log logger.Logger, c *Composite, start time.Time) {
	if c == nil {
		return
	}
	duration := time.Since(start)
	outcome := outcomeLabel(c)

	metrics.SagaRuns.WithLabelValues(c.Operation, outcome).Inc()
	metrics.SagaRunDuration.WithLabelValues(c.Operation).Observe(duration.Seconds())
	if o.recorder != nil {
		o.recorder.RecordRun(ctx, c.Operation, outcome, len(c.Steps), duration)
	}

	log.Info("Saga finished", map[string]interface{}{
		"outcome":    outcome,
		"steps":      len(c.Steps),
		"status":     c.StatusCode,
		"durationMs": duration.Milliseconds(),
	})
}

func outcomeLabel(c *Composite) string {
	switch {
	case !c.Success:
		return "failed"
	case c.Code == errors.ErrCodePartialFailure:
		return "partial"
	default:
		return "succeeded"
	}
}

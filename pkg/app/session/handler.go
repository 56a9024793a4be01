package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
	"github.com/deploymenttheory/go-cerealstore/pkg/app"
)

// Handle runs the plan in req against a fresh storage. Storage errors fail the
// step they occur in and are recorded in the response; Handle itself only
// returns an error for an invalid request or a cancelled context.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	var opts []storage.Option
	if req.StrictAllocation {
		opts = append(opts, storage.WithStrictAllocationCheck())
	}
	store, err := storage.New(req.ContainerCapacity, req.StorageCapacity, opts...)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidConfiguration, "failed to create storage", err)
	}

	response := &Response{
		SessionID:         uuid.NewString(),
		ContainerCapacity: store.ContainerCapacity(),
		StorageCapacity:   store.StorageCapacity(),
		Results:           make([]StepResult, 0, len(req.Steps)),
	}

	ctx.Logf("Session %s: container capacity %v, storage capacity %v (room for %s containers)",
		response.SessionID, store.ContainerCapacity(), store.StorageCapacity(), describeMax(store.MaxContainers()))

	for i, step := range req.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := runStep(store, step)
		result.Index = i + 1
		response.Results = append(response.Results, result)

		ctx.Progress(fmt.Sprintf("step %d/%d", i+1, len(req.Steps)), (i+1)*100/len(req.Steps))

		if result.Failed() {
			response.Failed++
			ctx.Errorf("step %d (%s): %s", result.Index, result.Op, result.Error)
			if req.StopOnError {
				response.Stopped = true
				break
			}
			continue
		}
		logStep(ctx, &result)
	}

	response.Contents = store.Contents()
	response.ContainerCount = store.ContainerCount()
	response.Rendered = store.String()
	response.Elapsed = time.Since(startTime)

	ctx.Logf("Session %s completed: %d steps, %d failed", response.SessionID, len(response.Results), response.Failed)

	return response, nil
}

// runStep applies one validated step
func runStep(store *storage.Storage, step Step) StepResult {
	result := StepResult{
		ID:        uuid.NewString(),
		Op:        step.Op,
		Commodity: step.Commodity,
		Amount:    step.Amount,
	}

	var commodity storage.Commodity
	if step.Op.needsCommodity() {
		c, err := storage.ParseCommodity(step.Commodity)
		if err != nil {
			recordError(&result, err)
			return result
		}
		commodity = c
		result.Commodity = c.String()
	}

	var err error
	switch step.Op {
	case OpStore:
		result.Value, err = store.Store(commodity, *step.Amount)
	case OpWithdraw:
		before := store.AmountOf(commodity)
		result.Value, err = store.Withdraw(commodity, *step.Amount)
		result.Short = err == nil && *step.Amount > before
	case OpRemove:
		removed := store.RemoveContainer(commodity)
		result.Removed = &removed
	case OpAmount:
		result.Value = store.AmountOf(commodity)
	case OpSpace:
		result.Value = store.FreeSpace(commodity)
	case OpShow:
		result.Text = store.String()
	default:
		err = fmt.Errorf("unknown op %q", step.Op)
	}
	if err != nil {
		recordError(&result, err)
	}
	return result
}

func recordError(result *StepResult, err error) {
	result.ErrorCode = app.ErrorCode(err)
	result.Error = err.Error()
}

// logStep logs the outcome of a successful step for verbose output
func logStep(ctx *app.Context, r *StepResult) {
	if !ctx.Verbose {
		return
	}

	switch {
	case r.Op == OpStore && r.Value > 0:
		ctx.Logf("  store %s %v: overflow %v", r.Commodity, *r.Amount, r.Value)
	case r.Op == OpWithdraw && r.Short:
		ctx.Logf("  withdraw %s %v: only %v available", r.Commodity, *r.Amount, r.Value)
	case r.Op == OpStore, r.Op == OpWithdraw:
		ctx.Logf("  %s %s %v", r.Op, r.Commodity, *r.Amount)
	case r.Op == OpRemove:
		ctx.Logf("  remove %s: %t", r.Commodity, *r.Removed)
	case r.Op == OpAmount, r.Op == OpSpace:
		ctx.Logf("  %s %s: %v", r.Op, r.Commodity, r.Value)
	case r.Op == OpShow:
		ctx.Logf("  %s", r.Text)
	}
}

func describeMax(n int) string {
	if n < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}

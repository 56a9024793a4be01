package session

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
	"github.com/deploymenttheory/go-cerealstore/pkg/app"
)

// Validate validates a run request
func (r *Request) Validate() error {
	if !isFinite(r.ContainerCapacity) || r.ContainerCapacity < 0 {
		return app.NewError(app.ErrCodeInvalidConfiguration, "container capacity must be a finite non-negative number", nil)
	}
	if !isFinite(r.StorageCapacity) {
		return app.NewError(app.ErrCodeInvalidConfiguration, "storage capacity must be a finite number", nil)
	}
	if r.StorageCapacity < r.ContainerCapacity {
		return app.NewError(app.ErrCodeInvalidConfiguration, "storage capacity must be at least the container capacity", nil)
	}

	if len(r.Steps) == 0 {
		return app.NewError(app.ErrCodeInvalidInput, "plan has no steps", nil)
	}

	for i, step := range r.Steps {
		if err := step.Validate(); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("invalid step %d", i+1), err)
		}
	}

	return nil
}

// Validate checks the op is known and carries the fields it needs.
// Negative amounts are left for the storage to reject; NaN and infinite
// amounts are refused here since results must stay encodable.
func (s *Step) Validate() error {
	known := false
	for _, op := range knownOps {
		if s.Op == op {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown op %q", s.Op)
	}

	if s.Op.needsCommodity() {
		if s.Commodity == "" {
			return fmt.Errorf("%s requires a commodity", s.Op)
		}
		if _, err := storage.ParseCommodity(s.Commodity); err != nil {
			return err
		}
	}

	if s.Op.needsAmount() && s.Amount == nil {
		return fmt.Errorf("%s requires an amount", s.Op)
	}
	if s.Amount != nil && !isFinite(*s.Amount) {
		return fmt.Errorf("%s amount must be finite, got %v", s.Op, *s.Amount)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseStep parses the inline form "op[:COMMODITY[:amount]]", e.g. "store:RICE:5"
func ParseStep(raw string) (Step, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) > 3 || parts[0] == "" {
		return Step{}, fmt.Errorf("malformed step %q, want op[:COMMODITY[:amount]]", raw)
	}

	step := Step{Op: Op(strings.ToLower(parts[0]))}
	if len(parts) > 1 {
		step.Commodity = parts[1]
	}
	if len(parts) > 2 {
		amount, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return Step{}, fmt.Errorf("invalid amount in step %q: %w", raw, err)
		}
		step.Amount = &amount
	}

	if err := step.Validate(); err != nil {
		return Step{}, fmt.Errorf("step %q: %w", raw, err)
	}
	return step, nil
}

// DecodePlan reads a YAML plan document
func DecodePlan(r io.Reader) (*Plan, error) {
	var plan Plan
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		if err == io.EOF {
			return &plan, nil
		}
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid plan document", err)
	}
	for i := range plan.Steps {
		plan.Steps[i].Op = Op(strings.ToLower(string(plan.Steps[i].Op)))
	}
	return &plan, nil
}

// Apply overlays the plan onto req. Capacities and the allocation policy in the
// plan take precedence over what req already holds; steps are appended.
func (p *Plan) Apply(req *Request) {
	if p.ContainerCapacity != nil {
		req.ContainerCapacity = *p.ContainerCapacity
	}
	if p.StorageCapacity != nil {
		req.StorageCapacity = *p.StorageCapacity
	}
	if p.StrictAllocation != nil {
		req.StrictAllocation = *p.StrictAllocation
	}
	if p.StopOnError {
		req.StopOnError = true
	}
	req.Steps = append(req.Steps, p.Steps...)
}

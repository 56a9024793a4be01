package session

import (
	"time"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

// Op names a plan step
type Op string

const (
	OpStore    Op = "store"
	OpWithdraw Op = "withdraw"
	OpRemove   Op = "remove"
	OpAmount   Op = "amount"
	OpSpace    Op = "space"
	OpShow     Op = "show"
)

var knownOps = []Op{OpStore, OpWithdraw, OpRemove, OpAmount, OpSpace, OpShow}

// needsCommodity reports whether the op addresses a single commodity
func (o Op) needsCommodity() bool {
	return o != OpShow
}

// needsAmount reports whether the op takes a quantity
func (o Op) needsAmount() bool {
	return o == OpStore || o == OpWithdraw
}

// Step is one operation in a plan. Amount is a pointer so that a missing
// quantity can be told apart from zero.
type Step struct {
	Op        Op       `json:"op" yaml:"op"`
	Commodity string   `json:"commodity,omitempty" yaml:"commodity,omitempty"`
	Amount    *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// Plan is the YAML document accepted by the exec command
type Plan struct {
	ContainerCapacity *float64 `yaml:"container_capacity,omitempty"`
	StorageCapacity   *float64 `yaml:"storage_capacity,omitempty"`
	StrictAllocation  *bool    `yaml:"strict_allocation_check,omitempty"`
	StopOnError       bool     `yaml:"stop_on_error,omitempty"`
	Steps             []Step   `yaml:"steps"`
}

// Request represents one run of a plan against a fresh storage
type Request struct {
	ContainerCapacity float64
	StorageCapacity   float64
	StrictAllocation  bool
	StopOnError       bool
	Steps             []Step
}

// Response represents the outcome of a run
type Response struct {
	SessionID         string          `json:"session_id" yaml:"session_id"`
	ContainerCapacity float64         `json:"container_capacity" yaml:"container_capacity"`
	StorageCapacity   float64         `json:"storage_capacity" yaml:"storage_capacity"`
	Results           []StepResult    `json:"results" yaml:"results"`
	Contents          []storage.Entry `json:"contents" yaml:"contents"`
	ContainerCount    int             `json:"container_count" yaml:"container_count"`
	Rendered          string          `json:"rendered" yaml:"rendered"`
	Failed            int             `json:"failed" yaml:"failed"`
	Stopped           bool            `json:"stopped" yaml:"stopped"`
	Elapsed           time.Duration   `json:"elapsed" yaml:"elapsed"`
}

// StepResult records what a single step returned.
//
// Value holds the overflow for store, the amount taken on a short withdraw
// (0 when fully satisfied), the stored quantity for amount and the free room
// for space. Short marks a withdraw that asked for more than was stored, which
// includes asking anything of an empty container. Removed is set for remove,
// Text for show.
type StepResult struct {
	ID        string   `json:"id" yaml:"id"`
	Index     int      `json:"index" yaml:"index"`
	Op        Op       `json:"op" yaml:"op"`
	Commodity string   `json:"commodity,omitempty" yaml:"commodity,omitempty"`
	Amount    *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	Value     float64  `json:"value" yaml:"value"`
	Short     bool     `json:"short,omitempty" yaml:"short,omitempty"`
	Removed   *bool    `json:"removed,omitempty" yaml:"removed,omitempty"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	ErrorCode string   `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the step returned an error
func (r *StepResult) Failed() bool {
	return r.ErrorCode != ""
}

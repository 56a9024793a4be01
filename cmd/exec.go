package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cerealstore/pkg/app"
	"github.com/deploymenttheory/go-cerealstore/pkg/app/session"
)

func newExecCmd() *cobra.Command {
	var (
		inlineSteps []string
		stopOnError bool
	)

	cmd := &cobra.Command{
		Use:   "exec [plan.yaml|-]",
		Short: "Run a plan of storage operations",
		Long: `Run a sequence of operations against a fresh storage.

Steps come from a YAML plan file ("-" reads stdin), from repeated --step flags
in the form op:COMMODITY[:amount], or both; file steps run first.

Operations: store, withdraw, remove, amount, space, show.

Examples:
  # Fill rice past capacity and look at the overflow
  cerealstore exec --step store:RICE:5 --step store:RICE:7 --step show

  # Run a plan with a larger warehouse
  cerealstore exec plan.yaml --storage-capacity 50 -o json

Plan file:
  container_capacity: 10
  storage_capacity: 20
  steps:
    - op: store
      commodity: PEAS
      amount: 7
    - op: withdraw
      commodity: PEAS
      amount: 8`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planPath := ""
			if len(args) == 1 {
				planPath = args[0]
			}
			return runExec(cmd, planPath, inlineSteps, stopOnError)
		},
	}

	cmd.Flags().StringArrayVarP(&inlineSteps, "step", "s", nil, "inline step op:COMMODITY[:amount] (repeatable)")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first failing step")

	return cmd
}

func runExec(cmd *cobra.Command, planPath string, inlineSteps []string, stopOnError bool) error {
	ctx := newAppContext(cmd)

	request := &session.Request{
		ContainerCapacity: cfg.ContainerCapacity,
		StorageCapacity:   cfg.StorageCapacity,
		StrictAllocation:  cfg.StrictAllocationCheck,
		StopOnError:       stopOnError,
	}

	if planPath != "" {
		plan, err := readPlan(cmd, planPath)
		if err != nil {
			return err
		}
		plan.Apply(request)
		ctx.Logf("Loaded %d steps from %s", len(plan.Steps), planPath)
	}

	for _, raw := range inlineSteps {
		step, err := session.ParseStep(raw)
		if err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid --step", err)
		}
		request.Steps = append(request.Steps, step)
	}

	runCtx, cancel := ctx.WithTimeout(ctx.DefaultTimeout)
	defer cancel()

	response, err := session.Handle(runCtx, request)
	if err != nil {
		return err
	}

	if err := session.Write(runCtx, response); err != nil {
		return err
	}
	ctx.Logf("%s", session.FormatSummary(response))

	if response.Stopped {
		last := response.Results[len(response.Results)-1]
		return app.NewError(last.ErrorCode, fmt.Sprintf("plan stopped at step %d", last.Index), errors.New(last.Error))
	}
	return nil
}

func readPlan(cmd *cobra.Command, path string) (*session.Plan, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, app.NewError(app.ErrCodeInvalidInput, "failed to open plan", err)
		}
		defer f.Close()
		r = f
	}
	return session.DecodePlan(r)
}

package session

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
	"github.com/deploymenttheory/go-cerealstore/pkg/app"
)

// Write encodes response to the context's output in its output format
func Write(ctx *app.Context, response *Response) error {
	return FormatOutput(ctx.Output(), response, ctx.OutputFormat)
}

// FormatOutput writes run results to w according to format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table followed by the final storage line
func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "#\tOP\tCOMMODITY\tAMOUNT\tRESULT\n")
	fmt.Fprintf(tw, "-\t--\t---------\t------\t------\n")
	for _, r := range response.Results {
		amount := "-"
		if r.Amount != nil {
			amount = storage.FormatQuantity(*r.Amount)
		}
		commodity := r.Commodity
		if commodity == "" {
			commodity = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Index, r.Op, commodity, amount, describeResult(&r))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nStorage: %s\n", response.Rendered)
	fmt.Fprintf(w, "Containers: %d, capacity %s each, %s total\n",
		response.ContainerCount,
		storage.FormatQuantity(response.ContainerCapacity),
		storage.FormatQuantity(response.StorageCapacity))
	if response.Failed > 0 {
		fmt.Fprintf(w, "Failed steps: %d", response.Failed)
		if response.Stopped {
			fmt.Fprint(w, " (stopped at first failure)")
		}
		fmt.Fprintln(w)
	}
	return nil
}

func describeResult(r *StepResult) string {
	if r.Failed() {
		return fmt.Sprintf("%s: %s", r.ErrorCode, r.Error)
	}
	switch r.Op {
	case OpStore:
		if r.Value > 0 {
			return "overflow " + storage.FormatQuantity(r.Value)
		}
		return "ok"
	case OpWithdraw:
		if r.Short {
			return "short, took " + storage.FormatQuantity(r.Value)
		}
		return "ok"
	case OpRemove:
		if r.Removed != nil && *r.Removed {
			return "removed"
		}
		return "not empty"
	case OpAmount, OpSpace:
		return storage.FormatQuantity(r.Value)
	case OpShow:
		return r.Text
	default:
		return ""
	}
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	summary := fmt.Sprintf("Ran %d step", len(response.Results))
	if len(response.Results) != 1 {
		summary += "s"
	}
	if response.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", response.Failed)
	}
	summary += fmt.Sprintf("; %d container", response.ContainerCount)
	if response.ContainerCount != 1 {
		summary += "s"
	}
	summary += fmt.Sprintf(" allocated in %v", response.Elapsed)
	return summary
}

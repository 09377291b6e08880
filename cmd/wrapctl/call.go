package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/codewrap/wrap"
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <manifest> [value...]",
	Short: "Compile a manifest's primary routine and invoke it",
	Long: `Run the full wrap pipeline and call the manifest's first routine with
the given numeric values, in the routine's declared argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	j, err := loadJob(args[0])
	if err != nil {
		return err
	}

	callArgs := make([]any, 0, len(args)-1)
	for _, s := range args[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("argument %q is not a number: %w", s, err)
		}
		callArgs = append(callArgs, v)
	}

	ctx := cmd.Context()
	w, err := wrap.New(ctx, j.gen, j.opts)
	if err != nil {
		return err
	}
	defer w.Close(ctx)

	fn, err := w.Wrap(ctx, j.primary, j.helpers...)
	if err != nil {
		return err
	}
	result, err := fn.Call(ctx, callArgs...)
	if err != nil {
		return err
	}

	fmt.Println(formatResult(result))
	return nil
}

func formatResult(v any) string {
	switch r := v.(type) {
	case nil:
		return "(no results)"
	case float64:
		return strconv.FormatFloat(r, 'g', -1, 64)
	case []float64:
		parts := make([]string, len(r))
		for i, f := range r {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(r)
	}
}

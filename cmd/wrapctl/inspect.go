package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/manifest"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest>",
	Short: "Show the routines a manifest declares",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	routines, err := m.Routines()
	if err != nil {
		return err
	}

	backendName := m.Backend
	if backendKey != "" {
		backendName = backendKey
	}
	fmt.Printf("Backend: %s\n", backendName)
	if m.Source.File != "" {
		fmt.Printf("Source: %s (.%s)\n", m.Source.File, m.Extension())
	}
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Routine", "Name", "Role", "Type", "Shape", "Expression")

	for _, r := range routines {
		for _, a := range r.Arguments() {
			table.Append(r.Name(), a.Name, a.Kind.String(), a.Datatype.String(), shapeOf(a), a.Expr)
		}
		for _, res := range r.Results() {
			table.Append(r.Name(), res.Name, "result", res.Datatype.String(), "scalar", res.Expr)
		}
	}

	table.Render()
	return nil
}

func shapeOf(a codewrap.Argument) string {
	if !a.IsArray() {
		return "scalar"
	}
	dims := make([]string, len(a.Dimensions))
	for i, d := range a.Dimensions {
		dims[i] = strconv.Itoa(d)
	}
	return strings.Join(dims, "x")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/codewrap/wrap"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <manifest>",
	Short: "Compile a manifest's routines into a loadable artifact",
	Long: `Run the wrap pipeline up to and including the external build and a
load check of the resulting artifact. Requires --dir so the artifact
outlives the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if workDir == "" {
		return fmt.Errorf("build requires --dir: an ephemeral workspace would discard the artifact")
	}

	j, err := loadJob(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	w, err := wrap.New(ctx, j.gen, j.opts)
	if err != nil {
		return err
	}
	defer w.Close(ctx)

	if _, err := w.Wrap(ctx, j.primary, j.helpers...); err != nil {
		return err
	}

	fmt.Printf("Built %s into %s\n", j.primary.Name(), workDir)
	return nil
}

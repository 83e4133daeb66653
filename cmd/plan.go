package cmd

import (
	"errors"
	"io"

	"github.com/dstockto/cci/freeze"
	"github.com/dstockto/cci/models"
	"github.com/dstockto/cci/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Commands for getting information about MetaDeploy plans",
	Long:  `Commands for listing the plans of a project and showing their messages, preflight checks and steps.`,
}

// plainOutput switches tables to borderless columns.
var plainOutput bool

// newStepResolver is replaced in tests to observe how often steps get frozen.
var newStepResolver = func() report.StepResolver {
	return freeze.NewResolver(log)
}

func requireProject() (*models.ProjectConfig, error) {
	if Project == nil {
		return nil, ErrNoProject
	}
	return Project, nil
}

func newRenderer() report.Renderer {
	if plainOutput || color.NoColor {
		return report.PlainRenderer{}
	}
	return report.BoxRenderer{}
}

// commandError decides whether cobra prints usage along with err.
// Only usage errors do; everything else is reported on its own.
func commandError(cmd *cobra.Command, err error) error {
	var usageErr *report.UsageError
	if !errors.As(err, &usageErr) {
		cmd.SilenceUsage = true
	}
	return err
}

func printTables(w io.Writer, tables ...report.Table) error {
	return report.RenderAll(w, newRenderer(), tables...)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "print tables as plain columns without borders")
}

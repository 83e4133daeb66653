package cmd

import (
	"fmt"

	"github.com/dstockto/cci/report"
	"github.com/spf13/cobra"
)

var planInfoCmd = &cobra.Command{
	Use:   "info [plan_name]",
	Short: "Show the messages, preflight checks and steps of a plan",
	Long: `Show the config, messages, plan preflight checks, step preflight checks and
steps of a plan. Freezing the steps can be slow; use --messages to show only
the plan messages.

Without a plan name an interactive picker is shown when running in a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlanInfo,
}

func runPlanInfo(cmd *cobra.Command, args []string) error {
	messagesOnly, _ := cmd.Flags().GetBool("messages")
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")

	project, err := requireProject()
	if err != nil {
		return commandError(cmd, err)
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		if !isInteractiveAllowed(nonInteractive) {
			return commandError(cmd, &report.UsageError{
				Msg: fmt.Sprintf("missing argument 'plan_name'. To view available plans run: `%s`", report.ListCommand),
			})
		}
		selected, canceled, err := selectPlanInteractively(project)
		if err != nil {
			return commandError(cmd, err)
		}
		if canceled {
			return nil
		}
		name = selected
	}

	var resolver report.StepResolver
	if !messagesOnly {
		resolver = newStepResolver()
	}
	info, err := report.Reporter{Resolver: resolver}.Info(project, name, messagesOnly)
	if err != nil {
		return commandError(cmd, err)
	}

	tables := info.Tables()
	if messagesOnly {
		tables = []report.Table{info.MessagesTable()}
	}
	if err := printTables(cmd.OutOrStdout(), tables...); err != nil {
		return commandError(cmd, err)
	}
	return nil
}

func init() {
	planCmd.AddCommand(planInfoCmd)
	planInfoCmd.Flags().Bool("messages", false, "Show only plan messages")
	planInfoCmd.Flags().Bool("non-interactive", false, "never prompt for a plan name")
}

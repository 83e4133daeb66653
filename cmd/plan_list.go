package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dstockto/cci/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available plans for the current project",
	Long: `List available plans for the current project, ordered by tier (primary, secondary, additional) and then by name.

If --json is specified, the data will be a list of plans where
each plan is an object with the following keys:
name, title, slug, tier`,
	Args: cobra.NoArgs,
	RunE: runPlanList,
}

func runPlanList(cmd *cobra.Command, args []string) error {
	printJSON, _ := cmd.Flags().GetBool("json")

	project, err := requireProject()
	if err != nil {
		return commandError(cmd, err)
	}

	rows := report.ListPlans(project.Plans)
	out := cmd.OutOrStdout()

	if printJSON {
		b, err := json.Marshal(rows)
		if err != nil {
			return commandError(cmd, fmt.Errorf("failed to encode plans: %w", err))
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	if err := printTables(out, report.ListTable(rows)); err != nil {
		return commandError(cmd, err)
	}

	_, err = fmt.Fprintf(out, "Use %s to get more information about a plan.\n", color.New(color.Bold).Sprint("cci plan info <plan_name>"))
	return err
}

func init() {
	planCmd.AddCommand(planListCmd)
	planListCmd.Flags().Bool("json", false, "Return the list of plans in JSON format")
}

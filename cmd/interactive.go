package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dstockto/cci/models"
	"github.com/dstockto/cci/report"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// noBellStdout swallows the bell promptui rings on every keystroke.
type noBellStdout struct{}

func (n *noBellStdout) Write(p []byte) (int, error) {
	if len(p) == 1 && p[0] == readline.CharBell {
		return 0, nil
	}
	return readline.Stdout.Write(p)
}

func (n *noBellStdout) Close() error {
	return readline.Stdout.Close()
}

var noBellOut = &noBellStdout{}

// selectPlanInteractively shows the plans in list order and returns the chosen
// plan name. If the user cancels the prompt (Esc or Ctrl+C), canceled is true.
func selectPlanInteractively(project *models.ProjectConfig) (string, bool, error) {
	rows := report.ListPlans(project.Plans)
	if len(rows) == 0 {
		return "", false, errors.New("no plans defined in project config")
	}
	if len(rows) == 1 {
		return rows[0].Name, false, nil
	}

	items := make([]string, len(rows))
	for i, r := range rows {
		items[i] = planLabel(r)
	}

	prompt := promptui.Select{
		Label:             "Select a plan (type to filter; Esc to cancel)",
		Items:             items,
		Size:              12,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            noBellOut,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(strings.TrimSpace(input)))
		},
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
			return "", true, nil
		}
		return "", false, err
	}

	return rows[idx].Name, false, nil
}

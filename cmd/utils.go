package cmd

import (
	"fmt"

	"github.com/dstockto/cci/report"
)

const maxLabelTitle = 48

// planLabel formats a plan for the interactive picker, e.g. "install: Install Advisor Link (primary)".
func planLabel(r report.PlanSummary) string {
	title := TruncateFront(r.Title, maxLabelTitle)
	if title == "" {
		return fmt.Sprintf("%s (%s)", r.Name, r.Tier)
	}
	return fmt.Sprintf("%s: %s (%s)", r.Name, title, r.Tier)
}

// TruncateFront truncates a string from the front if it has more than maxLen runes.
func TruncateFront(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

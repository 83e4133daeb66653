package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/dstockto/cci/report"
)

func TestTruncateFront(t *testing.T) {
	tests := []struct {
		s        string
		maxLen   int
		expected string
	}{
		{"Hello World", 20, "Hello World"},
		{"Hello World", 11, "Hello World"},
		{"Hello World", 10, "...o World"},
		{"Hello World", 5, "...ld"},
		{"Hello World", 3, "rld"},
		{"Hello World", 2, "ld"},
		{"Configuración rápida", 20, "Configuración rápida"},
		{"Configuración rápida", 10, "... rápida"},
		{"日本語のプラン", 5, "...ラン"},
		{"日本語のプラン", 3, "プラン"},
	}

	for _, tt := range tests {
		got := TruncateFront(tt.s, tt.maxLen)
		if got != tt.expected {
			t.Errorf("TruncateFront(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.expected)
		}
		if !utf8.ValidString(got) {
			t.Errorf("TruncateFront(%q, %d) returned invalid UTF-8 %q", tt.s, tt.maxLen, got)
		}
	}
}

func TestPlanLabel(t *testing.T) {
	tests := []struct {
		name     string
		row      report.PlanSummary
		expected string
	}{
		{"with title", report.PlanSummary{Name: "install", Title: "Install Advisor Link", Tier: "primary"}, "install: Install Advisor Link (primary)"},
		{"without title", report.PlanSummary{Name: "extras", Tier: "additional"}, "extras (additional)"},
		{
			"long title",
			report.PlanSummary{Name: "config", Title: "Express Setup Configuration Plan For Advisor Link Orgs", Tier: "secondary"},
			"config: ...etup Configuration Plan For Advisor Link Orgs (secondary)",
		},
		{
			"long accented title",
			report.PlanSummary{Name: "config", Title: "Configuración rápida del plan de instalación para orgs", Tier: "secondary"},
			"config: ...ción rápida del plan de instalación para orgs (secondary)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := planLabel(tt.row)
			if actual != tt.expected {
				t.Errorf("planLabel() = %q, want %q", actual, tt.expected)
			}
			if !utf8.ValidString(actual) {
				t.Errorf("planLabel() returned invalid UTF-8 %q", actual)
			}
		})
	}
}

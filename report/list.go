// Package report turns plan configuration into listing rows and info tables.
package report

import (
	"cmp"
	"slices"

	"github.com/dstockto/cci/models"
)

type PlanSummary struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Tier  string `json:"tier"`
}

var listHeader = []string{"Name", "Title", "Slug", "Tier"}

// ListPlans returns one row per plan, ordered by tier rank and then by name.
// The result is never nil so it encodes as [] when there are no plans.
func ListPlans(plans map[string]models.PlanConfig) []PlanSummary {
	names := make([]string, 0, len(plans))
	for name := range plans {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(plans[a].Tier.Rank(), plans[b].Tier.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	rows := make([]PlanSummary, 0, len(names))
	for _, name := range names {
		plan := plans[name]
		rows = append(rows, PlanSummary{
			Name:  name,
			Title: plan.Title,
			Slug:  plan.Slug,
			Tier:  plan.Tier.String(),
		})
	}
	return rows
}

func ListTable(rows []PlanSummary) Table {
	t := Table{Header: listHeader, Rows: [][]string{}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Name, r.Title, r.Slug, r.Tier})
	}
	return t
}

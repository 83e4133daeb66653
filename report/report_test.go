package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dstockto/cci/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls int
	steps []models.Step
	err   error
}

func (r *countingResolver) FreezeSteps(_ *models.ProjectConfig, _ models.PlanConfig) ([]models.Step, error) {
	r.calls++
	return r.steps, r.err
}

func plan(tier models.Tier) models.PlanConfig {
	p := models.PlanConfig{Title: "Plan " + string(tier), Slug: string(tier), Tier: tier}
	p.ApplyDefaults()
	return p
}

func names(rows []PlanSummary) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestListPlansOrdersByTierThenName(t *testing.T) {
	rows := ListPlans(map[string]models.PlanConfig{
		"a": plan(models.TierSecondary),
		"b": plan(models.TierPrimary),
	})
	assert.Equal(t, []string{"b", "a"}, names(rows))

	rows = ListPlans(map[string]models.PlanConfig{
		"zeta":    plan("bonus"),
		"extras":  plan(models.TierAdditional),
		"install": plan(models.TierPrimary),
		"alpha":   plan("legacy"),
		"config":  plan(models.TierSecondary),
		"upgrade": plan(models.TierPrimary),
	})
	assert.Equal(t, []string{"install", "upgrade", "config", "extras", "alpha", "zeta"}, names(rows))
	assert.Equal(t, PlanSummary{Name: "install", Title: "Plan primary", Slug: "primary", Tier: "primary"}, rows[0])
}

func TestListPlansEmpty(t *testing.T) {
	for _, plans := range []map[string]models.PlanConfig{nil, {}} {
		rows := ListPlans(plans)
		require.NotNil(t, rows)
		assert.Empty(t, rows)

		b, err := json.Marshal(rows)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(b))

		tbl := ListTable(rows)
		assert.Equal(t, []string{"Name", "Title", "Slug", "Tier"}, tbl.Header)
		assert.Empty(t, tbl.Rows)
	}
}

func TestListPlansJSONShape(t *testing.T) {
	rows := ListPlans(map[string]models.PlanConfig{"install": plan(models.TierPrimary)})
	b, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"install","title":"Plan primary","slug":"primary","tier":"primary"}]`, string(b))
}

func infoProject() *models.ProjectConfig {
	install := models.PlanConfig{
		Title:              "Install",
		Slug:               "install",
		PreflightMessage:   "This will install metadata.",
		PostInstallMessage: "Thanks for installing.",
		ErrorMessage:       "Ask for help.",
		Checks: []models.Check{
			{Action: "error", Message: "My Domain must be enabled.", When: "'.my.' not in org_config.instance_url"},
		},
	}
	install.ApplyDefaults()
	return &models.ProjectConfig{Plans: map[string]models.PlanConfig{"install": install}}
}

func TestInfoUnknownPlan(t *testing.T) {
	resolver := &countingResolver{}
	for _, project := range []*models.ProjectConfig{infoProject(), {}} {
		_, err := Reporter{Resolver: resolver}.Info(project, "missing", false)
		require.Error(t, err)
		var usageErr *UsageError
		require.True(t, errors.As(err, &usageErr))
		assert.Contains(t, err.Error(), "'missing'")
		assert.Contains(t, err.Error(), "`cci plan list`")
	}
	assert.Equal(t, 0, resolver.calls)
}

func TestInfoMessagesOnlySkipsResolver(t *testing.T) {
	resolver := &countingResolver{}
	info, err := Reporter{Resolver: resolver}.Info(infoProject(), "install", true)
	require.NoError(t, err)
	assert.Equal(t, 0, resolver.calls)
	assert.Empty(t, info.Steps)

	msgs := info.MessagesTable()
	assert.Equal(t, "Messages", msgs.Title)
	assert.Equal(t, [][]string{
		{"Title", "Install"},
		{"Preflight", "This will install metadata."},
		{"Post-install", "Thanks for installing."},
		{"Error", "Ask for help."},
	}, msgs.Rows)
}

func TestInfoFreezesOnceAndFlattens(t *testing.T) {
	resolver := &countingResolver{steps: []models.Step{
		{StepNum: "1/1", Name: "Update dependencies", IsRequired: true, TaskConfig: models.StepTaskConfig{
			Checks: []models.Check{{Action: "error", Message: "first", When: "a"}, {Action: "warn", Message: "second", When: "b"}},
		}},
		{StepNum: "1/2", Name: "Deploy", IsRequired: false},
		{StepNum: "2", Name: "Configure", IsRequired: true, TaskConfig: models.StepTaskConfig{
			Checks: []models.Check{{Action: "skip", Message: "third", When: "c"}},
		}},
	}}
	info, err := Reporter{Resolver: resolver}.Info(infoProject(), "install", false)
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.calls)

	assert.Equal(t, [][]string{
		{"1/1", "Update dependencies", "True"},
		{"1/2", "Deploy", "False"},
		{"2", "Configure", "True"},
	}, info.StepsTable().Rows)
	assert.Equal(t, [][]string{
		{"error", "first", "a"},
		{"warn", "second", "b"},
		{"skip", "third", "c"},
	}, info.StepPreflightsTable().Rows)
	assert.Equal(t, [][]string{
		{"error", "My Domain must be enabled.", "'.my.' not in org_config.instance_url"},
	}, info.PlanPreflightsTable().Rows)
	assert.Equal(t, [][]string{
		{"YAML Key", "install"},
		{"Slug", "install"},
		{"Tier", "primary"},
		{"Hidden?", "False"},
	}, info.ConfigTable().Rows)

	var titles []string
	for _, tbl := range info.Tables() {
		titles = append(titles, tbl.Title)
	}
	assert.Equal(t, []string{"Config", "Messages", "Plan Preflights", "Step Preflights", "Steps"}, titles)
}

func TestInfoResolverErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := Reporter{Resolver: &countingResolver{err: boom}}.Info(infoProject(), "install", false)
	require.ErrorIs(t, err, boom)
	var usageErr *UsageError
	assert.False(t, errors.As(err, &usageErr))
}

func TestPlainRenderer(t *testing.T) {
	var out bytes.Buffer
	err := RenderAll(&out, PlainRenderer{},
		Table{Title: "Config", Header: []string{"Key", "Value"}, Rows: [][]string{{"Slug", "a | b"}}},
		Table{Title: "Steps", Header: []string{"Step", "Name", "Required"}, Rows: [][]string{{"1", "multi\nline", "True"}}},
	)
	require.NoError(t, err)

	text := out.String()
	assert.Less(t, strings.Index(text, "Config"), strings.Index(text, "Steps"))
	assert.Contains(t, text, "a | b")
	assert.Contains(t, text, "multi line")
	assert.Contains(t, text, "\n\nSteps\n")
}

func TestBoxRenderer(t *testing.T) {
	var out bytes.Buffer
	err := BoxRenderer{}.Render(&out, ListTable([]PlanSummary{{Name: "install", Title: "Install", Slug: "install", Tier: "primary"}}))
	require.NoError(t, err)
	text := out.String()
	for _, want := range []string{"Name", "Title", "Slug", "Tier", "install", "primary", "╭"} {
		assert.Contains(t, text, want)
	}
}

package report

import (
	"fmt"

	"github.com/dstockto/cci/models"
)

// ListCommand is the command users are pointed at to discover plan names.
const ListCommand = "cci plan list"

// UsageError is a mistake in how the command was invoked. The CLI prints it
// together with the command's usage.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func UnknownPlanError(name string) *UsageError {
	return &UsageError{Msg: fmt.Sprintf("Unknown plan '%s'. To view available plans run: `%s`", name, ListCommand)}
}

// StepResolver freezes the steps of a plan. It may be slow.
type StepResolver interface {
	FreezeSteps(project *models.ProjectConfig, plan models.PlanConfig) ([]models.Step, error)
}

type StepRow struct {
	StepNum  string `json:"step_num"`
	Name     string `json:"name"`
	Required bool   `json:"is_required"`
}

// PlanInfo is everything `plan info` can show about one plan.
type PlanInfo struct {
	Title              string         `json:"title"`
	YAMLKey            string         `json:"yaml_key"`
	Slug               string         `json:"slug"`
	Tier               models.Tier    `json:"tier"`
	Hidden             bool           `json:"hidden"`
	PreflightMessage   string         `json:"preflight_message"`
	PostInstallMessage string         `json:"post_install_message"`
	ErrorMessage       string         `json:"error_message"`
	Checks             []models.Check `json:"checks"`
	Steps              []StepRow      `json:"steps"`
	StepChecks         []models.Check `json:"steps_preflight_checks"`
}

type Reporter struct {
	Resolver StepResolver
}

// Info collects the details of the named plan. With messagesOnly the steps are
// not frozen and Steps and StepChecks stay empty.
func (r Reporter) Info(project *models.ProjectConfig, name string, messagesOnly bool) (*PlanInfo, error) {
	plan, ok := project.Plans[name]
	if !ok {
		return nil, UnknownPlanError(name)
	}

	info := &PlanInfo{
		Title:              plan.Title,
		YAMLKey:            name,
		Slug:               plan.Slug,
		Tier:               plan.Tier,
		Hidden:             plan.Hidden(),
		PreflightMessage:   plan.PreflightMessage,
		PostInstallMessage: plan.PostInstallMessage,
		ErrorMessage:       plan.ErrorMessage,
		Checks:             append([]models.Check{}, plan.Checks...),
		Steps:              []StepRow{},
		StepChecks:         []models.Check{},
	}
	if messagesOnly {
		return info, nil
	}

	steps, err := r.Resolver.FreezeSteps(project, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to freeze steps of plan '%s': %w", name, err)
	}
	for _, s := range steps {
		info.Steps = append(info.Steps, StepRow{StepNum: s.StepNum, Name: s.Name, Required: s.IsRequired})
		info.StepChecks = append(info.StepChecks, s.TaskConfig.Checks...)
	}
	return info, nil
}

func (i *PlanInfo) ConfigTable() Table {
	return Table{
		Title:  "Config",
		Header: []string{"Key", "Value"},
		Rows: [][]string{
			{"YAML Key", i.YAMLKey},
			{"Slug", i.Slug},
			{"Tier", i.Tier.String()},
			{"Hidden?", formatBool(i.Hidden)},
		},
	}
}

func (i *PlanInfo) MessagesTable() Table {
	return Table{
		Title:  "Messages",
		Header: []string{"Type", "Message"},
		Rows: [][]string{
			{"Title", i.Title},
			{"Preflight", i.PreflightMessage},
			{"Post-install", i.PostInstallMessage},
			{"Error", i.ErrorMessage},
		},
	}
}

func (i *PlanInfo) PlanPreflightsTable() Table {
	return checksTable("Plan Preflights", i.Checks)
}

func (i *PlanInfo) StepPreflightsTable() Table {
	return checksTable("Step Preflights", i.StepChecks)
}

func (i *PlanInfo) StepsTable() Table {
	t := Table{Title: "Steps", Header: []string{"Step", "Name", "Required"}, Rows: [][]string{}}
	for _, s := range i.Steps {
		t.Rows = append(t.Rows, []string{s.StepNum, s.Name, formatBool(s.Required)})
	}
	return t
}

// Tables returns every section in display order.
func (i *PlanInfo) Tables() []Table {
	return []Table{
		i.ConfigTable(),
		i.MessagesTable(),
		i.PlanPreflightsTable(),
		i.StepPreflightsTable(),
		i.StepsTable(),
	}
}

func checksTable(title string, checks []models.Check) Table {
	t := Table{Title: title, Header: []string{"Action", "Message", "When"}, Rows: [][]string{}}
	for _, c := range checks {
		t.Rows = append(t.Rows, []string{c.Action, c.Message, c.When})
	}
	return t
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Package freeze resolves a plan's step and flow definitions into the concrete,
// ordered list of steps that an installer would run.
package freeze

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/dstockto/cci/models"
	"github.com/mitchellh/mapstructure"
	"github.com/op/go-logging"
)

var (
	ErrUnknownFlow = errors.New("unknown flow")
	ErrFlowCycle   = errors.New("flow includes itself")
)

// uiOptions are the installer-facing overrides of a single step.
type uiOptions struct {
	Name       string         `mapstructure:"name"`
	IsRequired *bool          `mapstructure:"is_required"`
	Checks     []models.Check `mapstructure:"checks"`
}

// overrides are options keyed by task name, handed down from an enclosing flow step.
type overrides struct {
	options map[string]map[string]any
	ui      map[string]map[string]any
}

type Resolver struct {
	log *logging.Logger
}

func NewResolver(log *logging.Logger) *Resolver {
	return &Resolver{log: log}
}

// FreezeSteps returns the steps of plan in execution order.
func (r *Resolver) FreezeSteps(project *models.ProjectConfig, plan models.PlanConfig) ([]models.Step, error) {
	r.log.Infof("Freezing steps for plan '%s'", plan.Title)

	w := walker{
		project:   project,
		log:       r.log,
		expanding: map[string]bool{},
	}
	steps := []models.Step{}
	for _, num := range models.SortedStepNumbers(plan.Steps) {
		frozen, err := w.step([]string{num}, nil, plan.Steps[num], overrides{})
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", num, err)
		}
		steps = append(steps, frozen...)
	}
	r.log.Debugf("Froze %d steps", len(steps))
	return steps, nil
}

type walker struct {
	project   *models.ProjectConfig
	log       *logging.Logger
	expanding map[string]bool
}

func (w walker) step(label, path []string, sc models.StepConfig, inherited overrides) ([]models.Step, error) {
	if sc.Disabled() {
		return nil, nil
	}
	if sc.Flow != "" {
		return w.flow(label, path, sc, inherited)
	}
	if sc.Task == "" {
		return nil, models.ErrInvalidStep
	}

	task := w.project.Tasks[sc.Task]

	ui, err := decodeUIOptions(sc.UIOptions)
	if err != nil {
		return nil, fmt.Errorf("ui_options of task %s: %w", sc.Task, err)
	}
	if parent, ok := inherited.ui[sc.Task]; ok {
		outer, err := decodeUIOptions(parent)
		if err != nil {
			return nil, fmt.Errorf("ui_options of task %s: %w", sc.Task, err)
		}
		ui = ui.merge(outer)
	}

	options := map[string]any{}
	maps.Copy(options, task.Options)
	maps.Copy(options, sc.Options)
	maps.Copy(options, inherited.options[sc.Task])

	name := ui.Name
	if name == "" {
		name = task.Description
	}
	if name == "" {
		name = sc.Task
	}
	required := true
	if ui.IsRequired != nil {
		required = *ui.IsRequired
	}
	checks := make([]models.Check, 0, len(sc.Checks)+len(ui.Checks))
	checks = append(checks, sc.Checks...)
	checks = append(checks, ui.Checks...)

	return []models.Step{{
		StepNum:    strings.Join(label, "/"),
		Name:       name,
		Path:       strings.Join(append(path, sc.Task), "."),
		IsRequired: required,
		TaskConfig: models.StepTaskConfig{
			Options: options,
			Checks:  checks,
		},
	}}, nil
}

func (w walker) flow(label, path []string, sc models.StepConfig, inherited overrides) ([]models.Step, error) {
	if sc.Task != "" {
		return nil, models.ErrInvalidStep
	}
	flow, ok := w.project.Flows[sc.Flow]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlow, sc.Flow)
	}
	if w.expanding[sc.Flow] {
		return nil, fmt.Errorf("%w: %s", ErrFlowCycle, sc.Flow)
	}
	w.expanding[sc.Flow] = true
	defer delete(w.expanding, sc.Flow)

	w.log.Debugf("Expanding flow %s at step %s", sc.Flow, strings.Join(label, "/"))

	nested, err := keyedOverrides(sc)
	if err != nil {
		return nil, fmt.Errorf("flow %s: %w", sc.Flow, err)
	}
	// Outer flows win over the flows they include.
	nested = nested.merge(inherited)

	var steps []models.Step
	for _, num := range models.SortedStepNumbers(flow.Steps) {
		childLabel := append(append([]string{}, label...), num)
		childPath := append(append([]string{}, path...), sc.Flow)
		frozen, err := w.step(childLabel, childPath, flow.Steps[num], nested)
		if err != nil {
			return nil, fmt.Errorf("flow %s step %s: %w", sc.Flow, num, err)
		}
		steps = append(steps, frozen...)
	}
	// Checks on the flow step itself apply to every step it expands to.
	if len(sc.Checks) > 0 {
		for i := range steps {
			steps[i].TaskConfig.Checks = append(steps[i].TaskConfig.Checks, sc.Checks...)
		}
	}
	return steps, nil
}

func decodeUIOptions(raw map[string]any) (uiOptions, error) {
	var ui uiOptions
	if len(raw) == 0 {
		return ui, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &ui,
	})
	if err != nil {
		return ui, err
	}
	if err := decoder.Decode(raw); err != nil {
		return ui, err
	}
	return ui, nil
}

// merge lays outer on top of u.
func (u uiOptions) merge(outer uiOptions) uiOptions {
	if outer.Name != "" {
		u.Name = outer.Name
	}
	if outer.IsRequired != nil {
		u.IsRequired = outer.IsRequired
	}
	u.Checks = append(append([]models.Check{}, u.Checks...), outer.Checks...)
	return u
}

// keyedOverrides reads the per-task options and ui_options of a flow step.
func keyedOverrides(sc models.StepConfig) (overrides, error) {
	o := overrides{
		options: map[string]map[string]any{},
		ui:      map[string]map[string]any{},
	}
	if len(sc.Options) > 0 {
		if err := mapstructure.Decode(sc.Options, &o.options); err != nil {
			return o, fmt.Errorf("options: %w", err)
		}
	}
	if len(sc.UIOptions) > 0 {
		if err := mapstructure.Decode(sc.UIOptions, &o.ui); err != nil {
			return o, fmt.Errorf("ui_options: %w", err)
		}
	}
	return o, nil
}

func (o overrides) merge(outer overrides) overrides {
	merged := overrides{
		options: map[string]map[string]any{},
		ui:      map[string]map[string]any{},
	}
	mergeKeyed(merged.options, o.options)
	mergeKeyed(merged.options, outer.options)
	mergeKeyed(merged.ui, o.ui)
	mergeKeyed(merged.ui, outer.ui)
	return merged
}

func mergeKeyed(dst, src map[string]map[string]any) {
	for task, values := range src {
		if dst[task] == nil {
			dst[task] = map[string]any{}
		}
		maps.Copy(dst[task], values)
	}
}

package models

import (
	"errors"
	"fmt"
)

// ErrInvalidStep is returned when a step names neither or both of task and flow.
var ErrInvalidStep = errors.New("step must name exactly one of task or flow")

// DisabledTask is the task name used to switch off an inherited flow step.
const DisabledTask = "None"

type Check struct {
	Action  string `yaml:"action" json:"action"`
	Message string `yaml:"message" json:"message"`
	When    string `yaml:"when" json:"when"`
}

type StepConfig struct {
	Task      string         `yaml:"task,omitempty"`
	Flow      string         `yaml:"flow,omitempty"`
	Options   map[string]any `yaml:"options,omitempty"`
	UIOptions map[string]any `yaml:"ui_options,omitempty"`
	Checks    []Check        `yaml:"checks,omitempty"`
}

// Disabled reports whether the step was switched off with `task: None`.
func (s StepConfig) Disabled() bool {
	return s.Task == DisabledTask && s.Flow == ""
}

func (s StepConfig) validate() error {
	if s.Disabled() {
		return nil
	}
	if (s.Task == "") == (s.Flow == "") {
		return ErrInvalidStep
	}
	return nil
}

type TaskConfig struct {
	Description string         `yaml:"description"`
	ClassPath   string         `yaml:"class_path"`
	Options     map[string]any `yaml:"options,omitempty"`
}

type FlowConfig struct {
	Description string                `yaml:"description"`
	Steps       map[string]StepConfig `yaml:"steps"`
}

type PlanConfig struct {
	Title              string                `yaml:"title"`
	Slug               string                `yaml:"slug"`
	Tier               Tier                  `yaml:"tier"`
	IsListed           *bool                 `yaml:"is_listed"`
	PreflightMessage   string                `yaml:"preflight_message"`
	PostInstallMessage string                `yaml:"post_install_message"`
	ErrorMessage       string                `yaml:"error_message"`
	Checks             []Check               `yaml:"checks"`
	Steps              map[string]StepConfig `yaml:"steps"`
}

// ApplyDefaults fills the optional fields that were left out of the YAML.
func (p *PlanConfig) ApplyDefaults() {
	if p.Tier == "" {
		p.Tier = TierPrimary
	}
	if p.IsListed == nil {
		listed := true
		p.IsListed = &listed
	}
	if p.Checks == nil {
		p.Checks = []Check{}
	}
}

// Hidden is true only when the plan explicitly sets is_listed to false.
func (p PlanConfig) Hidden() bool {
	return p.IsListed != nil && !*p.IsListed
}

type PackageInfo struct {
	Name      string `yaml:"name,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

type ProjectInfo struct {
	Name    string      `yaml:"name,omitempty"`
	Package PackageInfo `yaml:"package,omitempty"`
}

// ProjectConfig is the subset of cumulusci.yml needed to describe plans.
type ProjectConfig struct {
	MinimumVersion string                `yaml:"minimum_cumulusci_version,omitempty"`
	Project        ProjectInfo           `yaml:"project,omitempty"`
	Tasks          map[string]TaskConfig `yaml:"tasks,omitempty"`
	Flows          map[string]FlowConfig `yaml:"flows,omitempty"`
	Plans          map[string]PlanConfig `yaml:"plans,omitempty"`
}

func (c *ProjectConfig) ApplyDefaults() {
	for name, plan := range c.Plans {
		plan.ApplyDefaults()
		c.Plans[name] = plan
	}
}

// Validate checks the shape of every plan and flow step.
func (c *ProjectConfig) Validate() error {
	for _, name := range SortedKeys(c.Flows) {
		for _, num := range SortedStepNumbers(c.Flows[name].Steps) {
			if err := c.Flows[name].Steps[num].validate(); err != nil {
				return fmt.Errorf("flow %q step %s: %w", name, num, err)
			}
		}
	}
	for _, name := range SortedKeys(c.Plans) {
		for _, num := range SortedStepNumbers(c.Plans[name].Steps) {
			if err := c.Plans[name].Steps[num].validate(); err != nil {
				return fmt.Errorf("plan %q step %s: %w", name, num, err)
			}
		}
	}
	return nil
}

// UnknownTiers returns the names of plans whose tier is not a known tier.
func (c *ProjectConfig) UnknownTiers() []string {
	var names []string
	for _, name := range SortedKeys(c.Plans) {
		if !c.Plans[name].Tier.Known() {
			names = append(names, name)
		}
	}
	return names
}

package models

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
)

type StepTaskConfig struct {
	Options map[string]any `json:"options,omitempty"`
	Checks  []Check        `json:"checks"`
}

// Step is one frozen unit of work of a plan.
type Step struct {
	StepNum    string         `json:"step_num"` // e.g. "1/2/1"
	Name       string         `json:"name"`
	Path       string         `json:"path"` // e.g. "dependencies.update_dependencies"
	IsRequired bool           `json:"is_required"`
	TaskConfig StepTaskConfig `json:"task_config"`
}

// CompareStepNumbers orders step numbers like loose versions: 1 < 1.1 < 2 < 10.
// Keys with non-numeric parts compare part by part, the non-numeric parts lexically.
func CompareStepNumbers(a, b string) int {
	av, aerr := version.NewVersion(a)
	bv, berr := version.NewVersion(b)
	if aerr != nil || berr != nil {
		return comparePartwise(a, b)
	}
	if c := av.Compare(bv); c != 0 {
		return c
	}
	// "3" and "3.0" are the same version but different steps.
	if c := cmp.Compare(strings.Count(a, "."), strings.Count(b, ".")); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func comparePartwise(a, b string) int {
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	for i := 0; i < len(ap) && i < len(bp); i++ {
		ai, aerr := strconv.Atoi(ap[i])
		bi, berr := strconv.Atoi(bp[i])
		var c int
		if aerr == nil && berr == nil {
			c = cmp.Compare(ai, bi)
		} else {
			c = strings.Compare(ap[i], bp[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ap), len(bp))
}

// SortedStepNumbers returns the keys of steps in execution order.
func SortedStepNumbers(steps map[string]StepConfig) []string {
	nums := make([]string, 0, len(steps))
	for num := range steps {
		nums = append(nums, num)
	}
	slices.SortFunc(nums, CompareStepNumbers)
	return nums
}

func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

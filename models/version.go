package models

import (
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// CheckMinimumVersion fails when current is older than required.
// Short versions such as "3.1" are padded to "3.1.0".
func CheckMinimumVersion(required, current string) error {
	if required == "" {
		return nil
	}
	want, err := parseLooseVersion(required)
	if err != nil {
		return fmt.Errorf("invalid minimum_cumulusci_version %q: %w", required, err)
	}
	have, err := parseLooseVersion(current)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", current, err)
	}
	if have.LessThan(*want) {
		return fmt.Errorf("this project requires version %s or newer, running %s", want, have)
	}
	return nil
}

func parseLooseVersion(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if n := strings.Count(v, "."); n < 2 && !strings.ContainsAny(v, "-+") {
		v += strings.Repeat(".0", 2-n)
	}
	return semver.NewVersion(v)
}

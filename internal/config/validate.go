package config

import (
	"errors"
	"fmt"
)

// Validate checks the structural validity of a Workflow: version field,
// presence of agents, and that every agent with compaction enabled resolves
// to a complete, well-formed compaction configuration.
func Validate(wf *Workflow) error {
	var errs []error

	if wf.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if wf.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", wf.Version))
	}

	if len(wf.Agents) == 0 {
		errs = append(errs, errors.New("config: at least one agent must be configured"))
	}

	for id := range wf.Agents {
		if _, _, err := ResolveCompaction(wf, id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

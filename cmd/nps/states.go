package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/nps"
)

// Run executes the states command.
func (c *StatesCmd) Run(deps *Dependencies) error {
	states, err := deps.Sites.Directory(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", name, states[name])
	}
	return nil
}

// findState resolves a state name to its listing URL.
func findState(deps *Dependencies, name string) (string, error) {
	states, err := deps.Sites.Directory(deps.Ctx)
	if err != nil {
		return "", err
	}
	stateURL, ok := states[normalizeState(name)]
	if !ok {
		return "", nps.Errorf(nps.ENOTFOUND, "unknown state %q. Use 'nps states' to see valid names.", name)
	}
	return stateURL, nil
}

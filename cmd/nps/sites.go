package main

import "fmt"

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	stateURL, err := findState(deps, c.State)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	sites, err := deps.Sites.FetchStateListing(deps.Ctx, stateURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	printListing(deps.Stdout, c.State, sites)
	return nil
}

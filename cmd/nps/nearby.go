package main

import (
	"fmt"

	"github.com/fwojciec/nps"
)

// Run executes the nearby command.
func (c *NearbyCmd) Run(deps *Dependencies) error {
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

	if c.Index < 1 || c.Index > len(sites) {
		err := nps.Errorf(nps.EINVALID, "site number must be between 1 and %d", len(sites))
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	places, err := deps.Sites.FetchNearbyPlaces(deps.Ctx, sites[c.Index-1].Zipcode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	printNearby(deps.Stdout, places)
	return nil
}

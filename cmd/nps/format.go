package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/nps"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const rule = "-----------------------------------------"

// normalizeState returns the directory key for user input.
func normalizeState(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func printListing(w io.Writer, state string, sites []*nps.Site) {
	title := cases.Title(language.English).String(normalizeState(state))
	fmt.Fprintf(w, "%s\nList of National Sites in %s\n%s\n", rule, title, rule)
	for i, site := range sites {
		fmt.Fprintf(w, "[%d] %s\n", i+1, site.Info())
	}
	fmt.Fprintln(w, rule)
}

func printNearby(w io.Writer, places *nps.NearbyPlaces) {
	fmt.Fprintf(w, "%s\nList of nearby sites to %s\n%s\n", rule, places.Origin.PostalCode, rule)
	for _, p := range places.SearchResults {
		fmt.Fprintf(w, "- %s (%s): %s, %s\n", p.Name, p.DisplayCategory(), p.DisplayAddress(), p.DisplayCity())
	}
	fmt.Fprintln(w, rule)
}

// errorText returns the application message for nps errors and the full
// error text otherwise, so network failures stay readable.
func errorText(err error) string {
	var e *nps.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/nps"
)

// Prompts shown by the interactive session.
const (
	statePrompt  = `Enter a state name (e.g. Michigan, michigan) or "exit": `
	detailPrompt = `Choose the number for detail search or "exit" or "back": `
)

// sessionState is a state of the interactive session.
type sessionState int

const (
	awaitingState sessionState = iota
	showingListing
	awaitingDetailIndex
	done
)

// Session runs the interactive query loop as an explicit state machine.
//
//	awaitingState --valid state--> showingListing --> awaitingDetailIndex
//	awaitingDetailIndex --"back"--> awaitingState
//	any --"exit" or EOF--> done
type Session struct {
	Sites nps.SiteService
	In    io.Reader
	Out   io.Writer

	scanner *bufio.Scanner
	states  map[string]string
	state   sessionState
	name    string
	listing []*nps.Site
}

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	s := &Session{Sites: deps.Sites, In: deps.Stdin, Out: deps.Stdout}
	if err := s.Run(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	return nil
}

// Run loads the state directory and processes input until "exit" or EOF.
func (s *Session) Run(ctx context.Context) error {
	states, err := s.Sites.Directory(ctx)
	if err != nil {
		return err
	}
	s.states = states
	s.scanner = bufio.NewScanner(s.In)
	s.state = awaitingState

	for s.state != done {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.state = s.step(ctx)
	}
	return nil
}

// step performs one transition and returns the next state.
func (s *Session) step(ctx context.Context) sessionState {
	switch s.state {
	case awaitingState:
		return s.awaitState(ctx)
	case showingListing:
		printListing(s.Out, s.name, s.listing)
		return awaitingDetailIndex
	case awaitingDetailIndex:
		return s.awaitDetailIndex(ctx)
	default:
		return done
	}
}

func (s *Session) awaitState(ctx context.Context) sessionState {
	line, ok := s.prompt(statePrompt)
	if !ok || strings.EqualFold(line, "exit") {
		return done
	}

	stateURL, found := s.states[normalizeState(line)]
	if !found {
		fmt.Fprintln(s.Out, "Please enter a valid state name in the U.S.")
		return awaitingState
	}

	sites, err := s.Sites.FetchStateListing(ctx, stateURL)
	if err != nil {
		fmt.Fprintf(s.Out, "error: %s\n", errorText(err))
		return awaitingState
	}
	if len(sites) == 0 {
		fmt.Fprintf(s.Out, "No national sites found in %s.\n", line)
		return awaitingState
	}

	s.name = line
	s.listing = sites
	return showingListing
}

func (s *Session) awaitDetailIndex(ctx context.Context) sessionState {
	line, ok := s.prompt(detailPrompt)
	if !ok {
		return done
	}
	switch strings.ToLower(line) {
	case "exit":
		return done
	case "back":
		return awaitingState
	}

	i, err := strconv.Atoi(line)
	if err != nil || i < 1 || i > len(s.listing) {
		fmt.Fprintf(s.Out, "Please enter a valid integer from 1 to %d.\n", len(s.listing))
		return awaitingDetailIndex
	}

	places, err := s.Sites.FetchNearbyPlaces(ctx, s.listing[i-1].Zipcode)
	if err != nil {
		fmt.Fprintf(s.Out, "error: %s\n", errorText(err))
		return awaitingDetailIndex
	}

	printNearby(s.Out, places)
	return awaitingDetailIndex
}

// prompt writes p and reads one trimmed line. It reports false at EOF.
func (s *Session) prompt(p string) (string, bool) {
	fmt.Fprint(s.Out, p)
	if !s.scanner.Scan() {
		fmt.Fprintln(s.Out)
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

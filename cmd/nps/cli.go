package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/nps"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Sites  nps.SiteService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Cache        string        `type:"path" env:"NPS_CACHE" help:"Cache file path (default ~/.nps/cache.json or cache.db)"`
	CacheBackend string        `enum:"json,sqlite" default:"json" env:"NPS_CACHE_BACKEND" help:"Cache storage format (json, sqlite)"`
	BaseURL      string        `name:"base-url" default:"https://www.nps.gov" env:"NPS_BASE_URL" help:"Site listing root URL"`
	PlacesURL    string        `name:"places-url" default:"http://www.mapquestapi.com" env:"MAPQUEST_API_URL" help:"MapQuest API root URL"`
	APIKey       string        `name:"api-key" env:"MAPQUEST_API_KEY" help:"MapQuest consumer key"`
	Concurrency  int           `short:"c" default:"1" env:"NPS_CONCURRENCY" help:"Concurrent site fetches per state"`
	Rate         float64       `default:"5" env:"NPS_RATE" help:"Requests per second per host (0 disables)"`
	Timeout      time.Duration `default:"10s" help:"HTTP request timeout"`
	Verbose      bool          `short:"v" help:"Log cache and network activity"`

	Query  QueryCmd  `cmd:"" default:"1" help:"Interactive state and nearby search (default)"`
	States StatesCmd `cmd:"" help:"List known states"`
	Sites  SitesCmd  `cmd:"" help:"List national sites in a state"`
	Nearby NearbyCmd `cmd:"" help:"List places near a site"`
}

// QueryCmd is the interactive "query" subcommand.
type QueryCmd struct{}

// StatesCmd is the "states" subcommand.
type StatesCmd struct{}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct {
	State string `arg:"" help:"State name (e.g. Michigan)"`
}

// NearbyCmd is the "nearby" subcommand.
type NearbyCmd struct {
	State string `arg:"" help:"State name (e.g. Michigan)"`
	Index int    `arg:"" help:"1-based site number from 'nps sites'"`
}

// Package nps answers questions about U.S. national park sites by scraping
// the nps.gov listing pages and enriching sites with nearby places from the
// MapQuest radius search API. Every expensive fetch is memoized in a
// persistent write-through cache keyed by the resource URL or postal code.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package nps

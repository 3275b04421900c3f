// ABOUTME: Workspace-database client wrapping the Notion API
// ABOUTME: Carries the shared admission throttle and collection identifiers
package notion

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/lecanape/canape/throttle"
)

// The platform rejects requests beyond 5 per second.
const (
	rateCapacity = 5
	rateWindow   = time.Second
)

// Databases holds the collection identifiers for each entity kind.
// They are stable, known at build time, and only overridable through
// configuration for test workspaces.
type Databases struct {
	Organizations notionapi.DatabaseID
	Persons       notionapi.DatabaseID
	Shows         notionapi.DatabaseID
	Gigs          notionapi.DatabaseID
	Deals         notionapi.DatabaseID
}

// Client is the repository layer over the workspace database. Every
// network call goes through the throttle; bypassing it is a
// correctness bug, not an optimization opportunity.
type Client struct {
	api       *notionapi.Client
	throttle  *throttle.Throttle
	databases Databases
}

// NewClient builds a throttled workspace-database client.
func NewClient(apiKey string, databases Databases, opts ...notionapi.ClientOption) *Client {
	return &Client{
		api:       notionapi.NewClient(notionapi.Token(apiKey), opts...),
		throttle:  throttle.New(rateCapacity, rateWindow),
		databases: databases,
	}
}

// NewDatabases converts raw configuration strings into typed ids.
func NewDatabases(organizations, persons, shows, gigs, deals string) Databases {
	return Databases{
		Organizations: notionapi.DatabaseID(organizations),
		Persons:       notionapi.DatabaseID(persons),
		Shows:         notionapi.DatabaseID(shows),
		Gigs:          notionapi.DatabaseID(gigs),
		Deals:         notionapi.DatabaseID(deals),
	}
}

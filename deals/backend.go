// ABOUTME: Backend contract the resolver and assembler operate against
// ABOUTME: Satisfied by the notion client, faked in tests
package deals

import (
	"context"
	"fmt"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/notion"
)

// Backend is the repository surface deal assembly needs. The concrete
// implementation is the throttled workspace-database client.
type Backend interface {
	FetchOrganizationByID(ctx context.Context, id string) (models.Organization, error)
	SearchOrganizationsByName(ctx context.Context, term string) ([]models.Organization, error)
	CreateOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
	UpdateOrganizationFacturationProID(ctx context.Context, id string, facturationProID int64) error

	FetchPersonByID(ctx context.Context, id string) (models.Person, error)
	SearchPersonsByName(ctx context.Context, term string) ([]models.Person, error)
	CreatePerson(ctx context.Context, person models.Person, organizationID, dealID string) (models.Person, error)

	FetchShowByID(ctx context.Context, id string) (models.Show, error)
	SearchShowsByTitle(ctx context.Context, term string) ([]models.Show, error)

	CreateGig(ctx context.Context, data notion.CreateGigData) (string, error)

	FetchDealByID(ctx context.Context, id string) (models.Deal, error)
	CreateDeal(ctx context.Context, deal models.Deal, title, content string) (string, error)
	LinkDecisionMaker(ctx context.Context, dealID, personID string) error
	LinkGig(ctx context.Context, dealID, gigID string) error
}

// InvoicingSync is the optional invoicing-platform side integration.
// It returns the platform's customer id for the organization.
type InvoicingSync interface {
	SyncOrganizationContact(ctx context.Context, org models.Organization, person models.Person) (int64, error)
}

// ShowNotFoundError means a named show matched nothing in the catalog.
// Shows are maintained outside this tool, so this is an input error,
// never a cue to create one.
type ShowNotFoundError struct {
	Title string
}

func (e ShowNotFoundError) Error() string {
	return fmt.Sprintf("no show found with title %q", e.Title)
}

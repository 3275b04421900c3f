// ABOUTME: Deal assembly orchestration in fixed order
// ABOUTME: Organization, deal shell, decision maker, gig, then the aggregate result
package deals

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/notion"
)

// Assembler composes resolver calls into one deal. The step order is
// fixed: later steps need the ids produced by earlier ones, and the
// platform offers no atomic multi-entity write.
type Assembler struct {
	backend   Backend
	resolver  *Resolver
	invoicing InvoicingSync // nil when the integration is not configured
	now       func() time.Time
}

func NewAssembler(backend Backend, invoicing InvoicingSync) *Assembler {
	return &Assembler{
		backend:   backend,
		resolver:  NewResolver(backend),
		invoicing: invoicing,
		now:       time.Now,
	}
}

// Assemble resolves the organizer, creates the deal shell, and wires
// the optional decision maker and gig. A failure before the shell
// exists aborts cleanly; a failure of the invoicing sync is recorded
// and swallowed; a missing show aborts before any gig is created.
func (a *Assembler) Assemble(ctx context.Context, input models.CreateDealInput) (models.DealAssemblyResult, error) {
	result := models.DealAssemblyResult{InvoicingSync: models.OutcomeSkipped}

	title := strings.TrimSpace(input.DealTitle)
	if title == "" {
		return result, notion.ValidationError{Entity: "deal", Field: "title", Reason: "must not be blank"}
	}

	org, orgCreated, err := a.resolver.ResolveOrganization(ctx, input.Organizer)
	if err != nil {
		return result, err
	}
	result.OrganizationID = org.ID
	result.WasOrganizationCreated = orgCreated

	today := a.now().Format("2006-01-02")
	shell := models.Deal{
		Date:         today,
		Amount:       0,
		Gigs:         []models.Gig{},
		Organization: org,
	}

	dealID, err := a.backend.CreateDeal(ctx, shell, title, "")
	if err != nil {
		return result, err
	}

	// The create response does not include the canonical URL; re-fetch
	// the deal to obtain it.
	deal, err := a.backend.FetchDealByID(ctx, dealID)
	if err != nil {
		return result, err
	}
	result.Deal = deal

	if input.DecisionMaker != nil {
		person, personCreated, err := a.resolver.ResolvePerson(ctx, *input.DecisionMaker, org.ID, deal.ID)
		if err != nil {
			return result, err
		}
		result.PersonID = person.ID
		result.WasPersonCreated = personCreated

		if err := a.backend.LinkDecisionMaker(ctx, deal.ID, person.ID); err != nil {
			return result, err
		}

		result.InvoicingSync = a.syncInvoicing(ctx, org, person)
	}

	if input.Gig != nil {
		gigID, gigErr := a.createGig(ctx, *input.Gig, deal.ID, org.ID)
		if gigErr != nil {
			return result, gigErr
		}
		result.GigID = gigID
		result.WasGigCreated = true

		if err := a.backend.LinkGig(ctx, deal.ID, gigID); err != nil {
			return result, err
		}
	}

	return result, nil
}

// syncInvoicing pushes the organization and contact to the invoicing
// platform. Best-effort: the workspace writes already succeeded and are
// never rolled back because a side integration hiccuped.
func (a *Assembler) syncInvoicing(ctx context.Context, org models.Organization, person models.Person) models.BestEffortOutcome {
	if a.invoicing == nil {
		return models.OutcomeSkipped
	}

	customerID, err := a.invoicing.SyncOrganizationContact(ctx, org, person)
	if err != nil {
		log.Warn("invoicing sync failed, continuing", "organization", org.Name, "err", err)
		return models.OutcomeFailedIgnored
	}

	if org.FacturationProID == nil && customerID != 0 {
		if err := a.backend.UpdateOrganizationFacturationProID(ctx, org.ID, customerID); err != nil {
			log.Warn("failed to record invoicing customer id", "organization", org.Name, "err", err)
			return models.OutcomeFailedIgnored
		}
	}

	return models.OutcomeSucceeded
}

func (a *Assembler) createGig(ctx context.Context, gig models.GigInput, dealID, organizationID string) (string, error) {
	show, err := a.resolver.ResolveShow(ctx, gig.Show)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(gig.GigTitle)
	if title == "" {
		title = GigDisplayTitle(show.Title, gig.City, gig.Timestamp)
	}

	return a.backend.CreateGig(ctx, notion.CreateGigData{
		GigTitle:       title,
		ShowID:         show.ID,
		DealID:         dealID,
		OrganizationID: organizationID,
		City:           strings.TrimSpace(gig.City),
		Timestamp:      strings.TrimSpace(gig.Timestamp),
	})
}

// GigDisplayTitle composes the denormalized gig title. The city segment
// is omitted when the city is blank.
func GigDisplayTitle(showTitle, city, timestamp string) string {
	city = strings.TrimSpace(city)
	cityPart := ""
	if city != "" {
		cityPart = " @ " + city
	}
	return showTitle + cityPart + " / " + strings.TrimSpace(timestamp)
}

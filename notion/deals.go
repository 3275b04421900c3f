// ABOUTME: Deal repository over the workspace database
// ABOUTME: Fetch resolves gigs and organization transitively; create writes the shell
package notion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jomei/notionapi"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/throttle"
)

// FetchDealByID retrieves one deal and resolves its relations: every
// related gig is fetched concurrently (which transitively fetches each
// gig's show), then the organization. One failing gig fetch fails the
// whole deal fetch.
func (c *Client) FetchDealByID(ctx context.Context, id string) (models.Deal, error) {
	log.Debug("fetching deal", "id", id)

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Get(ctx, notionapi.PageID(id))
	})
	if err != nil {
		return models.Deal{}, wrapFetchErr("deal", id, err)
	}

	gigIDs, ok := getRelationIDs(page.Properties, propGigs)
	if !ok {
		return models.Deal{}, ValidationError{Entity: "deal", Field: "gigs", Reason: "relation missing on record"}
	}

	gigs := make([]models.Gig, len(gigIDs))
	errs := make([]error, len(gigIDs))
	var wg sync.WaitGroup
	for i, gigID := range gigIDs {
		wg.Add(1)
		go func(i int, gigID string) {
			defer wg.Done()
			gigs[i], errs[i] = c.FetchGigByID(ctx, gigID)
		}(i, gigID)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return models.Deal{}, err
		}
	}

	orgIDs, ok := getRelationIDs(page.Properties, propOrganization)
	if !ok || len(orgIDs) == 0 {
		return models.Deal{}, ValidationError{Entity: "deal", Field: "organization", Reason: "relation missing on record"}
	}
	org, err := c.FetchOrganizationByID(ctx, orgIDs[0])
	if err != nil {
		return models.Deal{}, err
	}

	amount, _ := getNumber(page.Properties, propAmount)
	return models.NewDeal(string(page.ID), page.URL, getDate(page.Properties, propDate), amount, gigs, &org)
}

// CreateDeal persists a deal shell with the given title and body
// content and returns the assigned id. The create response does not
// carry the page URL; callers re-fetch for it.
func (c *Client) CreateDeal(ctx context.Context, deal models.Deal, title, content string) (string, error) {
	if deal.Organization.ID == "" {
		return "", ValidationError{Entity: "deal", Field: "organization", Reason: "must be resolved before creation"}
	}

	date, err := time.Parse("2006-01-02", deal.Date)
	if err != nil {
		return "", ValidationError{Entity: "deal", Field: "date", Reason: err.Error()}
	}

	gigIDs := make([]string, 0, len(deal.Gigs))
	for _, g := range deal.Gigs {
		gigIDs = append(gigIDs, g.ID)
	}

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: c.databases.Deals,
			},
			Properties: notionapi.Properties{
				propName:         titleProp(title),
				propDate:         dateProp(date),
				propGigs:         relationProp(gigIDs...),
				propOrganization: relationProp(deal.Organization.ID),
			},
			Children: []notionapi.Block{
				&notionapi.ParagraphBlock{
					BasicBlock: notionapi.BasicBlock{
						Object: notionapi.ObjectTypeBlock,
						Type:   notionapi.BlockTypeParagraph,
					},
					Paragraph: notionapi.Paragraph{
						RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
					},
				},
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to create deal %q: %w", title, err)
	}

	log.Info("deal created", "id", page.ID, "title", title)
	return string(page.ID), nil
}

// LinkDecisionMaker wires the person onto the deal. Separate update
// call: the platform has no atomic multi-entity write.
func (c *Client) LinkDecisionMaker(ctx context.Context, dealID, personID string) error {
	err := c.throttle.Do(ctx, func() error {
		_, err := c.api.Page.Update(ctx, notionapi.PageID(dealID), &notionapi.PageUpdateRequest{
			Properties: notionapi.Properties{
				propDecisionMaker: relationProp(personID),
			},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to link person %s to deal %s: %w", personID, dealID, err)
	}
	return nil
}

// LinkGig wires the gig onto the deal after creation.
func (c *Client) LinkGig(ctx context.Context, dealID, gigID string) error {
	err := c.throttle.Do(ctx, func() error {
		_, err := c.api.Page.Update(ctx, notionapi.PageID(dealID), &notionapi.PageUpdateRequest{
			Properties: notionapi.Properties{
				propGigs: relationProp(gigID),
			},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to link gig %s to deal %s: %w", gigID, dealID, err)
	}
	return nil
}

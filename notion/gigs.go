// ABOUTME: Gig repository over the workspace database
// ABOUTME: Fetch resolves the related show; creation wires deal and organizer
package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jomei/notionapi"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/throttle"
)

// CreateGigData carries everything needed to persist one gig. Gigs are
// never deduplicated: a recurring show at a new date is a new gig.
type CreateGigData struct {
	GigTitle       string
	ShowID         string
	DealID         string
	OrganizationID string
	City           string
	Timestamp      string
}

// FetchGigByID retrieves one gig and resolves its show relation. The
// display title prefers the related show's title and falls back to the
// gig's custom title.
func (c *Client) FetchGigByID(ctx context.Context, id string) (models.Gig, error) {
	log.Debug("fetching gig", "id", id)

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Get(ctx, notionapi.PageID(id))
	})
	if err != nil {
		return models.Gig{}, wrapFetchErr("gig", id, err)
	}

	gig := models.Gig{
		ID:        string(page.ID),
		Reference: getUniqueID(page.Properties, propUniqueID),
		Timestamp: getDateTime(page.Properties, propWhen),
		City:      getRichText(page.Properties, propCity),
	}

	if ids, ok := getRelationIDs(page.Properties, propShow); ok && len(ids) > 0 {
		show, err := c.FetchShowByID(ctx, ids[0])
		if err != nil {
			return models.Gig{}, err
		}
		gig.ShowTitle = show.Title
	}
	if gig.ShowTitle == "" {
		gig.ShowTitle = getRichText(page.Properties, propCustomTitle)
	}

	return gig, nil
}

// CreateGig persists a new gig referencing its show, deal, and
// organizer, and returns the assigned id.
func (c *Client) CreateGig(ctx context.Context, data CreateGigData) (string, error) {
	when, err := parseGigTimestamp(data.Timestamp)
	if err != nil {
		return "", ValidationError{Entity: "gig", Field: "timestamp", Reason: err.Error()}
	}

	props := notionapi.Properties{
		propName: titleProp(data.GigTitle),
		propWhen: dateProp(when),
		propCity: richTextProp(data.City),
	}
	if data.ShowID != "" {
		props[propShow] = relationProp(data.ShowID)
	}
	if data.DealID != "" {
		props[propDeal] = relationProp(data.DealID)
	}
	if data.OrganizationID != "" {
		props[propOrganizer] = relationProp(data.OrganizationID)
	}

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: c.databases.Gigs,
			},
			Properties: props,
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to create gig %q: %w", data.GigTitle, err)
	}

	log.Info("gig created", "id", page.ID, "title", data.GigTitle)
	return string(page.ID), nil
}

func parseGigTimestamp(ts string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or YYYY-MM-DDTHH:mm, got %q", ts)
}

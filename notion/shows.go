// ABOUTME: Show repository over the workspace database
// ABOUTME: Catalog lookups only; shows are never created by this tool
package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jomei/notionapi"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/throttle"
)

func showFromPage(page *notionapi.Page) models.Show {
	return models.Show{
		ID:    string(page.ID),
		Title: getTitle(page.Properties, propTitle),
	}
}

func (c *Client) SearchShowsByTitle(ctx context.Context, term string) ([]models.Show, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	resp, err := throttle.Call(ctx, c.throttle, func() (*notionapi.DatabaseQueryResponse, error) {
		return c.api.Database.Query(ctx, c.databases.Shows, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: propTitle,
				RichText: &notionapi.TextFilterCondition{Contains: strings.TrimSpace(term)},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search shows: %w", err)
	}

	shows := make([]models.Show, 0, len(resp.Results))
	for i := range resp.Results {
		shows = append(shows, showFromPage(&resp.Results[i]))
	}
	return shows, nil
}

func (c *Client) FetchShowByID(ctx context.Context, id string) (models.Show, error) {
	log.Debug("fetching show", "id", id)

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Get(ctx, notionapi.PageID(id))
	})
	if err != nil {
		return models.Show{}, wrapFetchErr("show", id, err)
	}

	return showFromPage(page), nil
}

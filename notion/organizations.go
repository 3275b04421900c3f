// ABOUTME: Organization repository over the workspace database
// ABOUTME: Search, fetch, create, and facturation.pro id write-back
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

func organizationFromPage(page *notionapi.Page) models.Organization {
	props := page.Properties
	return models.Organization{
		ID:                  string(page.ID),
		Name:                getTitle(props, propName),
		Email:               getEmail(props, propEmail),
		Address:             getRichText(props, propAddress),
		APE:                 getRichText(props, propAPE),
		SIRET:               getInt(props, propSIRET),
		LicenceNumber:       getInt(props, propLicence),
		LegalPersonName:     getRichText(props, propLegalPersonName),
		LegalPersonPosition: getRichText(props, propLegalPersonPosition),
		Website:             getURL(props, propWebsite),
		Type:                getMultiSelect(props, propType),
		FacturationProID:    getInt(props, propFacturationProID),
	}
}

// SearchOrganizationsByName runs a case-insensitive substring match on
// the organization name. A blank term short-circuits to an empty result
// without a network call; the platform rejects empty filters.
func (c *Client) SearchOrganizationsByName(ctx context.Context, term string) ([]models.Organization, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	resp, err := throttle.Call(ctx, c.throttle, func() (*notionapi.DatabaseQueryResponse, error) {
		return c.api.Database.Query(ctx, c.databases.Organizations, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: propName,
				RichText: &notionapi.TextFilterCondition{Contains: term},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search organizations: %w", err)
	}

	orgs := make([]models.Organization, 0, len(resp.Results))
	for i := range resp.Results {
		orgs = append(orgs, organizationFromPage(&resp.Results[i]))
	}
	return orgs, nil
}

func (c *Client) FetchOrganizationByID(ctx context.Context, id string) (models.Organization, error) {
	log.Debug("fetching organization", "id", id)

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Get(ctx, notionapi.PageID(id))
	})
	if err != nil {
		return models.Organization{}, wrapFetchErr("organization", id, err)
	}

	return organizationFromPage(page), nil
}

// CreateOrganization persists a new organization and returns it with
// its assigned id. Optional text fields are written as explicit empty
// sentinels; absent numerics and the website are omitted so the
// platform stores null.
func (c *Client) CreateOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	if strings.TrimSpace(org.Name) == "" {
		return models.Organization{}, ValidationError{Entity: "organization", Field: "name", Reason: "must not be blank"}
	}

	types := make([]notionapi.Option, 0, len(org.Type))
	for _, t := range org.Type {
		types = append(types, notionapi.Option{Name: t})
	}

	props := notionapi.Properties{
		propName:                titleProp(org.Name),
		propEmail:               &notionapi.EmailProperty{Email: org.Email},
		propAddress:             richTextProp(org.Address),
		propAPE:                 richTextProp(org.APE),
		propLegalPersonName:     richTextProp(org.LegalPersonName),
		propLegalPersonPosition: richTextProp(org.LegalPersonPosition),
		propType:                &notionapi.MultiSelectProperty{MultiSelect: types},
	}
	if org.SIRET != nil {
		props[propSIRET] = &notionapi.NumberProperty{Number: float64(*org.SIRET)}
	}
	if org.LicenceNumber != nil {
		props[propLicence] = &notionapi.NumberProperty{Number: float64(*org.LicenceNumber)}
	}
	if org.Website != "" {
		props[propWebsite] = &notionapi.URLProperty{URL: org.Website}
	}

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: c.databases.Organizations,
			},
			Properties: props,
		})
	})
	if err != nil {
		return models.Organization{}, fmt.Errorf("failed to create organization %q: %w", org.Name, err)
	}

	org.ID = string(page.ID)
	log.Info("organization created", "id", org.ID, "name", org.Name)
	return org, nil
}

// UpdateOrganizationFacturationProID writes the invoicing-platform
// customer id back onto the organization record.
func (c *Client) UpdateOrganizationFacturationProID(ctx context.Context, id string, facturationProID int64) error {
	err := c.throttle.Do(ctx, func() error {
		_, err := c.api.Page.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
			Properties: notionapi.Properties{
				propFacturationProID: &notionapi.NumberProperty{Number: float64(facturationProID)},
			},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", id, err)
	}
	return nil
}

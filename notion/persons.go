// ABOUTME: Person repository over the workspace database
// ABOUTME: Search, fetch, create with relations, and mailchimp profile sync
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

func personFromPage(page *notionapi.Page) models.Person {
	props := page.Properties
	return models.Person{
		ID:               string(page.ID),
		Name:             getTitle(props, propName),
		Email:            getEmail(props, propEmail),
		PhoneNumber:      getPhone(props, propPhone),
		MailchimpProfile: getURL(props, propMailchimpProfile),
	}
}

func (c *Client) SearchPersonsByName(ctx context.Context, term string) ([]models.Person, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	resp, err := throttle.Call(ctx, c.throttle, func() (*notionapi.DatabaseQueryResponse, error) {
		return c.api.Database.Query(ctx, c.databases.Persons, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: propName,
				RichText: &notionapi.TextFilterCondition{Contains: term},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search persons: %w", err)
	}

	persons := make([]models.Person, 0, len(resp.Results))
	for i := range resp.Results {
		persons = append(persons, personFromPage(&resp.Results[i]))
	}
	return persons, nil
}

func (c *Client) FetchPersonByID(ctx context.Context, id string) (models.Person, error) {
	log.Debug("fetching person", "id", id)

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Get(ctx, notionapi.PageID(id))
	})
	if err != nil {
		return models.Person{}, wrapFetchErr("person", id, err)
	}

	return personFromPage(page), nil
}

// CreatePerson persists a person, optionally linked to an organization
// and a deal, and returns the person with the assigned id.
func (c *Client) CreatePerson(ctx context.Context, person models.Person, organizationID, dealID string) (models.Person, error) {
	if strings.TrimSpace(person.Name) == "" {
		return models.Person{}, ValidationError{Entity: "person", Field: "name", Reason: "must not be blank"}
	}

	props := notionapi.Properties{
		propName:  titleProp(person.Name),
		propEmail: &notionapi.EmailProperty{Email: person.Email},
		propPhone: &notionapi.PhoneNumberProperty{PhoneNumber: person.PhoneNumber},
	}
	if organizationID != "" {
		props[propOrganization] = relationProp(organizationID)
	}
	if dealID != "" {
		props[propDeals] = relationProp(dealID)
	}

	page, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Page, error) {
		return c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: c.databases.Persons,
			},
			Properties: props,
		})
	})
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to create person %q: %w", person.Name, err)
	}

	person.ID = string(page.ID)
	log.Info("person created", "id", person.ID, "name", person.Name)
	return person, nil
}

// UpdatePerson writes the person's mutable fields back, including the
// mailchimp profile URL set by the marketing sync.
func (c *Client) UpdatePerson(ctx context.Context, person models.Person) error {
	err := c.throttle.Do(ctx, func() error {
		_, err := c.api.Page.Update(ctx, notionapi.PageID(person.ID), &notionapi.PageUpdateRequest{
			Properties: notionapi.Properties{
				propName:             titleProp(person.Name),
				propEmail:            &notionapi.EmailProperty{Email: person.Email},
				propPhone:            &notionapi.PhoneNumberProperty{PhoneNumber: person.PhoneNumber},
				propMailchimpProfile: &notionapi.URLProperty{URL: person.MailchimpProfile},
			},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update person %s: %w", person.ID, err)
	}
	return nil
}

// FindPersonsWithEmptyMailchimpProfiles lists persons that have an
// email but no marketing profile yet, for the mailchimp-sync command.
func (c *Client) FindPersonsWithEmptyMailchimpProfiles(ctx context.Context) ([]models.Person, error) {
	resp, err := throttle.Call(ctx, c.throttle, func() (*notionapi.DatabaseQueryResponse, error) {
		return c.api.Database.Query(ctx, c.databases.Persons, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.AndCompoundFilter{
				notionapi.PropertyFilter{
					Property: propEmail,
					RichText: &notionapi.TextFilterCondition{IsNotEmpty: true},
				},
				notionapi.PropertyFilter{
					Property: propMailchimpProfile,
					RichText: &notionapi.TextFilterCondition{IsEmpty: true},
				},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search persons without mailchimp profile: %w", err)
	}

	persons := make([]models.Person, 0, len(resp.Results))
	for i := range resp.Results {
		persons = append(persons, personFromPage(&resp.Results[i]))
	}
	return persons, nil
}

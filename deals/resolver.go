// ABOUTME: Find-or-create resolution for organizations, persons, and shows
// ABOUTME: Reuses the first name match, creates on zero matches, never both
package deals

import (
	"context"
	"strings"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/notion"
)

// Resolver turns partial identifying information into persisted
// entities. Name-substring search is a deliberately loose dedup key so
// minor spelling drift from extraction still reuses the existing
// record; the occasional false-positive merge is an accepted tradeoff.
type Resolver struct {
	backend Backend
}

func NewResolver(backend Backend) *Resolver {
	return &Resolver{backend: backend}
}

// ResolveOrganization returns the organization for ref and whether a
// new record was created. An explicit id is fetched as-is; a name is
// searched, the first match reused, and only a zero-match name leads
// to creation.
func (r *Resolver) ResolveOrganization(ctx context.Context, ref models.OrganizerRef) (models.Organization, bool, error) {
	if id, ok := ref.ByID(); ok {
		org, err := r.backend.FetchOrganizationByID(ctx, id)
		return org, false, err
	}

	fields, ok := ref.ByName()
	if !ok || strings.TrimSpace(fields.Name) == "" {
		return models.Organization{}, false, notion.ValidationError{Entity: "organization", Field: "name", Reason: "must not be blank"}
	}

	matches, err := r.backend.SearchOrganizationsByName(ctx, fields.Name)
	if err != nil {
		return models.Organization{}, false, err
	}
	if len(matches) > 0 {
		// Ties are broken by the platform's native ordering.
		return matches[0], false, nil
	}

	org, err := r.backend.CreateOrganization(ctx, models.Organization{
		Name:                fields.Name,
		Email:               fields.Email,
		Address:             fields.Address,
		APE:                 fields.APE,
		SIRET:               fields.SIRET,
		LicenceNumber:       fields.LicenceNumber,
		LegalPersonName:     fields.LegalPersonName,
		LegalPersonPosition: fields.LegalPersonPosition,
		Website:             fields.Website,
		Type:                fields.Type,
	})
	if err != nil {
		return models.Organization{}, false, err
	}
	return org, true, nil
}

// ResolvePerson resolves the decision maker the same way. A newly
// created person is linked to the organization and deal at creation.
func (r *Resolver) ResolvePerson(ctx context.Context, ref models.PersonRef, organizationID, dealID string) (models.Person, bool, error) {
	if id, ok := ref.ByID(); ok {
		person, err := r.backend.FetchPersonByID(ctx, id)
		return person, false, err
	}

	fields, ok := ref.ByName()
	if !ok || strings.TrimSpace(fields.Name) == "" {
		return models.Person{}, false, notion.ValidationError{Entity: "person", Field: "name", Reason: "must not be blank"}
	}

	matches, err := r.backend.SearchPersonsByName(ctx, fields.Name)
	if err != nil {
		return models.Person{}, false, err
	}
	if len(matches) > 0 {
		return matches[0], false, nil
	}

	person, err := r.backend.CreatePerson(ctx, models.Person{
		Name:        fields.Name,
		Email:       fields.Email,
		PhoneNumber: fields.PhoneNumber,
	}, organizationID, dealID)
	if err != nil {
		return models.Person{}, false, err
	}
	return person, true, nil
}

// ResolveShow looks up a catalog show. Zero matches for a named show is
// an unrecoverable input error, not a creation.
func (r *Resolver) ResolveShow(ctx context.Context, ref models.ShowRef) (models.Show, error) {
	if id, ok := ref.ByID(); ok {
		return r.backend.FetchShowByID(ctx, id)
	}

	title, ok := ref.ByTitle()
	if !ok || strings.TrimSpace(title) == "" {
		return models.Show{}, notion.ValidationError{Entity: "show", Field: "title", Reason: "must not be blank"}
	}

	matches, err := r.backend.SearchShowsByTitle(ctx, title)
	if err != nil {
		return models.Show{}, err
	}
	if len(matches) == 0 {
		return models.Show{}, ShowNotFoundError{Title: title}
	}
	return matches[0], nil
}

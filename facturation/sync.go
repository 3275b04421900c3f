// ABOUTME: Syncs CRM organizations and their contacts into facturation.pro
// ABOUTME: Implements the invoicing side integration for deal assembly
package facturation

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lecanape/canape/models"
)

// SyncOrganizationContact makes sure the organization exists as a
// customer and carries the decision maker's contact details. Returns
// the customer id. When the organization already knows its customer id
// the record is updated in place; otherwise the customer is created.
func (c *Client) SyncOrganizationContact(ctx context.Context, org models.Organization, person models.Person) (int64, error) {
	customer := customerFromOrganization(org, person)

	if org.FacturationProID != nil {
		if err := c.UpdateCustomer(ctx, *org.FacturationProID, customer); err != nil {
			return 0, err
		}
		log.Debug("invoicing customer updated", "customer", *org.FacturationProID, "organization", org.Name)
		return *org.FacturationProID, nil
	}

	// The organization may exist as a customer from before the CRM
	// started tracking ids. SIRET is the only reliable match key.
	if org.SIRET != nil {
		existing, err := c.SearchCustomersBySIRET(ctx, strconv.FormatInt(*org.SIRET, 10))
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			if err := c.UpdateCustomer(ctx, existing[0].ID, customer); err != nil {
				return 0, err
			}
			log.Debug("invoicing customer matched by SIRET", "customer", existing[0].ID, "organization", org.Name)
			return existing[0].ID, nil
		}
	}

	created, err := c.CreateCustomer(ctx, customer)
	if err != nil {
		return 0, err
	}
	log.Debug("invoicing customer created", "customer", created.ID, "organization", org.Name)
	return created.ID, nil
}

func customerFromOrganization(org models.Organization, person models.Person) Customer {
	customer := Customer{
		CompanyName: org.Name,
		Email:       org.Email,
		Street:      org.Address,
		Website:     org.Website,
		APENaf:      org.APE,
		Country:     "FR",
	}
	if org.SIRET != nil {
		customer.SIRET = strconv.FormatInt(*org.SIRET, 10)
	}

	// The decision maker's details win over the organization's generic
	// contact address when present.
	if person.Name != "" {
		first, last := splitName(person.Name)
		customer.FirstName = first
		customer.LastName = last
	}
	if person.Email != "" {
		customer.Email = person.Email
	}
	if person.PhoneNumber != "" {
		customer.Phone = person.PhoneNumber
	}

	return customer
}

// splitName cuts a full name into first and last parts. Everything
// after the first word is the last name.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

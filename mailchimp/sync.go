// ABOUTME: Backfills Mailchimp profile links for CRM persons
package mailchimp

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lecanape/canape/models"
)

// PersonDirectory is the CRM surface the profile sync reads and writes.
type PersonDirectory interface {
	FindPersonsWithEmptyMailchimpProfiles(ctx context.Context) ([]models.Person, error)
	UpdatePerson(ctx context.Context, person models.Person) error
}

// SyncReport summarizes one profile sync run.
type SyncReport struct {
	Created []models.Person
	Updated []models.Person
}

// SyncProfiles finds every person with an email but no Mailchimp
// profile link, matches or subscribes them in Mailchimp, and writes the
// profile URL back. A person that fails to update is logged and
// skipped; the run continues.
func (c *Client) SyncProfiles(ctx context.Context, directory PersonDirectory) (SyncReport, error) {
	persons, err := directory.FindPersonsWithEmptyMailchimpProfiles(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	log.Info("persons without profile link", "count", len(persons))

	var report SyncReport
	for _, person := range persons {
		contact, err := c.SearchContactByEmail(ctx, person.Email)
		if err != nil {
			log.Error("failed to search contact", "person", person.Name, "err", err)
			continue
		}

		if contact != nil {
			person.MailchimpProfile = c.ProfileURL(contact.ContactID)
		} else {
			log.Info("no contact found, subscribing", "person", person.Name)
			contactID, err := c.CreateContact(ctx, person)
			if err != nil {
				log.Error("failed to create contact", "person", person.Name, "err", err)
				continue
			}
			person.MailchimpProfile = c.ProfileURL(contactID)
			report.Created = append(report.Created, person)
		}

		if err := directory.UpdatePerson(ctx, person); err != nil {
			log.Error("failed to write profile link", "person", person.Name, "err", err)
			continue
		}
		report.Updated = append(report.Updated, person)
	}

	return report, nil
}

// ABOUTME: Data models for booking CRM entities
// ABOUTME: Defines Organization, Person, Show, Gig, and Deal structs
package models

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
)

// An empty ID means the entity has not been persisted yet. IDs are
// assigned exactly once, by the workspace database at creation.
type Organization struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Address             string   `json:"address,omitempty"`
	APE                 string   `json:"APE,omitempty"`
	SIRET               *int64   `json:"SIRET,omitempty"`
	LicenceNumber       *int64   `json:"licenceNumber,omitempty"`
	LegalPersonName     string   `json:"legalPersonName,omitempty"`
	LegalPersonPosition string   `json:"legalPersonPosition,omitempty"`
	Website             string   `json:"website,omitempty"`
	Type                []string `json:"type,omitempty"`
	FacturationProID    *int64   `json:"facturationProId,omitempty"`
}

type Person struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	MailchimpProfile string `json:"mailchimpProfile,omitempty"`

	// Back-references, populated lazily. Never required for a single
	// operation to be correct.
	Organizations []Organization `json:"organizations,omitempty"`
	Deals         []Deal         `json:"deals,omitempty"`
}

// Show is a catalog entity maintained outside this tool. It is only
// ever looked up, never created here.
type Show struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Gig struct {
	ID        string `json:"id"`
	Reference string `json:"reference,omitempty"` // human-readable sequence id, e.g. GIG-42
	ShowTitle string `json:"showTitle"`
	Timestamp string `json:"timestamp"`
	City      string `json:"city,omitempty"`
}

type Deal struct {
	ID                      string       `json:"id"`
	Amount                  float64      `json:"amount"`
	Date                    string       `json:"date"`
	DeadlineForCommElements string       `json:"deadlineForCommElements"`
	Gigs                    []Gig        `json:"gigs"`
	Organization            Organization `json:"organization"`
	URL                     string       `json:"url"`
}

const dateLayout = "2006-01-02"

// DeadlineForCommElements returns the deadline for communication
// elements: the deal date minus 20 days, in French long form.
func DeadlineForCommElements(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return monday.Format(t.AddDate(0, 0, -20), "2 January 2006", monday.LocaleFrFR)
}

// NewDeal builds a Deal from its raw fields and resolved relations. A
// deal cannot exist without its organization and its gigs relation, so
// construction fails when either is missing.
func NewDeal(id, url, date string, amount float64, gigs []Gig, organization *Organization) (Deal, error) {
	if gigs == nil {
		return Deal{}, fmt.Errorf("deal %s: gigs relation missing", id)
	}
	if organization == nil {
		return Deal{}, fmt.Errorf("deal %s: organization relation missing", id)
	}

	return Deal{
		ID:                      id,
		Amount:                  amount,
		Date:                    date,
		DeadlineForCommElements: DeadlineForCommElements(date),
		Gigs:                    gigs,
		Organization:            *organization,
		URL:                     url,
	}, nil
}

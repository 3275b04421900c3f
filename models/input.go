// ABOUTME: Deal assembly input types and entity references
// ABOUTME: Tagged by-id/by-name references decided once at the input boundary
package models

// OrganizerRef identifies an organizer either by its workspace id or by
// descriptive fields. The variant is decided once, where CLI or LLM
// input is parsed; nothing downstream re-inspects raw input shapes.
type OrganizerRef struct {
	id     string
	fields *OrganizerFields
}

type OrganizerFields struct {
	Name                string
	Email               string
	Address             string
	APE                 string
	SIRET               *int64
	LicenceNumber       *int64
	LegalPersonName     string
	LegalPersonPosition string
	Website             string
	Type                []string
}

func OrganizerByID(id string) OrganizerRef {
	return OrganizerRef{id: id}
}

func OrganizerByName(fields OrganizerFields) OrganizerRef {
	return OrganizerRef{fields: &fields}
}

func (r OrganizerRef) ByID() (string, bool) {
	return r.id, r.id != ""
}

func (r OrganizerRef) ByName() (OrganizerFields, bool) {
	if r.fields == nil {
		return OrganizerFields{}, false
	}
	return *r.fields, true
}

// PersonRef identifies a decision maker, by id or by fields.
type PersonRef struct {
	id     string
	fields *PersonFields
}

type PersonFields struct {
	Name        string
	Email       string
	PhoneNumber string
}

func PersonByID(id string) PersonRef {
	return PersonRef{id: id}
}

func PersonByName(fields PersonFields) PersonRef {
	return PersonRef{fields: &fields}
}

func (r PersonRef) ByID() (string, bool) {
	return r.id, r.id != ""
}

func (r PersonRef) ByName() (PersonFields, bool) {
	if r.fields == nil {
		return PersonFields{}, false
	}
	return *r.fields, true
}

// ShowRef identifies a catalog show, by id or by title.
type ShowRef struct {
	id    string
	title string
}

func ShowByID(id string) ShowRef {
	return ShowRef{id: id}
}

func ShowByTitle(title string) ShowRef {
	return ShowRef{title: title}
}

func (r ShowRef) ByID() (string, bool) {
	return r.id, r.id != ""
}

func (r ShowRef) ByTitle() (string, bool) {
	return r.title, r.title != ""
}

// GigInput carries the gig portion of a deal assembly request.
type GigInput struct {
	Show      ShowRef
	Timestamp string
	City      string
	GigTitle  string
}

// CreateDealInput is the structured request for assembling one deal,
// produced by the LLM extractor or built from CLI flags.
type CreateDealInput struct {
	DealTitle     string
	Organizer     OrganizerRef
	DecisionMaker *PersonRef
	Gig           *GigInput
}

// BestEffortOutcome records what happened to an optional side
// integration step, so callers and tests can assert on it instead of
// scraping logs.
type BestEffortOutcome string

const (
	OutcomeSkipped       BestEffortOutcome = "skipped"
	OutcomeSucceeded     BestEffortOutcome = "succeeded"
	OutcomeFailedIgnored BestEffortOutcome = "failed-ignored"
)

// DealAssemblyResult aggregates everything one assembly run touched.
type DealAssemblyResult struct {
	Deal                   Deal
	OrganizationID         string
	PersonID               string
	GigID                  string
	WasOrganizationCreated bool
	WasPersonCreated       bool
	WasGigCreated          bool
	InvoicingSync          BestEffortOutcome
}

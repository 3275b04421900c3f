// ABOUTME: In-memory fake of the workspace backend for assembly tests
// ABOUTME: Counts create calls and records relation link updates
package deals

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lecanape/canape/models"
	"github.com/lecanape/canape/notion"
)

type fakeBackend struct {
	mu sync.Mutex

	organizations map[string]models.Organization
	persons       map[string]models.Person
	shows         map[string]models.Show
	gigs          map[string]notion.CreateGigData
	deals         map[string]models.Deal

	organizationCreates int
	personCreates       int
	gigCreates          int

	decisionMakerLinks map[string]string // dealID -> personID
	gigLinks           map[string]string // dealID -> gigID
	facturationIDs     map[string]int64  // orgID -> customer id
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		organizations:      make(map[string]models.Organization),
		persons:            make(map[string]models.Person),
		shows:              make(map[string]models.Show),
		gigs:               make(map[string]notion.CreateGigData),
		deals:              make(map[string]models.Deal),
		decisionMakerLinks: make(map[string]string),
		gigLinks:           make(map[string]string),
		facturationIDs:     make(map[string]int64),
	}
}

func (f *fakeBackend) addOrganization(org models.Organization) models.Organization {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	f.organizations[org.ID] = org
	return org
}

func (f *fakeBackend) addPerson(p models.Person) models.Person {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.persons[p.ID] = p
	return p
}

func (f *fakeBackend) addShow(s models.Show) models.Show {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	f.shows[s.ID] = s
	return s
}

func (f *fakeBackend) FetchOrganizationByID(_ context.Context, id string) (models.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.organizations[id]
	if !ok {
		return models.Organization{}, notion.NotFoundError{Entity: "organization", ID: id}
	}
	return org, nil
}

func (f *fakeBackend) SearchOrganizationsByName(_ context.Context, term string) ([]models.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	var out []models.Organization
	for _, org := range f.organizations {
		if strings.Contains(strings.ToLower(org.Name), strings.ToLower(term)) {
			out = append(out, org)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateOrganization(_ context.Context, org models.Organization) (models.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.organizationCreates++
	return f.addOrganization(org), nil
}

func (f *fakeBackend) UpdateOrganizationFacturationProID(_ context.Context, id string, facturationProID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.organizations[id]; !ok {
		return notion.NotFoundError{Entity: "organization", ID: id}
	}
	f.facturationIDs[id] = facturationProID
	return nil
}

func (f *fakeBackend) FetchPersonByID(_ context.Context, id string) (models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[id]
	if !ok {
		return models.Person{}, notion.NotFoundError{Entity: "person", ID: id}
	}
	return p, nil
}

func (f *fakeBackend) SearchPersonsByName(_ context.Context, term string) ([]models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	var out []models.Person
	for _, p := range f.persons {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreatePerson(_ context.Context, person models.Person, _, _ string) (models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.personCreates++
	return f.addPerson(person), nil
}

func (f *fakeBackend) FetchShowByID(_ context.Context, id string) (models.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shows[id]
	if !ok {
		return models.Show{}, notion.NotFoundError{Entity: "show", ID: id}
	}
	return s, nil
}

func (f *fakeBackend) SearchShowsByTitle(_ context.Context, term string) ([]models.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Show
	for _, s := range f.shows {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(strings.TrimSpace(term))) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateGig(_ context.Context, data notion.CreateGigData) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gigCreates++
	id := uuid.NewString()
	f.gigs[id] = data
	return id, nil
}

func (f *fakeBackend) FetchDealByID(_ context.Context, id string) (models.Deal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	deal, ok := f.deals[id]
	if !ok {
		return models.Deal{}, notion.NotFoundError{Entity: "deal", ID: id}
	}
	return deal, nil
}

func (f *fakeBackend) CreateDeal(_ context.Context, deal models.Deal, title, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	deal.ID = id
	deal.URL = fmt.Sprintf("https://workspace.example.com/%s", id)
	deal.DeadlineForCommElements = models.DeadlineForCommElements(deal.Date)
	_ = title
	f.deals[id] = deal
	return id, nil
}

func (f *fakeBackend) LinkDecisionMaker(_ context.Context, dealID, personID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisionMakerLinks[dealID] = personID
	return nil
}

func (f *fakeBackend) LinkGig(_ context.Context, dealID, gigID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gigLinks[dealID] = gigID
	return nil
}

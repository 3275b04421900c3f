// ABOUTME: Tests for deal assembly orchestration
// ABOUTME: End-to-end scenarios, gig creation count, and best-effort invoicing
package deals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecanape/canape/models"
)

type fakeInvoicing struct {
	calls int
	id    int64
	err   error
}

func (f *fakeInvoicing) SyncOrganizationContact(_ context.Context, _ models.Organization, _ models.Person) (int64, error) {
	f.calls++
	return f.id, f.err
}

func fullInput(show models.ShowRef) models.CreateDealInput {
	dm := models.PersonByName(models.PersonFields{Name: "Test Person X", Email: "p@example.com"})
	return models.CreateDealInput{
		DealTitle: "Test Deal X",
		Organizer: models.OrganizerByName(models.OrganizerFields{Name: "Test Org X", Email: "x@example.com"}),
		DecisionMaker: &dm,
		Gig: &models.GigInput{
			Show:      show,
			Timestamp: "2025-06-01",
			City:      "Paris",
		},
	}
}

func TestAssembleCreatesEverything(t *testing.T) {
	backend := newFakeBackend()
	show := backend.addShow(models.Show{ID: "show-1", Title: "Le Canapé dans l'Arbre"})

	assembler := NewAssembler(backend, nil)
	result, err := assembler.Assemble(context.Background(), fullInput(models.ShowByID(show.ID)))

	require.NoError(t, err)
	assert.NotEmpty(t, result.Deal.ID)
	assert.NotEmpty(t, result.Deal.URL)
	assert.NotEmpty(t, result.OrganizationID)
	assert.NotEmpty(t, result.PersonID)
	assert.NotEmpty(t, result.GigID)
	assert.True(t, result.WasOrganizationCreated)
	assert.True(t, result.WasPersonCreated)
	assert.True(t, result.WasGigCreated)
	assert.Equal(t, models.OutcomeSkipped, result.InvoicingSync)

	assert.Equal(t, result.PersonID, backend.decisionMakerLinks[result.Deal.ID])
	assert.Equal(t, result.GigID, backend.gigLinks[result.Deal.ID])
}

func TestAssembleReusesExistingOrganization(t *testing.T) {
	backend := newFakeBackend()
	show := backend.addShow(models.Show{ID: "show-1", Title: "Le Canapé dans l'Arbre"})
	existing := backend.addOrganization(models.Organization{Name: "Test Org X", Email: "x@example.com"})

	input := fullInput(models.ShowByID(show.ID))
	input.Organizer = models.OrganizerByID(existing.ID)

	assembler := NewAssembler(backend, nil)
	result, err := assembler.Assemble(context.Background(), input)

	require.NoError(t, err)
	assert.False(t, result.WasOrganizationCreated)
	assert.Equal(t, existing.ID, result.OrganizationID)
	assert.Equal(t, 0, backend.organizationCreates)
}

func TestAssembleGigAlwaysCreated(t *testing.T) {
	// Gigs carry no dedup key; two identical requests must create two gigs.
	backend := newFakeBackend()
	show := backend.addShow(models.Show{ID: "show-1", Title: "Le Canapé dans l'Arbre"})

	assembler := NewAssembler(backend, nil)
	input := fullInput(models.ShowByID(show.ID))

	_, err := assembler.Assemble(context.Background(), input)
	require.NoError(t, err)
	_, err = assembler.Assemble(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.gigCreates)
}

func TestAssembleShowNotFoundAbortsGig(t *testing.T) {
	backend := newFakeBackend()

	assembler := NewAssembler(backend, nil)
	_, err := assembler.Assemble(context.Background(), fullInput(models.ShowByTitle("Spectacle Fantôme")))

	var notFound ShowNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, 0, backend.gigCreates, "no gig may be created when the show is unknown")
	assert.Empty(t, backend.gigLinks, "no deal-gig link may be written")
}

func TestAssembleWithoutOptionalParts(t *testing.T) {
	backend := newFakeBackend()
	assembler := NewAssembler(backend, nil)

	result, err := assembler.Assemble(context.Background(), models.CreateDealInput{
		DealTitle: "Bare Deal",
		Organizer: models.OrganizerByName(models.OrganizerFields{Name: "Solo Org", Email: "s@example.com"}),
	})

	require.NoError(t, err)
	assert.Empty(t, result.PersonID)
	assert.Empty(t, result.GigID)
	assert.False(t, result.WasPersonCreated)
	assert.False(t, result.WasGigCreated)
	assert.Equal(t, 0, backend.personCreates)
	assert.Equal(t, 0, backend.gigCreates)
}

func TestAssembleBlankTitle(t *testing.T) {
	assembler := NewAssembler(newFakeBackend(), nil)
	_, err := assembler.Assemble(context.Background(), models.CreateDealInput{
		DealTitle: "  ",
		Organizer: models.OrganizerByName(models.OrganizerFields{Name: "Org", Email: "o@example.com"}),
	})
	require.Error(t, err)
}

func TestAssembleInvoicingSuccessRecorded(t *testing.T) {
	backend := newFakeBackend()
	invoicing := &fakeInvoicing{id: 4242}

	dm := models.PersonByName(models.PersonFields{Name: "Claire Martin", Email: "claire@venue.fr"})
	assembler := NewAssembler(backend, invoicing)
	result, err := assembler.Assemble(context.Background(), models.CreateDealInput{
		DealTitle:     "Deal With Invoicing",
		Organizer:     models.OrganizerByName(models.OrganizerFields{Name: "Org Y", Email: "y@example.com"}),
		DecisionMaker: &dm,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, invoicing.calls)
	assert.Equal(t, models.OutcomeSucceeded, result.InvoicingSync)
	assert.Equal(t, int64(4242), backend.facturationIDs[result.OrganizationID])
}

func TestAssembleInvoicingFailureIsSwallowed(t *testing.T) {
	backend := newFakeBackend()
	invoicing := &fakeInvoicing{err: errors.New("upstream down")}

	dm := models.PersonByName(models.PersonFields{Name: "Claire Martin", Email: "claire@venue.fr"})
	assembler := NewAssembler(backend, invoicing)
	result, err := assembler.Assemble(context.Background(), models.CreateDealInput{
		DealTitle:     "Deal Despite Invoicing",
		Organizer:     models.OrganizerByName(models.OrganizerFields{Name: "Org Z", Email: "z@example.com"}),
		DecisionMaker: &dm,
	})

	require.NoError(t, err, "invoicing failure must never fail the assembly")
	assert.Equal(t, models.OutcomeFailedIgnored, result.InvoicingSync)
	assert.NotEmpty(t, result.PersonID)
}

func TestGigDisplayTitle(t *testing.T) {
	tests := []struct {
		name      string
		show      string
		city      string
		timestamp string
		want      string
	}{
		{"with city", "Le Canapé", "Paris", "2025-06-01", "Le Canapé @ Paris / 2025-06-01"},
		{"blank city omits segment", "Le Canapé", "", "2025-06-01", "Le Canapé / 2025-06-01"},
		{"whitespace city omits segment", "Le Canapé", "   ", "2025-06-01", "Le Canapé / 2025-06-01"},
		{"trims inputs", "Le Canapé", " Lyon ", " 2025-07-14T20:30 ", "Le Canapé @ Lyon / 2025-07-14T20:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GigDisplayTitle(tt.show, tt.city, tt.timestamp))
		})
	}
}

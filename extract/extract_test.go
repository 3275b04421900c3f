// ABOUTME: Tests for LLM answer parsing, validation, and the extraction cache
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerFullPayload(t *testing.T) {
	raw := []byte(`{
		"dealTitle": "Festival du Rire 2026",
		"organizer": {"name": "Ville de Nantes", "email": "culture@nantes.fr"},
		"decisionMaker": {"name": "Claire Petit", "email": "claire@nantes.fr", "phoneNumber": "+33612345678"},
		"gig": {"show": {"title": "Le Canapé"}, "timestamp": "2026-07-14 20:30", "city": "Nantes"}
	}`)

	input, err := parseAnswer(raw)
	require.NoError(t, err)

	assert.Equal(t, "Festival du Rire 2026", input.DealTitle)

	fields, ok := input.Organizer.ByName()
	require.True(t, ok)
	assert.Equal(t, "Ville de Nantes", fields.Name)
	assert.Equal(t, "culture@nantes.fr", fields.Email)

	require.NotNil(t, input.DecisionMaker)
	person, ok := input.DecisionMaker.ByName()
	require.True(t, ok)
	assert.Equal(t, "Claire Petit", person.Name)
	assert.Equal(t, "+33612345678", person.PhoneNumber)

	require.NotNil(t, input.Gig)
	title, ok := input.Gig.Show.ByTitle()
	require.True(t, ok)
	assert.Equal(t, "Le Canapé", title)
	assert.Equal(t, "2026-07-14 20:30", input.Gig.Timestamp)
	assert.Equal(t, "Nantes", input.Gig.City)
}

func TestParseAnswerMinimalPayload(t *testing.T) {
	raw := []byte(`{"dealTitle": "Option Avignon", "organizer": {"name": "La Scala", "email": ""}}`)

	input, err := parseAnswer(raw)
	require.NoError(t, err)
	assert.Nil(t, input.DecisionMaker)
	assert.Nil(t, input.Gig)
}

func TestParseAnswerByIDReferences(t *testing.T) {
	raw := []byte(`{
		"dealTitle": "Reprise",
		"organizer": {"id": "org-123"},
		"decisionMaker": {"id": "person-456"},
		"gig": {"show": {"id": "show-789"}, "timestamp": "2026-03-01"}
	}`)

	input, err := parseAnswer(raw)
	require.NoError(t, err)

	id, ok := input.Organizer.ByID()
	require.True(t, ok)
	assert.Equal(t, "org-123", id)

	personID, ok := input.DecisionMaker.ByID()
	require.True(t, ok)
	assert.Equal(t, "person-456", personID)

	showID, ok := input.Gig.Show.ByID()
	require.True(t, ok)
	assert.Equal(t, "show-789", showID)
}

func TestParseAnswerRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `the organizer is La Scala`},
		{"missing deal title", `{"organizer": {"name": "La Scala"}}`},
		{"blank deal title", `{"dealTitle": "  ", "organizer": {"name": "La Scala"}}`},
		{"missing organizer", `{"dealTitle": "Option"}`},
		{"organizer without id or name", `{"dealTitle": "Option", "organizer": {"email": "a@b.fr"}}`},
		{"decision maker without id or name", `{"dealTitle": "Option", "organizer": {"name": "X"}, "decisionMaker": {"email": "a@b.fr"}}`},
		{"gig without show", `{"dealTitle": "Option", "organizer": {"name": "X"}, "gig": {"timestamp": "2026-03-01"}}`},
		{"gig without timestamp", `{"dealTitle": "Option", "organizer": {"name": "X"}, "gig": {"show": {"title": "Y"}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAnswer([]byte(tc.raw))
			require.Error(t, err)

			var extractionErr *ExtractionError
			assert.ErrorAs(t, err, &extractionErr)
		})
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Get("abc123")
	assert.False(t, ok)

	require.NoError(t, cache.Put("abc123", []byte(`{"dealTitle":"x"}`)))

	got, ok := cache.Get("abc123")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"dealTitle":"x"}`), got)
}

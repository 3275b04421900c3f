// ABOUTME: Tests for entity models, deadline formatting, and input refs
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineForCommElements(t *testing.T) {
	// 20 days before the deal date, French long form.
	assert.Equal(t, "24 juin 2026", DeadlineForCommElements("2026-07-14"))
	assert.Equal(t, "12 décembre 2026", DeadlineForCommElements("2027-01-01"))
	assert.Equal(t, "", DeadlineForCommElements("not-a-date"))
	assert.Equal(t, "", DeadlineForCommElements(""))
}

func TestNewDealRequiresRelations(t *testing.T) {
	org := &Organization{ID: "org-1", Name: "La Scala"}

	_, err := NewDeal("d1", "https://x", "2026-07-14", 0, nil, org)
	require.Error(t, err)

	_, err = NewDeal("d1", "https://x", "2026-07-14", 0, []Gig{}, nil)
	require.Error(t, err)

	deal, err := NewDeal("d1", "https://x", "2026-07-14", 1800, []Gig{}, org)
	require.NoError(t, err)
	assert.Equal(t, "d1", deal.ID)
	assert.Equal(t, 1800.0, deal.Amount)
	assert.Equal(t, "24 juin 2026", deal.DeadlineForCommElements)
	assert.Equal(t, "La Scala", deal.Organization.Name)
	assert.NotNil(t, deal.Gigs)
}

func TestOrganizerRefVariants(t *testing.T) {
	byID := OrganizerByID("org-1")
	id, ok := byID.ByID()
	assert.True(t, ok)
	assert.Equal(t, "org-1", id)
	_, ok = byID.ByName()
	assert.False(t, ok)

	byName := OrganizerByName(OrganizerFields{Name: "La Scala", Email: "hello@scala.fr"})
	_, ok = byName.ByID()
	assert.False(t, ok)
	fields, ok := byName.ByName()
	require.True(t, ok)
	assert.Equal(t, "La Scala", fields.Name)
}

func TestShowRefVariants(t *testing.T) {
	byID := ShowByID("show-1")
	id, ok := byID.ByID()
	assert.True(t, ok)
	assert.Equal(t, "show-1", id)
	_, ok = byID.ByTitle()
	assert.False(t, ok)

	byTitle := ShowByTitle("Le Canapé")
	title, ok := byTitle.ByTitle()
	require.True(t, ok)
	assert.Equal(t, "Le Canapé", title)
}

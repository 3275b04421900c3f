// ABOUTME: Tests for the standalone organization creation command
package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecanape/canape/models"
)

type fakeCreator struct {
	got models.Organization
	err error
}

func (f *fakeCreator) CreateOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	f.got = org
	org.ID = "org-1"
	return org, f.err
}

func TestNewOrganizationCommand(t *testing.T) {
	creator := &fakeCreator{}
	err := NewOrganizationCommand(creator, []string{
		"--name", "Ville de Nantes",
		"--email", "culture@nantes.fr",
		"--siret", "12345678900011",
		"--type", "Collectivité, Festival",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ville de Nantes", creator.got.Name)
	assert.Equal(t, "culture@nantes.fr", creator.got.Email)
	require.NotNil(t, creator.got.SIRET)
	assert.Equal(t, int64(12345678900011), *creator.got.SIRET)
	assert.Equal(t, []string{"Collectivité", "Festival"}, creator.got.Type)

	assert.Nil(t, creator.got.LicenceNumber)
	assert.Empty(t, creator.got.Address)
}

func TestNewOrganizationCommandRequiresName(t *testing.T) {
	creator := &fakeCreator{}
	err := NewOrganizationCommand(creator, []string{"--email", "x@y.fr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name")
}

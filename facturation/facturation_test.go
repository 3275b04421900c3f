// ABOUTME: Tests for the facturation.pro client against a local HTTP server
package facturation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecanape/canape/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		APIIdentifier: "id",
		APIKey:        "key",
		FirmID:        "42",
		BaseURL:       server.URL,
	})
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "firms/42/customers.json", buildURL("42", "customers", "", nil))
	assert.Equal(t, "firms/42/customers/7.json", buildURL("42", "customers", "7", nil))
}

func TestCreateCustomer(t *testing.T) {
	var gotPath, gotUserAgent string
	var gotBody Customer

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("X-User-Agent")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "key", pass)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Customer{ID: 991, CompanyName: gotBody.CompanyName})
	}))

	created, err := client.CreateCustomer(context.Background(), Customer{CompanyName: "La Scala", Email: "hello@scala.fr"})
	require.NoError(t, err)

	assert.Equal(t, int64(991), created.ID)
	assert.Equal(t, "/firms/42/customers.json", gotPath)
	assert.Equal(t, "Canape-CLI (contact@lecanapedanslarbre.fr)", gotUserAgent)
	assert.Equal(t, "hello@scala.fr", gotBody.Email)
}

func TestSearchCustomers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "La Scala", r.URL.Query().Get("company"))
		json.NewEncoder(w).Encode([]Customer{{ID: 1, CompanyName: "La Scala"}})
	}))

	customers, err := client.SearchCustomers(context.Background(), "La Scala")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, int64(1), customers[0].ID)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"rate limited", 429, `{}`, "rate limit exceeded"},
		{"validation errors list", 422, `{"errors": ["name is blank", "email invalid"]}`, "name is blank, email invalid"},
		{"validation single error", 400, `{"error": "bad payload"}`, "bad payload"},
		{"not found", 404, `{}`, "could not be found"},
		{"wrong content type", 501, `{}`, "Content-Type"},
		{"server error", 500, `{"error": "boom"}`, "API error (500): boom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := client.SearchCustomers(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestSyncOrganizationContactCreates(t *testing.T) {
	var gotBody Customer
	var gotSiretQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gotSiretQuery = r.URL.Query().Get("siret")
			w.Write([]byte(`[]`))
			return
		}
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(Customer{ID: 7001})
	}))

	siret := int64(12345678900011)
	org := models.Organization{Name: "Ville de Nantes", Email: "culture@nantes.fr", SIRET: &siret}
	person := models.Person{Name: "Claire Petit", Email: "claire@nantes.fr", PhoneNumber: "+33612345678"}

	id, err := client.SyncOrganizationContact(context.Background(), org, person)
	require.NoError(t, err)

	assert.Equal(t, int64(7001), id)
	assert.Equal(t, "Ville de Nantes", gotBody.CompanyName)
	assert.Equal(t, "Claire", gotBody.FirstName)
	assert.Equal(t, "Petit", gotBody.LastName)
	assert.Equal(t, "claire@nantes.fr", gotBody.Email)
	assert.Equal(t, "+33612345678", gotBody.Phone)
	assert.Equal(t, "12345678900011", gotBody.SIRET)
	assert.Equal(t, "12345678900011", gotSiretQuery)
}

func TestSyncOrganizationContactMatchesBySIRET(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]Customer{{ID: 8800, CompanyName: "La Scala"}})
			return
		}
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	siret := int64(98765432100022)
	org := models.Organization{Name: "La Scala", SIRET: &siret}

	id, err := client.SyncOrganizationContact(context.Background(), org, models.Person{})
	require.NoError(t, err)

	assert.Equal(t, int64(8800), id)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/firms/42/customers/8800.json", gotPath)
}

func TestSyncOrganizationContactUpdatesExisting(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	existing := int64(550)
	org := models.Organization{Name: "La Scala", FacturationProID: &existing}

	id, err := client.SyncOrganizationContact(context.Background(), org, models.Person{Name: "Jean Dupont"})
	require.NoError(t, err)

	assert.Equal(t, int64(550), id)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/firms/42/customers/550.json", gotPath)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Claire Petit")
	assert.Equal(t, "Claire", first)
	assert.Equal(t, "Petit", last)

	first, last = splitName("Madonna")
	assert.Equal(t, "Madonna", first)
	assert.Equal(t, "", last)

	first, last = splitName("Jean de La Fontaine")
	assert.Equal(t, "Jean", first)
	assert.Equal(t, "de La Fontaine", last)
}

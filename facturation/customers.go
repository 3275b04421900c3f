// ABOUTME: Customer resource operations against the facturation.pro API
package facturation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// Customer is the API's customer record. Optional fields are omitted
// when empty rather than sent as nulls.
type Customer struct {
	ID          int64  `json:"id,omitempty"`
	CompanyName string `json:"company_name"`
	Individual  bool   `json:"individual,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Website     string `json:"website,omitempty"`
	SIRET       string `json:"siret,omitempty"`
	VATNumber   string `json:"vat_number,omitempty"`
	APENaf      string `json:"ape_naf,omitempty"`
}

// SearchCustomers looks up customers by company name.
func (c *Client) SearchCustomers(ctx context.Context, companyName string) ([]Customer, error) {
	params := url.Values{}
	params.Set("company", companyName)
	return c.searchCustomers(ctx, params)
}

// SearchCustomersBySIRET looks up customers by SIRET number.
func (c *Client) SearchCustomersBySIRET(ctx context.Context, siret string) ([]Customer, error) {
	params := url.Values{}
	params.Set("siret", siret)
	return c.searchCustomers(ctx, params)
}

func (c *Client) searchCustomers(ctx context.Context, params url.Values) ([]Customer, error) {
	body, err := c.do(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).Get(buildURL(c.firmID, "customers", "", params))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	var customers []Customer
	if err := json.Unmarshal(body, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// CreateCustomer creates a customer and returns the record with its id.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (Customer, error) {
	body, err := c.do(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetBody(customer).Post(buildURL(c.firmID, "customers", "", nil))
	})
	if err != nil {
		return Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}

	var created Customer
	if err := json.Unmarshal(body, &created); err != nil {
		return Customer{}, fmt.Errorf("failed to decode created customer: %w", err)
	}
	return created, nil
}

// UpdateCustomer applies a partial update to an existing customer.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, customer Customer) error {
	_, err := c.do(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetBody(customer).
			Patch(buildURL(c.firmID, "customers", strconv.FormatInt(id, 10), nil))
	})
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	return nil
}

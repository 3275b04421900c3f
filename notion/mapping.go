// ABOUTME: Explicit field-to-property mapping tables per entity kind
// ABOUTME: VerifySchema checks every mapping against the live workspace schema
package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/lecanape/canape/throttle"
)

// Property names used across the repositories. Collected here so the
// schema check and the repositories cannot drift apart.
const (
	propName                = "Name"
	propTitle               = "Title"
	propEmail               = "Email"
	propPhone               = "Phone"
	propAddress             = "Address"
	propAPE                 = "APE"
	propSIRET               = "SIRET"
	propLicence             = "Licence"
	propLegalPersonName     = "LegalPersonName"
	propLegalPersonPosition = "LegalPersonPosition"
	propWebsite             = "Website"
	propType                = "Type"
	propFacturationProID    = "FacturationProId"
	propMailchimpProfile    = "MailchimpProfile"
	propOrganization        = "Organization"
	propDeals               = "Deals"
	propDate                = "Date"
	propGigs                = "Gigs"
	propDecisionMaker       = "Decision-maker"
	propAmount              = "Amount"
	propWhen                = "When"
	propCity                = "City"
	propShow                = "Show"
	propDeal                = "Deal"
	propOrganizer           = "Organizer"
	propCustomTitle         = "CustomTitle"
	propUniqueID            = "ID"
)

type propertyMapping struct {
	Field    string // domain field, for error messages
	Property string // workspace property name
	Type     notionapi.PropertyConfigType
}

var organizationMappings = []propertyMapping{
	{"name", propName, notionapi.PropertyConfigTypeTitle},
	{"email", propEmail, notionapi.PropertyConfigTypeEmail},
	{"address", propAddress, notionapi.PropertyConfigTypeRichText},
	{"APE", propAPE, notionapi.PropertyConfigTypeRichText},
	{"SIRET", propSIRET, notionapi.PropertyConfigTypeNumber},
	{"licenceNumber", propLicence, notionapi.PropertyConfigTypeNumber},
	{"legalPersonName", propLegalPersonName, notionapi.PropertyConfigTypeRichText},
	{"legalPersonPosition", propLegalPersonPosition, notionapi.PropertyConfigTypeRichText},
	{"website", propWebsite, notionapi.PropertyConfigTypeURL},
	{"type", propType, notionapi.PropertyConfigTypeMultiSelect},
	{"facturationProId", propFacturationProID, notionapi.PropertyConfigTypeNumber},
}

var personMappings = []propertyMapping{
	{"name", propName, notionapi.PropertyConfigTypeTitle},
	{"email", propEmail, notionapi.PropertyConfigTypeEmail},
	{"phoneNumber", propPhone, notionapi.PropertyConfigTypePhoneNumber},
	{"mailchimpProfile", propMailchimpProfile, notionapi.PropertyConfigTypeURL},
	{"organizations", propOrganization, notionapi.PropertyConfigTypeRelation},
	{"deals", propDeals, notionapi.PropertyConfigTypeRelation},
}

var showMappings = []propertyMapping{
	{"title", propTitle, notionapi.PropertyConfigTypeTitle},
}

var gigMappings = []propertyMapping{
	{"title", propName, notionapi.PropertyConfigTypeTitle},
	{"reference", propUniqueID, notionapi.PropertyConfigUniqueID},
	{"customTitle", propCustomTitle, notionapi.PropertyConfigTypeRichText},
	{"timestamp", propWhen, notionapi.PropertyConfigTypeDate},
	{"city", propCity, notionapi.PropertyConfigTypeRichText},
	{"show", propShow, notionapi.PropertyConfigTypeRelation},
	{"deal", propDeal, notionapi.PropertyConfigTypeRelation},
	{"organizer", propOrganizer, notionapi.PropertyConfigTypeRelation},
}

var dealMappings = []propertyMapping{
	{"title", propName, notionapi.PropertyConfigTypeTitle},
	{"amount", propAmount, notionapi.PropertyConfigTypeNumber},
	{"date", propDate, notionapi.PropertyConfigTypeDate},
	{"gigs", propGigs, notionapi.PropertyConfigTypeRelation},
	{"organization", propOrganization, notionapi.PropertyConfigTypeRelation},
	{"decisionMaker", propDecisionMaker, notionapi.PropertyConfigTypeRelation},
}

// VerifySchema fetches each collection's schema and checks every mapped
// property exists with the expected type. Run at startup or from the
// verify-schema command; catches workspace edits before they corrupt a
// batch run.
func (c *Client) VerifySchema(ctx context.Context) error {
	collections := []struct {
		entity   string
		id       notionapi.DatabaseID
		mappings []propertyMapping
	}{
		{"organization", c.databases.Organizations, organizationMappings},
		{"person", c.databases.Persons, personMappings},
		{"show", c.databases.Shows, showMappings},
		{"gig", c.databases.Gigs, gigMappings},
		{"deal", c.databases.Deals, dealMappings},
	}

	for _, col := range collections {
		id := col.id
		db, err := throttle.Call(ctx, c.throttle, func() (*notionapi.Database, error) {
			return c.api.Database.Get(ctx, id)
		})
		if err != nil {
			return fmt.Errorf("failed to fetch %s schema: %w", col.entity, err)
		}

		for _, m := range col.mappings {
			cfg, ok := db.Properties[m.Property]
			if !ok {
				return fmt.Errorf("%s schema: property %q (field %s) is missing", col.entity, m.Property, m.Field)
			}
			if cfg.GetType() != m.Type {
				return fmt.Errorf("%s schema: property %q is %s, expected %s",
					col.entity, m.Property, cfg.GetType(), m.Type)
			}
		}
	}

	return nil
}

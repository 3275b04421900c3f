// ABOUTME: Standalone organization creation from command line flags
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lecanape/canape/models"
)

// OrganizationCreator persists a new organization record.
type OrganizationCreator interface {
	CreateOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
}

// NewOrganizationCommand creates one organization from flags, without
// going through deal assembly.
func NewOrganizationCommand(creator OrganizationCreator, args []string) error {
	fs := flag.NewFlagSet("new-organization", flag.ExitOnError)
	name := fs.String("name", "", "Organization name (required)")
	email := fs.String("email", "", "Contact email")
	address := fs.String("address", "", "Postal address")
	ape := fs.String("ape", "", "APE/NAF activity code")
	siret := fs.Int64("siret", 0, "SIRET number")
	licence := fs.Int64("licence", 0, "Entertainment licence number")
	legalPersonName := fs.String("legal-person-name", "", "Legal representative name")
	legalPersonPosition := fs.String("legal-person-position", "", "Legal representative position")
	website := fs.String("website", "", "Website URL")
	orgTypes := fs.String("type", "", "Comma-separated organization types")
	_ = fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("--name is required")
	}

	org := models.Organization{
		Name:                *name,
		Email:               *email,
		Address:             *address,
		APE:                 *ape,
		LegalPersonName:     *legalPersonName,
		LegalPersonPosition: *legalPersonPosition,
		Website:             *website,
	}
	if *siret != 0 {
		org.SIRET = siret
	}
	if *licence != 0 {
		org.LicenceNumber = licence
	}
	for _, t := range strings.Split(*orgTypes, ",") {
		if t = strings.TrimSpace(t); t != "" {
			org.Type = append(org.Type, t)
		}
	}

	created, err := creator.CreateOrganization(context.Background(), org)
	if err != nil {
		return err
	}

	printOrganization(created)
	return nil
}

func printOrganization(org models.Organization) {
	fmt.Println(successStyle.Render("✓ Organization created: " + org.Name))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\t%s\n", org.ID)
	if org.Email != "" {
		fmt.Fprintf(w, "  Email\t%s\n", org.Email)
	}
	if org.Address != "" {
		fmt.Fprintf(w, "  Address\t%s\n", org.Address)
	}
	if org.APE != "" {
		fmt.Fprintf(w, "  APE\t%s\n", org.APE)
	}
	if org.SIRET != nil {
		fmt.Fprintf(w, "  SIRET\t%d\n", *org.SIRET)
	}
	if org.LicenceNumber != nil {
		fmt.Fprintf(w, "  Licence\t%d\n", *org.LicenceNumber)
	}
	if org.LegalPersonName != "" {
		fmt.Fprintf(w, "  Legal person\t%s (%s)\n", org.LegalPersonName, org.LegalPersonPosition)
	}
	if org.Website != "" {
		fmt.Fprintf(w, "  Website\t%s\n", org.Website)
	}
	if len(org.Type) > 0 {
		fmt.Fprintf(w, "  Type\t%s\n", strings.Join(org.Type, ", "))
	}
	w.Flush()
}

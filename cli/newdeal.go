// ABOUTME: Single-deal assembly from command line flags
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/lecanape/canape/deals"
	"github.com/lecanape/canape/models"
)

// NewDealCommand assembles one deal from flags.
func NewDealCommand(backend deals.Backend, invoicing deals.InvoicingSync, args []string) error {
	fs := flag.NewFlagSet("new-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title (required)")

	organizerID := fs.String("organizer-id", "", "Existing organizer page id")
	organizerName := fs.String("organizer-name", "", "Organizer name (find-or-create)")
	organizerEmail := fs.String("organizer-email", "", "Organizer contact email")

	personID := fs.String("person-id", "", "Existing decision maker page id")
	personName := fs.String("person-name", "", "Decision maker name (find-or-create)")
	personEmail := fs.String("person-email", "", "Decision maker email")
	personPhone := fs.String("person-phone", "", "Decision maker phone number")

	showID := fs.String("show-id", "", "Existing show page id")
	showTitle := fs.String("show-title", "", "Show title to look up in the catalog")
	timestamp := fs.String("timestamp", "", "Gig date or date-time, e.g. 2026-07-14T20:30")
	city := fs.String("city", "", "Gig city")
	gigTitle := fs.String("gig-title", "", "Override the generated gig title")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}

	input := models.CreateDealInput{DealTitle: *title}

	switch {
	case *organizerID != "":
		input.Organizer = models.OrganizerByID(*organizerID)
	case *organizerName != "":
		input.Organizer = models.OrganizerByName(models.OrganizerFields{
			Name:  *organizerName,
			Email: *organizerEmail,
		})
	default:
		return fmt.Errorf("--organizer-id or --organizer-name is required")
	}

	switch {
	case *personID != "":
		person := models.PersonByID(*personID)
		input.DecisionMaker = &person
	case *personName != "":
		person := models.PersonByName(models.PersonFields{
			Name:        *personName,
			Email:       *personEmail,
			PhoneNumber: *personPhone,
		})
		input.DecisionMaker = &person
	}

	if *showID != "" || *showTitle != "" {
		if *timestamp == "" {
			return fmt.Errorf("--timestamp is required when creating a gig")
		}
		var show models.ShowRef
		if *showID != "" {
			show = models.ShowByID(*showID)
		} else {
			show = models.ShowByTitle(*showTitle)
		}
		input.Gig = &models.GigInput{
			Show:      show,
			Timestamp: *timestamp,
			City:      *city,
			GigTitle:  *gigTitle,
		}
	}

	assembler := deals.NewAssembler(backend, invoicing)
	result, err := assembler.Assemble(context.Background(), input)
	if err != nil {
		return err
	}

	printAssemblyResult(*title, result)
	return nil
}

// ABOUTME: Shared CLI output styling and result rendering
// ABOUTME: Lipgloss styles plus the deal assembly summary printer
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lecanape/canape/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func created(wasCreated bool) string {
	if wasCreated {
		return "created"
	}
	return "existing"
}

// printAssemblyResult renders one deal assembly outcome.
func printAssemblyResult(title string, result models.DealAssemblyResult) {
	fmt.Println(successStyle.Render("✓ Deal assembled: " + title))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Deal\t%s\t%s\n", result.Deal.ID, dimStyle.Render(result.Deal.URL))
	fmt.Fprintf(w, "  Organization\t%s\t%s\n", result.OrganizationID, created(result.WasOrganizationCreated))
	if result.PersonID != "" {
		fmt.Fprintf(w, "  Decision maker\t%s\t%s\n", result.PersonID, created(result.WasPersonCreated))
	}
	if result.GigID != "" {
		fmt.Fprintf(w, "  Gig\t%s\t%s\n", result.GigID, created(result.WasGigCreated))
	}
	if result.InvoicingSync != models.OutcomeSkipped {
		fmt.Fprintf(w, "  Invoicing sync\t%s\t\n", string(result.InvoicingSync))
	}
	_ = w.Flush()
}

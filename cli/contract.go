// ABOUTME: Contract generation command
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/lecanape/canape/contract"
	"github.com/lecanape/canape/notion"
)

// ContractCommand fetches a deal and renders its contract.
func ContractCommand(client *notion.Client, defaultOutputDir string, args []string) error {
	fs := flag.NewFlagSet("contract", flag.ExitOnError)
	dealID := fs.String("deal", "", "Deal page id (required)")
	templatePath := fs.String("template", "", "Handlebars template path (required)")
	format := fs.String("format", "pdf", "Output format (pdf or html)")
	outputDir := fs.String("output", defaultOutputDir, "Output directory (default: ~/Downloads)")
	_ = fs.Parse(args)

	if *dealID == "" {
		return fmt.Errorf("--deal is required")
	}
	if *templatePath == "" {
		return fmt.Errorf("--template is required")
	}
	if *format != string(contract.FormatPDF) && *format != string(contract.FormatHTML) {
		return fmt.Errorf("unknown format %q (want pdf or html)", *format)
	}

	ctx := context.Background()

	deal, err := client.FetchDealByID(ctx, *dealID)
	if err != nil {
		return err
	}

	var renderer *contract.PDFRenderer
	if *format == string(contract.FormatPDF) {
		renderer = contract.NewPDFRenderer()
		defer renderer.Close()
	}

	generator := contract.NewGenerator(*templatePath, *outputDir, renderer)
	outPath, err := generator.Generate(ctx, deal, contract.Format(*format))
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Contract written: " + outPath))
	return nil
}

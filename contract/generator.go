// ABOUTME: Contract generation from a deal and a Handlebars template
// ABOUTME: Writes HTML or an A4 PDF into the output directory
package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lecanape/canape/models"
)

// Format selects the contract output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// Generator renders contracts for deals.
type Generator struct {
	templatePath string
	outputDir    string
	renderer     *PDFRenderer
}

// NewGenerator builds a contract generator. outputDir defaults to the
// user's Downloads directory when blank. renderer may be nil for
// HTML-only use.
func NewGenerator(templatePath, outputDir string, renderer *PDFRenderer) *Generator {
	if outputDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			outputDir = filepath.Join(home, "Downloads")
		}
	}
	return &Generator{templatePath: templatePath, outputDir: outputDir, renderer: renderer}
}

// Generate renders the contract for a deal and returns the written
// file's path. PDF output goes through a temporary HTML file; HTML
// output lands directly in the output directory.
func (g *Generator) Generate(ctx context.Context, deal models.Deal, format Format) (string, error) {
	source, err := os.ReadFile(g.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read contract template: %w", err)
	}

	tpl, err := CompileTemplate(string(source))
	if err != nil {
		return "", err
	}

	html, err := tpl.Exec(deal)
	if err != nil {
		return "", fmt.Errorf("failed to render contract template: %w", err)
	}

	stem := OutputFileName(deal)

	if format == FormatHTML {
		outPath := filepath.Join(g.outputDir, stem+".html")
		if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
			return "", fmt.Errorf("failed to write contract: %w", err)
		}
		return outPath, nil
	}

	if g.renderer == nil {
		return "", fmt.Errorf("PDF rendering is not available")
	}

	htmlPath := filepath.Join(os.TempDir(), stem+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write contract HTML: %w", err)
	}

	pdf, err := g.renderer.Render(ctx, html)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(g.outputDir, stem+".pdf")
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write contract: %w", err)
	}

	log.Info("contract generated", "path", outPath, "bytes", len(pdf))
	return outPath, nil
}

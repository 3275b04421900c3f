// ABOUTME: HTML to PDF rendering through headless Chrome
// ABOUTME: A4 pages with fixed margins, driven over the DevTools protocol
package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	renderTimeout = 30 * time.Second

	// A4 in inches.
	paperWidth  = 8.27
	paperHeight = 11.69

	// 40px at Chrome's 96dpi.
	pdfMargin = 40.0 / 96.0
)

// PDFRenderer renders HTML documents to PDF with a headless browser.
type PDFRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewPDFRenderer() *PDFRenderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &PDFRenderer{allocCtx: allocCtx, allocCancel: allocCancel}
}

func (r *PDFRenderer) Close() {
	r.allocCancel()
}

// Render prints an HTML document to PDF bytes.
func (r *PDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("nothing to render")
	}

	// The browser context must descend from the allocator, so the
	// deadline wraps it rather than the caller's ctx directly. Caller
	// cancellation is relayed through AfterFunc.
	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	runCtx, runCancel := context.WithTimeout(browserCtx, renderTimeout)
	defer runCancel()
	stop := context.AfterFunc(ctx, runCancel)
	defer stop()

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(pdfMargin).
				WithMarginRight(pdfMargin).
				WithMarginBottom(pdfMargin).
				WithMarginLeft(pdfMargin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print contract: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("generated PDF is empty")
	}
	return pdf, nil
}

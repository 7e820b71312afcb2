package export

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/validation"
)

// SectionInvalidError is returned when export is attempted on a section
// that has not passed validation. The export collaborator only consumes
// fully-validated data; the Result tells the UI what is still missing.
type SectionInvalidError struct {
	Section string
	Result  validation.Result
}

func (e *SectionInvalidError) Error() string {
	return fmt.Sprintf("section %q is not complete enough to export (%d fields with errors)",
		e.Section, len(e.Result.Errors))
}

// Exporter produces a PDF artifact from one validated worksheet section.
type Exporter interface {
	ExportSection(ctx context.Context, pillarID int, sectionName string, value map[string]any) ([]byte, error)
}

// ChromeExporter renders the section HTML in a headless Chrome and prints
// it to PDF. Requires Chrome/Chromium on the host.
type ChromeExporter struct {
	Timeout time.Duration
	Verbose bool
}

// NewChromeExporter creates an exporter with the default 30s render timeout.
func NewChromeExporter() *ChromeExporter {
	return &ChromeExporter{Timeout: 30 * time.Second}
}

// ExportSection validates the section, renders it and prints the PDF.
func (e *ChromeExporter) ExportSection(ctx context.Context, pillarID int, sectionName string, value map[string]any) ([]byte, error) {
	result, err := validation.ValidateSection(pillarID, sectionName, value)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &SectionInvalidError{Section: sectionName, Result: result}
	}

	html, err := RenderHTML(pillarID, sectionName, value)
	if err != nil {
		return nil, err
	}

	return e.printToPDF(ctx, html)
}

func (e *ChromeExporter) printToPDF(ctx context.Context, html string) ([]byte, error) {
	if e.Verbose {
		log.Printf("[EXPORT] Rendering PDF (%d bytes of HTML)", len(html))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(false).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	if e.Verbose {
		log.Printf("[EXPORT] Rendered PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

package md2doc

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pdfRenderer renders a local HTML file to PDF bytes. It abstracts the
// browser so the html tier can be tested without Chrome.
type pdfRenderer interface {
	RenderFile(ctx context.Context, htmlPath string) ([]byte, error)
	Close() error
}

var _ pdfRenderer = (*chromeRenderer)(nil)

// A4 page in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginInches   = 0.5
)

// chromeRenderer implements pdfRenderer with headless Chrome via go-rod.
// The browser is launched on first use and shared by later calls.
type chromeRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
}

func newChromeRenderer() *chromeRenderer {
	return &chromeRenderer{}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *chromeRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return browser, nil
}

// RenderFile opens htmlPath in a new tab and prints it to PDF.
// The context deadline bounds page load and printing.
func (r *chromeRenderer) RenderFile(ctx context.Context, htmlPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer func() { _ = page.Close() }()

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= 0 {
		return nil, context.DeadlineExceeded
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(a4WidthInches),
		PaperHeight:     floatPtr(a4HeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// Close releases browser resources.
func (r *chromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

func floatPtr(v float64) *float64 {
	return &v
}

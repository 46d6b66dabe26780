package observer

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/browsertest/packages/page"
	"github.com/playwright-community/playwright-go"
)

const (
	jsElementExists = `id => document.getElementById(id) !== null`
	jsTextContent   = `id => { const el = document.getElementById(id); return el === null ? "" : (el.textContent || ""); }`
	jsSetText       = `([id, text]) => { const el = document.getElementById(id); if (el !== null) { el.textContent = text; } }`
)

type playwrightDocument struct {
	pg playwright.Page
}

type playwrightElement struct {
	pg playwright.Page
	id string
}

// PlaywrightDocument exposes a playwright page as a page.Document. Evaluation
// errors (for example while the page navigates) read as a missing element or
// empty text.
func PlaywrightDocument(pg playwright.Page) page.Document {
	return playwrightDocument{pg: pg}
}

func (d playwrightDocument) ElementByID(id string) (page.Element, bool) {
	v, err := d.pg.Evaluate(jsElementExists, id)
	if err != nil {
		return nil, false
	}
	if exists, _ := v.(bool); !exists {
		return nil, false
	}
	return playwrightElement{pg: d.pg, id: id}, true
}

func (e playwrightElement) TextContent() string {
	v, err := e.pg.Evaluate(jsTextContent, e.id)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (e playwrightElement) SetTextContent(text string) {
	_, _ = e.pg.Evaluate(jsSetText, []interface{}{e.id, text})
}

// PlaywrightCapturer captures the viewport, or the whole page when fullPage is set.
func PlaywrightCapturer(pg playwright.Page, fullPage bool) Capturer {
	return CapturerFunc(func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return pg.Screenshot(playwright.PageScreenshotOptions{
			FullPage: playwright.Bool(fullPage),
		})
	})
}

// Session is a launched browser with a single page.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	Page    playwright.Page
}

// Launch starts a browser: chromium (default), firefox or webkit.
func Launch(browserName string, headless bool) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch strings.ToLower(browserName) {
	case "", "chromium", "chrome":
		browserType = pw.Chromium
	case "firefox":
		browserType = pw.Firefox
	case "webkit", "safari":
		browserType = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, fmt.Errorf("unknown browser %q (use chromium, firefox or webkit)", browserName)
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", browserName, err)
	}

	pg, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{pw: pw, browser: browser, Page: pg}, nil
}

// Navigate loads url in the session's page.
func (s *Session) Navigate(url string) error {
	if _, err := s.Page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Close shuts the browser and the playwright driver down.
func (s *Session) Close() error {
	if err := s.browser.Close(); err != nil {
		_ = s.pw.Stop()
		return err
	}
	return s.pw.Stop()
}

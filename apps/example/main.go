//go:build js && wasm

// Command example is a small in-browser test program. Build it with
// GOOS=js GOARCH=wasm and run it with `browsertest run <dir> --wasm example.wasm`.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/browsertest/packages/output"
	"github.com/abdul-hamid-achik/browsertest/packages/page"
	"github.com/abdul-hamid-achik/browsertest/packages/screenshot"
	"github.com/pkg/errors"
)

type testCase struct {
	name string
	fn   func(doc page.Document) error
}

var tests = []testCase{
	{name: "output_is_present", fn: func(doc page.Document) error {
		if _, ok := doc.ElementByID(page.OutputID); !ok {
			return errors.New("no #output element")
		}
		return nil
	}},
	{name: "captures_landing_page", fn: func(doc page.Document) error {
		// A missing observer fails the test instead of hanging the page.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return screenshot.ScreenshotContext(ctx, doc, "screenshots/landing.png")
	}},
}

func main() {
	doc := page.JSDocument()
	out := output.NewBrowser(doc)

	out.Writeln(fmt.Sprintf("running %d tests", len(tests)))
	failed := 0
	for _, tc := range tests {
		if err := tc.fn(doc); err != nil {
			failed++
			output.ReportFailure(out, tc.name, err)
			continue
		}
		output.ReportPass(out, tc.name)
	}

	status := "ok"
	if failed > 0 {
		status = "FAILED"
	}
	out.Writeln("")
	out.Writeln(fmt.Sprintf("test result: %s. %d passed; %d failed", status, len(tests)-failed, failed))
}

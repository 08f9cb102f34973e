//go:build e2e
// +build e2e

package e2e

import (
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/shopcheck/internal/browser"
	internalcli "github.com/themizzi/shopcheck/internal/cli"
	"github.com/themizzi/shopcheck/internal/config"
	"github.com/themizzi/shopcheck/internal/pages"
)

var (
	pw    *playwright.Playwright
	chrom playwright.Browser
	suite *config.SuiteConfig
)

// TestMain starts the storefront unless BASE_URL points elsewhere, then
// launches one browser shared by every test.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	var err error
	suite, err = config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid suite configuration: %v\n", err)
		return 1
	}

	if os.Getenv("BASE_URL") == "" {
		deps, err := internalcli.BuildStorefront(config.ServerConfig{
			GlitchDelay:  3500 * time.Millisecond,
			TemplatesDir: "../templates",
			StaticDir:    "../static",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not build storefront: %v\n", err)
			return 1
		}
		server := httptest.NewServer(internalcli.NewMux(deps))
		defer server.Close()
		suite.BaseURL = server.URL
	}

	// Browsers are installed with: go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
	pw, err = playwright.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start playwright: %v\n", err)
		return 1
	}
	defer pw.Stop()

	chrom, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(suite.Headless),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not launch browser: %v\n", err)
		return 1
	}
	defer chrom.Close()

	return m.Run()
}

// newDriver opens a fresh browser context so cookies do not leak between tests.
func newDriver(t *testing.T) browser.Driver {
	t.Helper()
	ctx, err := chrom.NewContext()
	if err != nil {
		t.Fatalf("Failed to create browser context: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })

	page, err := ctx.NewPage()
	if err != nil {
		t.Fatalf("Failed to create page: %v", err)
	}
	return browser.NewPlaywrightDriver(page, browser.Timeouts{
		Action:     suite.ActionTimeout,
		Navigation: suite.NavigationTimeout,
	})
}

func pageOptions() pages.Options {
	return pages.Options{BaseURL: suite.BaseURL, TypeDelay: suite.TypeDelay}
}

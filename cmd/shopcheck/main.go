package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/catalog"
	internalcli "github.com/themizzi/shopcheck/internal/cli"
	"github.com/themizzi/shopcheck/internal/config"
	"github.com/themizzi/shopcheck/internal/database"
	"github.com/themizzi/shopcheck/internal/pages"
	"github.com/themizzi/shopcheck/internal/repository"
	"github.com/themizzi/shopcheck/internal/retry"
	"github.com/themizzi/shopcheck/internal/services"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local storefront the browser checks run against",
		Action: func(c *cli.Context) error {
			deps, err := internalcli.BuildStorefront(config.LoadServerConfig(os.Getenv))
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Run the purchase flow in a browser and verify every page",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Value: "standard_user", Usage: "account to log in with"},
			&cli.StringSliceFlag{
				Name:  "product",
				Value: cli.NewStringSlice("Sauce Labs Backpack", "Sauce Labs Bike Light"),
				Usage: "product to buy, repeatable",
			},
			&cli.StringFlag{Name: "first-name", Value: "Test"},
			&cli.StringFlag{Name: "last-name", Value: "User"},
			&cli.StringFlag{Name: "postal-code", Value: "12345"},
			&cli.BoolFlag{Name: "lenient-messages", Usage: "accept error texts that contain the expected message"},
			&cli.BoolFlag{Name: "record", Usage: "store the run in PostgreSQL"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve retry metrics on this address, e.g. :9100"},
			&cli.BoolFlag{Name: "install", Usage: "install the Chromium driver before running"},
		},
		Action: runSmoke,
	}
}

// TotalsCommand returns the totals command
func TotalsCommand() *cli.Command {
	return &cli.Command{
		Name:      "totals",
		Usage:     "Print expected order totals, or verify a saved checkout overview page",
		ArgsUsage: "[product name...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "snapshot", Usage: "path to a saved checkout-step-two page"},
		},
		Action: func(c *cli.Context) error {
			if path := c.String("snapshot"); path != "" {
				_, err := internalcli.VerifySnapshot(c.App.Writer, path)
				return err
			}
			return internalcli.PrintTotals(c.App.Writer, c.Args().Slice())
		},
	}
}

func runSmoke(c *cli.Context) error {
	suite, err := config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid suite configuration: %w", err)
	}
	var retryOverride *retry.Config
	if retryConfigured(os.Getenv) {
		cfg, err := config.LoadRetryConfig(os.Getenv)
		if err != nil {
			return fmt.Errorf("invalid retry configuration: %w", err)
		}
		retryOverride = &cfg
	}
	user, err := catalog.UserByName(c.String("user"))
	if err != nil {
		return err
	}

	metrics := retry.NewMetrics()
	if addr := c.String("metrics-addr"); addr != "" {
		stop := serveMetrics(addr, metrics)
		defer stop()
	}

	opts := internalcli.SmokeOptions{
		User:     user,
		Products: c.StringSlice("product"),
		Shipping: pages.ShippingInfo{
			FirstName:  c.String("first-name"),
			LastName:   c.String("last-name"),
			PostalCode: c.String("postal-code"),
		},
		Retry: retryOverride,
		Pages: pages.Options{
			BaseURL:   suite.BaseURL,
			Retrier:   retry.New(retry.WithMetrics(metrics)),
			TypeDelay: suite.TypeDelay,
		},
	}
	if c.Bool("lenient-messages") {
		opts.Pages.MessageMatch = pages.MatchContains
	}

	smoke := func(record func(internalcli.CheckReport)) (internalcli.SmokeReport, error) {
		opts.Record = record
		return launchAndSmoke(c, suite, opts)
	}

	var report internalcli.SmokeReport
	if c.Bool("record") {
		runs, err := connectResults()
		if err != nil {
			return err
		}
		defer database.Close()
		report, err = internalcli.RecordSmoke(runs, suite.BaseURL, user.Username, smoke)
		if err != nil {
			return err
		}
	} else {
		report, err = smoke(nil)
		if err != nil {
			return err
		}
	}

	if !report.Passed() {
		return fmt.Errorf("%w: %d of %d checks failed", internalcli.ErrSmokeFailed, len(report.Failed()), len(report.Checks))
	}
	log.Printf("All %d checks passed", len(report.Checks))
	return nil
}

// retryConfigured reports whether any retry setting is present in the environment.
func retryConfigured(getenv func(string) string) bool {
	for _, key := range []string{"RETRY_MAX_ATTEMPTS", "RETRY_INITIAL_DELAY_MS", "RETRY_MAX_DELAY_MS"} {
		if getenv(key) != "" {
			return true
		}
	}
	return false
}

// launchAndSmoke starts Chromium and runs the purchase flow in a new page.
func launchAndSmoke(c *cli.Context, suite *config.SuiteConfig, opts internalcli.SmokeOptions) (internalcli.SmokeReport, error) {
	if c.Bool("install") {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return internalcli.SmokeReport{}, fmt.Errorf("could not install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return internalcli.SmokeReport{}, fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(suite.Headless),
	})
	if err != nil {
		return internalcli.SmokeReport{}, fmt.Errorf("could not launch browser: %w", err)
	}
	defer b.Close()

	page, err := b.NewPage()
	if err != nil {
		return internalcli.SmokeReport{}, fmt.Errorf("could not create page: %w", err)
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driver := browser.NewPlaywrightDriver(page, browser.Timeouts{
		Action:     suite.ActionTimeout,
		Navigation: suite.NavigationTimeout,
	})
	return internalcli.RunSmoke(ctx, driver, opts)
}

// connectResults connects to PostgreSQL and migrates the results schema.
func connectResults() (services.RunService, error) {
	if err := database.Connect(os.Getenv); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return services.NewRunService(repository.NewRunRepository()), nil
}

// serveMetrics exposes the retry metrics until the returned func is called.
func serveMetrics(addr string, metrics *retry.Metrics) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("Metrics listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopcheck",
		Usage:   "Browser checks for the Swag Labs demo storefront",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			SmokeCommand(),
			TotalsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}

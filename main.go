package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/kidandcat/formtest/pkg/browser"
	"github.com/kidandcat/formtest/pkg/config"
	"github.com/kidandcat/formtest/pkg/practiceform"
	"github.com/kidandcat/formtest/pkg/scenario"
)

type scenarioResult struct {
	Name      string
	Passed    bool
	Error     error
	Duration  time.Duration
	Submitted map[string]string
}

// runOptions is the merged flag and file configuration for a run.
type runOptions struct {
	failOnConsoleError bool
	verbose            bool
	baseURL            string
	screenshotDir      string
	scenariosPath      string
}

func main() {
	var (
		headless           = flag.Bool("headless", true, "Run browser in headless mode")
		timeout            = flag.Duration("timeout", 30*time.Second, "Per-step timeout")
		failOnConsoleError = flag.Bool("fail-on-console-error", true, "Fail scenarios when console errors occur")
		baseURL            = flag.String("base-url", "", "Base URL hosting the practice form")
		scenariosPath      = flag.String("scenarios", "", "Scenario file path")
		configFile         = flag.String("config", "", "Config file path")
		screenshotDir      = flag.String("screenshot-dir", "", "Directory for failure screenshots")
		verbose            = flag.Bool("verbose", false, "Log browser steps and dump the confirmation table")
	)

	flag.Parse()

	browserConfig := &browser.Config{
		Headless: *headless,
		Timeout:  *timeout,
	}
	opts := runOptions{
		failOnConsoleError: *failOnConsoleError,
		verbose:            *verbose,
		baseURL:            *baseURL,
		screenshotDir:      *screenshotDir,
		scenariosPath:      *scenariosPath,
	}

	// Load config file if available
	configPath := *configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	if configPath != "" {
		fileConfig, err := config.LoadConfig(configPath)
		if err != nil {
			logrus.Warnf("Failed to load config file %s: %v", configPath, err)
		} else {
			// Apply file config (CLI flags override file config)
			if !isFlagSet("headless") && fileConfig.Headless != nil {
				browserConfig.Headless = *fileConfig.Headless
			}
			if !isFlagSet("timeout") && fileConfig.Timeout != nil {
				browserConfig.Timeout = fileConfig.Timeout.Duration
			}
			if !isFlagSet("fail-on-console-error") && fileConfig.FailOnConsoleError != nil {
				opts.failOnConsoleError = *fileConfig.FailOnConsoleError
			}
			if !isFlagSet("verbose") && fileConfig.Verbose != nil {
				opts.verbose = *fileConfig.Verbose
			}
			if opts.baseURL == "" {
				opts.baseURL = fileConfig.BaseURL
			}
			if opts.screenshotDir == "" {
				opts.screenshotDir = fileConfig.ScreenshotDir
			}
			if opts.scenariosPath == "" {
				opts.scenariosPath = fileConfig.Scenarios
			}
			browserConfig.ViewportWidth = fileConfig.ViewportWidth
			browserConfig.ViewportHeight = fileConfig.ViewportHeight
		}
	}

	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	browserConfig.Logger = logrus.StandardLogger()

	scenarios, err := loadScenarios(opts.scenariosPath, flag.Args())
	if err != nil {
		logrus.Fatal(err)
	}

	chrome := browser.NewChrome(browserConfig)
	if err := chrome.Start(); err != nil {
		logrus.Fatal("Failed to start browser: ", err)
	}
	defer chrome.Stop()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down gracefully...")
		chrome.Stop()
		os.Exit(0)
	}()

	driver := browser.NewChromeDriver(browserConfig)

	color.Yellow("Running %d scenarios...\n\n", len(scenarios))

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Start()

	failed := 0
	for _, sc := range scenarios {
		result := runScenario(chrome, driver, sc, opts)
		s.Stop()
		printResult(result, opts.verbose)
		if !result.Passed {
			failed++
		}
		s.Start()
	}
	s.Stop()

	fmt.Println()
	if failed > 0 {
		color.Red("%d of %d scenarios failed", failed, len(scenarios))
		os.Exit(1)
	}
	color.Green("All %d scenarios passed", len(scenarios))
}

func runScenario(chrome *browser.Chrome, driver *browser.ChromeDriver, sc scenario.Scenario, opts runOptions) scenarioResult {
	start := time.Now()
	result := scenarioResult{Name: sc.Name}

	ctx, cancel, console, err := chrome.NewPage()
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}
	defer cancel()

	page := practiceform.NewPage(driver, &practiceform.PageConfig{
		BaseURL: opts.baseURL,
		Logger:  logrus.WithField("scenario", sc.Name),
	})

	err = func() error {
		if err := page.Visit(ctx); err != nil {
			return err
		}
		if err := page.Fill(ctx, sc.Values); err != nil {
			return err
		}
		if err := page.Submit(ctx); err != nil {
			return err
		}
		if err := page.ValidateSubmission(ctx, sc.Expected()); err != nil {
			return err
		}
		submitted, err := page.SubmittedValues(ctx)
		if err != nil {
			return err
		}
		result.Submitted = submitted
		return page.CloseConfirmation(ctx)
	}()

	if err == nil && opts.failOnConsoleError {
		if errs := console.Errors(); len(errs) > 0 {
			err = fmt.Errorf("page reported %d console errors, first: %s", len(errs), errs[0].Message)
		}
	}

	if err != nil && opts.screenshotDir != "" {
		name := strings.ReplaceAll(sc.Name, " ", "_") + ".png"
		path := filepath.Join(opts.screenshotDir, name)
		if serr := browser.SaveScreenshot(ctx, path); serr != nil {
			logrus.Warnf("Failed to save failure screenshot: %v", serr)
		} else {
			logrus.Warnf("Saved failure screenshot to %s", path)
		}
	}

	result.Passed = err == nil
	result.Error = err
	result.Duration = time.Since(start)
	return result
}

func printResult(result scenarioResult, verbose bool) {
	if result.Passed {
		fmt.Printf("%s %s (%s)\n", color.GreenString("✓ PASS"), result.Name, result.Duration.Round(time.Millisecond))
	} else {
		fmt.Printf("%s %s (%s)\n", color.RedString("✗ FAIL"), result.Name, result.Duration.Round(time.Millisecond))
		if result.Error != nil {
			color.Red("  Error: %v", result.Error)
		}
	}
	if verbose && result.Submitted != nil {
		labels := make([]string, 0, len(result.Submitted))
		for label := range result.Submitted {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Printf("    %s: %s\n", label, result.Submitted[label])
		}
	}
}

// loadScenarios resolves the scenarios to run: positional scenario files
// first, then the configured file, then the built-in default.
func loadScenarios(path string, args []string) ([]scenario.Scenario, error) {
	if len(args) > 0 {
		var all []scenario.Scenario
		for _, arg := range args {
			scenarios, err := scenario.LoadFile(arg)
			if err != nil {
				return nil, err
			}
			all = append(all, scenarios...)
		}
		return all, nil
	}
	if path != "" {
		return scenario.LoadFile(path)
	}
	return scenario.Default(), nil
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

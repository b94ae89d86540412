package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// Config controls the Chrome session and the per-step behavior of the
// chromedp-backed driver.
type Config struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	// ErrorFilter discards console errors it returns true for.
	ErrorFilter func(ConsoleError) bool
	Logger      logrus.FieldLogger
}

func defaultConfig() *Config {
	return &Config{
		Headless:       true,
		Timeout:        30 * time.Second,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

// Chrome owns a browser process shared by the pages created from it.
type Chrome struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	config      *Config
}

func NewChrome(config *Config) *Chrome {
	if config == nil {
		config = defaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ViewportWidth == 0 || config.ViewportHeight == 0 {
		config.ViewportWidth = 1280
		config.ViewportHeight = 720
	}
	return &Chrome{config: config}
}

func (c *Chrome) Start() error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.config.Headless),
		chromedp.Flag("disable-gpu", c.config.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(c.config.ViewportWidth, c.config.ViewportHeight),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	c.allocCtx = allocCtx
	c.allocCancel = cancel

	return nil
}

func (c *Chrome) Stop() error {
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}

// NewPage creates a fresh browser page context and a console log capturing
// its console errors. The returned context is what the page's Driver calls
// must receive; cancel closes the page.
func (c *Chrome) NewPage() (context.Context, context.CancelFunc, *ConsoleLog, error) {
	if c.allocCtx == nil {
		return nil, nil, nil, ErrNotStarted
	}

	ctx, cancel := chromedp.NewContext(c.allocCtx)
	console := &ConsoleLog{filter: c.config.ErrorFilter}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			if ev.Type != runtime.APITypeError {
				return
			}
			var message string
			if len(ev.Args) > 0 && ev.Args[0].Value != nil {
				message = string(ev.Args[0].Value)
			}
			console.record(ConsoleError{
				Message:   message,
				Type:      string(ev.Type),
				Timestamp: time.Now(),
			})
		}
	})

	return ctx, cancel, console, nil
}

// ConsoleError is one console.error emitted by the page under test.
type ConsoleError struct {
	Message   string
	Type      string
	Timestamp time.Time
}

// ConsoleLog accumulates the console errors of a single page. The listener
// callback runs on chromedp's event goroutine, hence the lock.
type ConsoleLog struct {
	mu     sync.Mutex
	errors []ConsoleError
	filter func(ConsoleError) bool
}

func (l *ConsoleLog) record(err ConsoleError) {
	if l.filter != nil && l.filter(err) {
		return
	}
	l.mu.Lock()
	l.errors = append(l.errors, err)
	l.mu.Unlock()
}

// Errors returns a copy of the errors recorded so far.
func (l *ConsoleLog) Errors() []ConsoleError {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ConsoleError, len(l.errors))
	copy(out, l.errors)
	return out
}

// ChromeDriver implements Driver on a chromedp page context.
type ChromeDriver struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

func NewChromeDriver(config *Config) *ChromeDriver {
	if config == nil {
		config = defaultConfig()
	}
	return &ChromeDriver{Timeout: config.Timeout, Logger: config.Logger}
}

func (d *ChromeDriver) run(ctx context.Context, op, sel string, actions ...chromedp.Action) error {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	d.logger().WithFields(logrus.Fields{"op": op, "selector": sel}).Debug("browser step")
	return chromedp.Run(ctx, actions...)
}

func (d *ChromeDriver) logger() logrus.FieldLogger {
	if d.Logger != nil {
		return d.Logger
	}
	return logrus.StandardLogger()
}

// by picks the query mode for a selector: XPath expressions (leading slash)
// go through the DOM search API, everything else through querySelector.
func by(sel string) chromedp.QueryOption {
	if strings.HasPrefix(sel, "/") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, "navigate", url, chromedp.Navigate(url))
}

func (d *ChromeDriver) Find(ctx context.Context, sel string) error {
	return d.run(ctx, "find", sel, chromedp.WaitVisible(sel, by(sel)))
}

func (d *ChromeDriver) Type(ctx context.Context, sel, text string) error {
	return d.run(ctx, "type", sel, chromedp.SendKeys(sel, text, by(sel), chromedp.NodeVisible))
}

func (d *ChromeDriver) Press(ctx context.Context, sel, key string) error {
	return d.run(ctx, "press", sel, chromedp.SendKeys(sel, key, by(sel), chromedp.NodeVisible))
}

func (d *ChromeDriver) Click(ctx context.Context, sel string) error {
	return d.run(ctx, "click", sel, chromedp.Click(sel, by(sel), chromedp.NodeVisible))
}

// ClickForce dispatches the click from inside the page, so overlays and
// fixed banners covering the element cannot intercept it.
func (d *ChromeDriver) ClickForce(ctx context.Context, sel string) error {
	return d.run(ctx, "clickForce", sel,
		chromedp.WaitReady(sel, by(sel)),
		evalFound(forceClickJS(sel), sel),
	)
}

func (d *ChromeDriver) AttachFile(ctx context.Context, sel, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return d.run(ctx, "attachFile", sel, chromedp.SetUploadFiles(sel, []string{abs}, by(sel)))
}

// react-datepicker widget internals, shared by every date field on the site.
const (
	datePickerMonthSelect = ".react-datepicker__month-select"
	datePickerYearSelect  = ".react-datepicker__year-select"
	datePickerDayFmt      = ".react-datepicker__day--%03d:not(.react-datepicker__day--outside-month)"
)

func (d *ChromeDriver) PickDate(ctx context.Context, sel string, date time.Time) error {
	month := strconv.Itoa(int(date.Month()) - 1)
	year := strconv.Itoa(date.Year())
	day := fmt.Sprintf(datePickerDayFmt, date.Day())
	return d.run(ctx, "pickDate", sel,
		chromedp.Click(sel, by(sel), chromedp.NodeVisible),
		chromedp.WaitVisible(datePickerMonthSelect, chromedp.ByQuery),
		evalFound(selectValueJS(datePickerMonthSelect, month), datePickerMonthSelect),
		evalFound(selectValueJS(datePickerYearSelect, year), datePickerYearSelect),
		chromedp.Click(day, chromedp.ByQuery, chromedp.NodeVisible),
	)
}

func (d *ChromeDriver) Text(ctx context.Context, sel string) (string, error) {
	var text string
	err := d.run(ctx, "text", sel, chromedp.Text(sel, &text, by(sel), chromedp.NodeVisible))
	return text, err
}

func (d *ChromeDriver) Texts(ctx context.Context, sel string) ([]string, error) {
	var texts []string
	err := d.run(ctx, "texts", sel, chromedp.Evaluate(textsJS(sel), &texts))
	return texts, err
}

func (d *ChromeDriver) HTML(ctx context.Context, sel string) (string, error) {
	var html string
	err := d.run(ctx, "html", sel, chromedp.OuterHTML(sel, &html, by(sel), chromedp.NodeVisible))
	return html, err
}

func (d *ChromeDriver) AssertContains(ctx context.Context, sel, substr string) error {
	var text string
	err := d.run(ctx, "assertContains", sel, chromedp.Text(sel, &text, by(sel), chromedp.NodeReady))
	if err != nil {
		return err
	}
	if !strings.Contains(text, substr) {
		return &AssertionError{
			Expected: substr,
			Actual:   text,
			Message:  fmt.Sprintf("element %s does not contain expected text", sel),
		}
	}
	return nil
}

func (d *ChromeDriver) AssertEmpty(ctx context.Context, sel string) error {
	var text string
	err := d.run(ctx, "assertEmpty", sel, chromedp.Text(sel, &text, by(sel), chromedp.NodeReady))
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) != "" {
		return &AssertionError{
			Expected: "",
			Actual:   text,
			Message:  fmt.Sprintf("element %s is not empty", sel),
		}
	}
	return nil
}

// SaveScreenshot captures a full-page screenshot into the given file,
// creating parent directories as needed.
func SaveScreenshot(ctx context.Context, path string) error {
	var shot []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&shot, 100)); err != nil {
		return fmt.Errorf("failed to take screenshot: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %v", err)
	}
	return os.WriteFile(path, shot, 0644)
}

// evalFound runs a JS expression that resolves an element and returns whether
// it found one, turning "not found" into an error.
func evalFound(expr, sel string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var found bool
		if err := chromedp.Evaluate(expr, &found).Do(ctx); err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("element not found: %s", sel)
		}
		return nil
	})
}

func jsLocate(sel string) string {
	if strings.HasPrefix(sel, "/") {
		return fmt.Sprintf(`document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue`, sel)
	}
	return fmt.Sprintf(`document.querySelector(%q)`, sel)
}

func forceClickJS(sel string) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) { return false; }
		el.click();
		return true;
	})()`, jsLocate(sel))
}

// selectValueJS sets a <select> through the native value setter and fires a
// bubbling change event, which is what widgets rendered by React listen for.
func selectValueJS(sel, value string) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) { return false; }
		const set = Object.getOwnPropertyDescriptor(window.HTMLSelectElement.prototype, 'value').set;
		set.call(el, %q);
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, jsLocate(sel), value)
}

func textsJS(sel string) string {
	if strings.HasPrefix(sel, "/") {
		return fmt.Sprintf(`(() => {
			const out = [];
			const res = document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
			for (let i = 0; i < res.snapshotLength; i++) { out.push(res.snapshotItem(i).textContent.trim()); }
			return out;
		})()`, sel)
	}
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map((el) => el.textContent.trim())`, sel)
}

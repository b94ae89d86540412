package browser

import (
	"context"
	"time"
)

// Keys accepted by Driver.Press.
const (
	KeyEnter = "\r"
	KeyTab   = "\t"
)

// Driver is the capability surface a page object needs from a browser. The
// chromedp-backed implementation is ChromeDriver; FakeDriver records calls for
// unit tests. Selectors starting with "/" are interpreted as XPath expressions,
// anything else as CSS.
//
// Every method blocks until the underlying browser confirms the step (element
// visible, click dispatched, and so on) or the context is done. Waiting and
// retry semantics live entirely in the implementation; callers sequence steps
// and nothing more.
type Driver interface {
	// Navigate loads the given URL in the page.
	Navigate(ctx context.Context, url string) error
	// Find waits until the element matching sel is visible.
	Find(ctx context.Context, sel string) error
	// Type sends the text to the element as keyboard input.
	Type(ctx context.Context, sel, text string) error
	// Press sends a single key (see the Key constants) to the element.
	Press(ctx context.Context, sel, key string) error
	// Click clicks the element once it is visible and actionable.
	Click(ctx context.Context, sel string) error
	// ClickForce clicks the element through the DOM, bypassing overlays that
	// would intercept a trusted pointer event.
	ClickForce(ctx context.Context, sel string) error
	// AttachFile sets the file as the content of a file input.
	AttachFile(ctx context.Context, sel, path string) error
	// PickDate drives a date-picker widget rooted at sel to the given date.
	PickDate(ctx context.Context, sel string, date time.Time) error
	// Text returns the visible text content of the first matching element.
	Text(ctx context.Context, sel string) (string, error)
	// Texts returns the text content of every matching element, in DOM order.
	Texts(ctx context.Context, sel string) ([]string, error)
	// HTML returns the outer HTML of the first matching element.
	HTML(ctx context.Context, sel string) (string, error)
	// AssertContains fails with an AssertionError unless the element's text
	// contains substr.
	AssertContains(ctx context.Context, sel, substr string) error
	// AssertEmpty fails with an AssertionError unless the element's text is
	// empty or whitespace.
	AssertEmpty(ctx context.Context, sel string) error
}

package browser

import (
	"context"
	"time"
)

// Call is one recorded driver operation.
type Call struct {
	Op       string
	Selector string
	Value    string
}

// FakeDriver implements Driver in memory for tests. Every operation is
// recorded in Calls; read operations look up canned responses by selector,
// and Fail injects an error for any operation on the given selector.
type FakeDriver struct {
	Calls []Call

	TextResults map[string]string
	ListResults map[string][]string
	HTMLResults map[string]string
	Fail        map[string]error
	// ListFn, when set, overrides ListResults for Texts lookups.
	ListFn func(sel string) ([]string, error)
}

var _ Driver = (*FakeDriver)(nil)

func (d *FakeDriver) record(op, sel, value string) error {
	d.Calls = append(d.Calls, Call{Op: op, Selector: sel, Value: value})
	if err, ok := d.Fail[sel]; ok {
		return err
	}
	return nil
}

// CallsTo returns the recorded calls for one operation, in order.
func (d *FakeDriver) CallsTo(op string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (d *FakeDriver) Navigate(_ context.Context, url string) error {
	return d.record("navigate", url, "")
}

func (d *FakeDriver) Find(_ context.Context, sel string) error {
	return d.record("find", sel, "")
}

func (d *FakeDriver) Type(_ context.Context, sel, text string) error {
	return d.record("type", sel, text)
}

func (d *FakeDriver) Press(_ context.Context, sel, key string) error {
	return d.record("press", sel, key)
}

func (d *FakeDriver) Click(_ context.Context, sel string) error {
	return d.record("click", sel, "")
}

func (d *FakeDriver) ClickForce(_ context.Context, sel string) error {
	return d.record("clickForce", sel, "")
}

func (d *FakeDriver) AttachFile(_ context.Context, sel, path string) error {
	return d.record("attachFile", sel, path)
}

func (d *FakeDriver) PickDate(_ context.Context, sel string, date time.Time) error {
	return d.record("pickDate", sel, date.Format("2006-01-02"))
}

func (d *FakeDriver) Text(_ context.Context, sel string) (string, error) {
	if err := d.record("text", sel, ""); err != nil {
		return "", err
	}
	return d.TextResults[sel], nil
}

func (d *FakeDriver) Texts(_ context.Context, sel string) ([]string, error) {
	if err := d.record("texts", sel, ""); err != nil {
		return nil, err
	}
	if d.ListFn != nil {
		return d.ListFn(sel)
	}
	return d.ListResults[sel], nil
}

func (d *FakeDriver) HTML(_ context.Context, sel string) (string, error) {
	if err := d.record("html", sel, ""); err != nil {
		return "", err
	}
	return d.HTMLResults[sel], nil
}

func (d *FakeDriver) AssertContains(_ context.Context, sel, substr string) error {
	return d.record("assertContains", sel, substr)
}

func (d *FakeDriver) AssertEmpty(_ context.Context, sel string) error {
	return d.record("assertEmpty", sel, "")
}

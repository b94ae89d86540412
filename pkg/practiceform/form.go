// Package practiceform is a page object for the demoqa student
// registration practice form. It drives the page through an injected
// browser.Driver, so the same flows run against a real Chrome or an
// in-memory fake.
package practiceform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kidandcat/formtest/pkg/browser"
)

// Page drives the student registration form.
type Page struct {
	driver     browser.Driver
	baseURL    string
	logger     logrus.FieldLogger
	defaults   Values
	textFields []string
	mapping    SubmissionMapping

	// now feeds the date-of-birth default; tests pin it.
	now func() time.Time
}

// PageConfig carries the optional knobs of a Page. Defaults, TextFields
// and Mapping override the embedded fixtures when set.
type PageConfig struct {
	BaseURL    string
	Logger     logrus.FieldLogger
	Defaults   Values
	TextFields []string
	Mapping    *SubmissionMapping
}

// NewPage creates a page object talking to the form through driver. A nil
// config targets the hosted site, logs through the standard logger and
// uses the embedded fixtures.
func NewPage(driver browser.Driver, config *PageConfig) *Page {
	p := &Page{
		driver:     driver,
		baseURL:    DefaultBaseURL,
		logger:     logrus.StandardLogger(),
		defaults:   DefaultValues(),
		textFields: TextFields(),
		mapping:    DefaultMapping(),
		now:        time.Now,
	}
	if config != nil {
		if config.BaseURL != "" {
			p.baseURL = strings.TrimRight(config.BaseURL, "/")
		}
		if config.Logger != nil {
			p.logger = config.Logger
		}
		if config.Defaults != nil {
			p.defaults = config.Defaults
		}
		if config.TextFields != nil {
			p.textFields = config.TextFields
		}
		if config.Mapping != nil {
			p.mapping = *config.Mapping
		}
	}
	return p
}

// URL returns the full address of the form page.
func (p *Page) URL() string {
	return p.baseURL + FormPath
}

// Visit navigates to the form and waits until its header confirms the
// right page is showing. The header must equal the known title exactly,
// not merely contain it.
func (p *Page) Visit(ctx context.Context) error {
	p.logger.WithField("url", p.URL()).Debug("visiting form")
	if err := p.driver.Navigate(ctx, p.URL()); err != nil {
		return fmt.Errorf("navigating to form: %w", err)
	}
	if err := p.driver.Find(ctx, selFirstName); err != nil {
		return fmt.Errorf("waiting for form: %w", err)
	}
	header, err := p.driver.Text(ctx, selPageHeader)
	if err != nil {
		return fmt.Errorf("checking page header: %w", err)
	}
	if strings.TrimSpace(header) != pageTitle {
		return fmt.Errorf("checking page header: %w", &browser.AssertionError{
			Expected: pageTitle,
			Actual:   header,
			Message:  "page header mismatch",
		})
	}
	return nil
}

// Fill enters values into the form. A nil values fills the page's default
// values. Empty and missing fields are skipped, so a partial Values fills
// a partial form.
func (p *Page) Fill(ctx context.Context, values Values) error {
	if values == nil {
		values = p.defaults
	}
	for _, field := range p.textFields {
		text := values.String(field)
		if text == "" {
			continue
		}
		p.logger.WithField("field", field).Debug("typing text field")
		if err := p.driver.Type(ctx, FieldSelectors[field], text); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
	}
	if dob := values.Time(FieldDateOfBirth); !dob.IsZero() {
		p.logger.WithField("date", dob.Format("2006-01-02")).Debug("picking date of birth")
		if err := p.driver.PickDate(ctx, selDateOfBirth, dob); err != nil {
			return fmt.Errorf("field %q: %w", FieldDateOfBirth, err)
		}
	}
	if err := p.SelectGender(ctx, values.String(FieldGender)); err != nil {
		return err
	}
	if err := p.SelectSubjects(ctx, values.List(FieldSubjects)); err != nil {
		return err
	}
	if err := p.SelectHobbies(ctx, values.List(FieldHobbies)); err != nil {
		return err
	}
	if err := p.UploadPicture(ctx, values.String(FieldPicture)); err != nil {
		return err
	}
	return p.SelectLocation(ctx, values.String(FieldState), values.String(FieldCity))
}

// SelectGender picks a gender radio by its value. An empty gender is a
// no-op. The styled label sits on top of the input, so the click is
// dispatched in-page.
func (p *Page) SelectGender(ctx context.Context, gender string) error {
	if gender == "" {
		return nil
	}
	p.logger.WithField("gender", gender).Debug("selecting gender")
	if err := p.driver.ClickForce(ctx, genderSelector(gender)); err != nil {
		return fmt.Errorf("field %q: %w", FieldGender, err)
	}
	return nil
}

// SelectSubjects types each subject into the autocomplete and picks the
// matching option. It fails when the dropdown does not narrow to exactly
// one match for a subject.
func (p *Page) SelectSubjects(ctx context.Context, subjects []string) error {
	for _, subject := range subjects {
		if subject == "" {
			continue
		}
		p.logger.WithField("subject", subject).Debug("selecting subject")
		if err := p.driver.Type(ctx, selSubjectsInput, subject); err != nil {
			return fmt.Errorf("subject %q: %w", subject, err)
		}
		options, err := p.driver.Texts(ctx, selSubjectsOption)
		if err != nil {
			return fmt.Errorf("subject %q: %w", subject, err)
		}
		if len(options) != 1 {
			return fmt.Errorf("subject %q: %w", subject, &browser.AssertionError{
				Expected: subject,
				Actual:   strings.Join(options, ", "),
				Message:  "autocomplete did not narrow to one option",
			})
		}
		if !strings.Contains(strings.ToLower(options[0]), strings.ToLower(subject)) {
			return fmt.Errorf("subject %q: %w", subject, &browser.AssertionError{
				Expected: subject,
				Actual:   options[0],
				Message:  "autocomplete offered a different subject",
			})
		}
		if err := p.driver.Click(ctx, selSubjectsOption); err != nil {
			return fmt.Errorf("subject %q: %w", subject, err)
		}
	}
	return nil
}

// SelectHobbies toggles the named hobby checkboxes through their labels.
func (p *Page) SelectHobbies(ctx context.Context, hobbies []string) error {
	for _, hobby := range hobbies {
		if hobby == "" {
			continue
		}
		p.logger.WithField("hobby", hobby).Debug("selecting hobby")
		if err := p.driver.ClickForce(ctx, hobbySelector(hobby)); err != nil {
			return fmt.Errorf("hobby %q: %w", hobby, err)
		}
	}
	return nil
}

// UploadPicture attaches the picture file. An empty path is a no-op.
func (p *Page) UploadPicture(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	p.logger.WithField("path", path).Debug("uploading picture")
	if err := p.driver.AttachFile(ctx, selPicture, path); err != nil {
		return fmt.Errorf("field %q: %w", FieldPicture, err)
	}
	return nil
}

// SelectLocation picks the state and city dropdowns. The city list only
// loads after a state is chosen, so the city is skipped unless a state is
// set too; a state alone is still selected.
func (p *Page) SelectLocation(ctx context.Context, state, city string) error {
	if state == "" {
		return nil
	}
	p.logger.WithFields(logrus.Fields{"state": state, "city": city}).Debug("selecting location")
	if err := p.driver.Type(ctx, selState, state); err != nil {
		return fmt.Errorf("field %q: %w", FieldState, err)
	}
	if err := p.driver.Press(ctx, selState, browser.KeyEnter); err != nil {
		return fmt.Errorf("field %q: %w", FieldState, err)
	}
	if city == "" {
		return nil
	}
	if err := p.driver.Type(ctx, selCity, city); err != nil {
		return fmt.Errorf("field %q: %w", FieldCity, err)
	}
	if err := p.driver.Press(ctx, selCity, browser.KeyEnter); err != nil {
		return fmt.Errorf("field %q: %w", FieldCity, err)
	}
	return nil
}

// Submit sends the form and waits for the confirmation dialog. The button
// sits under a fixed footer, so the click is dispatched in-page.
func (p *Page) Submit(ctx context.Context) error {
	p.logger.Debug("submitting form")
	if err := p.driver.ClickForce(ctx, selSubmit); err != nil {
		return fmt.Errorf("submitting: %w", err)
	}
	if err := p.driver.Find(ctx, selModalTitle); err != nil {
		return fmt.Errorf("waiting for confirmation dialog: %w", err)
	}
	return nil
}

// CloseConfirmation dismisses the confirmation dialog.
func (p *Page) CloseConfirmation(ctx context.Context) error {
	p.logger.Debug("closing confirmation dialog")
	return p.driver.ClickForce(ctx, selCloseModal)
}

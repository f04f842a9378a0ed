package notification

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Template names the email template category a drafting decision selected.
type Template int

const (
	// TemplateUnknown represents an invalid or undefined template.
	TemplateUnknown Template = iota

	// TemplateNoEmail indicates the transition does not warrant notifying
	// the customer.
	TemplateNoEmail

	// TemplateStatusUpdate is a routine, informative notification.
	TemplateStatusUpdate

	// TemplateUrgentAlert is used for transitions flagged urgent/vip or
	// otherwise consequential.
	TemplateUrgentAlert
)

func getTemplateStrings() map[Template]string {
	return map[Template]string{
		TemplateNoEmail:      "no-email",
		TemplateStatusUpdate: "status-update",
		TemplateUrgentAlert:  "urgent-alert",
	}
}

// TemplateFromString parses a template name as produced by the drafting
// delegate: "no-email", "status-update", or "urgent-alert".
func TemplateFromString(s string) (Template, error) {
	for template, name := range getTemplateStrings() {
		if name == s {
			return template, nil
		}
	}
	return TemplateUnknown, errs.NewValueIsInvalidErrorWithCause(
		"template is invalid",
		fmt.Errorf("%q is not a valid template name", s),
	)
}

// Validate checks if the Template value is valid.
func (t Template) Validate() error {
	if _, ok := getTemplateStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("template is invalid", fmt.Errorf("%d is not a valid template", t))
	}
	return nil
}

// String returns the wire name of the template.
func (t Template) String() string {
	if str, ok := getTemplateStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Package notification implements the drafting decision value objects
// produced by the notification drafting service.
package notification

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrDecisionIsNotConstructed = errors.New("Decision must be created via NewDecision constructor")

	// ErrDecisionIsIncoherent is returned when a decision's fields contradict
	// each other, e.g. sendEmail set with an empty body. The constructor
	// rejects such combinations so a partially populated decision can never
	// reach a caller.
	ErrDecisionIsIncoherent = errors.New("decision fields are incoherent")
)

// Decision is the immutable outcome of a drafting call: whether a customer
// email is warranted, which template category applies, and the drafted
// subject and body.
//
// Coherence invariants, enforced at construction:
//   - sendEmail == false implies template == no-email and empty subject/body
//   - sendEmail == true implies template != no-email and non-empty subject and body
type Decision struct {
	sendEmail bool
	template  Template
	subject   string
	body      string

	guard guard.ConstructorGuard
}

// NewDecision creates a validated drafting decision.
// Returns ErrDecisionIsIncoherent when the field combination violates the
// coherence invariants.
func NewDecision(sendEmail bool, template Template, subject, body string) (Decision, error) {
	if err := template.Validate(); err != nil {
		return Decision{}, err
	}

	if sendEmail {
		if template == TemplateNoEmail || subject == "" || body == "" {
			return Decision{}, ErrDecisionIsIncoherent
		}
	} else {
		if template != TemplateNoEmail || subject != "" || body != "" {
			return Decision{}, ErrDecisionIsIncoherent
		}
	}

	return Decision{
		sendEmail: sendEmail,
		template:  template,
		subject:   subject,
		body:      body,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NoEmailDecision returns the decision for transitions not worth notifying
// the customer about.
func NoEmailDecision() Decision {
	return Decision{
		sendEmail: false,
		template:  TemplateNoEmail,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the decision was created through a constructor.
func (d Decision) Validate() error {
	return d.guard.Validate(ErrDecisionIsNotConstructed)
}

// SendEmail reports whether a customer email is warranted.
func (d Decision) SendEmail() bool {
	return d.sendEmail
}

// Template returns the selected template category.
func (d Decision) Template() Template {
	return d.template
}

// Subject returns the drafted subject line. Empty for no-email decisions.
func (d Decision) Subject() string {
	return d.subject
}

// Body returns the drafted email body. Empty for no-email decisions.
func (d Decision) Body() string {
	return d.body
}

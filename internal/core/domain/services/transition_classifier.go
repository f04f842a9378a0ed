package services

import (
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
)

// Flags that mark a transition significant regardless of the statuses involved.
const (
	FlagUrgent = "urgent"
	FlagVIP    = "vip"
)

// TransitionClassifier is a domain service that weighs whether a status
// transition is routine or significant. The drafting delegate makes the
// final call on wording, but the classifier pins down the invariants the
// delegate's answer must satisfy: a transition carrying an urgent or vip
// flag must produce an urgent-alert, and a cancellation is never routine.
//
// Example usage:
//
//	classifier := NewTransitionClassifier()
//	transition, _ := order.TransitionForOrder(o, order.Shipped)
//
//	if classifier.IsSignificant(transition) {
//	    // expect an urgent-alert or other consequential handling
//	}
type TransitionClassifier struct{}

// NewTransitionClassifier creates a new TransitionClassifier instance.
func NewTransitionClassifier() TransitionClassifier {
	return TransitionClassifier{}
}

// IsSignificant reports whether the transition is consequential rather than
// routine. A transition is significant when the order carries an "urgent" or
// "vip" flag, or when the target status is Cancelled.
func (c TransitionClassifier) IsSignificant(t order.StatusTransition) bool {
	if t.HasFlag(FlagUrgent) || t.HasFlag(FlagVIP) {
		return true
	}
	return t.NewStatus() == order.Cancelled
}

// RequiredTemplate returns the template category a drafting decision must
// select for this transition, if the policy mandates one. A flagged
// (urgent/vip) transition must always notify the customer, so the decision
// has to send an email and use the urgent-alert template. For all other
// transitions any template is acceptable and required is false.
func (c TransitionClassifier) RequiredTemplate(t order.StatusTransition) (notification.Template, bool) {
	if t.HasFlag(FlagUrgent) || t.HasFlag(FlagVIP) {
		return notification.TemplateUrgentAlert, true
	}
	return notification.TemplateUnknown, false
}

package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// NewOrderAlert is the drafted admin notification for a submitted order.
type NewOrderAlert struct {
	Subject string
	Body    string
}

// DraftNewOrderAlertCommandHandler drafts the admin alert email for an
// existing order. Unlike the status update pipeline there is no state
// change here, so a drafting failure needs no compensation.
type DraftNewOrderAlertCommandHandler struct {
	uowFactory   OrderUoWFactory
	drafter      ports.NotificationDrafter
	adminEmail   string
	draftTimeout time.Duration
}

// NewDraftNewOrderAlertCommandHandler creates a handler for admin alert
// drafting. adminEmail is the configured recipient the draft addresses.
func NewDraftNewOrderAlertCommandHandler(
	uowFactory OrderUoWFactory,
	drafter ports.NotificationDrafter,
	adminEmail string,
	draftTimeout time.Duration,
) DraftNewOrderAlertCommandHandler {
	return DraftNewOrderAlertCommandHandler{
		uowFactory:   uowFactory,
		drafter:      drafter,
		adminEmail:   adminEmail,
		draftTimeout: draftTimeout,
	}
}

// Handle loads the order and asks the drafting delegate for the alert
// subject and body. Returns ErrOrderNotFound for an unknown order.
func (h DraftNewOrderAlertCommandHandler) Handle(
	ctx context.Context,
	cmd DraftNewOrderAlertCommand,
) (NewOrderAlert, error) {
	if err := cmd.Validate(); err != nil {
		return NewOrderAlert{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return NewOrderAlert{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return NewOrderAlert{}, ErrOrderNotFound
	}
	if err != nil {
		return NewOrderAlert{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return NewOrderAlert{}, err
	}

	draftCtx, cancel := context.WithTimeout(ctx, h.draftTimeout)
	defer cancel()

	subject, body, err := h.drafter.DraftNewOrderAlert(draftCtx, aggregate, h.adminEmail)
	if err != nil {
		return NewOrderAlert{}, err
	}

	return NewOrderAlert{Subject: subject, Body: body}, nil
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

const statusUpdatePrompt = `You are an AI assistant responsible for determining if an email notification should be sent to a customer when their order status changes and selecting the most appropriate email template.

Here's the order information:
Order ID: %s
Previous Status: %s
New Status: %s
Order Flags: %s
Agent Name: %s
Customer Email: %s

Based on this information, decide whether an email notification is necessary. Consider factors such as the importance of the status change, any associated order flags (e.g., "urgent", "vip"), and the context of the order.

If an email is necessary, select the most appropriate email template from the following options:
- "status-update": A general template for notifying customers of routine status updates.
- "urgent-alert": A template for notifying customers of urgent issues or significant changes to their order.
- "no-email": Indicates that no email should be sent.

If the order carries an "urgent" or "vip" flag, an email must be sent and the template must be "urgent-alert".
If you chose a template other than "no-email", generate a subject and body for the email. If you chose "no-email", emailSubject and emailBody must be empty strings.

The output must be a JSON object with the following fields:
- sendEmail (boolean): true if an email should be sent, false otherwise.
- emailTemplate (string): The name of the email template to use (e.g., "status-update", "urgent-alert", "no-email").
- emailSubject (string): The subject line for the email.
- emailBody (string): The content of the email.`

const newOrderAlertPrompt = `You are an AI assistant responsible for generating an email notification to an admin for a newly placed order.

Here's the order information:
Order ID: %s
Agent Name: %s
Total: %s
Number of items: %d

The email should be addressed to an admin with the email: %s.

Generate a concise but informative subject and body for the email to alert the admin.
The tone should be professional and direct.

The output must be a JSON object with the following fields:
- emailSubject (string): The subject line for the email.
- emailBody (string): The content of the email.`

// statusUpdatePayload mirrors the JSON contract the model is asked for.
type statusUpdatePayload struct {
	SendEmail     bool   `json:"sendEmail"`
	EmailTemplate string `json:"emailTemplate"`
	EmailSubject  string `json:"emailSubject"`
	EmailBody     string `json:"emailBody"`
}

type newOrderAlertPayload struct {
	EmailSubject string `json:"emailSubject"`
	EmailBody    string `json:"emailBody"`
}

// Drafter implements the notification drafting port on top of a chat
// completion endpoint. Every deviation from the response contract, along
// with transport errors and timeouts, is reported as ports.ErrDraftingFailed
// so the orchestrator treats them uniformly.
type Drafter struct {
	client     *Client
	classifier services.TransitionClassifier
}

// NewDrafter creates a drafting adapter over the given client.
func NewDrafter(client *Client) *Drafter {
	return &Drafter{
		client:     client,
		classifier: services.NewTransitionClassifier(),
	}
}

// DraftStatusUpdate asks the model for a notification decision and
// validates it against the decision coherence rules before returning it.
func (d *Drafter) DraftStatusUpdate(
	ctx context.Context,
	transition order.StatusTransition,
) (notification.Decision, error) {
	if err := transition.Validate(); err != nil {
		return notification.Decision{}, err
	}

	flags := "None"
	if len(transition.Flags()) > 0 {
		flags = strings.Join(transition.Flags(), ", ")
	}

	prompt := fmt.Sprintf(statusUpdatePrompt,
		transition.OrderID().String(),
		transition.OldStatus().String(),
		transition.NewStatus().String(),
		flags,
		transition.AgentName(),
		transition.CustomerEmail(),
	)

	var payload statusUpdatePayload
	if err := d.complete(ctx, prompt, &payload); err != nil {
		return notification.Decision{}, err
	}

	template, err := notification.TemplateFromString(payload.EmailTemplate)
	if err != nil {
		return notification.Decision{}, fmt.Errorf("%w: unknown template %q",
			ports.ErrDraftingFailed, payload.EmailTemplate)
	}

	decision, err := notification.NewDecision(
		payload.SendEmail, template, payload.EmailSubject, payload.EmailBody)
	if err != nil {
		return notification.Decision{}, fmt.Errorf("%w: %w", ports.ErrDraftingFailed, err)
	}

	if required, ok := d.classifier.RequiredTemplate(transition); ok {
		if !decision.SendEmail() {
			return notification.Decision{}, fmt.Errorf("%w: flagged transition must be emailed with the %s template",
				ports.ErrDraftingFailed, required)
		}
		if decision.Template() != required {
			return notification.Decision{}, fmt.Errorf("%w: flagged transition requires %s template, got %s",
				ports.ErrDraftingFailed, required, decision.Template())
		}
	}

	return decision, nil
}

// DraftNewOrderAlert asks the model for the admin alert subject and body.
func (d *Drafter) DraftNewOrderAlert(
	ctx context.Context,
	o *order.Order,
	adminEmail string,
) (string, string, error) {
	if err := o.Validate(); err != nil {
		return "", "", err
	}

	prompt := fmt.Sprintf(newOrderAlertPrompt,
		o.ID().String(),
		o.AgentName(),
		o.Total().String(),
		len(o.Items()),
		adminEmail,
	)

	var payload newOrderAlertPayload
	if err := d.complete(ctx, prompt, &payload); err != nil {
		return "", "", err
	}

	if payload.EmailSubject == "" || payload.EmailBody == "" {
		return "", "", fmt.Errorf("%w: alert subject or body is empty", ports.ErrDraftingFailed)
	}

	return payload.EmailSubject, payload.EmailBody, nil
}

// complete runs one JSON-mode completion and unmarshals the content into out.
func (d *Drafter) complete(ctx context.Context, prompt string, out any) error {
	resp, err := d.client.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrDraftingFailed, err)
	}

	content, err := completionContent(resp)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrDraftingFailed, err)
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: malformed completion: %w", ports.ErrDraftingFailed, err)
	}

	return nil
}

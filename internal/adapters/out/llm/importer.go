package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/core/ports"
)

const importProductsPrompt = `You are an AI assistant designed to parse product data from a CSV string.
The user will provide CSV data. Your task is to extract the product information and format it into a JSON object.

The CSV has the following columns: name, description, category, price, shades.
The 'shades' column is a comma-separated string. You must convert it into an array of strings.
Ensure the 'price' is a number.

Here is the CSV data:
%s

Parse the data and return a JSON object with a "products" field containing an array of product objects, each with fields: name (string), description (string), category (string), price (number), shades (array of strings).`

const importUsersPrompt = `You are an AI assistant designed to parse user data from a CSV string.
The user will provide CSV data. Your task is to extract the user information and format it into a JSON object.

The CSV has the following columns: name, email, role.
The 'role' must be either 'admin' or 'agent'.

Here is the CSV data:
%s

Parse the data and return a JSON object with a "users" field containing an array of user objects, each with fields: name (string), email (string), role (string).`

type productRowPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Shades      []string `json:"shades"`
}

type importProductsPayload struct {
	Products []productRowPayload `json:"products"`
}

type userRowPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type importUsersPayload struct {
	Users []userRowPayload `json:"users"`
}

// Importer implements the CSV import port on top of a chat completion
// endpoint. The model does the parsing; the adapter does the validation.
// A single row violating a type or enum constraint fails the whole batch
// with ports.ErrImportValidationFailed.
type Importer struct {
	client *Client
}

// NewImporter creates an import adapter over the given client.
func NewImporter(client *Client) *Importer {
	return &Importer{client: client}
}

// ImportProducts parses and validates product rows from raw CSV content.
func (i *Importer) ImportProducts(ctx context.Context, csvData string) ([]ports.ProductRecord, error) {
	var payload importProductsPayload
	if err := i.complete(ctx, fmt.Sprintf(importProductsPrompt, csvData), &payload); err != nil {
		return nil, err
	}

	records := make([]ports.ProductRecord, 0, len(payload.Products))
	for n, row := range payload.Products {
		if row.Name == "" {
			return nil, fmt.Errorf("%w: row %d: product name is empty",
				ports.ErrImportValidationFailed, n+1)
		}
		if row.Category == "" {
			return nil, fmt.Errorf("%w: row %d: product category is empty",
				ports.ErrImportValidationFailed, n+1)
		}

		price, err := kernel.MoneyFromFloat(row.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid price: %w",
				ports.ErrImportValidationFailed, n+1, err)
		}

		records = append(records, ports.ProductRecord{
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			Price:       price,
			Shades:      row.Shades,
		})
	}

	return records, nil
}

// ImportUsers parses and validates account rows from raw CSV content.
func (i *Importer) ImportUsers(ctx context.Context, csvData string) ([]ports.UserRecord, error) {
	var payload importUsersPayload
	if err := i.complete(ctx, fmt.Sprintf(importUsersPrompt, csvData), &payload); err != nil {
		return nil, err
	}

	records := make([]ports.UserRecord, 0, len(payload.Users))
	for n, row := range payload.Users {
		if row.Name == "" {
			return nil, fmt.Errorf("%w: row %d: user name is empty",
				ports.ErrImportValidationFailed, n+1)
		}
		if _, err := mail.ParseAddress(row.Email); err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid email %q",
				ports.ErrImportValidationFailed, n+1, row.Email)
		}

		role, err := user.RoleFromString(row.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid role %q",
				ports.ErrImportValidationFailed, n+1, row.Role)
		}

		records = append(records, ports.UserRecord{
			Name:  row.Name,
			Email: row.Email,
			Role:  role,
		})
	}

	return records, nil
}

// complete runs one JSON-mode completion and unmarshals the content into out.
func (i *Importer) complete(ctx context.Context, prompt string, out any) error {
	resp, err := i.client.CreateChatCompletion(ctx, &ChatCompletionRequest{
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
		return fmt.Errorf("%w: malformed completion: %w", ports.ErrImportValidationFailed, err)
	}

	return nil
}

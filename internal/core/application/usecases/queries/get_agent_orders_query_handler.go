package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAgentOrdersQueryHandler retrieves a single agent's orders from the
// database. Shares the read model with the all-orders listing.
type GetAgentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentOrdersQueryHandler creates a handler for per-agent listings.
func NewGetAgentOrdersQueryHandler(db *gorm.DB) GetAgentOrdersQueryHandler {
	return GetAgentOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the agent's orders, newest first.
func (h GetAgentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAgentOrdersQuery,
) ([]OrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrders(ctx, h.db, `
		SELECT
			id,
			agent_id,
			agent_name,
			customer_email,
			status,
			flags,
			total_amount,
			created_at
		FROM orders
		WHERE agent_id = ?
		ORDER BY created_at DESC
	`, query.AgentID().Bytes())
}

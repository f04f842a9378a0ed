package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetAgentOrdersQueryIsNotConstructed = errors.New(
	"GetAgentOrdersQuery must be created via NewGetAgentOrdersQuery constructor",
)

// GetAgentOrdersQuery retrieves the orders submitted by one agent, newest
// first. Backs the agent dashboard, which only sees its own orders.
type GetAgentOrdersQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentOrdersQuery creates a query scoped to a single agent.
func NewGetAgentOrdersQuery(agentID kernel.UUID) (GetAgentOrdersQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetAgentOrdersQuery{}, err
	}

	return GetAgentOrdersQuery{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentOrdersQueryIsNotConstructed)
}

// AgentID returns the owning agent's identifier.
func (q GetAgentOrdersQuery) AgentID() kernel.UUID {
	return q.agentID
}

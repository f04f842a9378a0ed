// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order in the system, newest first.
// Backs the admin dashboard, which sees all agents' orders.
//
// Example:
//
//	query := NewGetAllOrdersQuery()
//	handler := NewGetAllOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s  %s  %s\n", o.ID, o.Status, o.Total)
//	}
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// OrderItemResponse is a single line in the order read model.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Price     kernel.Money
	Quantity  int
	Shade     string
}

// OrderQueryResponse represents an order in the read model, shared by the
// all-orders and per-agent listings.
type OrderQueryResponse struct {
	ID            kernel.UUID
	AgentID       kernel.UUID
	AgentName     string
	CustomerEmail string
	Status        string
	Flags         []string
	Total         kernel.Money
	Items         []OrderItemResponse
	CreatedAt     time.Time
}

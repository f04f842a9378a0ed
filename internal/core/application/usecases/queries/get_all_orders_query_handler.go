package queries

import (
	"context"
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves all orders from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for the all-orders listing.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders, newest first, with
// their line items attached.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
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
		ORDER BY created_at DESC
	`)
}

// fetchOrders runs an order listing statement and attaches line items.
// Shared by the all-orders and per-agent handlers, which differ only in
// their WHERE clause.
func fetchOrders(ctx context.Context, db *gorm.DB, sql string, values ...any) ([]OrderQueryResponse, error) {
	orders := make([]OrderQueryResponse, 0)

	rows, err := db.WithContext(ctx).Raw(sql, values...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp OrderQueryResponse
		var id, agentID uuid.UUID
		var flagsJSON []byte
		var totalAmount int64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&agentID,
			&resp.AgentName,
			&resp.CustomerEmail,
			&resp.Status,
			&flagsJSON,
			&totalAmount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		ownerID, idErr := kernel.UUIDFromBytes(agentID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.AgentID = ownerID

		if len(flagsJSON) > 0 {
			if err = json.Unmarshal(flagsJSON, &resp.Flags); err != nil {
				return nil, err
			}
		}

		total, moneyErr := kernel.NewMoney(totalAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Total = total
		resp.CreatedAt = createdAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, itemsErr := fetchOrderItems(ctx, db, orders[i].ID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		orders[i].Items = items
	}

	return orders, nil
}

func fetchOrderItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			price_amount,
			quantity,
			shade
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID
		var priceAmount int64

		err = rows.Scan(
			&productID,
			&item.Name,
			&priceAmount,
			&item.Quantity,
			&item.Shade,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ProductID = id

		price, moneyErr := kernel.NewMoney(priceAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		item.Price = price

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

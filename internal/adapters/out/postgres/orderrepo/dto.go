// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The stored layout is versioned: SchemaVersion is written on every save and
// checked on restore, so rows from a future layout are rejected instead of
// silently misread.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID       uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentName     string    `gorm:"type:varchar(255);not null"`
	CustomerEmail string    `gorm:"type:varchar(255);not null"`
	Status        string    `gorm:"type:varchar(32);not null;index"`
	Flags         []string  `gorm:"type:jsonb;serializer:json"`
	TotalAmount   int64     `gorm:"type:bigint;not null"`
	SchemaVersion int       `gorm:"type:int;not null"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null;index"`
	Items         []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents a persisted order line. Lines are immutable snapshots
// of the catalog at submission time; position preserves submission order.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PriceAmount int64     `gorm:"type:bigint;not null"`
	Quantity    int       `gorm:"type:int;not null"`
	Shade       string    `gorm:"type:varchar(255)"`
	Position    int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   item.ProductID().Bytes(),
			Name:        item.Name(),
			PriceAmount: item.Price().Amount(),
			Quantity:    item.Quantity(),
			Shade:       item.Shade(),
			Position:    i,
		})
	}

	return OrderDTO{
		ID:            orderID,
		AgentID:       aggregate.AgentID().Bytes(),
		AgentName:     aggregate.AgentName(),
		CustomerEmail: aggregate.CustomerEmail(),
		Status:        aggregate.Status().String(),
		Flags:         aggregate.Flags(),
		TotalAmount:   aggregate.Total().Amount(),
		SchemaVersion: order.SchemaVersion,
		CreatedAt:     aggregate.CreatedAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including stored status and total
// using RestoreOrder, which rejects unsupported schema versions.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		agentID,
		dto.AgentName,
		dto.CustomerEmail,
		items,
		total,
		status,
		dto.Flags,
		dto.CreatedAt,
		dto.SchemaVersion,
	)
}

// itemToDomain converts an order line DTO to a domain value.
func itemToDomain(dto ItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.Name, price, dto.Quantity, dto.Shade)
}

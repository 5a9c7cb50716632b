// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence.
package paymentrepo

import (
	"encoding/json"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentDTO represents the database structure for persisting payment
// aggregates. The gateway transaction id is indexed (not unique: payments
// that never reached the gateway all carry the empty string) because webhook
// handlers look payments up by it.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Provider string
	Amount   int64
	Currency string
	Status   int `gorm:"index"`

	GatewayTransactionID string `gorm:"index"`
	ClientSecret         string

	ParentPaymentID *uuid.UUID     `gorm:"type:uuid"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment domain aggregate to its database
// representation.
func fromDomain(aggregate *payment.Payment) (PaymentDTO, error) {
	var parentID *uuid.UUID
	if id := aggregate.ParentPaymentID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	metadata, err := json.Marshal(aggregate.Metadata())
	if err != nil {
		return PaymentDTO{}, err
	}

	return PaymentDTO{
		ID:                   aggregate.ID().Bytes(),
		OrderID:              aggregate.OrderID().Bytes(),
		Provider:             aggregate.Provider(),
		Amount:               aggregate.Amount(),
		Currency:             aggregate.Currency(),
		Status:               int(aggregate.Status()),
		GatewayTransactionID: aggregate.GatewayTransactionID(),
		ClientSecret:         aggregate.ClientSecret(),
		ParentPaymentID:      parentID,
		Metadata:             datatypes.JSON(metadata),
		CreatedAt:            aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a payment domain aggregate using
// RestorePayment.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentPaymentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentPaymentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	metadata := map[string]string{}
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return payment.RestorePayment(payment.RestorePaymentParams{
		ID:                   id,
		OrderID:              orderID,
		Provider:             dto.Provider,
		Amount:               dto.Amount,
		Currency:             dto.Currency,
		Status:               payment.Status(dto.Status),
		GatewayTransactionID: dto.GatewayTransactionID,
		ClientSecret:         dto.ClientSecret,
		ParentPaymentID:      parentID,
		Metadata:             metadata,
		CreatedAt:            dto.CreatedAt,
	})
}

// Package negotiationrepo provides data transfer objects and mapping
// functions for negotiation persistence. The proposal is a tagged union in
// the domain; it is stored as a type discriminator column plus a JSONB
// payload carrying the variant's fields.
package negotiationrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NegotiationDTO represents the database structure for persisting
// negotiation aggregates.
type NegotiationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	ProposalType    string
	ProposalPayload datatypes.JSON `gorm:"type:jsonb"`
	Message         string

	RequesterID   string `gorm:"index"`
	RequesterRole string

	Status        int `gorm:"index"`
	CreatedAt     time.Time
	RespondedAt   *time.Time
	DisputeCaseID string
}

// TableName specifies the database table name for negotiation entities.
func (NegotiationDTO) TableName() string {
	return "negotiations"
}

type extendDeliveryDoc struct {
	AdditionalDays int `json:"additionalDays"`
}

type cancelOrderDoc struct {
	Reason string `json:"reason"`
}

type modifyOrderDoc struct {
	NewUnitPrice int64  `json:"newUnitPrice"`
	ScopeNote    string `json:"scopeNote,omitempty"`
}

// fromDomain converts a negotiation domain aggregate to its database
// representation.
func fromDomain(aggregate *negotiation.Negotiation) (NegotiationDTO, error) {
	payload, err := marshalProposal(aggregate.Proposal())
	if err != nil {
		return NegotiationDTO{}, err
	}

	return NegotiationDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		ProposalType:    aggregate.Proposal().Type().String(),
		ProposalPayload: payload,
		Message:         aggregate.Message(),
		RequesterID:     aggregate.RequesterID(),
		RequesterRole:   aggregate.RequesterRole().String(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		RespondedAt:     aggregate.RespondedAt(),
		DisputeCaseID:   aggregate.DisputeCaseID(),
	}, nil
}

// toDomain converts a database DTO to a negotiation domain aggregate using
// RestoreNegotiation.
func toDomain(dto NegotiationDTO) (*negotiation.Negotiation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	proposal, err := unmarshalProposal(dto.ProposalType, dto.ProposalPayload)
	if err != nil {
		return nil, err
	}
	role, err := kernel.PartyRoleFromString(dto.RequesterRole)
	if err != nil {
		return nil, err
	}

	return negotiation.RestoreNegotiation(negotiation.RestoreNegotiationParams{
		ID:            id,
		OrderID:       orderID,
		Proposal:      proposal,
		Message:       dto.Message,
		RequesterID:   dto.RequesterID,
		RequesterRole: role,
		Status:        negotiation.Status(dto.Status),
		CreatedAt:     dto.CreatedAt,
		RespondedAt:   dto.RespondedAt,
		DisputeCaseID: dto.DisputeCaseID,
	})
}

func marshalProposal(proposal negotiation.Proposal) (datatypes.JSON, error) {
	var doc any
	switch p := proposal.(type) {
	case negotiation.ExtendDelivery:
		doc = extendDeliveryDoc{AdditionalDays: p.AdditionalDays()}
	case negotiation.CancelOrder:
		doc = cancelOrderDoc{Reason: p.Reason()}
	case negotiation.ModifyOrder:
		doc = modifyOrderDoc{NewUnitPrice: p.NewUnitPrice(), ScopeNote: p.ScopeNote()}
	default:
		return nil, fmt.Errorf("unsupported proposal type %T", proposal)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func unmarshalProposal(proposalType string, raw datatypes.JSON) (negotiation.Proposal, error) {
	typ, err := negotiation.TypeFromString(proposalType)
	if err != nil {
		return nil, err
	}

	switch typ {
	case negotiation.TypeExtendDelivery:
		var doc extendDeliveryDoc
		if err = json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return negotiation.NewExtendDelivery(doc.AdditionalDays)
	case negotiation.TypeCancelOrder:
		var doc cancelOrderDoc
		if err = json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return negotiation.NewCancelOrder(doc.Reason)
	case negotiation.TypeModifyOrder:
		var doc modifyOrderDoc
		if err = json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return negotiation.NewModifyOrder(doc.NewUnitPrice, doc.ScopeNote)
	default:
		return nil, fmt.Errorf("unsupported proposal type %q", proposalType)
	}
}

// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Scalar lifecycle fields live in regular columns for
// indexing; the denormalized snapshots and the append-only collections
// (requirements, deliveries, events) are stored as JSONB documents, since
// they are only ever read back whole through the aggregate.
package orderrepo

import (
	"encoding/json"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID string

	Gig    GigDTO     `gorm:"embedded;embeddedPrefix:gig_"`
	Buyer  PartyDTO   `gorm:"embedded;embeddedPrefix:buyer_"`
	Seller PartyDTO   `gorm:"embedded;embeddedPrefix:seller_"`
	Price  PricingDTO `gorm:"embedded;embeddedPrefix:price_"`

	IsCustomOffer bool
	Status        int `gorm:"index"`

	OrderedAt            time.Time
	ExpectedDeliveryDays int
	DueDate              time.Time `gorm:"index"`
	ClockPaused          bool
	ClockRemainingNanos  int64

	CurrentNegotiationID *uuid.UUID `gorm:"type:uuid"`
	RevisionCount        int
	MaxRevision          *int

	Requirements datatypes.JSON `gorm:"type:jsonb"`
	Deliveries   datatypes.JSON `gorm:"type:jsonb"`
	Events       datatypes.JSON `gorm:"type:jsonb"`
	Cancellation datatypes.JSON `gorm:"type:jsonb"`
	Dispute      datatypes.JSON `gorm:"type:jsonb"`
	BuyerReview  datatypes.JSON `gorm:"type:jsonb"`
	SellerReview datatypes.JSON `gorm:"type:jsonb"`
	ApprovedAt   *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// GigDTO represents the embedded gig snapshot columns.
type GigDTO struct {
	ID          string
	Title       string
	Description string
	CoverImage  string
}

// PartyDTO represents the embedded party snapshot columns.
type PartyDTO struct {
	ID       string `gorm:"index"`
	Username string
	Email    string
	Picture  string
}

// PricingDTO represents the embedded commercial-terms columns.
// All amounts are integer cents.
type PricingDTO struct {
	Quantity    int
	UnitPrice   int64
	ServiceFee  int64
	TotalAmount int64
	Currency    string
}

type requirementDoc struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Required   bool   `json:"required"`
	WithFile   bool   `json:"withFile"`
	AnswerText string `json:"answerText,omitempty"`
	AnswerFile string `json:"answerFile,omitempty"`
	Answered   bool   `json:"answered"`
}

type storedFileDoc struct {
	DownloadURL string `json:"downloadUrl"`
	SecureURL   string `json:"secureUrl,omitempty"`
	FileType    string `json:"fileType,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	PublicID    string `json:"publicId,omitempty"`
	FileSize    int64  `json:"fileSize,omitempty"`
}

type deliveryDoc struct {
	Message     string          `json:"message,omitempty"`
	Files       []storedFileDoc `json:"files"`
	Approval    int             `json:"approval"`
	DeliveredAt time.Time       `json:"deliveredAt"`
	RespondedAt *time.Time      `json:"respondedAt,omitempty"`
}

type eventDoc struct {
	Type       string            `json:"type"`
	OccurredAt time.Time         `json:"occurredAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type cancellationDoc struct {
	RequestedBy string `json:"requestedBy"`
	Reason      string `json:"reason"`
}

type disputeDoc struct {
	CaseID      string    `json:"caseId"`
	EscalatedAt time.Time `json:"escalatedAt"`
}

type reviewDoc struct {
	Rating     int       `json:"rating"`
	Text       string    `json:"text,omitempty"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var negotiationID *uuid.UUID
	if id := aggregate.CurrentNegotiationID(); id != nil {
		raw := id.Bytes()
		negotiationID = &raw
	}

	requirements, err := marshalRequirements(aggregate.Requirements())
	if err != nil {
		return OrderDTO{}, err
	}
	deliveries, err := marshalDeliveries(aggregate.Deliveries())
	if err != nil {
		return OrderDTO{}, err
	}
	events, err := marshalEvents(aggregate.Events())
	if err != nil {
		return OrderDTO{}, err
	}
	cancellation, err := marshalCancellation(aggregate.Cancellation())
	if err != nil {
		return OrderDTO{}, err
	}
	dispute, err := marshalDispute(aggregate.Dispute())
	if err != nil {
		return OrderDTO{}, err
	}
	buyerReview, err := marshalReview(aggregate.BuyerReview())
	if err != nil {
		return OrderDTO{}, err
	}
	sellerReview, err := marshalReview(aggregate.SellerReview())
	if err != nil {
		return OrderDTO{}, err
	}

	gig := aggregate.Gig()
	buyer := aggregate.Buyer()
	seller := aggregate.Seller()
	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		InvoiceID: aggregate.InvoiceID(),
		Gig: GigDTO{
			ID:          gig.ID(),
			Title:       gig.Title(),
			Description: gig.Description(),
			CoverImage:  gig.CoverImage(),
		},
		Buyer: PartyDTO{
			ID:       buyer.ID(),
			Username: buyer.Username(),
			Email:    buyer.Email(),
			Picture:  buyer.Picture(),
		},
		Seller: PartyDTO{
			ID:       seller.ID(),
			Username: seller.Username(),
			Email:    seller.Email(),
			Picture:  seller.Picture(),
		},
		Price: PricingDTO{
			Quantity:    pricing.Quantity(),
			UnitPrice:   pricing.UnitPrice(),
			ServiceFee:  pricing.ServiceFee(),
			TotalAmount: pricing.TotalAmount(),
			Currency:    pricing.Currency(),
		},
		IsCustomOffer:        aggregate.IsCustomOffer(),
		Status:               int(aggregate.Status()),
		OrderedAt:            aggregate.OrderedAt(),
		ExpectedDeliveryDays: aggregate.ExpectedDeliveryDays(),
		DueDate:              aggregate.DueDate(),
		ClockPaused:          aggregate.Clock().IsPaused(),
		ClockRemainingNanos:  int64(aggregate.Clock().Remaining()),
		CurrentNegotiationID: negotiationID,
		RevisionCount:        aggregate.RevisionCount(),
		MaxRevision:          aggregate.MaxRevision(),
		Requirements:         requirements,
		Deliveries:           deliveries,
		Events:               events,
		Cancellation:         cancellation,
		Dispute:              dispute,
		BuyerReview:          buyerReview,
		SellerReview:         sellerReview,
		ApprovedAt:           aggregate.ApprovedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var negotiationID *kernel.UUID
	if dto.CurrentNegotiationID != nil {
		nID, negErr := kernel.UUIDFromBytes((*dto.CurrentNegotiationID)[:])
		if negErr != nil {
			return nil, negErr
		}
		negotiationID = &nID
	}

	gig, err := order.NewGigSnapshot(dto.Gig.ID, dto.Gig.Title, dto.Gig.Description, dto.Gig.CoverImage)
	if err != nil {
		return nil, err
	}
	buyer, err := order.NewParty(dto.Buyer.ID, dto.Buyer.Username, dto.Buyer.Email, dto.Buyer.Picture)
	if err != nil {
		return nil, err
	}
	seller, err := order.NewParty(dto.Seller.ID, dto.Seller.Username, dto.Seller.Email, dto.Seller.Picture)
	if err != nil {
		return nil, err
	}
	pricing, err := order.NewPricing(dto.Price.Quantity, dto.Price.UnitPrice,
		dto.Price.ServiceFee, dto.Price.TotalAmount, dto.Price.Currency)
	if err != nil {
		return nil, err
	}

	requirements, err := unmarshalRequirements(dto.Requirements)
	if err != nil {
		return nil, err
	}
	deliveries, err := unmarshalDeliveries(dto.Deliveries)
	if err != nil {
		return nil, err
	}
	events, err := unmarshalEvents(dto.Events)
	if err != nil {
		return nil, err
	}
	cancellation, err := unmarshalCancellation(dto.Cancellation)
	if err != nil {
		return nil, err
	}
	dispute, err := unmarshalDispute(dto.Dispute)
	if err != nil {
		return nil, err
	}
	buyerReview, err := unmarshalReview(dto.BuyerReview)
	if err != nil {
		return nil, err
	}
	sellerReview, err := unmarshalReview(dto.SellerReview)
	if err != nil {
		return nil, err
	}

	clock := order.RunningClock()
	if dto.ClockPaused {
		clock = order.PausedClock(time.Duration(dto.ClockRemainingNanos))
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                   id,
		InvoiceID:            dto.InvoiceID,
		Gig:                  gig,
		Buyer:                buyer,
		Seller:               seller,
		Pricing:              pricing,
		IsCustomOffer:        dto.IsCustomOffer,
		Status:               order.Status(dto.Status),
		OrderedAt:            dto.OrderedAt,
		ExpectedDeliveryDays: dto.ExpectedDeliveryDays,
		DueDate:              dto.DueDate,
		Clock:                clock,
		CurrentNegotiationID: negotiationID,
		RevisionCount:        dto.RevisionCount,
		MaxRevision:          dto.MaxRevision,
		Requirements:         requirements,
		Deliveries:           deliveries,
		Events:               events,
		Cancellation:         cancellation,
		Dispute:              dispute,
		BuyerReview:          buyerReview,
		SellerReview:         sellerReview,
		ApprovedAt:           dto.ApprovedAt,
	})
}

func marshalDoc(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func marshalRequirements(requirements []order.Requirement) (datatypes.JSON, error) {
	docs := make([]requirementDoc, 0, len(requirements))
	for _, r := range requirements {
		docs = append(docs, requirementDoc{
			ID:         r.ID(),
			Question:   r.Question(),
			Required:   r.Required(),
			WithFile:   r.WithFile(),
			AnswerText: r.AnswerText(),
			AnswerFile: r.AnswerFile(),
			Answered:   r.Answered(),
		})
	}
	return marshalDoc(docs)
}

func unmarshalRequirements(raw datatypes.JSON) ([]order.Requirement, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []requirementDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	requirements := make([]order.Requirement, 0, len(docs))
	for _, doc := range docs {
		r, err := order.RestoreRequirement(doc.ID, doc.Question, doc.Required, doc.WithFile,
			doc.AnswerText, doc.AnswerFile, doc.Answered)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, r)
	}
	return requirements, nil
}

func marshalDeliveries(deliveries []order.Delivery) (datatypes.JSON, error) {
	docs := make([]deliveryDoc, 0, len(deliveries))
	for _, d := range deliveries {
		files := make([]storedFileDoc, 0)
		for _, f := range d.Files() {
			files = append(files, storedFileDoc(f))
		}
		docs = append(docs, deliveryDoc{
			Message:     d.Message(),
			Files:       files,
			Approval:    int(d.Approval()),
			DeliveredAt: d.DeliveredAt(),
			RespondedAt: d.RespondedAt(),
		})
	}
	return marshalDoc(docs)
}

func unmarshalDeliveries(raw datatypes.JSON) ([]order.Delivery, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []deliveryDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	deliveries := make([]order.Delivery, 0, len(docs))
	for _, doc := range docs {
		files := make([]order.StoredFile, 0, len(doc.Files))
		for _, f := range doc.Files {
			files = append(files, order.StoredFile(f))
		}
		d, err := order.RestoreDelivery(doc.Message, files, order.Approval(doc.Approval),
			doc.DeliveredAt, doc.RespondedAt)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

func marshalEvents(events []order.Event) (datatypes.JSON, error) {
	docs := make([]eventDoc, 0, len(events))
	for _, e := range events {
		docs = append(docs, eventDoc{
			Type:       string(e.Type),
			OccurredAt: e.OccurredAt,
			Metadata:   e.Metadata,
		})
	}
	return marshalDoc(docs)
}

func unmarshalEvents(raw datatypes.JSON) ([]order.Event, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []eventDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, order.Event{
			Type:       order.EventType(doc.Type),
			OccurredAt: doc.OccurredAt,
			Metadata:   doc.Metadata,
		})
	}
	return events, nil
}

func marshalCancellation(c *order.Cancellation) (datatypes.JSON, error) {
	if c == nil {
		return nil, nil
	}
	return marshalDoc(cancellationDoc{
		RequestedBy: c.RequestedBy().String(),
		Reason:      c.Reason(),
	})
}

func unmarshalCancellation(raw datatypes.JSON) (*order.Cancellation, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var doc cancellationDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	role, err := kernel.PartyRoleFromString(doc.RequestedBy)
	if err != nil {
		return nil, err
	}
	c, err := order.NewCancellation(role, doc.Reason)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func marshalDispute(d *order.Dispute) (datatypes.JSON, error) {
	if d == nil {
		return nil, nil
	}
	return marshalDoc(disputeDoc{
		CaseID:      d.CaseID(),
		EscalatedAt: d.EscalatedAt(),
	})
}

func unmarshalDispute(raw datatypes.JSON) (*order.Dispute, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var doc disputeDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	d, err := order.NewDispute(doc.CaseID, doc.EscalatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func marshalReview(r *order.Review) (datatypes.JSON, error) {
	if r == nil {
		return nil, nil
	}
	return marshalDoc(reviewDoc{
		Rating:     r.Rating(),
		Text:       r.Text(),
		ReviewedAt: r.ReviewedAt(),
	})
}

func unmarshalReview(raw datatypes.JSON) (*order.Review, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var doc reviewDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	r, err := order.NewReview(doc.Rating, doc.Text, doc.ReviewedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

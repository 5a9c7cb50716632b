package commands_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/payment"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/require"
)

const (
	buyerID  = "buyer-7"
	sellerID = "seller-9"
)

var fixtureTime = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func fixtureGig() ports.Gig {
	return ports.Gig{
		ID:                   "gig-42",
		SellerID:             sellerID,
		Title:                "I will design a logo",
		Description:          "Minimal vector logo design",
		CoverImage:           "https://cdn.example.com/gig-42.png",
		UnitPrice:            5000,
		Currency:             "USD",
		ExpectedDeliveryDays: 3,
		Requirements: []ports.GigRequirement{
			{Question: "Describe your brand", Required: true, WithFile: false},
		},
	}
}

func fixtureBuyerProfile() ports.Profile {
	return ports.Profile{ID: buyerID, Username: "ada", Email: "ada@example.com", Country: "DE"}
}

func fixtureSellerProfile() ports.Profile {
	return ports.Profile{ID: sellerID, Username: "grace", Email: "grace@example.com", Country: "US"}
}

func fixtureOrder(t *testing.T, requirements []order.Requirement) *order.Order {
	t.Helper()

	gig, err := order.NewGigSnapshot("gig-42", "I will design a logo", "Minimal vector logo design", "")
	require.NoError(t, err)
	buyer, err := order.NewParty(buyerID, "ada", "ada@example.com", "")
	require.NoError(t, err)
	seller, err := order.NewParty(sellerID, "grace", "grace@example.com", "")
	require.NoError(t, err)
	pricing, err := order.NewPricing(1, 5000, 400, 5400, "USD")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), order.NewInvoiceID(fixtureTime), gig, buyer, seller, pricing,
		3, nil, requirements, false, fixtureTime)
	require.NoError(t, err)
	return o
}

func fixtureRequirements(t *testing.T) []order.Requirement {
	t.Helper()

	req, err := order.NewRequirement("req-1", "Describe your brand", true, false)
	require.NoError(t, err)
	return []order.Requirement{req}
}

func fixtureActiveOrder(t *testing.T, requirements []order.Requirement) *order.Order {
	t.Helper()

	o := fixtureOrder(t, requirements)
	require.NoError(t, o.Activate(fixtureTime.Add(time.Minute)))
	return o
}

func fixtureInProgressOrder(t *testing.T) *order.Order {
	t.Helper()

	o := fixtureActiveOrder(t, fixtureRequirements(t))
	answers := []order.FulfilledAnswer{{RequirementID: "req-1", Text: "bold and simple"}}
	require.NoError(t, o.FulfillRequirements(answers, fixtureTime.Add(2*time.Minute)))
	return o
}

func fixtureDeliveredOrder(t *testing.T) *order.Order {
	t.Helper()

	o := fixtureInProgressOrder(t)
	files := []order.StoredFile{{DownloadURL: "https://files.example.com/logo.svg", FileName: "logo.svg"}}
	require.NoError(t, o.Deliver("first draft", files, fixtureTime.Add(24*time.Hour)))
	return o
}

func fixturePendingPayment(t *testing.T, orderID kernel.UUID) *payment.Payment {
	t.Helper()

	p, err := payment.NewPayment(kernel.NewUUID(), orderID, "stripe", 5400, "USD", fixtureTime)
	require.NoError(t, err)
	require.NoError(t, p.AttachGatewayIntent("txn_123", "secret_123"))
	return p
}

func fixturePaidPayment(t *testing.T, orderID kernel.UUID) *payment.Payment {
	t.Helper()

	p := fixturePendingPayment(t, orderID)
	require.NoError(t, p.MarkPaid(fixtureTime.Add(time.Minute)))
	return p
}

func fixtureRefundPendingPayment(t *testing.T, orderID kernel.UUID) *payment.Payment {
	t.Helper()

	p := fixturePaidPayment(t, orderID)
	require.NoError(t, p.BeginRefund())
	return p
}

func fixtureNegotiation(
	t *testing.T,
	orderID kernel.UUID,
	proposal negotiation.Proposal,
	requesterRole kernel.PartyRole,
) *negotiation.Negotiation {
	t.Helper()

	requesterID := buyerID
	if requesterRole == kernel.RoleSeller {
		requesterID = sellerID
	}

	n, err := negotiation.NewNegotiation(
		kernel.NewUUID(), orderID, proposal, requesterID, requesterRole,
		"please consider", fixtureTime.Add(30*time.Hour))
	require.NoError(t, err)
	return n
}

package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testGig(t *testing.T) order.GigSnapshot {
	t.Helper()
	gig, err := order.NewGigSnapshot("gig-1", "Logo design", "A minimal logo", "https://cdn.test/cover.png")
	require.NoError(t, err)
	return gig
}

func testBuyer(t *testing.T) order.Party {
	t.Helper()
	buyer, err := order.NewParty("buyer-1", "alice", "alice@test.dev", "")
	require.NoError(t, err)
	return buyer
}

func testSeller(t *testing.T) order.Party {
	t.Helper()
	seller, err := order.NewParty("seller-1", "bob", "bob@test.dev", "")
	require.NoError(t, err)
	return seller
}

func testPricing(t *testing.T) order.Pricing {
	t.Helper()
	pricing, err := order.NewPricing(2, 5000, 550, 11550, "USD")
	require.NoError(t, err)
	return pricing
}

func testRequirements(t *testing.T) []order.Requirement {
	t.Helper()
	brief, err := order.NewRequirement("req-1", "Describe your brand", true, false)
	require.NoError(t, err)
	assets, err := order.NewRequirement("req-2", "Upload current assets", true, true)
	require.NoError(t, err)
	extras, err := order.NewRequirement("req-3", "Anything else?", false, false)
	require.NoError(t, err)
	return []order.Requirement{brief, assets, extras}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewInvoiceID(baseTime),
		testGig(t),
		testBuyer(t),
		testSeller(t),
		testPricing(t),
		3,
		nil,
		testRequirements(t),
		false,
		baseTime,
	)
	require.NoError(t, err)
	return o
}

func newActiveOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.Activate(baseTime))
	return o
}

func fullAnswers() []order.FulfilledAnswer {
	return []order.FulfilledAnswer{
		{RequirementID: "req-1", Text: "We sell artisanal coffee"},
		{RequirementID: "req-2", FileURL: "https://cdn.test/assets.zip"},
	}
}

func newInProgressOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newActiveOrder(t)
	require.NoError(t, o.FulfillRequirements(fullAnswers(), baseTime))
	return o
}

func deliveryFiles() []order.StoredFile {
	return []order.StoredFile{{
		DownloadURL: "https://cdn.test/final.zip",
		SecureURL:   "https://cdn.test/final.zip",
		FileType:    "zip",
		FileName:    "final.zip",
		PublicID:    "final",
		FileSize:    2048,
	}}
}

func newDeliveredOrder(t *testing.T, deliveredAt time.Time) *order.Order {
	t.Helper()
	o := newInProgressOrder(t)
	require.NoError(t, o.Deliver("first draft", deliveryFiles(), deliveredAt))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order with a running clock", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.False(t, o.Clock().IsPaused())
		assert.True(t, o.DueDate().IsZero())
		assert.Nil(t, o.CurrentNegotiationID())
		assert.Empty(t, o.Events())
		assert.Len(t, o.Requirements(), 3)
	})

	t.Run("rejects an unconstructed id", func(t *testing.T) {
		var zeroID kernel.UUID
		_, err := order.NewOrder(zeroID, "INV-20250310-000001", testGig(t), testBuyer(t),
			testSeller(t), testPricing(t), 3, nil, nil, false, baseTime)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects an empty invoice id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", testGig(t), testBuyer(t),
			testSeller(t), testPricing(t), 3, nil, nil, false, baseTime)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects buyer and seller being the same account", func(t *testing.T) {
		same, err := order.NewParty("buyer-1", "alice", "alice@test.dev", "")
		require.NoError(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "INV-20250310-000001", testGig(t), same,
			same, testPricing(t), 3, nil, nil, false, baseTime)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-positive delivery days", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "INV-20250310-000001", testGig(t), testBuyer(t),
			testSeller(t), testPricing(t), 0, nil, nil, false, baseTime)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a zero revision cap", func(t *testing.T) {
		zero := 0
		_, err := order.NewOrder(kernel.NewUUID(), "INV-20250310-000001", testGig(t), testBuyer(t),
			testSeller(t), testPricing(t), 3, &zero, nil, false, baseTime)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderValidate(t *testing.T) {
	assert.NoError(t, newPendingOrder(t).Validate())

	var direct order.Order
	assert.ErrorIs(t, direct.Validate(), order.ErrOrderIsNotConstructed)
}

func TestActivate(t *testing.T) {
	t.Run("moves pending to active and records placement", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Activate(baseTime))

		assert.Equal(t, order.Active, o.Status())
		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderPlaced, events[0].Type)
		assert.Equal(t, baseTime, events[0].OccurredAt)
	})

	t.Run("cannot activate twice", func(t *testing.T) {
		o := newActiveOrder(t)
		assert.ErrorIs(t, o.Activate(baseTime), errs.ErrConflict)
	})
}

func TestValidateRequirementSubmission(t *testing.T) {
	t.Run("passes when every required entry has text or file", func(t *testing.T) {
		o := newActiveOrder(t)
		err := o.ValidateRequirementSubmission([]order.RequirementAnswer{
			{RequirementID: "req-1", Text: "We sell artisanal coffee"},
			{RequirementID: "req-2", HasFile: true},
		})
		assert.NoError(t, err)
	})

	t.Run("enumerates missing required entries", func(t *testing.T) {
		o := newActiveOrder(t)
		err := o.ValidateRequirementSubmission([]order.RequirementAnswer{
			{RequirementID: "req-3", Text: "nothing else"},
		})

		var missingErr *errs.MissingRequirementsError
		require.ErrorAs(t, err, &missingErr)
		assert.ElementsMatch(t, []string{"req-1", "req-2"}, missingErr.Missing)
	})

	t.Run("an answer without text counts as missing unless it has a file", func(t *testing.T) {
		o := newActiveOrder(t)
		err := o.ValidateRequirementSubmission([]order.RequirementAnswer{
			{RequirementID: "req-1", Text: ""},
			{RequirementID: "req-2", HasFile: true},
		})

		var missingErr *errs.MissingRequirementsError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, []string{"req-1"}, missingErr.Missing)
	})

	t.Run("rejects answers for unknown requirement ids", func(t *testing.T) {
		o := newActiveOrder(t)
		err := o.ValidateRequirementSubmission([]order.RequirementAnswer{
			{RequirementID: "req-1", Text: "x"},
			{RequirementID: "req-2", HasFile: true},
			{RequirementID: "bogus", Text: "y"},
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("conflicts outside the active status", func(t *testing.T) {
		o := newPendingOrder(t)
		err := o.ValidateRequirementSubmission(nil)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestFulfillRequirements(t *testing.T) {
	t.Run("starts the order and computes the due date", func(t *testing.T) {
		o := newActiveOrder(t)

		require.NoError(t, o.FulfillRequirements(fullAnswers(), baseTime))

		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, baseTime.Add(3*24*time.Hour), o.DueDate())
		assert.False(t, o.Clock().IsPaused())

		reqs := o.Requirements()
		assert.True(t, reqs[0].Answered())
		assert.Equal(t, "We sell artisanal coffee", reqs[0].AnswerText())
		assert.True(t, reqs[1].Answered())
		assert.Equal(t, "https://cdn.test/assets.zip", reqs[1].AnswerFile())
		assert.False(t, reqs[2].Answered())

		events := o.Events()
		require.Len(t, events, 3)
		assert.Equal(t, order.EventRequirementsSubmitted, events[1].Type)
		assert.Equal(t, order.EventOrderStarted, events[2].Type)
	})

	t.Run("rejects an incomplete submission before mutating anything", func(t *testing.T) {
		o := newActiveOrder(t)

		err := o.FulfillRequirements([]order.FulfilledAnswer{
			{RequirementID: "req-1", Text: "only text"},
		}, baseTime)

		assert.ErrorIs(t, err, errs.ErrMissingRequirements)
		assert.Equal(t, order.Active, o.Status())
		assert.True(t, o.DueDate().IsZero())
	})

	t.Run("conflicts once already in progress", func(t *testing.T) {
		o := newInProgressOrder(t)
		err := o.FulfillRequirements(fullAnswers(), baseTime)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestDeliver(t *testing.T) {
	t.Run("freezes the clock and appends the delivery", func(t *testing.T) {
		o := newInProgressOrder(t)
		deliveredAt := baseTime.Add(24 * time.Hour)

		require.NoError(t, o.Deliver("first draft", deliveryFiles(), deliveredAt))

		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.Clock().IsPaused())
		assert.Equal(t, 2*24*time.Hour, o.Clock().Remaining())

		deliveries := o.Deliveries()
		require.Len(t, deliveries, 1)
		assert.Equal(t, "first draft", deliveries[0].Message())
		assert.Equal(t, order.AwaitingReview, deliveries[0].Approval())
		assert.Equal(t, deliveredAt, deliveries[0].DeliveredAt())

		events := o.Events()
		assert.Equal(t, order.EventOrderDelivered, events[len(events)-1].Type)
	})

	t.Run("requires at least one file", func(t *testing.T) {
		o := newInProgressOrder(t)
		err := o.Deliver("empty handed", nil, baseTime)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("conflicts while a previous delivery awaits review", func(t *testing.T) {
		o := newDeliveredOrder(t, baseTime.Add(24*time.Hour))

		err := o.Deliver("second attempt", deliveryFiles(), baseTime.Add(25*time.Hour))

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Len(t, o.Deliveries(), 1)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("conflicts while a negotiation is pending", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.BeginNegotiation(kernel.NewUUID(), false, baseTime.Add(time.Hour)))

		err := o.Deliver("draft", deliveryFiles(), baseTime.Add(2*time.Hour))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestValidateDelivery(t *testing.T) {
	t.Run("passes for an in-progress order without mutating it", func(t *testing.T) {
		o := newInProgressOrder(t)

		require.NoError(t, o.ValidateDelivery())

		assert.Equal(t, order.InProgress, o.Status())
		assert.Empty(t, o.Deliveries())
	})

	t.Run("conflicts outside the in-progress state", func(t *testing.T) {
		o := newActiveOrder(t)
		assert.ErrorIs(t, o.ValidateDelivery(), errs.ErrConflict)
	})

	t.Run("conflicts while a previous delivery awaits review", func(t *testing.T) {
		o := newDeliveredOrder(t, baseTime.Add(24*time.Hour))
		assert.ErrorIs(t, o.ValidateDelivery(), errs.ErrConflict)
	})
}

func TestApproveDelivery(t *testing.T) {
	t.Run("completes the order", func(t *testing.T) {
		deliveredAt := baseTime.Add(24 * time.Hour)
		approvedAt := deliveredAt.Add(6 * time.Hour)
		o := newDeliveredOrder(t, deliveredAt)

		require.NoError(t, o.ApproveDelivery(approvedAt))

		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.ApprovedAt())
		assert.Equal(t, approvedAt, *o.ApprovedAt())

		deliveries := o.Deliveries()
		assert.Equal(t, order.Approved, deliveries[0].Approval())
		require.NotNil(t, deliveries[0].RespondedAt())
		assert.Equal(t, approvedAt, *deliveries[0].RespondedAt())
	})

	t.Run("conflicts without a delivery to review", func(t *testing.T) {
		o := newInProgressOrder(t)
		assert.ErrorIs(t, o.ApproveDelivery(baseTime), errs.ErrConflict)
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		o := newDeliveredOrder(t, baseTime.Add(24*time.Hour))
		require.NoError(t, o.ApproveDelivery(baseTime.Add(30*time.Hour)))
		assert.ErrorIs(t, o.ApproveDelivery(baseTime.Add(31*time.Hour)), errs.ErrConflict)
	})
}

func TestRequestRevision(t *testing.T) {
	t.Run("resumes the clock from the frozen remainder", func(t *testing.T) {
		deliveredAt := baseTime.Add(24 * time.Hour) // 2 days left on the clock
		o := newDeliveredOrder(t, deliveredAt)

		revisedAt := deliveredAt.Add(3 * 24 * time.Hour) // review took longer than the deadline
		require.NoError(t, o.RequestRevision(revisedAt))

		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, 1, o.RevisionCount())
		assert.False(t, o.Clock().IsPaused())
		assert.Equal(t, revisedAt.Add(2*24*time.Hour), o.DueDate())
		assert.Equal(t, order.RevisionRequested, o.Deliveries()[0].Approval())
	})

	t.Run("conflicts past the revision cap", func(t *testing.T) {
		limit := 1
		o, err := order.NewOrder(kernel.NewUUID(), order.NewInvoiceID(baseTime), testGig(t),
			testBuyer(t), testSeller(t), testPricing(t), 3, &limit, testRequirements(t), false, baseTime)
		require.NoError(t, err)
		require.NoError(t, o.Activate(baseTime))
		require.NoError(t, o.FulfillRequirements(fullAnswers(), baseTime))

		require.NoError(t, o.Deliver("v1", deliveryFiles(), baseTime.Add(time.Hour)))
		require.NoError(t, o.RequestRevision(baseTime.Add(2*time.Hour)))

		require.NoError(t, o.Deliver("v2", deliveryFiles(), baseTime.Add(3*time.Hour)))
		err = o.RequestRevision(baseTime.Add(4 * time.Hour))

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, 1, o.RevisionCount())
	})
}

func TestCancelUnilaterally(t *testing.T) {
	t.Run("buyer cancels a pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.CancelUnilaterally(kernel.RoleBuyer, "changed my mind", baseTime))

		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.Cancellation())
		assert.Equal(t, kernel.RoleBuyer, o.Cancellation().RequestedBy())
		assert.Equal(t, "changed my mind", o.Cancellation().Reason())

		events := o.Events()
		assert.Equal(t, order.EventOrderCancelled, events[len(events)-1].Type)
	})

	t.Run("seller cannot cancel unilaterally", func(t *testing.T) {
		o := newPendingOrder(t)
		err := o.CancelUnilaterally(kernel.RoleSeller, "too busy", baseTime)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("conflicts once work has started", func(t *testing.T) {
		o := newInProgressOrder(t)
		err := o.CancelUnilaterally(kernel.RoleBuyer, "changed my mind", baseTime)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestBeginNegotiation(t *testing.T) {
	t.Run("freezes the clock on an in-progress order", func(t *testing.T) {
		o := newInProgressOrder(t)
		negID := kernel.NewUUID()
		openedAt := baseTime.Add(24 * time.Hour)

		require.NoError(t, o.BeginNegotiation(negID, false, openedAt))

		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.CurrentNegotiationID())
		assert.True(t, o.CurrentNegotiationID().IsEqual(negID))
		assert.True(t, o.Clock().IsPaused())
		assert.Equal(t, 2*24*time.Hour, o.Clock().Remaining())
	})

	t.Run("a cancellation proposal moves the order to cancel pending", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.BeginNegotiation(kernel.NewUUID(), true, baseTime.Add(time.Hour)))
		assert.Equal(t, order.CancelPending, o.Status())
		assert.True(t, o.Clock().IsPaused())
	})

	t.Run("a delivered order keeps its delivery-time freeze", func(t *testing.T) {
		deliveredAt := baseTime.Add(24 * time.Hour)
		o := newDeliveredOrder(t, deliveredAt)
		remainingBefore := o.Clock().Remaining()

		require.NoError(t, o.BeginNegotiation(kernel.NewUUID(), false, deliveredAt.Add(12*time.Hour)))

		assert.Equal(t, remainingBefore, o.Clock().Remaining())
	})

	t.Run("a second pending negotiation is a conflict", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.BeginNegotiation(kernel.NewUUID(), false, baseTime.Add(time.Hour)))

		err := o.BeginNegotiation(kernel.NewUUID(), false, baseTime.Add(2*time.Hour))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("price and deadline proposals conflict before work starts", func(t *testing.T) {
		o := newActiveOrder(t)
		err := o.BeginNegotiation(kernel.NewUUID(), false, baseTime)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Active, o.Status())
	})

	t.Run("a cancellation proposal is accepted before work starts", func(t *testing.T) {
		o := newActiveOrder(t)
		negID := kernel.NewUUID()

		require.NoError(t, o.BeginNegotiation(negID, true, baseTime.Add(time.Hour)))

		assert.Equal(t, order.CancelPending, o.Status())
		require.NotNil(t, o.CurrentNegotiationID())
		assert.True(t, o.CurrentNegotiationID().IsEqual(negID))
		// no due date yet, so there is nothing to freeze
		assert.False(t, o.Clock().IsPaused())
	})

	t.Run("a cancellation proposal is accepted before the charge confirms", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.BeginNegotiation(kernel.NewUUID(), true, baseTime.Add(time.Hour)))
		assert.Equal(t, order.CancelPending, o.Status())
	})

	t.Run("a cancellation proposal conflicts on a finished order", func(t *testing.T) {
		deliveredAt := baseTime.Add(24 * time.Hour)
		o := newDeliveredOrder(t, deliveredAt)
		require.NoError(t, o.ApproveDelivery(deliveredAt.Add(time.Hour)))

		err := o.BeginNegotiation(kernel.NewUUID(), true, deliveredAt.Add(2*time.Hour))
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestAcceptDeliveryExtension(t *testing.T) {
	o := newInProgressOrder(t)
	dueBefore := o.DueDate()
	negID := kernel.NewUUID()
	require.NoError(t, o.BeginNegotiation(negID, false, baseTime.Add(time.Hour)))

	require.NoError(t, o.AcceptDeliveryExtension(negID, 2, baseTime.Add(5*time.Hour)))

	assert.Nil(t, o.CurrentNegotiationID())
	assert.False(t, o.Clock().IsPaused())
	assert.Equal(t, dueBefore.Add(2*24*time.Hour), o.DueDate())
}

func TestAcceptCancellation(t *testing.T) {
	o := newInProgressOrder(t)
	negID := kernel.NewUUID()
	require.NoError(t, o.BeginNegotiation(negID, true, baseTime.Add(time.Hour)))

	cancellation, err := order.NewCancellation(kernel.RoleSeller, "cannot fulfil the scope")
	require.NoError(t, err)
	require.NoError(t, o.AcceptCancellation(negID, cancellation, baseTime.Add(2*time.Hour)))

	assert.Equal(t, order.Cancelled, o.Status())
	assert.Nil(t, o.CurrentNegotiationID())
	require.NotNil(t, o.Cancellation())
	assert.Equal(t, kernel.RoleSeller, o.Cancellation().RequestedBy())

	events := o.Events()
	assert.Equal(t, order.EventOrderCancelled, events[len(events)-1].Type)
}

func TestAcceptModification(t *testing.T) {
	o := newInProgressOrder(t)
	negID := kernel.NewUUID()
	require.NoError(t, o.BeginNegotiation(negID, false, baseTime.Add(time.Hour)))

	require.NoError(t, o.AcceptModification(negID, 6000, baseTime.Add(2*time.Hour)))

	assert.Nil(t, o.CurrentNegotiationID())
	assert.Equal(t, int64(6000), o.Pricing().UnitPrice())
	// quantity 2, delta +1000 per unit on the original 11550 total
	assert.Equal(t, int64(13550), o.Pricing().TotalAmount())
	assert.False(t, o.Clock().IsPaused())
}

func TestRejectNegotiation(t *testing.T) {
	t.Run("freeze and resume round trip loses no deadline time", func(t *testing.T) {
		o := newInProgressOrder(t)
		negID := kernel.NewUUID()

		openedAt := baseTime.Add(24 * time.Hour)
		require.NoError(t, o.BeginNegotiation(negID, false, openedAt))

		rejectedAt := openedAt.Add(5 * 24 * time.Hour)
		require.NoError(t, o.RejectNegotiation(negID, rejectedAt))

		assert.Nil(t, o.CurrentNegotiationID())
		assert.False(t, o.Clock().IsPaused())
		assert.Equal(t, rejectedAt.Add(2*24*time.Hour), o.DueDate())
	})

	t.Run("rejected cancellation restores delivered while review is pending", func(t *testing.T) {
		deliveredAt := baseTime.Add(24 * time.Hour)
		o := newDeliveredOrder(t, deliveredAt)
		negID := kernel.NewUUID()
		require.NoError(t, o.BeginNegotiation(negID, true, deliveredAt.Add(time.Hour)))
		require.Equal(t, order.CancelPending, o.Status())

		require.NoError(t, o.RejectNegotiation(negID, deliveredAt.Add(2*time.Hour)))

		assert.Equal(t, order.Delivered, o.Status())
		// the delivery-time freeze survives for a later revision restore
		assert.True(t, o.Clock().IsPaused())
	})

	t.Run("a revised delivery does not count as pending review", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.Deliver("v1", deliveryFiles(), baseTime.Add(time.Hour)))
		require.NoError(t, o.RequestRevision(baseTime.Add(2*time.Hour)))

		negID := kernel.NewUUID()
		require.NoError(t, o.BeginNegotiation(negID, true, baseTime.Add(3*time.Hour)))
		require.NoError(t, o.RejectNegotiation(negID, baseTime.Add(4*time.Hour)))

		assert.Equal(t, order.InProgress, o.Status())
		assert.False(t, o.Clock().IsPaused())
	})

	t.Run("rejected cancellation restores active before work starts", func(t *testing.T) {
		o := newActiveOrder(t)
		negID := kernel.NewUUID()
		require.NoError(t, o.BeginNegotiation(negID, true, baseTime.Add(time.Hour)))
		require.Equal(t, order.CancelPending, o.Status())

		require.NoError(t, o.RejectNegotiation(negID, baseTime.Add(2*time.Hour)))

		assert.Equal(t, order.Active, o.Status())
		assert.Nil(t, o.CurrentNegotiationID())
	})

	t.Run("rejected cancellation restores pending before the charge confirms", func(t *testing.T) {
		o := newPendingOrder(t)
		negID := kernel.NewUUID()
		require.NoError(t, o.BeginNegotiation(negID, true, baseTime.Add(time.Hour)))

		require.NoError(t, o.RejectNegotiation(negID, baseTime.Add(2*time.Hour)))

		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rejecting a foreign negotiation id is a conflict", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.BeginNegotiation(kernel.NewUUID(), false, baseTime.Add(time.Hour)))

		err := o.RejectNegotiation(kernel.NewUUID(), baseTime.Add(2*time.Hour))
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.NotNil(t, o.CurrentNegotiationID())
	})
}

func TestMarkOverdue(t *testing.T) {
	t.Run("appends the overdue event exactly once", func(t *testing.T) {
		o := newInProgressOrder(t)
		past := o.DueDate().Add(time.Hour)

		require.NoError(t, o.MarkOverdue(past))
		require.NoError(t, o.MarkOverdue(past.Add(time.Hour)))

		var overdue int
		for _, e := range o.Events() {
			if e.Type == order.EventOrderOverdue {
				overdue++
			}
		}
		assert.Equal(t, 1, overdue)
	})

	t.Run("conflicts before the due date", func(t *testing.T) {
		o := newInProgressOrder(t)
		err := o.MarkOverdue(o.DueDate().Add(-time.Hour))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestEscalateDispute(t *testing.T) {
	o := newInProgressOrder(t)

	require.NoError(t, o.EscalateDispute("case-42", baseTime.Add(time.Hour)))

	assert.Equal(t, order.Disputed, o.Status())
	require.NotNil(t, o.Dispute())
	assert.Equal(t, "case-42", o.Dispute().CaseID())

	err := o.EscalateDispute("case-43", baseTime.Add(2*time.Hour))
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestAttachReviews(t *testing.T) {
	o := newDeliveredOrder(t, baseTime.Add(24*time.Hour))
	require.NoError(t, o.ApproveDelivery(baseTime.Add(30*time.Hour)))

	buyerReview, err := order.NewReview(5, "great work", baseTime.Add(31*time.Hour))
	require.NoError(t, err)
	sellerReview, err := order.NewReview(4, "clear brief", baseTime.Add(32*time.Hour))
	require.NoError(t, err)

	o.AttachBuyerReview(buyerReview)
	o.AttachSellerReview(sellerReview)

	require.NotNil(t, o.BuyerReview())
	assert.Equal(t, 5, o.BuyerReview().Rating())
	require.NotNil(t, o.SellerReview())
	assert.Equal(t, "clear brief", o.SellerReview().Text())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trips a mid-flight order", func(t *testing.T) {
		src := newDeliveredOrder(t, baseTime.Add(24*time.Hour))

		restored, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                   src.ID(),
			InvoiceID:            src.InvoiceID(),
			Gig:                  src.Gig(),
			Buyer:                src.Buyer(),
			Seller:               src.Seller(),
			Pricing:              src.Pricing(),
			IsCustomOffer:        src.IsCustomOffer(),
			Status:               src.Status(),
			OrderedAt:            src.OrderedAt(),
			ExpectedDeliveryDays: src.ExpectedDeliveryDays(),
			DueDate:              src.DueDate(),
			Clock:                src.Clock(),
			RevisionCount:        src.RevisionCount(),
			Requirements:         src.Requirements(),
			Deliveries:           src.Deliveries(),
			Events:               src.Events(),
		})
		require.NoError(t, err)

		assert.True(t, restored.IsEqual(src))
		assert.Equal(t, src.Status(), restored.Status())
		assert.Equal(t, src.Clock(), restored.Clock())
		assert.Len(t, restored.Deliveries(), 1)
		assert.Len(t, restored.Events(), 4)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		src := newPendingOrder(t)
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                   src.ID(),
			InvoiceID:            src.InvoiceID(),
			Gig:                  src.Gig(),
			Buyer:                src.Buyer(),
			Seller:               src.Seller(),
			Pricing:              src.Pricing(),
			Status:               order.Status(99),
			OrderedAt:            src.OrderedAt(),
			ExpectedDeliveryDays: src.ExpectedDeliveryDays(),
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewInvoiceID(t *testing.T) {
	id := order.NewInvoiceID(baseTime)
	assert.Regexp(t, `^INV-20250310-\d{6}$`, id)
}

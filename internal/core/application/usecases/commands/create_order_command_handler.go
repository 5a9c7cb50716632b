package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/payment"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Prices the purchase against the catalog, opens a gateway charge intent and
// persists the pending order together with its pending payment in one
// transaction. The order stays PENDING until the gateway confirms the charge
// via webhook.
type CreateOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	catalog    ports.CatalogClient
	gateway    ports.PaymentGateway
	calculator services.PriceCalculator
	publisher  ports.NotificationPublisher
	provider   string
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// The provider name is stamped on every payment record it creates.
func NewCreateOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	catalog ports.CatalogClient,
	gateway ports.PaymentGateway,
	calculator services.PriceCalculator,
	publisher ports.NotificationPublisher,
	provider string,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		gateway:    gateway,
		calculator: calculator,
		publisher:  publisher,
		provider:   provider,
	}
}

// Handle processes the order creation command.
// Re-running the command for an order that already has a live payment is a
// no-op, so a retried purchase never opens a second charge.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	gig, err := h.catalog.GetGig(ctx, cmd.GigID())
	if err != nil {
		return err
	}

	buyerProfile, err := h.catalog.GetProfile(ctx, cmd.BuyerID())
	if err != nil {
		return err
	}

	sellerProfile, err := h.catalog.GetProfile(ctx, gig.SellerID)
	if err != nil {
		return err
	}

	breakdown, err := h.price(ctx, gig, cmd.Quantity(), buyerProfile.Country)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	if _, err = paymentRepo.GetCurrentByOrderID(ctx, cmd.OrderID()); err == nil {
		// A live payment already exists: the purchase was already accepted.
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	now := time.Now().UTC()

	newOrder, err := h.buildOrder(cmd, gig, buyerProfile, sellerProfile, breakdown, now)
	if err != nil {
		return err
	}

	newPayment, err := h.openCharge(ctx, cmd.OrderID(), buyerProfile, breakdown.Total, gig.Currency, now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = paymentRepo.Add(ctx, newPayment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.publisher, newOrder, NotifyOrderCreated, kernel.RoleSeller,
		"you have received a new order", now)
	return nil
}

// price runs the two-pass cost computation: the fee-only breakdown feeds the
// gateway's tax calculation, whose result produces the final totals.
func (h *CreateOrderCommandHandler) price(
	ctx context.Context,
	gig ports.Gig,
	quantity int,
	buyerCountry string,
) (services.CostBreakdown, error) {
	preTax, err := h.calculator.Calculate(gig.UnitPrice, quantity, 0)
	if err != nil {
		return services.CostBreakdown{}, err
	}

	tax, err := h.gateway.CalculateTax(ctx, preTax.Total, gig.Currency, buyerCountry)
	if err != nil {
		return services.CostBreakdown{}, err
	}

	return h.calculator.Calculate(gig.UnitPrice, quantity, tax)
}

func (h *CreateOrderCommandHandler) buildOrder(
	cmd CreateOrderCommand,
	gig ports.Gig,
	buyerProfile ports.Profile,
	sellerProfile ports.Profile,
	breakdown services.CostBreakdown,
	now time.Time,
) (*order.Order, error) {
	gigSnapshot, err := order.NewGigSnapshot(gig.ID, gig.Title, gig.Description, gig.CoverImage)
	if err != nil {
		return nil, err
	}

	buyer, err := order.NewParty(buyerProfile.ID, buyerProfile.Username, buyerProfile.Email, buyerProfile.Picture)
	if err != nil {
		return nil, err
	}

	seller, err := order.NewParty(sellerProfile.ID, sellerProfile.Username, sellerProfile.Email, sellerProfile.Picture)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(cmd.Quantity(), gig.UnitPrice, breakdown.ServiceFee, breakdown.Total, gig.Currency)
	if err != nil {
		return nil, err
	}

	requirements := make([]order.Requirement, 0, len(gig.Requirements))
	for _, template := range gig.Requirements {
		requirement, reqErr := order.NewRequirement(
			kernel.NewUUID().String(), template.Question, template.Required, template.WithFile)
		if reqErr != nil {
			return nil, reqErr
		}
		requirements = append(requirements, requirement)
	}

	return order.NewOrder(
		cmd.OrderID(),
		order.NewInvoiceID(now),
		gigSnapshot,
		buyer,
		seller,
		pricing,
		gig.ExpectedDeliveryDays,
		gig.MaxRevision,
		requirements,
		cmd.IsCustomOffer(),
		now,
	)
}

// openCharge creates the pending payment record and binds it to a freshly
// opened gateway charge intent. The intent's idempotency key is derived from
// the order id, so a retried creation reuses the same gateway charge.
func (h *CreateOrderCommandHandler) openCharge(
	ctx context.Context,
	orderID kernel.UUID,
	buyerProfile ports.Profile,
	total int64,
	currency string,
	now time.Time,
) (*payment.Payment, error) {
	customerID, err := h.gateway.FindOrCreateCustomer(ctx, buyerProfile.Email, buyerProfile.Username)
	if err != nil {
		return nil, err
	}

	newPayment, err := payment.NewPayment(kernel.NewUUID(), orderID, h.provider, total, currency, now)
	if err != nil {
		return nil, err
	}

	intent, err := h.gateway.CreateChargeIntent(ctx, ports.ChargeIntentRequest{
		CustomerID:     customerID,
		Amount:         total,
		Currency:       currency,
		IdempotencyKey: "charge_" + orderID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err = newPayment.AttachGatewayIntent(intent.TransactionID, intent.ClientSecret); err != nil {
		return nil, err
	}

	return newPayment, nil
}

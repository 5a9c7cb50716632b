// Package http exposes the order service's REST API on echo. The handlers
// bind and validate transport input, translate it into commands and queries,
// and map the error taxonomy onto status codes; all business rules live
// behind the command handlers.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SignatureHeader carries the gateway's webhook HMAC signature.
const SignatureHeader = "X-Signature"

// Error is the JSON error body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	submitRequirementsHandler commands.SubmitRequirementsCommandHandler
	deliverOrderHandler       commands.DeliverOrderCommandHandler
	approveDeliveryHandler    commands.ApproveDeliveryCommandHandler
	requestRevisionHandler    commands.RequestRevisionCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	createNegotiationHandler  commands.CreateNegotiationCommandHandler
	approveNegotiationHandler commands.ApproveNegotiationCommandHandler
	rejectNegotiationHandler  commands.RejectNegotiationCommandHandler
	escalateDisputeHandler    commands.EscalateDisputeCommandHandler
	confirmChargeHandler      commands.ConfirmChargeCommandHandler
	confirmRefundHandler      commands.ConfirmRefundCommandHandler

	// Query handlers
	getOrdersByPartyHandler   queries.GetOrdersByPartyQueryHandler
	getPaymentsByOrderHandler queries.GetPaymentsByOrderQueryHandler

	gateway ports.PaymentGateway
}

// ServerParams carries the handlers the server routes to.
type ServerParams struct {
	CreateOrderHandler        commands.CreateOrderCommandHandler
	SubmitRequirementsHandler commands.SubmitRequirementsCommandHandler
	DeliverOrderHandler       commands.DeliverOrderCommandHandler
	ApproveDeliveryHandler    commands.ApproveDeliveryCommandHandler
	RequestRevisionHandler    commands.RequestRevisionCommandHandler
	CancelOrderHandler        commands.CancelOrderCommandHandler
	CreateNegotiationHandler  commands.CreateNegotiationCommandHandler
	ApproveNegotiationHandler commands.ApproveNegotiationCommandHandler
	RejectNegotiationHandler  commands.RejectNegotiationCommandHandler
	EscalateDisputeHandler    commands.EscalateDisputeCommandHandler
	ConfirmChargeHandler      commands.ConfirmChargeCommandHandler
	ConfirmRefundHandler      commands.ConfirmRefundCommandHandler

	GetOrdersByPartyHandler   queries.GetOrdersByPartyQueryHandler
	GetPaymentsByOrderHandler queries.GetPaymentsByOrderQueryHandler

	Gateway ports.PaymentGateway
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(p ServerParams) *Server {
	return &Server{
		createOrderHandler:        p.CreateOrderHandler,
		submitRequirementsHandler: p.SubmitRequirementsHandler,
		deliverOrderHandler:       p.DeliverOrderHandler,
		approveDeliveryHandler:    p.ApproveDeliveryHandler,
		requestRevisionHandler:    p.RequestRevisionHandler,
		cancelOrderHandler:        p.CancelOrderHandler,
		createNegotiationHandler:  p.CreateNegotiationHandler,
		approveNegotiationHandler: p.ApproveNegotiationHandler,
		rejectNegotiationHandler:  p.RejectNegotiationHandler,
		escalateDisputeHandler:    p.EscalateDisputeHandler,
		confirmChargeHandler:      p.ConfirmChargeHandler,
		confirmRefundHandler:      p.ConfirmRefundHandler,
		getOrdersByPartyHandler:   p.GetOrdersByPartyHandler,
		getPaymentsByOrderHandler: p.GetPaymentsByOrderHandler,
		gateway:                   p.Gateway,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderId/payments", s.GetOrderPayments)
	api.POST("/orders/:orderId/requirements", s.SubmitRequirements)
	api.POST("/orders/:orderId/deliveries", s.DeliverOrder)
	api.POST("/orders/:orderId/deliveries/approve", s.ApproveDelivery)
	api.POST("/orders/:orderId/deliveries/revision", s.RequestRevision)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/negotiations", s.CreateNegotiation)
	api.POST("/negotiations/:negotiationId/approve", s.ApproveNegotiation)
	api.POST("/negotiations/:negotiationId/reject", s.RejectNegotiation)
	api.POST("/negotiations/:negotiationId/dispute", s.EscalateDispute)

	api.POST("/webhooks/gateway", s.GatewayWebhook)
}

// CreateOrder handles POST /api/v1/orders - places a direct purchase.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req struct {
		GigID         string `json:"gigId"`
		BuyerID       string `json:"buyerId"`
		Quantity      int    `json:"quantity"`
		IsCustomOffer bool   `json:"isCustomOffer"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.GigID, req.BuyerID, req.Quantity, req.IsCustomOffer)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrders handles GET /api/v1/orders - lists a party's orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	role, err := kernel.PartyRoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return badRequest(ctx, "Invalid role")
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return badRequest(ctx, "Invalid status")
		}
		statusFilter = &status
	}

	query, err := queries.NewGetOrdersByPartyQuery(ctx.QueryParam("partyId"), role, statusFilter)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getOrdersByPartyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	type orderItem struct {
		ID          string `json:"id"`
		InvoiceID   string `json:"invoiceId"`
		GigTitle    string `json:"gigTitle"`
		BuyerID     string `json:"buyerId"`
		SellerID    string `json:"sellerId"`
		Status      string `json:"status"`
		TotalAmount int64  `json:"totalAmount"`
		Currency    string `json:"currency"`
		OrderedAt   string `json:"orderedAt"`
		DueDate     string `json:"dueDate"`
	}

	response := make([]orderItem, len(orders))
	for i, o := range orders {
		response[i] = orderItem{
			ID:          o.ID.String(),
			InvoiceID:   o.InvoiceID,
			GigTitle:    o.GigTitle,
			BuyerID:     o.BuyerID,
			SellerID:    o.SellerID,
			Status:      o.Status.String(),
			TotalAmount: o.TotalAmount,
			Currency:    o.Currency,
			OrderedAt:   o.OrderedAt.Format("2006-01-02T15:04:05Z07:00"),
			DueDate:     o.DueDate.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderPayments handles GET /api/v1/orders/:orderId/payments.
func (s *Server) GetOrderPayments(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetPaymentsByOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	payments, err := s.getPaymentsByOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	type paymentItem struct {
		ID                   string `json:"id"`
		Provider             string `json:"provider"`
		Amount               int64  `json:"amount"`
		Currency             string `json:"currency"`
		Status               string `json:"status"`
		GatewayTransactionID string `json:"gatewayTransactionId,omitempty"`
		CreatedAt            string `json:"createdAt"`
	}

	response := make([]paymentItem, len(payments))
	for i, p := range payments {
		response[i] = paymentItem{
			ID:                   p.ID.String(),
			Provider:             p.Provider,
			Amount:               p.Amount,
			Currency:             p.Currency,
			Status:               p.Status.String(),
			GatewayTransactionID: p.GatewayTransactionID,
			CreatedAt:            p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubmitRequirements handles POST /api/v1/orders/:orderId/requirements.
// The body is multipart: an "answers" JSON field, plus one file part per
// file-backed answer, named by its requirement id.
func (s *Server) SubmitRequirements(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var rawAnswers []struct {
		RequirementID string `json:"requirementId"`
		Text          string `json:"text"`
	}
	if err = bindJSONField(ctx, "answers", &rawAnswers); err != nil {
		return badRequest(ctx, "Invalid answers payload")
	}

	answers := make([]commands.RequirementAnswerInput, 0, len(rawAnswers))
	for _, a := range rawAnswers {
		answer := commands.RequirementAnswerInput{
			RequirementID: a.RequirementID,
			Text:          a.Text,
		}

		upload, fileErr := readFormFile(ctx, a.RequirementID)
		if fileErr != nil {
			return badRequest(ctx, fileErr.Error())
		}
		answer.File = upload

		answers = append(answers, answer)
	}

	cmd, err := commands.NewSubmitRequirementsCommand(orderID, ctx.FormValue("actorId"), answers)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.submitRequirementsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:orderId/deliveries. The body is
// multipart: "actorId" and "message" fields plus "files" parts.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return badRequest(ctx, "Invalid multipart body")
	}

	var files []ports.FileUpload
	for _, header := range form.File["files"] {
		upload, fileErr := openUpload(header)
		if fileErr != nil {
			return badRequest(ctx, fileErr.Error())
		}
		files = append(files, upload)
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, ctx.FormValue("actorId"), ctx.FormValue("message"), files)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ApproveDelivery handles POST /api/v1/orders/:orderId/deliveries/approve.
func (s *Server) ApproveDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		ActorID string `json:"actorId"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApproveDeliveryCommand(orderID, req.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.approveDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RequestRevision handles POST /api/v1/orders/:orderId/deliveries/revision.
func (s *Server) RequestRevision(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		ActorID string `json:"actorId"`
		Message string `json:"message"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRequestRevisionCommand(orderID, req.ActorID, req.Message)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.requestRevisionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel - unilateral
// cancellation of a not-yet-started order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		ActorID string `json:"actorId"`
		Reason  string `json:"reason"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.ActorID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateNegotiation handles POST /api/v1/orders/:orderId/negotiations.
func (s *Server) CreateNegotiation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req struct {
		ActorID        string `json:"actorId"`
		Message        string `json:"message"`
		Type           string `json:"type"`
		AdditionalDays int    `json:"additionalDays"`
		Reason         string `json:"reason"`
		NewUnitPrice   int64  `json:"newUnitPrice"`
		ScopeNote      string `json:"scopeNote"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	proposal, err := buildProposal(req.Type, req.AdditionalDays, req.Reason, req.NewUnitPrice, req.ScopeNote)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	negotiationID := kernel.NewUUID()
	cmd, err := commands.NewCreateNegotiationCommand(negotiationID, orderID, req.ActorID, proposal, req.Message)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createNegotiationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"id": negotiationID.String()})
}

// ApproveNegotiation handles POST /api/v1/negotiations/:negotiationId/approve.
func (s *Server) ApproveNegotiation(ctx echo.Context) error {
	return s.respondToNegotiation(ctx, func(negotiationID kernel.UUID, actorID string) error {
		cmd, err := commands.NewApproveNegotiationCommand(negotiationID, actorID)
		if err != nil {
			return err
		}
		return s.approveNegotiationHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// RejectNegotiation handles POST /api/v1/negotiations/:negotiationId/reject.
func (s *Server) RejectNegotiation(ctx echo.Context) error {
	return s.respondToNegotiation(ctx, func(negotiationID kernel.UUID, actorID string) error {
		cmd, err := commands.NewRejectNegotiationCommand(negotiationID, actorID)
		if err != nil {
			return err
		}
		return s.rejectNegotiationHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// EscalateDispute handles POST /api/v1/negotiations/:negotiationId/dispute.
// A missing case id gets one generated; the external dispute desk adopts it.
func (s *Server) EscalateDispute(ctx echo.Context) error {
	negotiationID, err := kernel.UUIDFromString(ctx.Param("negotiationId"))
	if err != nil {
		return badRequest(ctx, "Invalid negotiation id")
	}

	var req struct {
		OrderID string `json:"orderId"`
		CaseID  string `json:"caseId"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	caseID := req.CaseID
	if caseID == "" {
		caseID = "case-" + kernel.NewUUID().String()
	}

	cmd, err := commands.NewEscalateDisputeCommand(orderID, negotiationID, caseID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.escalateDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"caseId": caseID})
}

// GatewayWebhook handles POST /api/v1/webhooks/gateway. The raw body is
// verified against the webhook secret before any state is touched;
// unrecognized event types are acknowledged and ignored.
func (s *Server) GatewayWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "Unreadable body")
	}

	event, err := s.gateway.ParseWebhook(payload, ctx.Request().Header.Get(SignatureHeader))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Signature verification failed",
		})
	}

	switch event.Type {
	case ports.WebhookChargeSucceeded:
		cmd, cmdErr := commands.NewConfirmChargeCommand(event.TransactionID)
		if cmdErr != nil {
			return badRequest(ctx, cmdErr.Error())
		}
		if err = s.confirmChargeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return mapError(ctx, err)
		}
	case ports.WebhookRefundSucceeded:
		cmd, cmdErr := commands.NewConfirmRefundCommand(event.TransactionID, event.RefundID)
		if cmdErr != nil {
			return badRequest(ctx, cmdErr.Error())
		}
		if err = s.confirmRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return mapError(ctx, err)
		}
	}

	return ctx.NoContent(http.StatusOK)
}

func (s *Server) respondToNegotiation(ctx echo.Context, respond func(kernel.UUID, string) error) error {
	negotiationID, err := kernel.UUIDFromString(ctx.Param("negotiationId"))
	if err != nil {
		return badRequest(ctx, "Invalid negotiation id")
	}

	var req struct {
		ActorID string `json:"actorId"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if err = respond(negotiationID, req.ActorID); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func buildProposal(proposalType string, additionalDays int, reason string, newUnitPrice int64, scopeNote string) (negotiation.Proposal, error) {
	t, err := negotiation.TypeFromString(proposalType)
	if err != nil {
		return nil, err
	}

	switch t {
	case negotiation.TypeExtendDelivery:
		proposal, err := negotiation.NewExtendDelivery(additionalDays)
		if err != nil {
			return nil, err
		}
		return proposal, nil
	case negotiation.TypeCancelOrder:
		proposal, err := negotiation.NewCancelOrder(reason)
		if err != nil {
			return nil, err
		}
		return proposal, nil
	case negotiation.TypeModifyOrder:
		proposal, err := negotiation.NewModifyOrder(newUnitPrice, scopeNote)
		if err != nil {
			return nil, err
		}
		return proposal, nil
	default:
		return nil, errs.NewValueIsInvalidError("type")
	}
}

func bindJSONField(ctx echo.Context, field string, target any) error {
	raw := ctx.FormValue(field)
	if raw == "" {
		return errs.NewValueIsRequiredError(field)
	}
	return json.Unmarshal([]byte(raw), target)
}

// openUpload reads one multipart file into memory for the storage batch.
func openUpload(header *multipart.FileHeader) (ports.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return ports.FileUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ports.FileUpload{}, err
	}

	return ports.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFormFile(ctx echo.Context, name string) (*ports.FileUpload, error) {
	header, err := ctx.FormFile(name)
	if err != nil {
		// no file part for this answer
		return nil, nil //nolint:nilnil //absence is a valid outcome
	}
	upload, err := openUpload(header)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates the application error taxonomy onto HTTP statuses.
func mapError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUploadFailed):
		// the file store failed, not the caller
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrMissingRequirements):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

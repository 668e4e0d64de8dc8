package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/api/transport"
	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/pkg/httpcontext"
	rentbookUC "github.com/rentfolio/backend/usecase/rentbook"
)

type PaymentHandler struct {
	baseHandler
	uc *rentbookUC.UseCase
}

func NewPaymentHandler(uc *rentbookUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List payments
// @Tags payments
// @Router /api/v1/payments [get]
func (h *PaymentHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	tenantID := string(ctx.QueryArgs().Peek("tenant_id"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payments, err := h.uc.ListPayments(stdCtx, userID, tenantID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, payments)
}

// @Summary Log a rent payment
// @Tags payments
// @Router /api/v1/payments [post]
func (h *PaymentHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.PaymentRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.LogPayment(stdCtx, userID, rentbookUC.LogPaymentInput{
		TenantID:   req.TenantID,
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		Date:       date,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Rent status for a tenant
// @Tags payments
// @Router /api/v1/tenants/{id}/rent-status [get]
func (h *PaymentHandler) RentStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	tenantID, _ := ctx.UserValue("id").(string)
	if tenantID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing tenant id"))
		return
	}
	rent, _ := ctx.QueryArgs().GetUfloat("rent")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.uc.RentStatus(stdCtx, userID, tenantID, rent)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Export payments as CSV
// @Tags payments
// @Router /api/v1/payments/export [get]
func (h *PaymentHandler) Export(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	tenantID := string(ctx.QueryArgs().Peek("tenant_id"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	export, err := h.uc.ExportCSV(stdCtx, userID, tenantID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Response.Header.SetContentType("text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(export.Content)
}

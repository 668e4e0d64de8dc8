package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/api/transport"
	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/pkg/httpcontext"
	portfolioUC "github.com/rentfolio/backend/usecase/portfolio"
)

type TenantHandler struct {
	baseHandler
	uc *portfolioUC.UseCase
}

func NewTenantHandler(uc *portfolioUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tenants
// @Tags tenants
// @Router /api/v1/tenants [get]
func (h *TenantHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tenants, err := h.uc.ListTenants(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tenants)
}

// @Summary Create tenant
// @Tags tenants
// @Router /api/v1/tenants [post]
func (h *TenantHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TenantRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid move_in_date"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTenant(stdCtx, userID, portfolioUC.CreateTenantInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		MoveInDate: moveIn,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update tenant
// @Tags tenants
// @Router /api/v1/tenants/{id} [put]
func (h *TenantHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TenantRequest
	if !h.parseBody(ctx, &req) {
		return
	}
	if req.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			req.ID = id
		}
	}

	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid move_in_date"))
		return
	}

	tenant := &domain.Tenant{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		MoveInDate: moveIn,
		PropertyID: req.PropertyID,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateTenant(stdCtx, userID, tenant); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tenant)
}

// @Summary Delete tenant
// @Tags tenants
// @Router /api/v1/tenants/{id} [delete]
func (h *TenantHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing tenant id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTenant(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Assign a tenant to a property
// @Tags tenants
// @Router /api/v1/tenants/{id}/assign [post]
func (h *TenantHandler) Assign(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	tenantID, _ := ctx.UserValue("id").(string)
	if tenantID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing tenant id"))
		return
	}

	var req transport.AssignRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.AssignTenant(stdCtx, userID, tenantID, req.PropertyID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

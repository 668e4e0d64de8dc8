package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/api/transport"
	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/pkg/httpcontext"
	portfolioUC "github.com/rentfolio/backend/usecase/portfolio"
)

type PropertyHandler struct {
	baseHandler
	uc *portfolioUC.UseCase
}

func NewPropertyHandler(uc *portfolioUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List properties
// @Tags properties
// @Router /api/v1/properties [get]
func (h *PropertyHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	properties, err := h.uc.ListProperties(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, properties)
}

// @Summary Create property
// @Tags properties
// @Router /api/v1/properties [post]
func (h *PropertyHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.PropertyRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateProperty(stdCtx, userID, portfolioUC.CreatePropertyInput{
		Address:   req.Address,
		Rent:      req.Rent,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update property
// @Tags properties
// @Router /api/v1/properties/{id} [put]
func (h *PropertyHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.PropertyRequest
	if !h.parseBody(ctx, &req) {
		return
	}
	if req.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			req.ID = id
		}
	}

	status := domain.PropertyStatus(req.Status)
	if status == "" {
		status = domain.PropertyVacant
	}
	property := &domain.Property{
		ID:        req.ID,
		Address:   req.Address,
		Rent:      req.Rent,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Status:    status,
		TenantID:  req.TenantID,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProperty(stdCtx, userID, property)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete property
// @Tags properties
// @Router /api/v1/properties/{id} [delete]
func (h *PropertyHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing property id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteProperty(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Unassign the tenant occupying a property
// @Tags properties
// @Router /api/v1/properties/{id}/unassign [post]
func (h *PropertyHandler) Unassign(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing property id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UnassignTenant(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Full portfolio snapshot
// @Tags portfolio
// @Router /api/v1/portfolio [get]
func (h *PropertyHandler) Snapshot(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.uc.Snapshot(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

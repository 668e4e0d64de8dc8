package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/pkg/httpcontext"
	rentbookUC "github.com/rentfolio/backend/usecase/rentbook"
)

type DashboardHandler struct {
	baseHandler
	uc *rentbookUC.UseCase
}

func NewDashboardHandler(uc *rentbookUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Portfolio dashboard summary
// @Tags dashboard
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Summary(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summary(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

package summary

import (
	"context"
	"net/http"

	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/transport"
)

type ServiceAPI interface {
	Summary(ctx context.Context) (*Summary, error)
	MonthlyTotals(ctx context.Context) ([]MonthlyTotal, error)
	CategoryTotals(ctx context.Context) ([]CategoryTotal, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Summary(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) MonthlyChart(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Service.MonthlyTotals(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	png, err := RenderMonthlyChart(totals)
	h.writePNG(w, png, err)
}

func (h *Handler) CategoryChart(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Service.CategoryTotals(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	png, err := RenderCategoryChart(totals)
	h.writePNG(w, png, err)
}

func (h *Handler) writePNG(w http.ResponseWriter, png []byte, err error) {
	if err != nil {
		h.HandleServiceError(w, internal.NewInternalError("Failed to render chart", err))
		return
	}
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("failed to write chart", "error", err)
	}
}

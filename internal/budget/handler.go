package budget

import (
	"context"
	"net/http"

	"github.com/frahmantamala/moneymappr/internal/transport"
)

type ServiceAPI interface {
	ListByMonth(ctx context.Context, month string) ([]*Budget, error)
	Save(ctx context.Context, dto SaveBudgetDTO) (*Budget, error)
	Compare(ctx context.Context, month string) ([]Comparison, error)
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

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.Service.ListByMonth(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, budgets)
}

func (h *Handler) SaveBudget(w http.ResponseWriter, r *http.Request) {
	var dto SaveBudgetDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.Logger.Warn("SaveBudget: invalid request body", "error", appErr.GetDetailedMessage())
		h.WriteAppError(w, appErr)
		return
	}

	b, err := h.Service.Save(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) CompareBudgets(w http.ResponseWriter, r *http.Request) {
	comparisons, err := h.Service.Compare(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, comparisons)
}

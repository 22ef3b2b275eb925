package budget_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/moneymappr/internal/budget"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/transport"
	"github.com/shopspring/decimal"
)

var _ = Describe("Budget Handler", func() {
	var (
		repo    *mockBudgetRepository
		handler *budget.Handler
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockBudgetRepository()
		spending := &stubSpending{spent: map[category.Category]decimal.Decimal{
			category.Food: decimal.NewFromInt(250),
		}}
		service := budget.NewService(repo, spending, nil, slogger, time.Second)
		handler = budget.NewHandler(transport.NewBaseHandler(slogger), service)
	})

	save := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		handler.SaveBudget(rr, req)
		return rr
	}

	Describe("POST /budgets", func() {
		It("returns 200 with the stored budget", func() {
			rr := save(`{"category":"Food","amount":200,"month":"2025-01"}`)

			Expect(rr.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rr.Body.Bytes(), &body)).To(Succeed())
			Expect(body["category"]).To(Equal("Food"))
			Expect(body["month"]).To(Equal("2025-01"))
			Expect(body["amount"]).To(BeNumerically("==", 200))
		})

		It("returns 400 when a field is missing", func() {
			rr := save(`{"category":"Food","amount":200}`)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(rr.Body.String()).To(ContainSubstring("month"))
		})

		It("returns 400 for an unknown category", func() {
			rr := save(`{"category":"Pets","amount":200,"month":"2025-01"}`)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /budgets", func() {
		It("returns 400 without a month", func() {
			rr := httptest.NewRecorder()
			handler.ListBudgets(rr, httptest.NewRequest(http.MethodGet, "/budgets", nil))

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(repo.listCalls).To(BeZero())
		})

		It("returns an empty array for a month with no budgets", func() {
			rr := httptest.NewRecorder()
			handler.ListBudgets(rr, httptest.NewRequest(http.MethodGet, "/budgets?month=2025-01", nil))

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`[]`))
		})

		It("returns the saved budgets", func() {
			Expect(save(`{"category":"Food","amount":200,"month":"2025-01"}`).Code).To(Equal(http.StatusOK))

			rr := httptest.NewRecorder()
			handler.ListBudgets(rr, httptest.NewRequest(http.MethodGet, "/budgets?month=2025-01", nil))

			var list []map[string]interface{}
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(1))
		})
	})

	Describe("GET /budgets/comparison", func() {
		It("flags categories that are over budget", func() {
			Expect(save(`{"category":"Food","amount":200,"month":"2025-01"}`).Code).To(Equal(http.StatusOK))

			rr := httptest.NewRecorder()
			handler.CompareBudgets(rr, httptest.NewRequest(http.MethodGet, "/budgets/comparison?month=2025-01", nil))

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`[{
				"category": "Food",
				"budget": 200,
				"spent": 250,
				"remaining": -50,
				"percentUsed": 125,
				"overBudget": true
			}]`))
		})
	})
})

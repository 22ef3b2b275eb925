package summary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/summary"
	"github.com/frahmantamala/moneymappr/internal/transport"
	"github.com/shopspring/decimal"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type stubRepository struct {
	monthly    []summary.MonthlyTotal
	byCategory []summary.CategoryTotal
	totals     summary.Totals
	totalsErr  error
}

func (s *stubRepository) MonthlyTotals(ctx context.Context) ([]summary.MonthlyTotal, error) {
	return s.monthly, nil
}

func (s *stubRepository) CategoryTotals(ctx context.Context) ([]summary.CategoryTotal, error) {
	return s.byCategory, nil
}

func (s *stubRepository) Totals(ctx context.Context) (summary.Totals, error) {
	return s.totals, s.totalsErr
}

func exampleRepository() *stubRepository {
	return &stubRepository{
		monthly: []summary.MonthlyTotal{
			{Month: "2025-01", Total: decimal.NewFromInt(150)},
			{Month: "2025-02", Total: decimal.NewFromInt(200)},
		},
		byCategory: []summary.CategoryTotal{
			{Category: category.Bills, Total: decimal.NewFromInt(200)},
			{Category: category.Food, Total: decimal.NewFromInt(150)},
		},
		totals: summary.Totals{Total: decimal.NewFromInt(350), Count: 2},
	}
}

var _ = Describe("Summary", func() {
	var (
		repo    *stubRepository
		service *summary.Service
		handler *summary.Handler
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = exampleRepository()
		service = summary.NewService(repo, slogger, time.Second)
		handler = summary.NewHandler(transport.NewBaseHandler(slogger), service)
	})

	Describe("Service", func() {
		It("combines the three aggregations", func() {
			s, err := service.Summary(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(s.MonthlyTotals).To(HaveLen(2))
			Expect(s.CategoryTotals).To(HaveLen(2))
			Expect(s.Count).To(Equal(int64(2)))
			Expect(s.Categories).To(HaveLen(2))
			Expect(s.Categories[category.Food].Equal(decimal.NewFromInt(150))).To(BeTrue())
		})

		It("fails as a whole when one aggregation fails", func() {
			repo.totalsErr = errors.New("boom")

			_, err := service.Summary(context.Background())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GET /transactions/summary", func() {
		It("serves the unified document", func() {
			rr := httptest.NewRecorder()
			handler.GetSummary(rr, httptest.NewRequest(http.MethodGet, "/transactions/summary", nil))

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`{
				"monthlyTotals": [{"month": "2025-01", "total": 150}, {"month": "2025-02", "total": 200}],
				"categoryTotals": [{"category": "Bills", "total": 200}, {"category": "Food", "total": 150}],
				"total": 350,
				"count": 2,
				"categories": {"Bills": 200, "Food": 150}
			}`))
		})

		It("serves empty arrays when there is no data", func() {
			repo.monthly = nil
			repo.byCategory = nil
			repo.totals = summary.Totals{}

			rr := httptest.NewRecorder()
			handler.GetSummary(rr, httptest.NewRequest(http.MethodGet, "/transactions/summary", nil))

			var body map[string]interface{}
			Expect(json.Unmarshal(rr.Body.Bytes(), &body)).To(Succeed())
			Expect(body["monthlyTotals"]).To(BeEmpty())
			Expect(body["categoryTotals"]).To(BeEmpty())
			Expect(body["count"]).To(BeNumerically("==", 0))
		})
	})

	Describe("charts", func() {
		It("renders the monthly bar chart as PNG", func() {
			rr := httptest.NewRecorder()
			handler.MonthlyChart(rr, httptest.NewRequest(http.MethodGet, "/transactions/summary/monthly.png", nil))

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Header().Get("Content-Type")).To(Equal("image/png"))
			Expect(bytes.HasPrefix(rr.Body.Bytes(), pngSignature)).To(BeTrue())
		})

		It("renders a single month", func() {
			png, err := summary.RenderMonthlyChart([]summary.MonthlyTotal{{Month: "2025-01", Total: decimal.NewFromInt(10)}})

			Expect(err).NotTo(HaveOccurred())
			Expect(bytes.HasPrefix(png, pngSignature)).To(BeTrue())
		})

		It("renders the category pie chart as PNG", func() {
			rr := httptest.NewRecorder()
			handler.CategoryChart(rr, httptest.NewRequest(http.MethodGet, "/transactions/summary/categories.png", nil))

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(bytes.HasPrefix(rr.Body.Bytes(), pngSignature)).To(BeTrue())
		})

		It("returns 204 when there is nothing to draw", func() {
			repo.monthly = nil
			repo.byCategory = nil

			rr := httptest.NewRecorder()
			handler.MonthlyChart(rr, httptest.NewRequest(http.MethodGet, "/transactions/summary/monthly.png", nil))
			Expect(rr.Code).To(Equal(http.StatusNoContent))

			rr = httptest.NewRecorder()
			handler.CategoryChart(rr, httptest.NewRequest(http.MethodGet, "/transactions/summary/categories.png", nil))
			Expect(rr.Code).To(Equal(http.StatusNoContent))
		})
	})
})

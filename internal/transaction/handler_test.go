package transaction_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	transactionDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/transaction"
	"github.com/frahmantamala/moneymappr/internal/transaction"
	transactionPostgres "github.com/frahmantamala/moneymappr/internal/transaction/postgres"
	"github.com/frahmantamala/moneymappr/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Transaction Handler Integration", func() {
	var (
		db     *gorm.DB
		router chi.Router
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(&transactionDatamodel.Transaction{})).To(Succeed())

		repo := transactionPostgres.NewTransactionRepository(db)
		service := transaction.NewService(repo, nil, slogger, time.Second)
		handler := transaction.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/transactions", handler.ListTransactions)
		router.Post("/transactions", handler.CreateTransaction)
		router.Get("/transactions/{id}", handler.GetTransaction)
		router.Put("/transactions/{id}", handler.UpdateTransaction)
		router.Delete("/transactions/{id}", handler.DeleteTransaction)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	decode := func(rr *httptest.ResponseRecorder) map[string]interface{} {
		var out map[string]interface{}
		Expect(json.Unmarshal(rr.Body.Bytes(), &out)).To(Succeed())
		return out
	}

	create := func(body string) map[string]interface{} {
		rr := do(http.MethodPost, "/transactions", body)
		Expect(rr.Code).To(Equal(http.StatusCreated))
		return decode(rr)
	}

	errorCode := func(rr *httptest.ResponseRecorder) string {
		body := decode(rr)
		errBody, ok := body["error"].(map[string]interface{})
		Expect(ok).To(BeTrue())
		return errBody["code"].(string)
	}

	Describe("POST /transactions", func() {
		It("creates a transaction and echoes it back", func() {
			body := create(`{"amount":150,"description":"Groceries","date":"2025-01-15","category":"Food"}`)

			Expect(body["id"]).NotTo(BeEmpty())
			_, err := uuid.Parse(body["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(body["amount"]).To(BeNumerically("==", 150))
			Expect(body["description"]).To(Equal("Groceries"))
			Expect(body["date"]).To(Equal("2025-01-15"))
			Expect(body["category"]).To(Equal("Food"))
			Expect(body).To(HaveKey("createdAt"))
		})

		It("accepts an RFC 3339 timestamp as the date", func() {
			body := create(`{"amount":12.5,"date":"2025-03-04T10:30:00Z","category":"Transport"}`)

			Expect(body["date"]).To(Equal("2025-03-04"))
			Expect(body["amount"]).To(BeNumerically("==", 12.5))
		})

		It("rejects a negative amount", func() {
			rr := do(http.MethodPost, "/transactions", `{"amount":-1,"date":"2025-01-15","category":"Food"}`)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(rr)).To(Equal("VALIDATION_FAILED"))
		})

		It("rejects an unknown category", func() {
			rr := do(http.MethodPost, "/transactions", `{"amount":10,"date":"2025-01-15","category":"Travel"}`)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(rr.Body.String()).To(ContainSubstring("category"))
		})

		It("rejects malformed JSON", func() {
			rr := do(http.MethodPost, "/transactions", `{"amount":`)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(rr)).To(Equal("INVALID_BODY"))
		})

		It("rejects a missing body", func() {
			rr := do(http.MethodPost, "/transactions", "")

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /transactions", func() {
		It("returns an empty array when there are no transactions", func() {
			rr := do(http.MethodGet, "/transactions", "")

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`[]`))
		})

		It("lists transactions by date, newest first", func() {
			create(`{"amount":150,"date":"2025-01-15","category":"Food"}`)
			create(`{"amount":200,"date":"2025-02-10","category":"Bills"}`)

			rr := do(http.MethodGet, "/transactions", "")

			Expect(rr.Code).To(Equal(http.StatusOK))
			var list []map[string]interface{}
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(2))
			Expect(list[0]["date"]).To(Equal("2025-02-10"))
			Expect(list[1]["date"]).To(Equal("2025-01-15"))
		})
	})

	Describe("GET /transactions/{id}", func() {
		It("returns the stored transaction", func() {
			created := create(`{"amount":150,"date":"2025-01-15","category":"Food"}`)

			rr := do(http.MethodGet, "/transactions/"+created["id"].(string), "")

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(decode(rr)["id"]).To(Equal(created["id"]))
		})

		It("returns 404 for a malformed id", func() {
			rr := do(http.MethodGet, "/transactions/abc", "")

			Expect(rr.Code).To(Equal(http.StatusNotFound))
			Expect(errorCode(rr)).To(Equal("TRANSACTION_NOT_FOUND"))
		})
	})

	Describe("PUT /transactions/{id}", func() {
		It("merges the patch into the stored record", func() {
			created := create(`{"amount":150,"description":"Groceries","date":"2025-01-15","category":"Food"}`)

			rr := do(http.MethodPut, "/transactions/"+created["id"].(string), `{"amount":175.25}`)

			Expect(rr.Code).To(Equal(http.StatusOK))
			body := decode(rr)
			Expect(body["amount"]).To(BeNumerically("==", 175.25))
			Expect(body["description"]).To(Equal("Groceries"))
			Expect(body["category"]).To(Equal("Food"))
			Expect(body["date"]).To(Equal("2025-01-15"))
		})

		It("returns the record unchanged for an empty patch", func() {
			created := create(`{"amount":150,"date":"2025-01-15","category":"Food"}`)

			rr := do(http.MethodPut, "/transactions/"+created["id"].(string), `{}`)

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(decode(rr)["amount"]).To(BeNumerically("==", 150))
		})

		It("returns 404 for an unknown id", func() {
			rr := do(http.MethodPut, "/transactions/"+uuid.NewString(), `{"amount":10}`)

			Expect(rr.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for an invalid patch", func() {
			created := create(`{"amount":150,"date":"2025-01-15","category":"Food"}`)

			rr := do(http.MethodPut, "/transactions/"+created["id"].(string), `{"amount":0}`)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /transactions/{id}", func() {
		It("deletes the transaction", func() {
			created := create(`{"amount":150,"date":"2025-01-15","category":"Food"}`)
			path := "/transactions/" + created["id"].(string)

			rr := do(http.MethodDelete, path, "")

			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(MatchJSON(`{"message":"Transaction deleted"}`))
			Expect(do(http.MethodGet, path, "").Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNotFound))
		})
	})
})

package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/moneymappr/internal"
	transactionDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/transaction"
	"github.com/frahmantamala/moneymappr/internal/core/events"
	"github.com/google/uuid"
)

// RepositoryAPI defines the data access methods for transactions
type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*transactionDatamodel.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*transactionDatamodel.Transaction, error)
	Create(ctx context.Context, t *transactionDatamodel.Transaction) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*transactionDatamodel.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service handles transaction business logic
type Service struct {
	repo         RepositoryAPI
	publisher    events.Publisher
	logger       *slog.Logger
	queryTimeout time.Duration
}

// NewService creates a new transaction service. A nil publisher drops events.
func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// List returns every transaction, most recent date first.
func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	dataTransactions, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err)
		return nil, internal.NewInternalError("Failed to fetch transactions", err)
	}

	return FromDataModelSlice(dataTransactions), nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*Transaction, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	dataTransaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("failed to get transaction", id, err)
	}

	return FromDataModel(dataTransaction), nil
}

func (s *Service) Create(ctx context.Context, dto CreateTransactionDTO) (*Transaction, error) {
	if appErr := dto.Validate(); appErr != nil {
		s.logger.Warn("transaction validation failed", "error", appErr.GetDetailedMessage())
		return nil, appErr
	}

	t := NewTransaction(dto)

	repoCtx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	dataTransaction := ToDataModel(t)
	if err := s.repo.Create(repoCtx, dataTransaction); err != nil {
		s.logger.Error("failed to create transaction", "error", err)
		return nil, internal.NewInternalError("Failed to add transaction", err)
	}

	created := FromDataModel(dataTransaction)
	s.logger.Info("transaction created",
		"transaction_id", created.ID,
		"amount", created.Amount.String(),
		"category", created.Category,
		"date", created.Date.String())

	s.publish(ctx, events.EventTypeTransactionCreated, created)
	return created, nil
}

// Update applies the fields present in dto. An empty patch returns the
// stored record unchanged.
func (s *Service) Update(ctx context.Context, rawID string, dto UpdateTransactionDTO) (*Transaction, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
	}

	if appErr := dto.Validate(); appErr != nil {
		s.logger.Warn("transaction patch validation failed", "transaction_id", id, "error", appErr.GetDetailedMessage())
		return nil, appErr
	}

	if dto.IsEmpty() {
		return s.Get(ctx, rawID)
	}

	repoCtx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	dataTransaction, err := s.repo.Update(repoCtx, id, dto.Changes())
	if err != nil {
		return nil, s.mapRepoError("failed to update transaction", id, err)
	}

	updated := FromDataModel(dataTransaction)
	s.logger.Info("transaction updated", "transaction_id", id)

	s.publish(ctx, events.EventTypeTransactionUpdated, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return internal.ErrTransactionNotFound
	}

	repoCtx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(repoCtx, id)
	if err != nil {
		return s.mapRepoError("failed to load transaction for delete", id, err)
	}

	if err := s.repo.Delete(repoCtx, id); err != nil {
		return s.mapRepoError("failed to delete transaction", id, err)
	}

	s.logger.Info("transaction deleted", "transaction_id", id)
	s.publish(ctx, events.EventTypeTransactionDeleted, FromDataModel(existing))
	return nil
}

func (s *Service) mapRepoError(message string, id uuid.UUID, err error) error {
	if errors.Is(err, ErrTransactionNotFound) {
		s.logger.Warn("transaction not found", "transaction_id", id)
		return internal.ErrTransactionNotFound
	}
	s.logger.Error(message, "transaction_id", id, "error", err)
	return internal.NewInternalError("Failed to access transaction", err)
}

func (s *Service) publish(ctx context.Context, eventType string, t *Transaction) {
	event := events.NewTransactionEvent(eventType, t.ID, t.Amount, t.Category, t.Date)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish transaction event", "event_type", eventType, "transaction_id", t.ID, "error", err)
	}
}

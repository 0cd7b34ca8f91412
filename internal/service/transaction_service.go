package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-orz/orz"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"github.com/xtbfolio/xtbfolio/internal/repo"
	"github.com/xtbfolio/xtbfolio/internal/xe"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Page is the list envelope shared by transactions and statistics.
type Page[T any] struct {
	Data   []T   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// TransactionCreate is the request body for manual entry and the row shape
// produced by the statement import.
type TransactionCreate struct {
	AccountID     int64                  `json:"accountId" validate:"required"`
	XtbID         int64                  `json:"xtbId" validate:"required"`
	Currency      models.Currency        `json:"currency" validate:"required,oneof=USD EUR PLN"`
	Symbol        string                 `json:"symbol" validate:"required"`
	Type          models.TransactionType `json:"type" validate:"required,oneof=BUY SELL"`
	Volume        float64                `json:"volume" validate:"gte=0"`
	OpenTime      time.Time              `json:"openTime" validate:"required"`
	OpenPrice     float64                `json:"openPrice" validate:"gte=0"`
	MarketPrice   float64                `json:"marketPrice" validate:"gte=0"`
	PurchaseValue float64                `json:"purchaseValue" validate:"gte=0"`
	Commission    float64                `json:"commission"`
	Swap          float64                `json:"swap"`
	Rollover      float64                `json:"rollover"`
	GrossPL       float64                `json:"grossPL"`
	Comment       string                 `json:"comment"`
}

// TransactionUpdate carries a partial update; nil fields are left untouched.
type TransactionUpdate struct {
	AccountID     *int64                  `json:"accountId" validate:"omitempty"`
	XtbID         *int64                  `json:"xtbId" validate:"omitempty"`
	Currency      *models.Currency        `json:"currency" validate:"omitempty,oneof=USD EUR PLN"`
	Symbol        *string                 `json:"symbol" validate:"omitempty,min=1"`
	Type          *models.TransactionType `json:"type" validate:"omitempty,oneof=BUY SELL"`
	Volume        *float64                `json:"volume" validate:"omitempty,gte=0"`
	OpenTime      *time.Time              `json:"openTime" validate:"omitempty"`
	OpenPrice     *float64                `json:"openPrice" validate:"omitempty,gte=0"`
	MarketPrice   *float64                `json:"marketPrice" validate:"omitempty,gte=0"`
	PurchaseValue *float64                `json:"purchaseValue" validate:"omitempty,gte=0"`
	Commission    *float64                `json:"commission"`
	Swap          *float64                `json:"swap"`
	Rollover      *float64                `json:"rollover"`
	GrossPL       *float64                `json:"grossPL"`
	Comment       *string                 `json:"comment"`
}

// TransactionQuery is the list query surface. GetAll bypasses pagination for
// consumers that need the whole set, like the statistics engine.
type TransactionQuery struct {
	SortBy string
	Order  string
	Limit  int
	Offset int
	Symbol string
	GetAll bool
}

type TransactionService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TransactionRepo
}

func NewTransactionService(db *gorm.DB, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		logger:          logger,
		Service:         orz.NewService(db),
		TransactionRepo: repo.NewTransactionRepo(db),
	}
}

func (s *TransactionService) AddTransaction(ctx context.Context, in TransactionCreate) (*models.Transaction, error) {
	transaction := in.toModel()
	if err := s.TransactionRepo.Create(ctx, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// AddTransactions inserts a batch inside one database transaction so a
// partially failed import never leaves rows behind.
func (s *TransactionService) AddTransactions(ctx context.Context, ins []TransactionCreate) ([]models.Transaction, error) {
	saved := make([]models.Transaction, 0, len(ins))
	err := s.Transaction(ctx, func(ctx context.Context) error {
		for _, in := range ins {
			transaction := in.toModel()
			if err := s.TransactionRepo.Create(ctx, &transaction); err != nil {
				return err
			}
			saved = append(saved, transaction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transactions saved", zap.Int("count", len(saved)))
	return saved, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	transaction, err := s.TransactionRepo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, query TransactionQuery) (*Page[models.Transaction], error) {
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "openTime"
	}
	direction := normalizeDirection(query.Order, "DESC")

	if query.GetAll {
		items, err := s.TransactionRepo.FindAllOrdered(ctx, sortBy, direction)
		if err != nil {
			return nil, err
		}
		total := int64(len(items))
		return &Page[models.Transaction]{Data: items, Total: total, Limit: int(total), Offset: 0}, nil
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.TransactionRepo.FindPage(ctx, query.Symbol, sortBy, direction, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page[models.Transaction]{Data: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, id uint, in TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.TransactionRepo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrTransactionNotFound
		}
		return nil, err
	}

	in.applyTo(&transaction)

	if err := s.TransactionRepo.Save(ctx, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uint) error {
	affected, err := s.TransactionRepo.Remove(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return xe.ErrTransactionNotFound
	}
	return nil
}

func (in TransactionCreate) toModel() models.Transaction {
	return models.Transaction{
		AccountID:     in.AccountID,
		XtbID:         in.XtbID,
		Currency:      in.Currency,
		Symbol:        in.Symbol,
		Type:          in.Type,
		Volume:        in.Volume,
		OpenTime:      in.OpenTime,
		OpenPrice:     in.OpenPrice,
		MarketPrice:   in.MarketPrice,
		PurchaseValue: in.PurchaseValue,
		Commission:    in.Commission,
		Swap:          in.Swap,
		Rollover:      in.Rollover,
		GrossPL:       in.GrossPL,
		Comment:       in.Comment,
	}
}

func (in TransactionUpdate) applyTo(t *models.Transaction) {
	if in.AccountID != nil {
		t.AccountID = *in.AccountID
	}
	if in.XtbID != nil {
		t.XtbID = *in.XtbID
	}
	if in.Currency != nil {
		t.Currency = *in.Currency
	}
	if in.Symbol != nil {
		t.Symbol = *in.Symbol
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Volume != nil {
		t.Volume = *in.Volume
	}
	if in.OpenTime != nil {
		t.OpenTime = *in.OpenTime
	}
	if in.OpenPrice != nil {
		t.OpenPrice = *in.OpenPrice
	}
	if in.MarketPrice != nil {
		t.MarketPrice = *in.MarketPrice
	}
	if in.PurchaseValue != nil {
		t.PurchaseValue = *in.PurchaseValue
	}
	if in.Commission != nil {
		t.Commission = *in.Commission
	}
	if in.Swap != nil {
		t.Swap = *in.Swap
	}
	if in.Rollover != nil {
		t.Rollover = *in.Rollover
	}
	if in.GrossPL != nil {
		t.GrossPL = *in.GrossPL
	}
	if in.Comment != nil {
		t.Comment = *in.Comment
	}
}

func normalizeDirection(order, fallback string) string {
	switch strings.ToUpper(order) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	default:
		return fallback
	}
}

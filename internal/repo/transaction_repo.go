package repo

import (
	"context"

	"github.com/go-orz/orz"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"gorm.io/gorm"
)

func NewTransactionRepo(db *gorm.DB) *TransactionRepo {
	return &TransactionRepo{
		Repository: orz.NewRepository[models.Transaction, uint](db),
	}
}

type TransactionRepo struct {
	orz.Repository[models.Transaction, uint]
}

// sortColumns maps API field names onto table columns. Anything not listed
// falls back to open_time so a bad sortBy can not reach the SQL string.
var sortColumns = map[string]string{
	"id":            "id",
	"accountId":     "account_id",
	"xtbId":         "xtb_id",
	"currency":      "currency",
	"symbol":        "symbol",
	"volume":        "volume",
	"openTime":      "open_time",
	"openPrice":     "open_price",
	"marketPrice":   "market_price",
	"purchaseValue": "purchase_value",
	"grossPL":       "gross_pl",
	"createdAt":     "created_at",
}

// SortColumn resolves an API sort field to its column, defaulting to open_time.
func SortColumn(field string) string {
	if column, ok := sortColumns[field]; ok {
		return column
	}
	return "open_time"
}

// FindPage returns one page of transactions plus the pre-pagination count.
func (r TransactionRepo) FindPage(ctx context.Context, symbol, sortBy, direction string, limit, offset int) ([]models.Transaction, int64, error) {
	db := r.GetDB(ctx)

	var total int64
	countQuery := db.Table(r.GetTableName())
	if symbol != "" {
		countQuery = countQuery.Where("symbol = ?", symbol)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Transaction
	listQuery := db.Table(r.GetTableName())
	if symbol != "" {
		listQuery = listQuery.Where("symbol = ?", symbol)
	}
	err := listQuery.
		Order(SortColumn(sortBy) + " " + direction).
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// FindAllOrdered returns every transaction sorted by the given field.
func (r TransactionRepo) FindAllOrdered(ctx context.Context, sortBy, direction string) ([]models.Transaction, error) {
	var items []models.Transaction
	err := r.GetDB(ctx).
		Table(r.GetTableName()).
		Order(SortColumn(sortBy) + " " + direction).
		Find(&items).Error
	return items, err
}

// Remove deletes by id and reports how many rows were affected.
func (r TransactionRepo) Remove(ctx context.Context, id uint) (int64, error) {
	result := r.GetDB(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	return result.RowsAffected, result.Error
}

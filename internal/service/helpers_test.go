package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/xtbfolio/xtbfolio/internal/config"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestTransactionService(t *testing.T) *TransactionService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewTransactionService(db, zap.NewNop())
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func testConfig() *config.Config {
	conf := &config.Config{}
	conf.ApplyDefaults()
	return conf
}

func buy(symbol string, volume, openPrice, marketPrice, grossPL float64, openTime time.Time) models.Transaction {
	return models.Transaction{
		AccountID:   1,
		XtbID:       1,
		Currency:    models.CurrencyUSD,
		Symbol:      symbol,
		Type:        models.TransactionTypeBuy,
		Volume:      volume,
		OpenTime:    openTime,
		OpenPrice:   openPrice,
		MarketPrice: marketPrice,
		GrossPL:     grossPL,
	}
}

func sell(symbol string, volume, openPrice, marketPrice, grossPL float64, openTime time.Time) models.Transaction {
	t := buy(symbol, volume, openPrice, marketPrice, grossPL, openTime)
	t.Type = models.TransactionTypeSell
	return t
}

func day(year int, month time.Month, dom int) time.Time {
	return time.Date(year, month, dom, 10, 0, 0, 0, time.UTC)
}

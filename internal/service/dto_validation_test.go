package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"github.com/xtbfolio/xtbfolio/pkg/nostd"
)

func newValidator(t *testing.T) *nostd.CustomValidator {
	t.Helper()
	cv := &nostd.CustomValidator{Validator: validator.New()}
	require.NoError(t, cv.TransInit())
	return cv
}

func TestTransactionCreateValidation(t *testing.T) {
	cv := newValidator(t)

	valid := TransactionCreate{
		AccountID: 1, XtbID: 2,
		Currency: models.CurrencyUSD, Symbol: "AAPL",
		Type: models.TransactionTypeBuy, Volume: 1,
		OpenTime: day(2025, time.January, 1), OpenPrice: 100, MarketPrice: 100,
	}
	assert.NoError(t, cv.Validate(&valid))

	badType := valid
	badType.Type = models.TransactionType("TRANSFER")
	assert.Error(t, cv.Validate(&badType), "unknown type must be rejected before it reaches the fold")

	badCurrency := valid
	badCurrency.Currency = models.Currency("GBP")
	assert.Error(t, cv.Validate(&badCurrency))

	negativeVolume := valid
	negativeVolume.Volume = -1
	assert.Error(t, cv.Validate(&negativeVolume))

	noSymbol := valid
	noSymbol.Symbol = ""
	assert.Error(t, cv.Validate(&noSymbol))
}

func TestTransactionUpdateValidation(t *testing.T) {
	cv := newValidator(t)

	assert.NoError(t, cv.Validate(&TransactionUpdate{}), "an empty partial update is allowed")

	sellType := models.TransactionTypeSell
	assert.NoError(t, cv.Validate(&TransactionUpdate{Type: &sellType}))

	badType := models.TransactionType("BALANCE")
	assert.Error(t, cv.Validate(&TransactionUpdate{Type: &badType}))

	negativePrice := -5.0
	assert.Error(t, cv.Validate(&TransactionUpdate{OpenPrice: &negativePrice}))
}

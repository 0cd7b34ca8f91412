package models

import (
	"time"
)

// TransactionType is the trade direction. Anything outside the closed set is
// rejected at the validation boundary and never reaches the statistics fold.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Currency is the settlement currency of a transaction.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyPLN Currency = "PLN"
)

func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyEUR || c == CurrencyPLN
}

// Transaction is a single brokerage trade record, entered manually or
// imported from an XTB account statement.
type Transaction struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID     int64           `gorm:"not null;index" json:"accountId"`
	XtbID         int64           `gorm:"not null" json:"xtbId"` // broker side id, may repeat across re-imports
	Currency      Currency        `gorm:"type:varchar(3);not null" json:"currency"`
	Symbol        string          `gorm:"type:varchar(32);not null;index" json:"symbol"`
	Type          TransactionType `gorm:"type:varchar(4);not null" json:"type"`
	Volume        float64         `gorm:"not null" json:"volume"`
	OpenTime      time.Time       `gorm:"not null;index" json:"openTime"`
	OpenPrice     float64         `gorm:"not null" json:"openPrice"`
	MarketPrice   float64         `gorm:"not null" json:"marketPrice"`
	PurchaseValue float64         `gorm:"not null" json:"purchaseValue"`
	Commission    float64         `json:"commission"`
	Swap          float64         `json:"swap"`
	Rollover      float64         `json:"rollover"`
	GrossPL       float64         `gorm:"column:gross_pl" json:"grossPL"`
	Comment       string          `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

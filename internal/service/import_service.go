package service

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/xtbfolio/xtbfolio/internal/config"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"github.com/xtbfolio/xtbfolio/internal/xe"
	"github.com/xtbfolio/xtbfolio/pkg/nostd"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XTB statements put the trade block on the second sheet, one column in from
// the left edge. The block opens with a Position/Symbol header row and closes
// with a Total row.
const (
	colPosition      = 1
	colSymbol        = 2
	colType          = 3
	colVolume        = 4
	colOpenTime      = 5
	colOpenPrice     = 6
	colMarketPrice   = 7
	colPurchaseValue = 8
	colCommission    = 12
	colSwap          = 13
	colRollover      = 14
	colGrossPL       = 15
	colComment       = 16
)

// Account id and currency live in the sheet preamble above the trade block.
const (
	accountRow         = 2
	colAccountID       = 8
	colAccountCurrency = 11
)

var xlsxMagic = []byte("PK\x03\x04")

type ImportResult struct {
	Imported int                  `json:"imported"`
	Preview  []models.Transaction `json:"preview"`
}

type ImportService struct {
	logger *zap.Logger
	conf   *config.Config

	transactions *TransactionService
}

func NewImportService(logger *zap.Logger, conf *config.Config, transactions *TransactionService) *ImportService {
	return &ImportService{
		logger:       logger,
		conf:         conf,
		transactions: transactions,
	}
}

// ImportStatement parses an uploaded XTB statement and persists every trade
// row in one batch. The whole upload is rejected when any row is unusable;
// a partial import would corrupt the derived statistics.
func (s *ImportService) ImportStatement(ctx context.Context, r io.Reader, size int64) (*ImportResult, error) {
	maxBytes := int64(s.conf.Import.MaxFileSizeMB) << 20
	if size > maxBytes {
		return nil, xe.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, xe.ErrFileTooLarge
	}
	if !bytes.HasPrefix(data, xlsxMagic) {
		return nil, xe.ErrNotASpreadsheet
	}

	rows, err := s.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	saved, err := s.transactions.AddTransactions(ctx, rows)
	if err != nil {
		return nil, err
	}

	preview := saved
	if len(preview) > s.conf.Import.PreviewRows {
		preview = preview[:s.conf.Import.PreviewRows]
	}

	s.logger.Info("statement imported",
		zap.Int("imported", len(saved)),
		zap.Int("preview", len(preview)))

	return &ImportResult{Imported: len(saved), Preview: preview}, nil
}

// Parse extracts validated transaction rows from an xlsx statement.
func (s *ImportService) Parse(r io.Reader) ([]TransactionCreate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, xe.ErrNotASpreadsheet
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return nil, xe.ErrMalformedStatement
	}

	rows, err := f.GetRows(sheets[1], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, xe.ErrMalformedStatement
	}

	accountID, err := strconv.ParseInt(cell(rows, accountRow, colAccountID), 10, 64)
	if err != nil {
		return nil, xe.ErrMalformedStatement
	}
	currency := models.Currency(cell(rows, accountRow, colAccountCurrency))
	if !currency.Valid() {
		return nil, xe.ErrMalformedStatement
	}

	var transactions []TransactionCreate
	inBlock := false

	for i := range rows {
		if cell(rows, i, colPosition) == "Position" && cell(rows, i, colSymbol) == "Symbol" {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		if cell(rows, i, colSymbol) == "Total" {
			break
		}

		symbol := cell(rows, i, colSymbol)
		typeValue := cell(rows, i, colType)
		if symbol == "" || typeValue == "" {
			continue
		}

		// The engine contract forbids coercing unknown types to SELL, so a
		// single bad row fails the import.
		transactionType := models.TransactionType(typeValue)
		if !transactionType.Valid() {
			s.logger.Warn("statement row has unknown transaction type",
				zap.String("symbol", symbol),
				zap.String("type", typeValue))
			return nil, xe.ErrMalformedStatement
		}

		xtbID, err := strconv.ParseInt(cell(rows, i, colPosition), 10, 64)
		if err != nil {
			return nil, xe.ErrMalformedStatement
		}
		serial, err := strconv.ParseFloat(cell(rows, i, colOpenTime), 64)
		if err != nil {
			return nil, xe.ErrMalformedStatement
		}

		transactions = append(transactions, TransactionCreate{
			AccountID:     accountID,
			XtbID:         xtbID,
			Currency:      currency,
			Symbol:        symbol,
			Type:          transactionType,
			Volume:        number(cell(rows, i, colVolume)),
			OpenTime:      nostd.ExcelDateToTime(serial),
			OpenPrice:     number(cell(rows, i, colOpenPrice)),
			MarketPrice:   number(cell(rows, i, colMarketPrice)),
			PurchaseValue: number(cell(rows, i, colPurchaseValue)),
			Commission:    number(cell(rows, i, colCommission)),
			Swap:          number(cell(rows, i, colSwap)),
			Rollover:      number(cell(rows, i, colRollover)),
			GrossPL:       number(cell(rows, i, colGrossPL)),
			Comment:       cell(rows, i, colComment),
		})
	}

	if !inBlock {
		return nil, xe.ErrMalformedStatement
	}
	return transactions, nil
}

func cell(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return strings.TrimSpace(rows[row][col])
}

// number is lenient on purpose: optional fee columns may be blank or carry
// locale noise, and default to zero.
func number(value string) float64 {
	value = strings.ReplaceAll(value, ",", ".")
	value = strings.ReplaceAll(value, " ", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

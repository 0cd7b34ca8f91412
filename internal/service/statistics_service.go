package service

import (
	"context"
	"sort"
	"strings"

	"github.com/markcheno/go-talib"
	"github.com/xtbfolio/xtbfolio/internal/config"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"github.com/xtbfolio/xtbfolio/internal/xe"
	"github.com/xtbfolio/xtbfolio/pkg/nostd"
	"go.uber.org/zap"
)

// Statistics is the aggregated position for one symbol. It is derived on
// every request and never persisted.
type Statistics struct {
	Symbol       string          `json:"symbol"`
	Currency     models.Currency `json:"currency"`
	TotalVolume  float64         `json:"totalVolume"`
	TotalCost    float64         `json:"totalCost"`
	CurrentValue float64         `json:"currentValue"`
	AvgPrice     float64         `json:"avgPrice"`
	GrossPL      float64         `json:"grossPL"`
}

// TimelinePoint is one step of the cumulative invested-value series, one
// point per transaction in openTime order. Sma is only set when a moving
// average overlay was requested and the window has filled.
type TimelinePoint struct {
	Date  string   `json:"date"`
	Value float64  `json:"value"`
	Sma   *float64 `json:"sma,omitempty"`
}

type StatisticsQuery struct {
	SortBy string
	Order  string
	Limit  int
	Offset int
}

type StatisticsService struct {
	logger *zap.Logger
	conf   *config.Config

	transactions *TransactionService
}

func NewStatisticsService(logger *zap.Logger, conf *config.Config, transactions *TransactionService) *StatisticsService {
	return &StatisticsService{
		logger:       logger,
		conf:         conf,
		transactions: transactions,
	}
}

// GetPortfolioStats folds every stored transaction into per-symbol
// statistics, then sorts and paginates the derived rows.
func (s *StatisticsService) GetPortfolioStats(ctx context.Context, query StatisticsQuery) (*Page[Statistics], error) {
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "symbol"
	}
	order := normalizeDirection(query.Order, "DESC")

	limit := query.Limit
	if limit <= 0 {
		limit = s.conf.Statistics.DefaultLimit
	}
	if limit > s.conf.Statistics.MaxLimit {
		limit = s.conf.Statistics.MaxLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	page, err := s.transactions.ListTransactions(ctx, TransactionQuery{
		GetAll: true,
		SortBy: "openTime",
		Order:  "ASC",
	})
	if err != nil {
		return nil, err
	}

	stats, err := computeStatistics(page.Data)
	if err != nil {
		return nil, err
	}
	sortStatistics(stats, sortBy, order)

	return &Page[Statistics]{
		Data:   paginate(stats, limit, offset),
		Total:  int64(len(stats)),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// GetPortfolioTimeline returns the cumulative series; smaPeriod >= 2 adds a
// simple moving average overlay once enough points exist.
func (s *StatisticsService) GetPortfolioTimeline(ctx context.Context, smaPeriod int) ([]TimelinePoint, error) {
	page, err := s.transactions.ListTransactions(ctx, TransactionQuery{
		GetAll: true,
		SortBy: "openTime",
		Order:  "ASC",
	})
	if err != nil {
		return nil, err
	}

	points, err := buildTimeline(page.Data)
	if err != nil {
		return nil, err
	}

	applySmaOverlay(points, smaPeriod)
	return points, nil
}

// computeStatistics is a single pass over the input; the result does not
// depend on input order. Accumulators are value types replaced on every
// update, keyed by symbol. The first transaction seen for a symbol decides
// its reported currency.
func computeStatistics(transactions []models.Transaction) ([]Statistics, error) {
	grouped := make(map[string]Statistics)
	seen := make([]string, 0)

	for _, t := range transactions {
		g, ok := grouped[t.Symbol]
		if !ok {
			g = Statistics{Symbol: t.Symbol, Currency: t.Currency}
			seen = append(seen, t.Symbol)
		}

		var sign float64
		switch t.Type {
		case models.TransactionTypeBuy:
			sign = 1
		case models.TransactionTypeSell:
			sign = -1
		default:
			// Upstream validation should have caught this; refusing here
			// beats silently treating it as a sell.
			return nil, xe.ErrUnknownTransactionType
		}

		g.TotalVolume += sign * t.Volume
		g.TotalCost += sign * t.Volume * t.OpenPrice
		// Market exposure touched, not net open value: sells contribute
		// positively too.
		g.CurrentValue += t.Volume * t.MarketPrice
		g.GrossPL += t.GrossPL

		grouped[t.Symbol] = g
	}

	stats := make([]Statistics, 0, len(seen))
	for _, symbol := range seen {
		g := grouped[symbol]
		if g.TotalVolume > 0 {
			g.AvgPrice = g.TotalCost / g.TotalVolume
		}
		g.TotalVolume = nostd.RoundVolume(g.TotalVolume)
		g.TotalCost = nostd.RoundCurrency(g.TotalCost)
		g.CurrentValue = nostd.RoundCurrency(g.CurrentValue)
		g.AvgPrice = nostd.RoundCurrency(g.AvgPrice)
		g.GrossPL = nostd.RoundCurrency(g.GrossPL)
		stats = append(stats, g)
	}
	return stats, nil
}

var statisticsNumberKeys = map[string]func(Statistics) float64{
	"totalVolume":  func(s Statistics) float64 { return s.TotalVolume },
	"totalCost":    func(s Statistics) float64 { return s.TotalCost },
	"currentValue": func(s Statistics) float64 { return s.CurrentValue },
	"avgPrice":     func(s Statistics) float64 { return s.AvgPrice },
	"grossPL":      func(s Statistics) float64 { return s.GrossPL },
}

var statisticsStringKeys = map[string]func(Statistics) string{
	"symbol":   func(s Statistics) string { return s.Symbol },
	"currency": func(s Statistics) string { return string(s.Currency) },
}

// sortStatistics sorts in place. An unknown sortBy leaves the slice as is.
func sortStatistics(stats []Statistics, sortBy, order string) {
	desc := strings.EqualFold(order, "DESC")

	if key, ok := statisticsNumberKeys[sortBy]; ok {
		sort.SliceStable(stats, func(i, j int) bool {
			if desc {
				return key(stats[i]) > key(stats[j])
			}
			return key(stats[i]) < key(stats[j])
		})
		return
	}
	if key, ok := statisticsStringKeys[sortBy]; ok {
		sort.SliceStable(stats, func(i, j int) bool {
			if desc {
				return key(stats[i]) > key(stats[j])
			}
			return key(stats[i]) < key(stats[j])
		})
	}
}

// paginate slices after the full sort; an offset past the end is an empty
// page, never an error.
func paginate(stats []Statistics, limit, offset int) []Statistics {
	if offset >= len(stats) {
		return []Statistics{}
	}
	end := offset + limit
	if end > len(stats) {
		end = len(stats)
	}
	return stats[offset:end]
}

// buildTimeline emits one point per transaction in openTime-ascending order,
// resorting locally so correctness never depends on the store's default
// ordering. Ties keep their fetch order.
func buildTimeline(transactions []models.Transaction) ([]TimelinePoint, error) {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OpenTime.Before(ordered[j].OpenTime)
	})

	points := make([]TimelinePoint, 0, len(ordered))
	cumulative := 0.0
	for _, t := range ordered {
		var sign float64
		switch t.Type {
		case models.TransactionTypeBuy:
			sign = 1
		case models.TransactionTypeSell:
			sign = -1
		default:
			return nil, xe.ErrUnknownTransactionType
		}

		cumulative += sign * t.Volume * t.OpenPrice
		points = append(points, TimelinePoint{
			Date:  t.OpenTime.UTC().Format("2006-01-02"),
			Value: nostd.RoundCurrency(cumulative),
		})
	}
	return points, nil
}

// applySmaOverlay decorates points with a simple moving average of the
// cumulative value. Periods that cannot fill a window are ignored.
func applySmaOverlay(points []TimelinePoint, period int) {
	if period < 2 || period > len(points) {
		return
	}

	values := make([]float64, len(points))
	for i := range points {
		values[i] = points[i].Value
	}

	sma := talib.Sma(values, period)
	for i := period - 1; i < len(points); i++ {
		v := nostd.RoundCurrency(sma[i])
		points[i].Sma = &v
	}
}

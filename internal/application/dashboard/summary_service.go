package dashboard

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	appstorefront "github.com/storeboard/backend/internal/application/storefront"
	"github.com/storeboard/backend/internal/domain/storefront"
	"go.uber.org/zap"
)

// upstreamTimeLayout is the ISO-8601 shape the store API expects for
// date filters (no timezone designator).
const upstreamTimeLayout = "2006-01-02T15:04:05"

// orderPageSize bounds the order fetches per window.
const orderPageSize = 100

// Summary is the aggregated dashboard report.
type Summary struct {
	CurrentMonthTotal  float64      `json:"currentMonthTotal"`
	PercentChange      float64      `json:"percentChange"`
	OrderCount         int          `json:"orderCount"`
	OrderPercentChange float64      `json:"orderPercentChange"`
	ProductCount       int          `json:"productCount"`
	OutOfStockCount    int          `json:"outOfStockCount"`
	SalesData          []MonthSales `json:"salesData"`
	RecentOrders       []RecentOrder `json:"recentOrders"`
	TopProducts        []TopProduct  `json:"topProducts"`
}

// MonthSales is one entry of the trailing monthly series.
type MonthSales struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// RecentOrder is a reduced order for the dashboard's recent list.
type RecentOrder struct {
	ID       int64  `json:"id"`
	Number   string `json:"number"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Total    string `json:"total"`
	Status   string `json:"status"`
}

// TopProduct is a reduced product for the dashboard's top-seller list.
type TopProduct struct {
	Name      string `json:"name"`
	UnitsSold int64  `json:"unitsSold"`
	Revenue   string `json:"revenue"`
}

// SummaryService builds the point-in-time dashboard report. Every
// call re-fetches from the store; nothing is cached.
type SummaryService struct {
	credentials appstorefront.CredentialSource
	gateway     storefront.Gateway
	logger      *zap.Logger

	now func() time.Time
}

// NewSummaryService creates a new dashboard summary service
func NewSummaryService(credentials appstorefront.CredentialSource, gateway storefront.Gateway, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		credentials: credentials,
		gateway:     gateway,
		logger:      logger,
		now:         time.Now,
	}
}

// BuildSummary aggregates the account's store into a dashboard
// report. Calls are issued sequentially; the first failure aborts the
// whole summary.
func (s *SummaryService) BuildSummary(ctx context.Context, accountID int64) (*Summary, error) {
	storeURL, key, secret, err := s.credentials.StoreCredentials(ctx, accountID)
	if err != nil {
		return nil, err
	}
	creds := storefront.Credentials{StoreURL: storeURL, ConsumerKey: key, ConsumerSecret: secret}

	now := s.now()
	curStart := startOfMonth(now)
	prevStart := curStart.AddDate(0, -1, 0)

	currentOrders, err := s.fetchOrders(ctx, creds, curStart, time.Time{})
	if err != nil {
		return nil, err
	}
	previousOrders, err := s.fetchOrders(ctx, creds, prevStart, curStart)
	if err != nil {
		return nil, err
	}

	topRaw, err := s.gateway.ListProducts(ctx, creds, url.Values{
		"orderby":  {"popularity"},
		"order":    {"desc"},
		"per_page": {"5"},
	})
	if err != nil {
		return nil, err
	}
	topProducts, err := storefront.DecodeProducts(topRaw)
	if err != nil {
		return nil, err
	}

	lowStockRaw, err := s.gateway.ListProducts(ctx, creds, url.Values{
		"stock_status": {"instock"},
		"per_page":     {"10"},
	})
	if err != nil {
		return nil, err
	}
	lowStock, err := storefront.DecodeProducts(lowStockRaw)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(lowStock, func(i, j int) bool {
		return stockOf(lowStock[i]) < stockOf(lowStock[j])
	})

	// 1-item probe: the result length only distinguishes zero from
	// non-zero out-of-stock products.
	probeRaw, err := s.gateway.ListProducts(ctx, creds, url.Values{
		"stock_status": {"outofstock"},
		"per_page":     {"1"},
	})
	if err != nil {
		return nil, err
	}
	probe, err := storefront.DecodeProducts(probeRaw)
	if err != nil {
		return nil, err
	}

	salesData, err := s.monthlySeries(ctx, creds, curStart)
	if err != nil {
		return nil, err
	}

	curTotal, curCount := sumOrders(currentOrders)
	prevTotal, prevCount := sumOrders(previousOrders)

	summary := &Summary{
		CurrentMonthTotal:  curTotal.InexactFloat64(),
		PercentChange:      percentChange(curTotal, prevTotal),
		OrderCount:         curCount,
		OrderPercentChange: percentChange(decimal.NewFromInt(int64(curCount)), decimal.NewFromInt(int64(prevCount))),
		ProductCount:       len(lowStock),
		OutOfStockCount:    len(probe),
		SalesData:          salesData,
		RecentOrders:       recentOrders(currentOrders),
		TopProducts:        reduceTopProducts(topProducts),
	}

	s.logger.Debug("Dashboard summary built",
		zap.Int64("account_id", accountID),
		zap.Int("order_count", summary.OrderCount))

	return summary, nil
}

// fetchOrders fetches one order window. A zero `before` leaves the
// upper bound open.
func (s *SummaryService) fetchOrders(ctx context.Context, creds storefront.Credentials, after, before time.Time) ([]storefront.Order, error) {
	query := url.Values{
		"after":    {after.Format(upstreamTimeLayout)},
		"per_page": {strconv.Itoa(orderPageSize)},
	}
	if !before.IsZero() {
		query.Set("before", before.Format(upstreamTimeLayout))
	}

	raw, err := s.gateway.ListOrders(ctx, creds, query)
	if err != nil {
		return nil, err
	}
	return storefront.DecodeOrders(raw)
}

// monthlySeries builds the trailing 7-month sales series in
// chronological order, current month last.
func (s *SummaryService) monthlySeries(ctx context.Context, creds storefront.Credentials, curStart time.Time) ([]MonthSales, error) {
	series := make([]MonthSales, 0, 7)
	for i := 6; i >= 0; i-- {
		monthStart := curStart.AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		orders, err := s.fetchOrders(ctx, creds, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		total, count := sumOrders(orders)
		series = append(series, MonthSales{
			Month:  monthStart.Format("Jan"),
			Sales:  total.InexactFloat64(),
			Orders: count,
		})
	}
	return series, nil
}

// sumOrders totals the orders of a window, skipping cancelled and
// refunded ones for both the sales total and the order count.
func sumOrders(orders []storefront.Order) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, o := range orders {
		if o.Status == "cancelled" || o.Status == "refunded" {
			continue
		}
		total = total.Add(o.TotalDecimal())
		count++
	}
	return total, count
}

// percentChange computes (cur-prev)/prev*100 rounded to one decimal.
// A zero previous value yields exactly 100 as an "infinite growth"
// sentinel rather than dividing by zero.
func percentChange(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		return 100
	}
	return cur.Sub(prev).
		Div(prev).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		InexactFloat64()
}

// recentOrders reduces the first five current-month orders.
func recentOrders(orders []storefront.Order) []RecentOrder {
	recent := make([]RecentOrder, 0, 5)
	for _, o := range orders {
		if len(recent) == 5 {
			break
		}
		recent = append(recent, RecentOrder{
			ID:       o.ID,
			Number:   o.Number,
			Customer: customerName(o.Billing),
			Date:     o.DateCreated,
			Total:    o.Total,
			Status:   o.Status,
		})
	}
	return recent
}

func customerName(b storefront.Billing) string {
	switch {
	case b.FirstName != "" && b.LastName != "":
		return b.FirstName + " " + b.LastName
	case b.FirstName != "":
		return b.FirstName
	default:
		return b.LastName
	}
}

// reduceTopProducts reduces the first five popularity-sorted products,
// revenue = price * units sold at two decimals.
func reduceTopProducts(products []storefront.Product) []TopProduct {
	top := make([]TopProduct, 0, 5)
	for _, p := range products {
		if len(top) == 5 {
			break
		}
		units := decimal.NewFromInt(p.TotalSales)
		top = append(top, TopProduct{
			Name:      p.Name,
			UnitsSold: p.TotalSales,
			Revenue:   p.PriceDecimal().Mul(units).StringFixed(2),
		})
	}
	return top
}

func stockOf(p storefront.Product) int {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

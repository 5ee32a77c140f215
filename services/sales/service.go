// Package sales builds the admin sales report.
package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository"

	"github.com/shopspring/decimal"
)

const (
	topN = 5

	// bucketLayout keeps millisecond precision, matching stored timestamps.
	bucketLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Service struct {
	orders repository.OrderRepository
}

func New(orders repository.OrderRepository) *Service {
	return &Service{orders: orders}
}

// ParseRange reads the report bounds. Both accept RFC3339 or YYYY-MM-DD; a
// date-only end covers that whole day.
func ParseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, _, err := parseBound(startRaw, "startDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, dateOnly, err := parseBound(endRaw, "endDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperror.New(apperror.BadInput, "startDate must not be after endDate")
	}
	return start, end, nil
}

func parseBound(raw, name string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, apperror.New(apperror.BadInput, name+" is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	// an unescaped "+hh:mm" offset arrives with the plus decoded to a space
	if i := strings.LastIndexByte(raw, ' '); i > 0 {
		if t, err := time.Parse(time.RFC3339, raw[:i]+"+"+raw[i+1:]); err == nil {
			return t.UTC(), false, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, apperror.New(apperror.BadInput, "invalid "+name)
}

type tally struct {
	count   int
	revenue decimal.Decimal
}

// Report aggregates orders created in [start, end]. Revenue and book counts
// only include delivered orders and use each book's list price. totalOrders
// and totalDeliveredOrders are store-wide, not range-scoped.
func (s *Service) Report(ctx context.Context, start, end time.Time) (*models.SalesReport, error) {
	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	delivered, err := s.orders.CountByStatus(ctx, models.StatusDelivered)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	booksSold := 0
	byBook := map[string]*tally{}
	buckets := map[time.Time]decimal.Decimal{}

	for _, o := range orders {
		key := o.CreatedAt.UTC().Truncate(time.Millisecond)
		if _, ok := buckets[key]; !ok {
			buckets[key] = decimal.Zero
		}
		if o.Status != models.StatusDelivered {
			continue
		}
		for _, b := range o.Books {
			price := decimal.NewFromFloat(b.Price)
			booksSold++
			revenue = revenue.Add(price)
			buckets[key] = buckets[key].Add(price)

			t, ok := byBook[b.Name]
			if !ok {
				t = &tally{revenue: decimal.Zero}
				byBook[b.Name] = t
			}
			t.count++
			t.revenue = t.revenue.Add(price)
		}
	}

	report := &models.SalesReport{
		TotalOrders:          total,
		TotalDeliveredOrders: delivered,
		TotalBooksSold:       booksSold,
		TotalRevenue:         revenue.InexactFloat64(),
		SalesByBook:          make(map[string]models.BookTally, len(byBook)),
		MonthlySales:         monthly(buckets),
		TopSellingBooks:      topSellers(byBook),
		AllOrders:            orders,
	}
	for name, t := range byBook {
		report.SalesByBook[name] = models.BookTally{Count: t.count, Revenue: t.revenue.InexactFloat64()}
	}
	return report, nil
}

func monthly(buckets map[time.Time]decimal.Decimal) []models.SalesBucket {
	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]models.SalesBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.SalesBucket{
			Month: k.Format(bucketLayout),
			Sales: buckets[k].InexactFloat64(),
		})
	}
	return out
}

func topSellers(byBook map[string]*tally) []models.TopSeller {
	out := make([]models.TopSeller, 0, len(byBook))
	for name, t := range byBook {
		out = append(out, models.TopSeller{Name: name, Sales: t.count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

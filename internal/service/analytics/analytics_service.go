package analytics

import (
	"context"
	"math"
	"time"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/repository"
)

type AnalyticsUseCase interface {
	Revenue(ctx context.Context, from, to *time.Time) (*RevenueReport, error)
	ServiceDemand(ctx context.Context) (*DemandReport, error)
}

type RevenueReport struct {
	TotalRevenue      float64            `json:"total_revenue"`
	TotalTransactions int                `json:"total_transactions"`
	RevenueByMonth    map[string]float64 `json:"revenue_by_month"`
}

type CategoryDemand struct {
	TotalBookings  int64                  `json:"total_bookings"`
	TotalCompleted int64                  `json:"total_completed"`
	Services       []domain.ServiceDemand `json:"services"`
}

type DemandReport struct {
	ServiceDemand    []domain.ServiceDemand    `json:"service_demand"`
	DemandByCategory map[string]CategoryDemand `json:"demand_by_category"`
}

type AnalyticsService struct {
	payments repository.PaymentRepository
	bookings repository.BookingRepository
}

func NewAnalyticsService(payments repository.PaymentRepository, bookings repository.BookingRepository) *AnalyticsService {
	return &AnalyticsService{payments: payments, bookings: bookings}
}

func (s *AnalyticsService) Revenue(ctx context.Context, from, to *time.Time) (*RevenueReport, error) {
	succeeded, err := s.payments.ListSucceeded(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var totalCents int64
	centsByMonth := make(map[string]int64)
	for _, p := range succeeded {
		totalCents += p.AmountCents
		centsByMonth[p.CreatedAt.UTC().Format("2006-01")] += p.AmountCents
	}

	report := &RevenueReport{
		TotalRevenue:      roundCents(float64(totalCents)),
		TotalTransactions: len(succeeded),
		RevenueByMonth:    make(map[string]float64, len(centsByMonth)),
	}
	for month, cents := range centsByMonth {
		report.RevenueByMonth[month] = roundCents(float64(cents))
	}
	return report, nil
}

func (s *AnalyticsService) ServiceDemand(ctx context.Context) (*DemandReport, error) {
	demand, err := s.bookings.DemandByService(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]CategoryDemand)
	for _, d := range demand {
		cat := byCategory[d.Category]
		cat.TotalBookings += d.BookingCount
		cat.TotalCompleted += d.CompletedCount
		cat.Services = append(cat.Services, d)
		byCategory[d.Category] = cat
	}

	return &DemandReport{ServiceDemand: demand, DemandByCategory: byCategory}, nil
}

// roundCents converts a minor-unit amount to major units at two decimals.
func roundCents(cents float64) float64 {
	return math.Round(cents) / 100
}

var _ AnalyticsUseCase = (*AnalyticsService)(nil)

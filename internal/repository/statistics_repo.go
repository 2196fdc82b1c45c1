package repository

import (
	"context"
	"fmt"

	"acservice/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatisticsRepository computes the dashboard aggregates
type StatisticsRepository interface {
	GetDashboard(ctx context.Context) (model.DashboardStats, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) GetDashboard(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	db := GetDB(ctx, r.db)

	if err := db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, fmt.Errorf("failed to count users: %w", err)
	}

	var totals struct {
		Total   int64
		Open    int64
		Revenue string
		Pending string
	}
	err := db.Model(&model.Complaint{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status IN ?) AS open,
			COALESCE(CAST(SUM(payment_amount - payment_balance_amount) AS TEXT), '0') AS revenue,
			COALESCE(CAST(SUM(payment_balance_amount) AS TEXT), '0') AS pending`,
			[]model.ComplaintStatus{model.StatusOpen, model.StatusInProgress}).
		Scan(&totals).Error
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate complaints: %w", err)
	}

	stats.TotalComplaints = totals.Total
	stats.OpenComplaints = totals.Open
	if stats.TotalRevenue, err = decimal.NewFromString(totals.Revenue); err != nil {
		return stats, fmt.Errorf("invalid revenue total %q: %w", totals.Revenue, err)
	}
	if stats.PendingPayments, err = decimal.NewFromString(totals.Pending); err != nil {
		return stats, fmt.Errorf("invalid pending total %q: %w", totals.Pending, err)
	}
	return stats, nil
}

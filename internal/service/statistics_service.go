package service

import (
	"context"

	"acservice/internal/model"
	"acservice/internal/repository"
)

type StatisticsService interface {
	GetDashboard(ctx context.Context) (model.DashboardStats, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

// GetDashboard returns user/complaint counters and the money collected and outstanding
func (s *statisticsService) GetDashboard(ctx context.Context) (model.DashboardStats, error) {
	return s.repo.GetDashboard(ctx)
}

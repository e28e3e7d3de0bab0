package service

import (
	"context"

	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
)

type AnalyticsService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func (s *analyticsService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {

	stats, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to compute dashboard stats").WithError(err)
	}

	return stats, nil
}

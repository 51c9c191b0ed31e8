package service

import (
	"context"
	"encoding/json"

	"officebot/internal/repository"
	"officebot/pkg/formatter"
)

type CalculationLogResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	TaxYear   *int            `json:"tax_year,omitempty"`
	Request   json.RawMessage `json:"request" swaggertype:"object"`
	Summary   string          `json:"summary"`
	CreatedAt string          `json:"created_at"`
}

type CalculationLogService interface {
	List(ctx context.Context, page, limit int) ([]CalculationLogResponse, int64, error)
}

type calculationLogService struct {
	repo repository.CalculationLogRepository
}

func NewCalculationLogService(repo repository.CalculationLogRepository) CalculationLogService {
	return &calculationLogService{repo: repo}
}

// List returns one page of the calculation log, newest first.
func (s *calculationLogService) List(ctx context.Context, page, limit int) ([]CalculationLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]CalculationLogResponse, 0, len(logs))
	for _, l := range logs {
		var req json.RawMessage
		if l.Request != "" {
			req = json.RawMessage(l.Request)
		}
		res = append(res, CalculationLogResponse{
			ID:        l.ID.String(),
			Kind:      l.Kind,
			TaxYear:   l.TaxYear,
			Request:   req,
			Summary:   l.Summary,
			CreatedAt: formatter.FormatDateTime(l.CreatedAt),
		})
	}
	return res, total, nil
}

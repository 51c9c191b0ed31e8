package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"officebot/internal/model"
	"officebot/internal/repository"
	"officebot/internal/taxconfig"
	"officebot/internal/websocket"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type PublishTaxYearRequest struct {
	Document taxconfig.YearDocument `json:"document"`
	Note     string                 `json:"note"`
}

type TaxYearSummary struct {
	Year        int             `json:"year"`
	PPNRate     decimal.Decimal `json:"ppn_rate"`
	Source      string          `json:"source"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	Note        string          `json:"note,omitempty"`
}

type TaxYearResponse struct {
	TaxYearSummary
	Document taxconfig.YearDocument `json:"document"`
}

const (
	SourceEmbedded  = "embedded"
	SourcePublished = "published"
)

// EventPublisher is satisfied by *websocket.Hub.
type EventPublisher interface {
	Publish(ev websocket.Event) error
}

// --- Interface ---

type TaxYearService interface {
	List(ctx context.Context) ([]TaxYearSummary, error)
	Get(ctx context.Context, year int) (TaxYearResponse, error)
	Publish(ctx context.Context, req PublishTaxYearRequest) (TaxYearResponse, error)
}

type taxYearService struct {
	store     *taxconfig.Store
	repo      repository.TaxYearRepository
	txManager repository.TransactionManager
	events    EventPublisher
	recorder  calculationRecorder
	log       *zap.Logger
}

func NewTaxYearService(
	store *taxconfig.Store,
	repo repository.TaxYearRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
	logRepo repository.CalculationLogRepository,
	log *zap.Logger,
) TaxYearService {
	return &taxYearService{
		store:     store,
		repo:      repo,
		txManager: txManager,
		events:    events,
		recorder:  calculationRecorder{repo: logRepo, log: log},
		log:       log,
	}
}

// --- Implementation ---

func (s *taxYearService) List(ctx context.Context) ([]TaxYearSummary, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	published := make(map[int]model.TaxYear, len(rows))
	for _, r := range rows {
		published[r.Year] = r
	}

	reg := s.store.Current()
	out := make([]TaxYearSummary, 0, len(reg.Years()))
	for _, y := range reg.Years() {
		cfg, err := reg.Config(y)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(cfg, published))
	}
	return out, nil
}

func (s *taxYearService) Get(ctx context.Context, year int) (TaxYearResponse, error) {
	cfg, err := s.store.Config(year)
	if err != nil {
		return TaxYearResponse{}, err
	}
	published := map[int]model.TaxYear{}
	row, err := s.repo.FindByYear(ctx, year)
	switch {
	case err == nil:
		published[year] = *row
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return TaxYearResponse{}, err
	}
	return TaxYearResponse{TaxYearSummary: summarize(cfg, published), Document: taxconfig.ToDocument(cfg)}, nil
}

// Publish validates the document and stores it. The live registry is swapped
// only after the transaction commits; clients are notified afterwards.
func (s *taxYearService) Publish(ctx context.Context, req PublishTaxYearRequest) (TaxYearResponse, error) {
	cfg, err := req.Document.Config()
	if err != nil {
		return TaxYearResponse{}, err
	}
	doc := taxconfig.ToDocument(cfg)
	body, err := json.Marshal(doc)
	if err != nil {
		return TaxYearResponse{}, err
	}

	now := time.Now().UTC()
	row := &model.TaxYear{
		Year:        cfg.Year,
		Document:    string(body),
		PPNRate:     cfg.PPNRate,
		Note:        req.Note,
		PublishedAt: now,
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.Current().With(cfg); err != nil {
			return err
		}
		if err := s.repo.Upsert(txCtx, row); err != nil {
			return fmt.Errorf("failed to store tax year %d: %w", cfg.Year, err)
		}
		return nil
	})
	if err != nil {
		return TaxYearResponse{}, err
	}
	if _, err := s.store.Publish(cfg); err != nil {
		return TaxYearResponse{}, err
	}

	s.log.Info("tax year published", zap.Int("year", cfg.Year), zap.String("ppn_rate", cfg.PPNRate.String()))
	if err := s.events.Publish(websocket.Event{
		Type: websocket.EventTaxYearPublished,
		Data: map[string]int{"year": cfg.Year},
		At:   now,
	}); err != nil {
		s.log.Warn("tax year event dropped", zap.Int("year", cfg.Year), zap.Error(err))
	}
	s.recorder.record(ctx, model.KindPublishTaxYear, yearPtr(cfg.Year), req, fmt.Sprintf("tahun pajak %d", cfg.Year))

	return TaxYearResponse{
		TaxYearSummary: TaxYearSummary{
			Year:        cfg.Year,
			PPNRate:     cfg.PPNRate,
			Source:      SourcePublished,
			PublishedAt: &now,
			Note:        req.Note,
		},
		Document: doc,
	}, nil
}

func summarize(cfg taxconfig.Config, published map[int]model.TaxYear) TaxYearSummary {
	sum := TaxYearSummary{Year: cfg.Year, PPNRate: cfg.PPNRate, Source: SourceEmbedded}
	if row, ok := published[cfg.Year]; ok {
		at := row.PublishedAt
		sum.Source = SourcePublished
		sum.PublishedAt = &at
		sum.Note = row.Note
	}
	return sum
}

// PublishedOverrides reads every stored tax year so startup can layer them
// over the embedded tables.
func PublishedOverrides(ctx context.Context, repo repository.TaxYearRepository) ([]taxconfig.YearDocument, error) {
	rows, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]taxconfig.YearDocument, 0, len(rows))
	for _, r := range rows {
		var doc taxconfig.YearDocument
		if err := json.Unmarshal([]byte(r.Document), &doc); err != nil {
			return nil, fmt.Errorf("%w: stored year %d: %v", taxconfig.ErrInvalidBracketConfig, r.Year, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

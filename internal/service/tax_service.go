package service

import (
	"context"
	"fmt"

	"officebot/internal/model"
	"officebot/internal/repository"
	"officebot/internal/taxconfig"
	"officebot/internal/taxengine"
	"officebot/pkg/formatter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type PPh21Request struct {
	Year                 int    `json:"year" example:"2024"`
	Period               string `json:"period" binding:"omitempty,oneof=monthly annual" example:"monthly"`
	Gross                Amount `json:"gross" swaggertype:"string" example:"Rp 10.000.000"`
	NonTaxableAllowances Amount `json:"non_taxable_allowances" swaggertype:"string"`
	BenefitsInKind       Amount `json:"benefits_in_kind" swaggertype:"string"`
	Deductions           Amount `json:"deductions" swaggertype:"string"`
	ProfileRequest
}

type SegmentResponse struct {
	Layer   int             `json:"layer"`
	Lower   int64           `json:"lower"`
	Upper   *int64          `json:"upper"` // nil for the top bracket
	Taxable int64           `json:"taxable"`
	Rate    decimal.Decimal `json:"rate"`
	Tax     decimal.Decimal `json:"tax"`
}

type PPh21Response struct {
	Year             int               `json:"year"`
	Category         string            `json:"ptkp_category"`
	HasNPWP          bool              `json:"has_npwp"`
	GrossAnnual      int64             `json:"gross_annual"`
	TaxableGross     int64             `json:"taxable_gross"`
	OccupationalCost int64             `json:"occupational_cost"`
	Deductions       int64             `json:"deductions"`
	NetIncome        int64             `json:"net_income"`
	PTKP             int64             `json:"ptkp"`
	TaxableBase      int64             `json:"taxable_base"`
	Segments         []SegmentResponse `json:"segments"`
	BracketTax       decimal.Decimal   `json:"bracket_tax"`
	Surcharge        decimal.Decimal   `json:"surcharge"`
	TotalTax         decimal.Decimal   `json:"total_tax"`
	AnnualTax        int64             `json:"annual_tax"`
	MonthlyTax       int64             `json:"monthly_tax"`
	NetAmount        int64             `json:"net_amount"`
	EffectiveRate    decimal.Decimal   `json:"effective_rate"`
	Display          PPh21Display      `json:"display"`
}

type PPh21Display struct {
	AnnualTax       string `json:"annual_tax"`
	MonthlyTax      string `json:"monthly_tax"`
	EffectiveRate   string `json:"effective_rate"`
	MonthlyTaxWords string `json:"monthly_tax_words"`
}

type PPh23Request struct {
	Amount   Amount `json:"amount" swaggertype:"string" example:"10000000"`
	Category string `json:"category" binding:"required" example:"jasa"`
}

type PPh23Response struct {
	Category string          `json:"category"`
	Gross    int64           `json:"gross"`
	Rate     decimal.Decimal `json:"rate"`
	Tax      int64           `json:"tax"`
	Net      int64           `json:"net"`
	Display  AmountDisplay   `json:"display"`
}

// AmountDisplay is the formatted headline figure of a calculation.
type AmountDisplay struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
	Rate   string `json:"rate,omitempty"`
}

type PPNRequest struct {
	Year      int    `json:"year" example:"2024"`
	Amount    Amount `json:"amount" swaggertype:"string" example:"1000000"`
	Inclusive bool   `json:"inclusive"`
}

type PPNResponse struct {
	Year    int             `json:"year"`
	Base    int64           `json:"base"`
	Rate    decimal.Decimal `json:"rate"`
	VAT     int64           `json:"vat"`
	Total   int64           `json:"total"`
	Display AmountDisplay   `json:"display"`
}

type PPnBMRequest struct {
	Year       int             `json:"year" example:"2024"`
	Base       Amount          `json:"base" swaggertype:"string" example:"100000000"`
	LuxuryRate decimal.Decimal `json:"luxury_rate" swaggertype:"string" example:"0.2"`
}

type PPnBMResponse struct {
	Year       int             `json:"year"`
	Base       int64           `json:"base"`
	PPNRate    decimal.Decimal `json:"ppn_rate"`
	PPN        int64           `json:"ppn"`
	LuxuryRate decimal.Decimal `json:"luxury_rate"`
	PPnBM      int64           `json:"ppnbm"`
	Total      int64           `json:"total"`
	Display    AmountDisplay   `json:"display"`
}

type CorporateRequest struct {
	Year     int    `json:"year" example:"2024"`
	Profit   Amount `json:"profit" swaggertype:"string" example:"1000000000"`
	Turnover Amount `json:"turnover" swaggertype:"string" example:"0"`
}

type CorporateResponse struct {
	Year               int             `json:"year"`
	TaxableProfit      int64           `json:"taxable_profit"`
	Turnover           int64           `json:"turnover"`
	MSMEFinal          bool            `json:"msme_final"`
	Base               int64           `json:"base"`
	Rate               decimal.Decimal `json:"rate"`
	Tax                int64           `json:"tax"`
	MonthlyInstallment int64           `json:"monthly_installment"`
	Display            AmountDisplay   `json:"display"`
}

type PTKPResponse struct {
	Year       int               `json:"year"`
	Categories map[string]int64  `json:"categories"`
	Display    map[string]string `json:"display"`
}

// --- Interface ---

type TaxService interface {
	CalculatePPh21(ctx context.Context, req PPh21Request) (PPh21Response, error)
	CalculatePPh23(ctx context.Context, req PPh23Request) (PPh23Response, error)
	CalculatePPN(ctx context.Context, req PPNRequest) (PPNResponse, error)
	CalculatePPnBM(ctx context.Context, req PPnBMRequest) (PPnBMResponse, error)
	CalculateCorporate(ctx context.Context, req CorporateRequest) (CorporateResponse, error)
	GetPTKP(ctx context.Context, year int) (PTKPResponse, error)
}

type taxService struct {
	store    *taxconfig.Store
	engine   *taxengine.Engine
	recorder calculationRecorder
}

func NewTaxService(store *taxconfig.Store, logRepo repository.CalculationLogRepository, log *zap.Logger) TaxService {
	return &taxService{
		store:    store,
		engine:   taxengine.New(store),
		recorder: calculationRecorder{repo: logRepo, log: log},
	}
}

// --- Implementation ---

func (s *taxService) CalculatePPh21(ctx context.Context, req PPh21Request) (PPh21Response, error) {
	profile, err := req.Profile()
	if err != nil {
		return PPh21Response{}, err
	}
	period := taxengine.Period(req.Period)
	if period == "" {
		period = taxengine.PeriodMonthly
	}
	year := resolveYear(s.store, req.Year)

	res, err := s.engine.ComputePPh21(taxengine.IncomeRecord{
		Gross:                req.Gross.Int64(),
		Period:               period,
		NonTaxableAllowances: req.NonTaxableAllowances.Int64(),
		BenefitsInKind:       req.BenefitsInKind.Int64(),
		Deductions:           req.Deductions.Int64(),
	}, profile, year)
	if err != nil {
		return PPh21Response{}, fmt.Errorf("pph21: %w", err)
	}

	out := toPPh21Response(res)
	s.recorder.record(ctx, model.KindPPh21, yearPtr(year), req,
		fmt.Sprintf("%s %s/bulan", res.Category, out.Display.MonthlyTax))
	return out, nil
}

func toPPh21Response(res taxengine.PPh21Result) PPh21Response {
	segments := make([]SegmentResponse, 0, len(res.Segments))
	for _, seg := range res.Segments {
		sr := SegmentResponse{Layer: seg.Layer, Lower: seg.Lower, Taxable: seg.Taxable, Rate: seg.Rate, Tax: seg.Tax}
		if !seg.Unbounded {
			upper := seg.Upper
			sr.Upper = &upper
		}
		segments = append(segments, sr)
	}
	return PPh21Response{
		Year:             res.Year,
		Category:         res.Category,
		HasNPWP:          res.HasNPWP,
		GrossAnnual:      res.GrossAnnual,
		TaxableGross:     res.TaxableGross,
		OccupationalCost: res.OccupationalCost,
		Deductions:       res.Deductions,
		NetIncome:        res.NetIncome,
		PTKP:             res.PTKP,
		TaxableBase:      res.TaxableBase,
		Segments:         segments,
		BracketTax:       res.BracketTax,
		Surcharge:        res.Surcharge,
		TotalTax:         res.TotalTax,
		AnnualTax:        res.AnnualTax,
		MonthlyTax:       res.MonthlyTax,
		NetAmount:        res.NetAmount,
		EffectiveRate:    res.EffectiveRate,
		Display: PPh21Display{
			AnnualTax:       formatter.FormatRupiah(res.AnnualTax),
			MonthlyTax:      formatter.FormatRupiah(res.MonthlyTax),
			EffectiveRate:   formatter.FormatPercent(res.EffectiveRate, 2),
			MonthlyTaxWords: formatter.Terbilang(res.MonthlyTax),
		},
	}
}

func (s *taxService) CalculatePPh23(ctx context.Context, req PPh23Request) (PPh23Response, error) {
	category, err := taxengine.ParseServiceCategory(req.Category)
	if err != nil {
		return PPh23Response{}, err
	}
	res, err := taxengine.ComputePPh23(req.Amount.Int64(), category)
	if err != nil {
		return PPh23Response{}, fmt.Errorf("pph23: %w", err)
	}

	out := PPh23Response{
		Category: string(res.Category),
		Gross:    res.Gross,
		Rate:     res.Rate,
		Tax:      res.Tax,
		Net:      res.Net,
		Display:  display(res.Tax, res.Rate),
	}
	s.recorder.record(ctx, model.KindPPh23, nil, req, string(res.Category)+" "+out.Display.Amount)
	return out, nil
}

func (s *taxService) CalculatePPN(ctx context.Context, req PPNRequest) (PPNResponse, error) {
	year := resolveYear(s.store, req.Year)
	compute, kind := s.engine.ComputePPN, model.KindPPN
	if req.Inclusive {
		compute, kind = s.engine.ComputePPNInclusive, model.KindPPNInclusive
	}
	res, err := compute(req.Amount.Int64(), year)
	if err != nil {
		return PPNResponse{}, fmt.Errorf("ppn: %w", err)
	}

	out := PPNResponse{
		Year:    res.Year,
		Base:    res.Base,
		Rate:    res.Rate,
		VAT:     res.VAT,
		Total:   res.Total,
		Display: display(res.VAT, res.Rate),
	}
	s.recorder.record(ctx, kind, yearPtr(year), req, "PPN "+out.Display.Amount)
	return out, nil
}

func (s *taxService) CalculatePPnBM(ctx context.Context, req PPnBMRequest) (PPnBMResponse, error) {
	year := resolveYear(s.store, req.Year)
	res, err := s.engine.ComputePPnBM(req.Base.Int64(), req.LuxuryRate, year)
	if err != nil {
		return PPnBMResponse{}, fmt.Errorf("ppnbm: %w", err)
	}

	out := PPnBMResponse{
		Year:       res.Year,
		Base:       res.Base,
		PPNRate:    res.PPNRate,
		PPN:        res.PPN,
		LuxuryRate: res.LuxuryRate,
		PPnBM:      res.PPnBM,
		Total:      res.Total,
		Display:    display(res.PPnBM, res.LuxuryRate),
	}
	s.recorder.record(ctx, model.KindPPnBM, yearPtr(year), req, "PPnBM "+out.Display.Amount)
	return out, nil
}

func (s *taxService) CalculateCorporate(ctx context.Context, req CorporateRequest) (CorporateResponse, error) {
	year := resolveYear(s.store, req.Year)
	res, err := s.engine.ComputeCorporateTax(req.Profit.Int64(), req.Turnover.Int64(), year)
	if err != nil {
		return CorporateResponse{}, fmt.Errorf("corporate tax: %w", err)
	}

	out := CorporateResponse{
		Year:               res.Year,
		TaxableProfit:      res.TaxableProfit,
		Turnover:           res.Turnover,
		MSMEFinal:          res.MSMEFinal,
		Base:               res.Base,
		Rate:               res.Rate,
		Tax:                res.Tax,
		MonthlyInstallment: res.MonthlyInstallment,
		Display:            display(res.Tax, res.Rate),
	}
	s.recorder.record(ctx, model.KindCorporate, yearPtr(year), req, "PPh Badan "+out.Display.Amount)
	return out, nil
}

func (s *taxService) GetPTKP(ctx context.Context, year int) (PTKPResponse, error) {
	year = resolveYear(s.store, year)
	cfg, err := s.store.Config(year)
	if err != nil {
		return PTKPResponse{}, err
	}
	out := PTKPResponse{Year: year, Categories: cfg.PTKP, Display: make(map[string]string, len(cfg.PTKP))}
	for cat, amount := range cfg.PTKP {
		out.Display[cat] = formatter.FormatRupiah(amount)
	}
	return out, nil
}

func display(amount int64, rate decimal.Decimal) AmountDisplay {
	return AmountDisplay{
		Amount: formatter.FormatRupiah(amount),
		Words:  formatter.Terbilang(amount),
		Rate:   formatter.FormatPercent(rate, 2),
	}
}

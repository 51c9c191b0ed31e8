package service

import (
	"context"
	"fmt"

	"officebot/internal/finance"
	"officebot/internal/model"
	"officebot/internal/repository"
	"officebot/internal/taxconfig"
	"officebot/pkg/formatter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type BreakEvenRequest struct {
	FixedCosts   decimal.Decimal `json:"fixed_costs" swaggertype:"string" example:"50000000"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" swaggertype:"string" example:"100000"`
	VariableCost decimal.Decimal `json:"variable_cost" swaggertype:"string" example:"60000"`
}

type BreakEvenResponse struct {
	FixedCosts         decimal.Decimal `json:"fixed_costs"`
	PricePerUnit       decimal.Decimal `json:"price_per_unit"`
	VariableCost       decimal.Decimal `json:"variable_cost"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	MarginRatio        decimal.Decimal `json:"margin_ratio"`
	Units              decimal.Decimal `json:"units"`
	UnitsRoundedUp     int64           `json:"units_rounded_up"`
	Revenue            decimal.Decimal `json:"revenue"`
	Display            AmountDisplay   `json:"display"`
}

type ROIRequest struct {
	Gain decimal.Decimal `json:"gain" swaggertype:"string" example:"15000000"`
	Cost decimal.Decimal `json:"cost" swaggertype:"string" example:"10000000"`
	// Revenue enables the profit margin block when set.
	Revenue *decimal.Decimal `json:"revenue,omitempty" swaggertype:"string"`
}

type ROIResponse struct {
	ROI          decimal.Decimal       `json:"roi"`
	ProfitMargin *ProfitMarginResponse `json:"profit_margin,omitempty"`
	Display      string                `json:"display"`
}

type ProfitMarginResponse struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Margin      decimal.Decimal `json:"margin"`
}

type DepreciationRequest struct {
	Method     string `json:"method" binding:"omitempty,oneof=straight_line declining_balance" example:"straight_line"`
	Cost       Amount `json:"cost" swaggertype:"string" example:"100000000"`
	Salvage    Amount `json:"salvage" swaggertype:"string" example:"10000000"`
	UsefulLife int    `json:"useful_life" example:"5"`
	// Rate is the declining-balance rate; it defaults to 2 / useful_life.
	Rate *decimal.Decimal `json:"rate,omitempty" swaggertype:"string"`
}

type DepreciationEntryResponse struct {
	Period       int   `json:"period"`
	Depreciation int64 `json:"depreciation"`
	Accumulated  int64 `json:"accumulated"`
	BookValue    int64 `json:"book_value"`
}

type DepreciationResponse struct {
	Method  string                      `json:"method"`
	Cost    int64                       `json:"cost"`
	Salvage int64                       `json:"salvage"`
	Rate    decimal.Decimal             `json:"rate"`
	Entries []DepreciationEntryResponse `json:"entries"`
}

// RatiosRequest takes any subset of the balance sheet groups; each group
// present is computed.
type RatiosRequest struct {
	Liquidity     *LiquidityRequest     `json:"liquidity,omitempty"`
	Solvency      *SolvencyRequest      `json:"solvency,omitempty"`
	Profitability *ProfitabilityRequest `json:"profitability,omitempty"`
}

type LiquidityRequest struct {
	CurrentAssets      decimal.Decimal `json:"current_assets" swaggertype:"string"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities" swaggertype:"string"`
	Inventory          decimal.Decimal `json:"inventory" swaggertype:"string"`
	Cash               decimal.Decimal `json:"cash" swaggertype:"string"`
}

type SolvencyRequest struct {
	TotalDebt   decimal.Decimal `json:"total_debt" swaggertype:"string"`
	TotalEquity decimal.Decimal `json:"total_equity" swaggertype:"string"`
	TotalAssets decimal.Decimal `json:"total_assets" swaggertype:"string"`
}

type ProfitabilityRequest struct {
	NetIncome   decimal.Decimal `json:"net_income" swaggertype:"string"`
	Revenue     decimal.Decimal `json:"revenue" swaggertype:"string"`
	TotalAssets decimal.Decimal `json:"total_assets" swaggertype:"string"`
	TotalEquity decimal.Decimal `json:"total_equity" swaggertype:"string"`
}

type RatiosResponse struct {
	Liquidity     map[string]decimal.Decimal `json:"liquidity,omitempty"`
	Solvency      map[string]decimal.Decimal `json:"solvency,omitempty"`
	Profitability map[string]decimal.Decimal `json:"profitability,omitempty"`
}

type IncomeStatementRequest struct {
	Year              int               `json:"year" example:"2024"`
	Revenue           Amount            `json:"revenue" swaggertype:"string"`
	COGS              Amount            `json:"cogs" swaggertype:"string"`
	OperatingExpenses map[string]Amount `json:"operating_expenses" swaggertype:"object"`
	OtherIncome       Amount            `json:"other_income" swaggertype:"string"`
	OtherExpense      Amount            `json:"other_expense" swaggertype:"string"`
	// TaxRate defaults to the corporate rate of the year.
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty" swaggertype:"string"`
}

type LineResponse struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type SectionResponse struct {
	Items []LineResponse `json:"items"`
	Total int64          `json:"total"`
}

type IncomeStatementResponse struct {
	Revenue                int64                 `json:"revenue"`
	COGS                   int64                 `json:"cogs"`
	GrossProfit            int64                 `json:"gross_profit"`
	OperatingExpenses      []LineResponse `json:"operating_expenses"`
	TotalOperatingExpenses int64                 `json:"total_operating_expenses"`
	OperatingIncome        int64                 `json:"operating_income"`
	OtherIncome            int64                 `json:"other_income"`
	OtherExpense           int64                 `json:"other_expense"`
	IncomeBeforeTax        int64                 `json:"income_before_tax"`
	TaxRate                decimal.Decimal       `json:"tax_rate"`
	Tax                    int64                 `json:"tax"`
	NetIncome              int64                 `json:"net_income"`
	GrossMargin            decimal.Decimal       `json:"gross_margin"`
	OperatingMargin        decimal.Decimal       `json:"operating_margin"`
	NetMargin              decimal.Decimal       `json:"net_margin"`
	Display                AmountDisplay         `json:"display"`
}

type BalanceSheetRequest struct {
	CompanyName string `json:"company_name" example:"PT Maju Jaya"`
	// AsOfDate is DD/MM/YYYY.
	AsOfDate              string            `json:"as_of_date" example:"31/12/2024"`
	CurrentAssets         map[string]Amount `json:"current_assets" swaggertype:"object"`
	NonCurrentAssets      map[string]Amount `json:"non_current_assets" swaggertype:"object"`
	CurrentLiabilities    map[string]Amount `json:"current_liabilities" swaggertype:"object"`
	NonCurrentLiabilities map[string]Amount `json:"non_current_liabilities" swaggertype:"object"`
	Equity                map[string]Amount `json:"equity" swaggertype:"object"`
}

type BalanceSheetResponse struct {
	CompanyName               string          `json:"company_name,omitempty"`
	AsOfDate                  string          `json:"as_of_date,omitempty"`
	CurrentAssets             SectionResponse `json:"current_assets"`
	NonCurrentAssets          SectionResponse `json:"non_current_assets"`
	TotalAssets               int64           `json:"total_assets"`
	CurrentLiabilities        SectionResponse `json:"current_liabilities"`
	NonCurrentLiabilities     SectionResponse `json:"non_current_liabilities"`
	TotalLiabilities          int64           `json:"total_liabilities"`
	Equity                    SectionResponse `json:"equity"`
	TotalLiabilitiesAndEquity int64           `json:"total_liabilities_equity"`
	Difference                int64           `json:"difference"`
	IsBalanced                bool            `json:"is_balanced"`
	Display                   AmountDisplay   `json:"display"`
}

type CashFlowRequest struct {
	CompanyName string `json:"company_name" example:"PT Maju Jaya"`
	Period      string `json:"period" example:"2024"`
	// Activities are signed: inflows positive, outflows negative.
	OperatingActivities map[string]Amount `json:"operating_activities" swaggertype:"object"`
	InvestingActivities map[string]Amount `json:"investing_activities" swaggertype:"object"`
	FinancingActivities map[string]Amount `json:"financing_activities" swaggertype:"object"`
	BeginningCash       Amount            `json:"beginning_cash" swaggertype:"string"`
}

type CashFlowResponse struct {
	CompanyName         string          `json:"company_name,omitempty"`
	Period              string          `json:"period,omitempty"`
	OperatingActivities SectionResponse `json:"operating_activities"`
	InvestingActivities SectionResponse `json:"investing_activities"`
	FinancingActivities SectionResponse `json:"financing_activities"`
	NetChangeInCash     int64           `json:"net_change_in_cash"`
	BeginningCash       int64           `json:"beginning_cash"`
	EndingCash          int64           `json:"ending_cash"`
	Display             AmountDisplay   `json:"display"`
}

// --- Interface ---

type FinanceService interface {
	BreakEven(ctx context.Context, req BreakEvenRequest) (BreakEvenResponse, error)
	ROI(ctx context.Context, req ROIRequest) (ROIResponse, error)
	Depreciation(ctx context.Context, req DepreciationRequest) (DepreciationResponse, error)
	Ratios(ctx context.Context, req RatiosRequest) (RatiosResponse, error)
	IncomeStatement(ctx context.Context, req IncomeStatementRequest) (IncomeStatementResponse, error)
	BalanceSheet(ctx context.Context, req BalanceSheetRequest) (BalanceSheetResponse, error)
	CashFlow(ctx context.Context, req CashFlowRequest) (CashFlowResponse, error)
}

type financeService struct {
	store    *taxconfig.Store
	recorder calculationRecorder
}

func NewFinanceService(store *taxconfig.Store, logRepo repository.CalculationLogRepository, log *zap.Logger) FinanceService {
	return &financeService{store: store, recorder: calculationRecorder{repo: logRepo, log: log}}
}

// --- Implementation ---

func (s *financeService) BreakEven(ctx context.Context, req BreakEvenRequest) (BreakEvenResponse, error) {
	res, err := finance.BreakEven(req.FixedCosts, req.PricePerUnit, req.VariableCost)
	if err != nil {
		return BreakEvenResponse{}, fmt.Errorf("break-even: %w", err)
	}
	out := BreakEvenResponse{
		FixedCosts:         res.FixedCosts,
		PricePerUnit:       res.PricePerUnit,
		VariableCost:       res.VariableCost,
		ContributionMargin: res.ContributionMargin,
		MarginRatio:        res.MarginRatio,
		Units:              res.Units,
		UnitsRoundedUp:     res.UnitsRoundedUp,
		Revenue:            res.Revenue,
		Display: AmountDisplay{
			Amount: formatter.FormatRupiahDecimal(res.Revenue),
			Rate:   formatter.FormatPercent(res.MarginRatio, 2),
		},
	}
	s.recorder.record(ctx, model.KindBEP, nil, req, fmt.Sprintf("BEP %d unit", res.UnitsRoundedUp))
	return out, nil
}

func (s *financeService) ROI(ctx context.Context, req ROIRequest) (ROIResponse, error) {
	roi, err := finance.ROI(req.Gain, req.Cost)
	if err != nil {
		return ROIResponse{}, fmt.Errorf("roi: %w", err)
	}
	out := ROIResponse{ROI: roi, Display: formatter.FormatPercent(roi, 2)}
	if req.Revenue != nil {
		pm, err := finance.ProfitMargin(*req.Revenue, req.Cost)
		if err != nil {
			return ROIResponse{}, fmt.Errorf("profit margin: %w", err)
		}
		out.ProfitMargin = &ProfitMarginResponse{
			Revenue:     pm.Revenue,
			Cost:        pm.Cost,
			GrossProfit: pm.GrossProfit,
			Margin:      pm.Margin,
		}
	}
	s.recorder.record(ctx, model.KindROI, nil, req, "ROI "+out.Display)
	return out, nil
}

func (s *financeService) Depreciation(ctx context.Context, req DepreciationRequest) (DepreciationResponse, error) {
	var (
		sched finance.Schedule
		err   error
	)
	switch finance.Method(req.Method) {
	case finance.MethodDecliningBalance:
		var rate decimal.Decimal
		if req.Rate != nil {
			rate = *req.Rate
		} else if rate, err = finance.DoubleDecliningRate(req.UsefulLife); err != nil {
			return DepreciationResponse{}, fmt.Errorf("depreciation: %w", err)
		}
		sched, err = finance.DecliningBalance(req.Cost.Int64(), req.Salvage.Int64(), rate, req.UsefulLife)
	case "", finance.MethodStraightLine:
		sched, err = finance.StraightLine(req.Cost.Int64(), req.Salvage.Int64(), req.UsefulLife)
	default:
		return DepreciationResponse{}, fmt.Errorf("depreciation: %w: unknown method %q", ErrInvalidInput, req.Method)
	}
	if err != nil {
		return DepreciationResponse{}, fmt.Errorf("depreciation: %w", err)
	}

	out := DepreciationResponse{
		Method:  string(sched.Method),
		Cost:    sched.Cost,
		Salvage: sched.Salvage,
		Rate:    sched.Rate,
		Entries: make([]DepreciationEntryResponse, 0, len(sched.Entries)),
	}
	for _, e := range sched.Entries {
		out.Entries = append(out.Entries, DepreciationEntryResponse(e))
	}
	s.recorder.record(ctx, model.KindDepreciation, nil, req,
		fmt.Sprintf("%s %d periode", sched.Method, len(sched.Entries)))
	return out, nil
}

func (s *financeService) Ratios(ctx context.Context, req RatiosRequest) (RatiosResponse, error) {
	if req.Liquidity == nil && req.Solvency == nil && req.Profitability == nil {
		return RatiosResponse{}, fmt.Errorf("ratios: %w: no balance sheet group given", ErrInvalidInput)
	}
	var out RatiosResponse
	if in := req.Liquidity; in != nil {
		r, err := finance.Liquidity(finance.LiquidityInput(*in))
		if err != nil {
			return RatiosResponse{}, fmt.Errorf("ratios: %w", err)
		}
		out.Liquidity = map[string]decimal.Decimal{"current": r.Current, "quick": r.Quick, "cash": r.Cash}
	}
	if in := req.Solvency; in != nil {
		r, err := finance.Solvency(finance.SolvencyInput(*in))
		if err != nil {
			return RatiosResponse{}, fmt.Errorf("ratios: %w", err)
		}
		out.Solvency = map[string]decimal.Decimal{"debt_to_equity": r.DebtToEquity, "debt_ratio": r.DebtRatio}
	}
	if in := req.Profitability; in != nil {
		r, err := finance.Profitability(finance.ProfitabilityInput(*in))
		if err != nil {
			return RatiosResponse{}, fmt.Errorf("ratios: %w", err)
		}
		out.Profitability = map[string]decimal.Decimal{
			"net_profit_margin": r.NetProfitMargin,
			"return_on_assets":  r.ReturnOnAssets,
			"return_on_equity":  r.ReturnOnEquity,
		}
	}
	s.recorder.record(ctx, model.KindRatios, nil, req, "rasio keuangan")
	return out, nil
}

func (s *financeService) IncomeStatement(ctx context.Context, req IncomeStatementRequest) (IncomeStatementResponse, error) {
	year := resolveYear(s.store, req.Year)
	var rate decimal.Decimal
	if req.TaxRate != nil {
		rate = *req.TaxRate
	} else {
		cfg, err := s.store.Config(year)
		if err != nil {
			return IncomeStatementResponse{}, err
		}
		rate = cfg.Corporate.Rate
	}

	st, err := finance.SummarizeIncomeStatement(finance.IncomeStatementInput{
		Revenue:           req.Revenue.Int64(),
		COGS:              req.COGS.Int64(),
		OperatingExpenses: amounts(req.OperatingExpenses),
		OtherIncome:       req.OtherIncome.Int64(),
		OtherExpense:      req.OtherExpense.Int64(),
		TaxRate:           rate,
	})
	if err != nil {
		return IncomeStatementResponse{}, fmt.Errorf("income statement: %w", err)
	}

	out := IncomeStatementResponse{
		Revenue:                st.Revenue,
		COGS:                   st.COGS,
		GrossProfit:            st.GrossProfit,
		OperatingExpenses:      make([]LineResponse, 0, len(st.OperatingExpenses)),
		TotalOperatingExpenses: st.TotalOperatingExpenses,
		OperatingIncome:        st.OperatingIncome,
		OtherIncome:            st.OtherIncome,
		OtherExpense:           st.OtherExpense,
		IncomeBeforeTax:        st.IncomeBeforeTax,
		TaxRate:                st.TaxRate,
		Tax:                    st.Tax,
		NetIncome:              st.NetIncome,
		GrossMargin:            st.GrossMargin,
		OperatingMargin:        st.OperatingMargin,
		NetMargin:              st.NetMargin,
		Display: AmountDisplay{
			Amount: formatter.FormatRupiah(st.NetIncome),
			Words:  formatter.Terbilang(st.NetIncome),
			Rate:   formatter.FormatPercent(st.NetMargin, 2),
		},
	}
	for _, l := range st.OperatingExpenses {
		out.OperatingExpenses = append(out.OperatingExpenses, LineResponse(l))
	}
	s.recorder.record(ctx, model.KindIncomeStatement, yearPtr(year), req, "laba bersih "+out.Display.Amount)
	return out, nil
}

func (s *financeService) BalanceSheet(ctx context.Context, req BalanceSheetRequest) (BalanceSheetResponse, error) {
	if req.AsOfDate != "" {
		if _, err := formatter.ParseDate(req.AsOfDate, nil); err != nil {
			return BalanceSheetResponse{}, fmt.Errorf("balance sheet: %w: as_of_date %q is not DD/MM/YYYY", ErrInvalidInput, req.AsOfDate)
		}
	}
	bs, err := finance.SummarizeBalanceSheet(finance.BalanceSheetInput{
		CurrentAssets:         amounts(req.CurrentAssets),
		NonCurrentAssets:      amounts(req.NonCurrentAssets),
		CurrentLiabilities:    amounts(req.CurrentLiabilities),
		NonCurrentLiabilities: amounts(req.NonCurrentLiabilities),
		Equity:                amounts(req.Equity),
	})
	if err != nil {
		return BalanceSheetResponse{}, fmt.Errorf("balance sheet: %w", err)
	}

	out := BalanceSheetResponse{
		CompanyName:               req.CompanyName,
		AsOfDate:                  req.AsOfDate,
		CurrentAssets:             sectionResponse(bs.CurrentAssets),
		NonCurrentAssets:          sectionResponse(bs.NonCurrentAssets),
		TotalAssets:               bs.TotalAssets,
		CurrentLiabilities:        sectionResponse(bs.CurrentLiabilities),
		NonCurrentLiabilities:     sectionResponse(bs.NonCurrentLiabilities),
		TotalLiabilities:          bs.TotalLiabilities,
		Equity:                    sectionResponse(bs.Equity),
		TotalLiabilitiesAndEquity: bs.TotalLiabilitiesAndEquity,
		Difference:                bs.Difference,
		IsBalanced:                bs.Balanced,
		Display: AmountDisplay{
			Amount: formatter.FormatRupiah(bs.TotalAssets),
			Words:  formatter.Terbilang(bs.TotalAssets),
		},
	}
	summary := "total aset " + out.Display.Amount
	if !bs.Balanced {
		summary += ", selisih " + formatter.FormatRupiah(bs.Difference)
	}
	s.recorder.record(ctx, model.KindBalanceSheet, nil, req, summary)
	return out, nil
}

func (s *financeService) CashFlow(ctx context.Context, req CashFlowRequest) (CashFlowResponse, error) {
	cf, err := finance.SummarizeCashFlow(finance.CashFlowInput{
		Operating:     amounts(req.OperatingActivities),
		Investing:     amounts(req.InvestingActivities),
		Financing:     amounts(req.FinancingActivities),
		BeginningCash: req.BeginningCash.Int64(),
	})
	if err != nil {
		return CashFlowResponse{}, fmt.Errorf("cash flow: %w", err)
	}

	out := CashFlowResponse{
		CompanyName:         req.CompanyName,
		Period:              req.Period,
		OperatingActivities: sectionResponse(cf.Operating),
		InvestingActivities: sectionResponse(cf.Investing),
		FinancingActivities: sectionResponse(cf.Financing),
		NetChangeInCash:     cf.NetChange,
		BeginningCash:       cf.BeginningCash,
		EndingCash:          cf.EndingCash,
		Display: AmountDisplay{
			Amount: formatter.FormatRupiah(cf.EndingCash),
			Words:  formatter.Terbilang(cf.EndingCash),
		},
	}
	s.recorder.record(ctx, model.KindCashFlow, nil, req, "kas akhir "+out.Display.Amount)
	return out, nil
}

func amounts(in map[string]Amount) map[string]int64 {
	out := make(map[string]int64, len(in))
	for name, a := range in {
		out[name] = a.Int64()
	}
	return out
}

func sectionResponse(sec finance.Section) SectionResponse {
	out := SectionResponse{Items: make([]LineResponse, 0, len(sec.Lines)), Total: sec.Total}
	for _, l := range sec.Lines {
		out.Items = append(out.Items, LineResponse(l))
	}
	return out
}

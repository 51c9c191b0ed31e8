package service

import (
	"context"
	"fmt"

	"officebot/internal/model"
	"officebot/internal/payroll"
	"officebot/internal/repository"
	"officebot/internal/taxconfig"
	"officebot/pkg/formatter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type NetPayRequest struct {
	Year          int             `json:"year" example:"2024"`
	Gross         Amount          `json:"gross" swaggertype:"string" example:"10000000"`
	OvertimeHours decimal.Decimal `json:"overtime_hours" swaggertype:"string" example:"0"`
	// OvertimeRate is a flat multiplier. Without it the statutory workday tiers apply.
	OvertimeRate *decimal.Decimal `json:"overtime_rate,omitempty" swaggertype:"string" example:"1.5"`
	ProfileRequest
}

type BPJSLineResponse struct {
	Program      string          `json:"program"`
	Base         int64           `json:"base"`
	EmployeeRate decimal.Decimal `json:"employee_rate"`
	EmployerRate decimal.Decimal `json:"employer_rate"`
	Employee     int64           `json:"employee"`
	Employer     int64           `json:"employer"`
}

type NetPayResponse struct {
	Year         int                `json:"year"`
	Gross        int64              `json:"gross"`
	Overtime     int64              `json:"overtime"`
	BPJS         []BPJSLineResponse `json:"bpjs"`
	BPJSEmployee int64              `json:"bpjs_employee"`
	BPJSEmployer int64              `json:"bpjs_employer"`
	PPh21        PPh21Response      `json:"pph21"`
	MonthlyPPh21 int64              `json:"monthly_pph21"`
	NetPay       int64              `json:"net_pay"`
	Display      AmountDisplay      `json:"display"`
	Warnings     []string           `json:"-"`
}

type OvertimeRequest struct {
	Gross Amount          `json:"gross" swaggertype:"string" example:"5000000"`
	Hours decimal.Decimal `json:"hours" swaggertype:"string" example:"3"`
	// Multiplier switches to a flat rate; otherwise the statutory tiers apply.
	Multiplier *decimal.Decimal `json:"multiplier,omitempty" swaggertype:"string"`
	RestDay    bool             `json:"rest_day"`
}

type OvertimeTierResponse struct {
	Hours      decimal.Decimal `json:"hours"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type OvertimeResponse struct {
	Gross         int64                  `json:"gross"`
	RestDay       bool                   `json:"rest_day"`
	HourlyRate    decimal.Decimal        `json:"hourly_rate"`
	Hours         decimal.Decimal        `json:"hours"`
	Tiers         []OvertimeTierResponse `json:"tiers"`
	WeightedHours decimal.Decimal        `json:"weighted_hours"`
	Pay           int64                  `json:"pay"`
	Display       AmountDisplay          `json:"display"`
}

type BPJSRequest struct {
	Year  int    `json:"year" example:"2024"`
	Gross Amount `json:"gross" swaggertype:"string" example:"15000000"`
}

type BPJSResponse struct {
	Year     int                `json:"year"`
	Gross    int64              `json:"gross"`
	Lines    []BPJSLineResponse `json:"lines"`
	Employee int64              `json:"employee"`
	Employer int64              `json:"employer"`
	Display  AmountDisplay      `json:"display"`
}

// --- Interface ---

type PayrollService interface {
	CalculateNetPay(ctx context.Context, req NetPayRequest) (NetPayResponse, error)
	CalculateOvertime(ctx context.Context, req OvertimeRequest) (OvertimeResponse, error)
	CalculateBPJS(ctx context.Context, req BPJSRequest) (BPJSResponse, error)
}

type payrollService struct {
	store    *taxconfig.Store
	calc     *payroll.Calculator
	recorder calculationRecorder
}

func NewPayrollService(store *taxconfig.Store, logRepo repository.CalculationLogRepository, log *zap.Logger) PayrollService {
	return &payrollService{
		store:    store,
		calc:     payroll.New(store),
		recorder: calculationRecorder{repo: logRepo, log: log},
	}
}

// --- Implementation ---

func (s *payrollService) CalculateNetPay(ctx context.Context, req NetPayRequest) (NetPayResponse, error) {
	profile, err := req.Profile()
	if err != nil {
		return NetPayResponse{}, err
	}
	year := resolveYear(s.store, req.Year)
	gross := req.Gross.Int64()

	var res payroll.NetPay
	if req.OvertimeRate != nil {
		res, err = s.calc.ComputeNetPay(gross, req.OvertimeHours, *req.OvertimeRate, profile, year)
	} else {
		var ot payroll.OvertimeResult
		ot, err = payroll.StatutoryOvertime(gross, req.OvertimeHours, false)
		if err == nil {
			res, err = s.calc.NetPayWithOvertime(gross, ot.Pay, profile, year)
		}
	}
	if err != nil {
		return NetPayResponse{}, fmt.Errorf("net pay: %w", err)
	}

	out := NetPayResponse{
		Year:         res.Year,
		Gross:        res.Gross,
		Overtime:     res.Overtime,
		BPJS:         toBPJSLines(res.BPJS),
		BPJSEmployee: res.BPJSEmployee,
		BPJSEmployer: res.BPJSEmployer,
		PPh21:        toPPh21Response(res.PPh21),
		MonthlyPPh21: res.MonthlyPPh21,
		NetPay:       res.NetPay,
		Display: AmountDisplay{
			Amount: formatter.FormatRupiah(res.NetPay),
			Words:  formatter.Terbilang(res.NetPay),
		},
		Warnings: res.Warnings,
	}
	s.recorder.record(ctx, model.KindNetPay, yearPtr(year), req, "gaji bersih "+out.Display.Amount)
	return out, nil
}

func (s *payrollService) CalculateOvertime(ctx context.Context, req OvertimeRequest) (OvertimeResponse, error) {
	gross := req.Gross.Int64()
	var out OvertimeResponse
	if req.Multiplier != nil {
		pay, err := payroll.Overtime(gross, req.Hours, *req.Multiplier)
		if err != nil {
			return OvertimeResponse{}, fmt.Errorf("overtime: %w", err)
		}
		out = OvertimeResponse{
			Gross:         gross,
			RestDay:       req.RestDay,
			HourlyRate:    payroll.HourlyRate(gross),
			Hours:         req.Hours,
			Tiers:         []OvertimeTierResponse{{Hours: req.Hours, Multiplier: *req.Multiplier}},
			WeightedHours: req.Hours.Mul(*req.Multiplier),
			Pay:           pay,
		}
	} else {
		res, err := payroll.StatutoryOvertime(gross, req.Hours, req.RestDay)
		if err != nil {
			return OvertimeResponse{}, fmt.Errorf("overtime: %w", err)
		}
		out = OvertimeResponse{
			Gross:         res.Gross,
			RestDay:       res.RestDay,
			HourlyRate:    res.HourlyRate,
			Hours:         res.Hours,
			WeightedHours: res.WeightedHours,
			Pay:           res.Pay,
		}
		for _, t := range res.Tiers {
			out.Tiers = append(out.Tiers, OvertimeTierResponse(t))
		}
	}
	out.Display = AmountDisplay{Amount: formatter.FormatRupiah(out.Pay), Words: formatter.Terbilang(out.Pay)}

	s.recorder.record(ctx, model.KindOvertime, nil, req, "lembur "+out.Display.Amount)
	return out, nil
}

func (s *payrollService) CalculateBPJS(ctx context.Context, req BPJSRequest) (BPJSResponse, error) {
	year := resolveYear(s.store, req.Year)
	res, err := s.calc.BPJS(req.Gross.Int64(), year)
	if err != nil {
		return BPJSResponse{}, fmt.Errorf("bpjs: %w", err)
	}

	out := BPJSResponse{
		Year:     res.Year,
		Gross:    res.Gross,
		Lines:    toBPJSLines(res.Lines),
		Employee: res.Employee,
		Employer: res.Employer,
		Display:  AmountDisplay{Amount: formatter.FormatRupiah(res.Employee), Words: formatter.Terbilang(res.Employee)},
	}
	s.recorder.record(ctx, model.KindBPJS, yearPtr(year), req, "BPJS karyawan "+out.Display.Amount)
	return out, nil
}

func toBPJSLines(lines []payroll.BPJSLine) []BPJSLineResponse {
	out := make([]BPJSLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, BPJSLineResponse(l))
	}
	return out
}

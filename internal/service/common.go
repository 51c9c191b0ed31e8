package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"officebot/internal/model"
	"officebot/internal/repository"
	"officebot/internal/taxconfig"
	"officebot/pkg/formatter"
	"officebot/pkg/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidInput marks a request that is well-formed JSON but cannot be computed.
var ErrInvalidInput = errors.New("invalid input")

// Amount is whole Rupiah. In JSON it is a number or a Rupiah string such as
// "Rp 1.500.000" or "10jt"; fractions are rounded half up. Values beyond
// ±money.MaxAmount are rejected.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var d decimal.Decimal
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := formatter.ParseRupiah(s)
		if err != nil {
			return err
		}
		d = parsed
	} else {
		parsed, err := decimal.NewFromString(string(b))
		if err != nil {
			return fmt.Errorf("%w: %s", formatter.ErrInvalidAmount, b)
		}
		d = parsed
	}
	if !money.InRange(d) {
		return fmt.Errorf("%w: %s is beyond Rp %s", formatter.ErrInvalidAmount, b, formatter.FormatNumber(decimal.NewFromInt(money.MaxAmount), 0))
	}
	*a = Amount(money.Round(d))
	return nil
}

func (a Amount) Int64() int64 { return int64(a) }

// ProfileRequest identifies the taxpayer either by PTKP code ("K/2") or by
// marital status and dependents. HasNPWP defaults to true.
type ProfileRequest struct {
	PTKPCategory  string `json:"ptkp_category" example:"K/1"`
	MaritalStatus string `json:"marital_status" example:"K"`
	Dependents    int    `json:"dependents" example:"1"`
	HasNPWP       *bool  `json:"has_npwp" example:"true"`
}

func (p ProfileRequest) Profile() (taxconfig.Profile, error) {
	npwp := p.HasNPWP == nil || *p.HasNPWP
	if p.PTKPCategory != "" {
		return taxconfig.ParseCategory(p.PTKPCategory, npwp)
	}
	status := taxconfig.MaritalStatus(p.MaritalStatus)
	if status == "" {
		status = taxconfig.StatusSingle
	}
	return taxconfig.NewProfile(status, p.Dependents, npwp)
}

// resolveYear picks the latest configured year when the request leaves it out.
func resolveYear(store *taxconfig.Store, year int) int {
	if year != 0 {
		return year
	}
	years := store.Current().Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}

// calculationRecorder writes the calculation log. Failures are logged and
// never reach the caller.
type calculationRecorder struct {
	repo repository.CalculationLogRepository
	log  *zap.Logger
}

func (r calculationRecorder) record(ctx context.Context, kind string, year *int, req interface{}, summary string) {
	if r.repo == nil {
		return
	}
	body, err := json.Marshal(req)
	if err != nil {
		r.log.Warn("calculation log marshal failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	entry := model.CalculationLog{
		Kind:    kind,
		TaxYear: year,
		Request: string(body),
		Summary: summary,
	}
	if err := r.repo.Log(ctx, &entry); err != nil {
		r.log.Warn("calculation log write failed", zap.String("kind", kind), zap.Error(err))
	}
}

func yearPtr(y int) *int { return &y }

package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindPPh21           = "PPH21"
	KindPPh23           = "PPH23"
	KindPPN             = "PPN"
	KindPPNInclusive    = "PPN_INCLUSIVE"
	KindPPnBM           = "PPNBM"
	KindCorporate       = "CORPORATE"
	KindNetPay          = "NET_PAY"
	KindOvertime        = "OVERTIME"
	KindBPJS            = "BPJS"
	KindBEP             = "BEP"
	KindROI             = "ROI"
	KindDepreciation    = "DEPRECIATION"
	KindRatios          = "RATIOS"
	KindIncomeStatement = "INCOME_STATEMENT"
	KindBalanceSheet    = "BALANCE_SHEET"
	KindCashFlow        = "CASH_FLOW"
	KindPublishTaxYear  = "PUBLISH_TAX_YEAR"
)

// CalculationLog records what was calculated and the headline figure.
type CalculationLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Kind      string    `gorm:"type:varchar(30);not null;index" json:"kind"`
	TaxYear   *int      `gorm:"index" json:"tax_year"`            // nil for finance formulas
	Request   string    `gorm:"type:jsonb" json:"request"`        // request DTO as JSON
	Summary   string    `gorm:"type:varchar(255)" json:"summary"` // formatted headline, e.g. "Rp 250.000"
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

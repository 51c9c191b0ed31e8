package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxYear stores a published tax-year table. Rows override the embedded
// defaults when the service starts.
type TaxYear struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Year        int             `gorm:"not null;uniqueIndex" json:"year"`
	Document    string          `gorm:"type:jsonb;not null" json:"document"`         // taxconfig.YearDocument as JSON
	PPNRate     decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"ppn_rate"` // copied out for listings
	Note        string          `gorm:"type:text" json:"note"`
	PublishedAt time.Time       `gorm:"not null" json:"published_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

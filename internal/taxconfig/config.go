package taxconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownTaxYear       = errors.New("unknown tax year")
	ErrInvalidBracketConfig = errors.New("invalid bracket config")
	ErrInvalidProfile       = errors.New("invalid taxpayer profile")
)

// MaritalStatus is the PTKP marital prefix used by the tax office.
type MaritalStatus string

const (
	StatusSingle          MaritalStatus = "TK"
	StatusMarried         MaritalStatus = "K"
	StatusMarriedCombined MaritalStatus = "K/I" // spouse income combined with the taxpayer's
)

const MaxDependents = 3

// Categories lists every PTKP category a tax year must define.
var Categories = []string{
	"TK/0", "TK/1", "TK/2", "TK/3",
	"K/0", "K/1", "K/2", "K/3",
	"K/I/0", "K/I/1", "K/I/2", "K/I/3",
}

// Bracket is one progressive layer. Unbounded marks the top layer.
type Bracket struct {
	UpperBound int64
	Unbounded  bool
	Rate       decimal.Decimal
}

// BPJSProgram is one social-insurance programme. WageCap 0 means the full wage is the base.
type BPJSProgram struct {
	Name         string
	WageCap      int64
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
}

type OccupationalCost struct {
	Rate      decimal.Decimal
	AnnualCap int64
}

type CorporateRates struct {
	Rate              decimal.Decimal
	MSMEFinalRate     decimal.Decimal
	MSMETurnoverLimit int64
}

// Config is the immutable table for one tax year.
type Config struct {
	Year             int
	PTKP             map[string]int64
	Brackets         []Bracket
	PPNRate          decimal.Decimal
	NonNPWPSurcharge decimal.Decimal
	OccupationalCost OccupationalCost
	Corporate        CorporateRates
	BPJS             []BPJSProgram
}

// Validate checks the invariants the engine depends on.
func (c Config) Validate() error {
	if c.Year <= 0 {
		return invalidf("year %d", c.Year)
	}
	if len(c.Brackets) == 0 {
		return invalidf("year %d: no brackets", c.Year)
	}
	var prevBound int64
	prevRate := decimal.Zero
	for i, b := range c.Brackets {
		last := i == len(c.Brackets)-1
		if b.Unbounded != last {
			if last {
				return invalidf("year %d: last bracket must be unbounded", c.Year)
			}
			return invalidf("year %d: bracket %d is unbounded but not last", c.Year, i+1)
		}
		if !b.Unbounded && b.UpperBound <= prevBound {
			return invalidf("year %d: bracket %d upper bound %d not above %d", c.Year, i+1, b.UpperBound, prevBound)
		}
		if !isFraction(b.Rate) {
			return invalidf("year %d: bracket %d rate %s outside [0,1]", c.Year, i+1, b.Rate)
		}
		if b.Rate.LessThan(prevRate) {
			return invalidf("year %d: bracket %d rate %s below previous %s", c.Year, i+1, b.Rate, prevRate)
		}
		prevBound = b.UpperBound
		prevRate = b.Rate
	}

	for _, cat := range Categories {
		amount, ok := c.PTKP[cat]
		if !ok {
			return invalidf("year %d: missing PTKP category %s", c.Year, cat)
		}
		if amount < 0 {
			return invalidf("year %d: negative PTKP for %s", c.Year, cat)
		}
	}

	rates := map[string]decimal.Decimal{
		"ppn_rate":               c.PPNRate,
		"non_npwp_surcharge":     c.NonNPWPSurcharge,
		"occupational_cost.rate": c.OccupationalCost.Rate,
		"corporate.rate":         c.Corporate.Rate,
		"corporate.msme_rate":    c.Corporate.MSMEFinalRate,
	}
	for name, r := range rates {
		if !isFraction(r) {
			return invalidf("year %d: %s %s outside [0,1]", c.Year, name, r)
		}
	}
	if c.OccupationalCost.AnnualCap < 0 || c.Corporate.MSMETurnoverLimit < 0 {
		return invalidf("year %d: negative cap", c.Year)
	}

	seen := make(map[string]bool, len(c.BPJS))
	for _, p := range c.BPJS {
		if p.Name == "" || seen[p.Name] {
			return invalidf("year %d: BPJS programme name %q empty or duplicated", c.Year, p.Name)
		}
		seen[p.Name] = true
		if p.WageCap < 0 || !isFraction(p.EmployeeRate) || !isFraction(p.EmployerRate) {
			return invalidf("year %d: BPJS programme %s has invalid cap or rate", c.Year, p.Name)
		}
	}
	return nil
}

// Profile describes the taxpayer for PTKP and surcharge purposes.
type Profile struct {
	Status     MaritalStatus
	Dependents int
	HasNPWP    bool
}

// NewProfile validates the status and caps dependents at MaxDependents.
func NewProfile(status MaritalStatus, dependents int, hasNPWP bool) (Profile, error) {
	p := Profile{Status: status, Dependents: dependents, HasNPWP: hasNPWP}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	if p.Dependents > MaxDependents {
		p.Dependents = MaxDependents
	}
	return p, nil
}

func (p Profile) validate() error {
	switch p.Status {
	case StatusSingle, StatusMarried, StatusMarriedCombined:
	default:
		return fmt.Errorf("%w: marital status %q", ErrInvalidProfile, p.Status)
	}
	if p.Dependents < 0 {
		return fmt.Errorf("%w: dependents %d", ErrInvalidProfile, p.Dependents)
	}
	return nil
}

// Category returns the PTKP code, e.g. "K/2".
func (p Profile) Category() string {
	d := p.Dependents
	if d > MaxDependents {
		d = MaxDependents
	}
	return fmt.Sprintf("%s/%d", p.Status, d)
}

// ParseCategory turns a PTKP code such as "k/i/2" into a profile.
func ParseCategory(code string, hasNPWP bool) (Profile, error) {
	upper := strings.ToUpper(strings.TrimSpace(code))

	var status MaritalStatus
	rest, ok := strings.CutPrefix(upper, "K/I/")
	switch {
	case ok:
		status = StatusMarriedCombined
	case strings.HasPrefix(upper, "TK/"):
		status, rest = StatusSingle, upper[3:]
	case strings.HasPrefix(upper, "K/"):
		status, rest = StatusMarried, upper[2:]
	default:
		return Profile{}, fmt.Errorf("%w: PTKP category %q", ErrInvalidProfile, code)
	}
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return Profile{}, fmt.Errorf("%w: PTKP category %q", ErrInvalidProfile, code)
	}
	return NewProfile(status, int(rest[0]-'0'), hasNPWP)
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidBracketConfig, fmt.Sprintf(format, args...))
}

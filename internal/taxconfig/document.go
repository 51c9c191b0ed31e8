package taxconfig

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const DocumentVersion = 1

// Document is the on-disk (YAML) and on-wire (JSON) form of the tax tables.
type Document struct {
	Version int            `yaml:"version" json:"version"`
	Years   []YearDocument `yaml:"years" json:"years"`
}

type YearDocument struct {
	Year             int                      `yaml:"year" json:"year"`
	PTKP             map[string]int64         `yaml:"ptkp" json:"ptkp"`
	Brackets         []BracketDocument        `yaml:"brackets" json:"brackets"`
	PPNRate          decimal.Decimal          `yaml:"ppn_rate" json:"ppn_rate"`
	NonNPWPSurcharge decimal.Decimal          `yaml:"non_npwp_surcharge" json:"non_npwp_surcharge"`
	OccupationalCost OccupationalCostDocument `yaml:"occupational_cost" json:"occupational_cost"`
	Corporate        CorporateDocument        `yaml:"corporate" json:"corporate"`
	BPJS             []BPJSDocument           `yaml:"bpjs" json:"bpjs"`
}

// BracketDocument leaves UpperBound out for the top bracket.
type BracketDocument struct {
	UpperBound *int64          `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
}

type OccupationalCostDocument struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	AnnualCap int64           `yaml:"annual_cap" json:"annual_cap"`
}

type CorporateDocument struct {
	Rate              decimal.Decimal `yaml:"rate" json:"rate"`
	MSMEFinalRate     decimal.Decimal `yaml:"msme_final_rate" json:"msme_final_rate"`
	MSMETurnoverLimit int64           `yaml:"msme_turnover_limit" json:"msme_turnover_limit"`
}

type BPJSDocument struct {
	Name         string          `yaml:"name" json:"name"`
	WageCap      int64           `yaml:"wage_cap" json:"wage_cap"`
	EmployeeRate decimal.Decimal `yaml:"employee_rate" json:"employee_rate"`
	EmployerRate decimal.Decimal `yaml:"employer_rate" json:"employer_rate"`
}

// ParseDocument decodes YAML tax tables. JSON is valid YAML, so published
// documents stored as JSON go through the same path.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidBracketConfig, err)
	}
	if doc.Version != DocumentVersion {
		return Document{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidBracketConfig, doc.Version)
	}
	if len(doc.Years) == 0 {
		return Document{}, fmt.Errorf("%w: no tax years", ErrInvalidBracketConfig)
	}
	return doc, nil
}

// LoadFile reads and parses a tax table file.
func LoadFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return ParseDocument(b)
}

// Configs converts and validates every year in the document.
func (d Document) Configs() ([]Config, error) {
	seen := make(map[int]bool, len(d.Years))
	out := make([]Config, 0, len(d.Years))
	for _, y := range d.Years {
		if seen[y.Year] {
			return nil, fmt.Errorf("%w: year %d defined twice", ErrInvalidBracketConfig, y.Year)
		}
		seen[y.Year] = true
		c, err := y.Config()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Config converts one year and validates it.
func (y YearDocument) Config() (Config, error) {
	c := Config{
		Year:             y.Year,
		PTKP:             make(map[string]int64, len(y.PTKP)),
		PPNRate:          y.PPNRate,
		NonNPWPSurcharge: y.NonNPWPSurcharge,
		OccupationalCost: OccupationalCost{
			Rate:      y.OccupationalCost.Rate,
			AnnualCap: y.OccupationalCost.AnnualCap,
		},
		Corporate: CorporateRates{
			Rate:              y.Corporate.Rate,
			MSMEFinalRate:     y.Corporate.MSMEFinalRate,
			MSMETurnoverLimit: y.Corporate.MSMETurnoverLimit,
		},
	}
	for code, amount := range y.PTKP {
		p, err := ParseCategory(code, true)
		if err != nil {
			return Config{}, fmt.Errorf("%w: year %d: %v", ErrInvalidBracketConfig, y.Year, err)
		}
		if trimmed := strings.TrimSpace(code); p.Dependents != int(trimmed[len(trimmed)-1]-'0') {
			return Config{}, invalidf("year %d: PTKP category %q has more than %d dependents", y.Year, code, MaxDependents)
		}
		if _, dup := c.PTKP[p.Category()]; dup {
			return Config{}, invalidf("year %d: PTKP category %s defined twice", y.Year, p.Category())
		}
		c.PTKP[p.Category()] = amount
	}
	for _, b := range y.Brackets {
		br := Bracket{Rate: b.Rate, Unbounded: b.UpperBound == nil}
		if b.UpperBound != nil {
			br.UpperBound = *b.UpperBound
		}
		c.Brackets = append(c.Brackets, br)
	}
	for _, p := range y.BPJS {
		c.BPJS = append(c.BPJS, BPJSProgram(p))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ToDocument renders a config back to its document form.
func ToDocument(c Config) YearDocument {
	y := YearDocument{
		Year:             c.Year,
		PTKP:             maps.Clone(c.PTKP),
		PPNRate:          c.PPNRate,
		NonNPWPSurcharge: c.NonNPWPSurcharge,
		OccupationalCost: OccupationalCostDocument{
			Rate:      c.OccupationalCost.Rate,
			AnnualCap: c.OccupationalCost.AnnualCap,
		},
		Corporate: CorporateDocument{
			Rate:              c.Corporate.Rate,
			MSMEFinalRate:     c.Corporate.MSMEFinalRate,
			MSMETurnoverLimit: c.Corporate.MSMETurnoverLimit,
		},
	}
	for _, b := range c.Brackets {
		bd := BracketDocument{Rate: b.Rate}
		if !b.Unbounded {
			ub := b.UpperBound
			bd.UpperBound = &ub
		}
		y.Brackets = append(y.Brackets, bd)
	}
	for _, p := range c.BPJS {
		y.BPJS = append(y.BPJS, BPJSDocument(p))
	}
	return y
}

// LoadRegistry builds a registry from a document plus any overriding years.
func LoadRegistry(doc Document, overrides ...YearDocument) (*Registry, error) {
	configs, err := doc.Configs()
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		c, err := o.Config()
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: no tax years", ErrInvalidBracketConfig)
	}
	return NewRegistry(configs...)
}

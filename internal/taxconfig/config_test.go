package taxconfig

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(year int) Config {
	ptkp := make(map[string]int64, len(Categories))
	for i, cat := range Categories {
		ptkp[cat] = 54_000_000 + int64(i)*4_500_000
	}
	return Config{
		Year: year,
		PTKP: ptkp,
		Brackets: []Bracket{
			{UpperBound: 60_000_000, Rate: decimal.RequireFromString("0.05")},
			{UpperBound: 250_000_000, Rate: decimal.RequireFromString("0.15")},
			{Unbounded: true, Rate: decimal.RequireFromString("0.25")},
		},
		PPNRate:          decimal.RequireFromString("0.11"),
		NonNPWPSurcharge: decimal.RequireFromString("0.20"),
		OccupationalCost: OccupationalCost{Rate: decimal.RequireFromString("0.05"), AnnualCap: 6_000_000},
		Corporate: CorporateRates{
			Rate:              decimal.RequireFromString("0.22"),
			MSMEFinalRate:     decimal.RequireFromString("0.005"),
			MSMETurnoverLimit: 4_800_000_000,
		},
		BPJS: []BPJSProgram{
			{Name: "kesehatan", WageCap: 12_000_000, EmployeeRate: decimal.RequireFromString("0.01"), EmployerRate: decimal.RequireFromString("0.04")},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig(2024).Validate())

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no brackets", func(c *Config) { c.Brackets = nil }},
		{"bounds not increasing", func(c *Config) { c.Brackets[1].UpperBound = 60_000_000 }},
		{"last bracket bounded", func(c *Config) { c.Brackets[2] = Bracket{UpperBound: 900_000_000, Rate: decimal.RequireFromString("0.3")} }},
		{"unbounded in the middle", func(c *Config) { c.Brackets[1].Unbounded = true }},
		{"regressive rate", func(c *Config) { c.Brackets[1].Rate = decimal.RequireFromString("0.01") }},
		{"rate above one", func(c *Config) { c.Brackets[2].Rate = decimal.RequireFromString("1.5") }},
		{"negative rate", func(c *Config) { c.Brackets[0].Rate = decimal.RequireFromString("-0.05") }},
		{"missing PTKP", func(c *Config) { delete(c.PTKP, "K/I/3") }},
		{"negative PTKP", func(c *Config) { c.PTKP["TK/0"] = -1 }},
		{"bad PPN", func(c *Config) { c.PPNRate = decimal.RequireFromString("11") }},
		{"negative cap", func(c *Config) { c.OccupationalCost.AnnualCap = -1 }},
		{"duplicate BPJS", func(c *Config) { c.BPJS = append(c.BPJS, c.BPJS[0]) }},
		{"zero year", func(c *Config) { c.Year = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig(2024).clone()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidBracketConfig)
		})
	}
}

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(StatusMarried, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Dependents)
	assert.Equal(t, "K/3", p.Category())

	_, err = NewProfile(StatusSingle, -1, true)
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = NewProfile("X", 0, true)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		code   string
		status MaritalStatus
		deps   int
	}{
		{"TK/0", StatusSingle, 0},
		{"k/2", StatusMarried, 2},
		{" K/I/3 ", StatusMarriedCombined, 3},
		{"K/7", StatusMarried, 3},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			p, err := ParseCategory(tc.code, false)
			require.NoError(t, err)
			assert.Equal(t, tc.status, p.Status)
			assert.Equal(t, tc.deps, p.Dependents)
			assert.False(t, p.HasNPWP)
		})
	}

	for _, bad := range []string{"", "X/1", "TK/", "K/12", "K/I/a"} {
		_, err := ParseCategory(bad, true)
		assert.ErrorIs(t, err, ErrInvalidProfile, bad)
	}
}

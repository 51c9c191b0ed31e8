package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"officebot/pkg/money"
)

type Method string

const (
	MethodStraightLine     Method = "straight_line"
	MethodDecliningBalance Method = "declining_balance"
)

// MaxPeriods caps the length of a depreciation schedule.
const MaxPeriods = 600

type Entry struct {
	Period       int
	Depreciation int64
	Accumulated  int64
	BookValue    int64
}

// Schedule is a per-period depreciation table in whole Rupiah.
type Schedule struct {
	Method  Method
	Cost    int64
	Salvage int64
	Rate    decimal.Decimal
	Entries []Entry
}

func checkAsset(cost, salvage int64, periods int) error {
	if cost < 0 {
		return ErrNegativeAmount
	}
	if err := money.Check(cost); err != nil {
		return err
	}
	if salvage < 0 || salvage > cost {
		return fmt.Errorf("%w: salvage %d, cost %d", ErrInvalidSalvage, salvage, cost)
	}
	if periods <= 0 || periods > MaxPeriods {
		return fmt.Errorf("%w: %d", ErrInvalidUsefulLife, periods)
	}
	return nil
}

// StraightLine spreads (cost − salvage) evenly over life periods. Each period
// is rounded to whole Rupiah and the last period absorbs the remainder so the
// final book value equals salvage.
func StraightLine(cost, salvage int64, life int) (Schedule, error) {
	if err := checkAsset(cost, salvage, life); err != nil {
		return Schedule{}, err
	}
	base := cost - salvage
	per := money.Round(decimal.NewFromInt(base).Div(decimal.NewFromInt(int64(life))))

	s := Schedule{
		Method:  MethodStraightLine,
		Cost:    cost,
		Salvage: salvage,
		Rate:    decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(life))),
		Entries: make([]Entry, 0, life),
	}
	var accumulated int64
	for p := 1; p <= life; p++ {
		amount := per
		if p == life {
			amount = base - accumulated
		}
		accumulated += amount
		s.Entries = append(s.Entries, Entry{Period: p, Depreciation: amount, Accumulated: accumulated, BookValue: cost - accumulated})
	}
	return s, nil
}

// DoubleDecliningRate is 2 / life.
func DoubleDecliningRate(life int) (decimal.Decimal, error) {
	if life <= 0 || life > MaxPeriods {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidUsefulLife, life)
	}
	return decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(life))), nil
}

// DecliningBalance charges rate × prior book value each period. The book
// value never drops below salvage: the period that would cross it is cut
// short and later periods charge nothing.
func DecliningBalance(cost, salvage int64, rate decimal.Decimal, periods int) (Schedule, error) {
	if err := checkAsset(cost, salvage, periods); err != nil {
		return Schedule{}, err
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Schedule{}, fmt.Errorf("%w: %s", ErrInvalidRate, rate)
	}

	s := Schedule{
		Method:  MethodDecliningBalance,
		Cost:    cost,
		Salvage: salvage,
		Rate:    rate,
		Entries: make([]Entry, 0, periods),
	}
	book := cost
	var accumulated int64
	for p := 1; p <= periods; p++ {
		amount := money.Apply(book, rate)
		if book-amount < salvage {
			amount = book - salvage
		}
		accumulated += amount
		book -= amount
		s.Entries = append(s.Entries, Entry{Period: p, Depreciation: amount, Accumulated: accumulated, BookValue: book})
	}
	return s, nil
}

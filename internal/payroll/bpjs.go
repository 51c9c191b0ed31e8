package payroll

import (
	"github.com/shopspring/decimal"

	"officebot/internal/taxconfig"
	"officebot/pkg/money"
)

// BPJSLine is one programme's contribution on a monthly wage.
type BPJSLine struct {
	Program      string
	Base         int64
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
	Employee     int64
	Employer     int64
}

type BPJSResult struct {
	Year     int
	Gross    int64
	Lines    []BPJSLine
	Employee int64
	Employer int64
}

// Contributions computes every programme on gross, each capped at its wage ceiling.
func Contributions(gross int64, programs []taxconfig.BPJSProgram) ([]BPJSLine, int64, int64) {
	lines := make([]BPJSLine, 0, len(programs))
	var employee, employer int64
	for _, p := range programs {
		base := money.Cap(gross, p.WageCap)
		l := BPJSLine{
			Program:      p.Name,
			Base:         base,
			EmployeeRate: p.EmployeeRate,
			EmployerRate: p.EmployerRate,
			Employee:     money.Apply(base, p.EmployeeRate),
			Employer:     money.Apply(base, p.EmployerRate),
		}
		employee += l.Employee
		employer += l.Employer
		lines = append(lines, l)
	}
	return lines, employee, employer
}

package payroll

import (
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory rates applied to the monthly base salary.
var (
	hraRate   = decimal.NewFromFloat(0.40)
	bonusRate = decimal.NewFromFloat(0.05)
	epfRate   = decimal.NewFromFloat(0.12)

	monthsPerYear = decimal.NewFromInt(12)

	// Annual income tax slabs: cumulative tax up to the lower bound plus
	// the marginal rate on the excess.
	slab1Limit = decimal.NewFromInt(250000)
	slab2Limit = decimal.NewFromInt(500000)
	slab3Limit = decimal.NewFromInt(1000000)

	slab2Rate = decimal.NewFromFloat(0.05)
	slab3Rate = decimal.NewFromFloat(0.20)
	slab4Rate = decimal.NewFromFloat(0.30)

	slab3Base = decimal.NewFromInt(12500)  // tax on 250k-500k at 5%
	slab4Base = decimal.NewFromInt(112500) // slab3Base + tax on 500k-1M at 20%
)

// SalaryCalculator derives a month's salary breakdown from the base salary,
// the effective days present and the calendar length of the month. It is a
// pure computation: same inputs, same breakdown.
type SalaryCalculator struct {
}

func NewSalaryCalculator() *SalaryCalculator {
	return &SalaryCalculator{}
}

// Calculate produces the full breakdown. HRA, bonus and EPF are flat
// percentages of the base salary; only the earned basic and the loss-of-pay
// deduction are prorated by attendance. Components are rounded to two
// decimal places and the net is floored at zero.
func (c *SalaryCalculator) Calculate(baseSalary decimal.Decimal, effectiveDays decimal.Decimal, totalDays int) payroll.SalaryBreakdown {
	days := decimal.NewFromInt(int64(totalDays))

	perDayRate := baseSalary.Div(days)
	earnedBasic := perDayRate.Mul(effectiveDays)

	hra := baseSalary.Mul(hraRate)
	bonus := baseSalary.Mul(bonusRate)
	gross := earnedBasic.Add(hra).Add(bonus)

	epf := baseSalary.Mul(epfRate)
	tds := c.monthlyTDS(baseSalary)
	lop := days.Sub(effectiveDays).Mul(perDayRate)

	net := gross.Sub(epf).Sub(tds).Sub(lop)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payroll.SalaryBreakdown{
		BaseSalary:    baseSalary,
		TotalDays:     totalDays,
		EffectiveDays: effectiveDays,
		PerDayRate:    perDayRate.Round(2),
		EarnedBasic:   earnedBasic.Round(2),
		HRA:           hra.Round(2),
		Bonus:         bonus.Round(2),
		GrossSalary:   gross.Round(2),
		EPF:           epf.Round(2),
		TDS:           tds.Round(2),
		LOPDeduction:  lop.Round(2),
		NetSalary:     net.Round(2),
	}
}

// monthlyTDS applies the progressive annual slabs to base*12 and spreads
// the annual tax evenly across the year.
func (c *SalaryCalculator) monthlyTDS(baseSalary decimal.Decimal) decimal.Decimal {
	annual := baseSalary.Mul(monthsPerYear)

	var annualTax decimal.Decimal
	switch {
	case annual.LessThanOrEqual(slab1Limit):
		annualTax = decimal.Zero
	case annual.LessThanOrEqual(slab2Limit):
		annualTax = annual.Sub(slab1Limit).Mul(slab2Rate)
	case annual.LessThanOrEqual(slab3Limit):
		annualTax = slab3Base.Add(annual.Sub(slab2Limit).Mul(slab3Rate))
	default:
		annualTax = slab4Base.Add(annual.Sub(slab3Limit).Mul(slab4Rate))
	}

	return annualTax.Div(monthsPerYear)
}

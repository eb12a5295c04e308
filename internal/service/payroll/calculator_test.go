package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateStandardMonth(t *testing.T) {
	calc := NewSalaryCalculator()

	got := calc.Calculate(d("30000"), d("20"), 30)

	assert.True(t, d("1000").Equal(got.PerDayRate), "per day rate: %s", got.PerDayRate)
	assert.True(t, d("20000").Equal(got.EarnedBasic), "earned basic: %s", got.EarnedBasic)
	assert.True(t, d("12000").Equal(got.HRA), "hra: %s", got.HRA)
	assert.True(t, d("1500").Equal(got.Bonus), "bonus: %s", got.Bonus)
	assert.True(t, d("33500").Equal(got.GrossSalary), "gross: %s", got.GrossSalary)
	assert.True(t, d("3600").Equal(got.EPF), "epf: %s", got.EPF)
	assert.True(t, d("458.33").Equal(got.TDS), "tds: %s", got.TDS)
	assert.True(t, d("10000").Equal(got.LOPDeduction), "lop: %s", got.LOPDeduction)
	assert.True(t, d("19441.67").Equal(got.NetSalary), "net: %s", got.NetSalary)
}

func TestCalculateFullAttendanceHasNoLOP(t *testing.T) {
	calc := NewSalaryCalculator()

	got := calc.Calculate(d("30000"), d("30"), 30)

	assert.True(t, got.LOPDeduction.IsZero(), "lop: %s", got.LOPDeduction)
	assert.True(t, d("30000").Equal(got.EarnedBasic), "earned basic: %s", got.EarnedBasic)
}

func TestCalculateZeroAttendance(t *testing.T) {
	calc := NewSalaryCalculator()

	got := calc.Calculate(d("30000"), decimal.Zero, 30)

	// A zero-attendance month still yields a well-formed breakdown.
	assert.True(t, got.EarnedBasic.IsZero())
	assert.True(t, d("30000").Equal(got.LOPDeduction), "lop: %s", got.LOPDeduction)
	assert.True(t, got.NetSalary.IsZero(), "net floors at zero: %s", got.NetSalary)
}

func TestCalculateNetNeverNegative(t *testing.T) {
	calc := NewSalaryCalculator()

	cases := []struct {
		name      string
		base      string
		effective string
		totalDays int
	}{
		{"zero attendance high salary", "100000", "0", 31},
		{"one half day", "50000", "0.5", 30},
		{"tiny salary", "100", "0", 28},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Calculate(d(tc.base), d(tc.effective), tc.totalDays)
			assert.False(t, got.NetSalary.IsNegative(), "net: %s", got.NetSalary)
		})
	}
}

func TestCalculateHalfDaysProrate(t *testing.T) {
	calc := NewSalaryCalculator()

	got := calc.Calculate(d("30000"), d("19.5"), 30)

	assert.True(t, d("19500").Equal(got.EarnedBasic), "earned basic: %s", got.EarnedBasic)
	assert.True(t, d("10500").Equal(got.LOPDeduction), "lop: %s", got.LOPDeduction)
}

func TestCalculateTDSSlabs(t *testing.T) {
	calc := NewSalaryCalculator()

	cases := []struct {
		name string
		base string
		want string // monthly TDS
	}{
		// annual 120,000: below the first slab
		{"no tax", "10000", "0"},
		// annual 250,000: exactly at the first slab boundary
		{"boundary first slab", "20833.33", "0"},
		// annual 360,000: (360000-250000)*5% / 12
		{"second slab", "30000", "458.33"},
		// annual 720,000: (12500 + 220000*20%) / 12
		{"third slab", "60000", "4708.33"},
		// annual 1,200,000: (112500 + 200000*30%) / 12
		{"top slab", "100000", "14375"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Calculate(d(tc.base), d("30"), 30)
			assert.True(t, d(tc.want).Equal(got.TDS), "tds = %s, want %s", got.TDS, tc.want)
		})
	}
}

func TestCalculateFebruaryChangesPerDayRate(t *testing.T) {
	calc := NewSalaryCalculator()

	feb28 := calc.Calculate(d("28000"), d("28"), 28)
	feb29 := calc.Calculate(d("28000"), d("29"), 29)

	assert.True(t, d("1000").Equal(feb28.PerDayRate), "28-day feb: %s", feb28.PerDayRate)
	assert.True(t, d("965.52").Equal(feb29.PerDayRate), "29-day feb: %s", feb29.PerDayRate)
}

func TestCalculateIsDeterministic(t *testing.T) {
	calc := NewSalaryCalculator()

	first := calc.Calculate(d("42500"), d("17.5"), 31)
	second := calc.Calculate(d("42500"), d("17.5"), 31)

	assert.Equal(t, first, second)
}

package payslip

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	gen := NewPDFGenerator("ePayroll Pvt Ltd")

	out, err := gen.Render(Data{
		EmployeeID:   "EMP001",
		EmployeeName: "Jane Doe",
		Department:   "Engineering",
		Designation:  "Developer",
		Month:        "2025-06",
		DaysPresent:  decimal.NewFromInt(20),
		TotalDays:    30,
		EarnedBasic:  decimal.NewFromInt(20000),
		HRA:          decimal.NewFromInt(12000),
		Bonus:        decimal.NewFromInt(1500),
		GrossSalary:  decimal.NewFromInt(33500),
		EPF:          decimal.NewFromInt(3600),
		TDS:          decimal.RequireFromString("458.33"),
		LOPDeduction: decimal.NewFromInt(10000),
		NetSalary:    decimal.RequireFromString("19441.67"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// PDF magic bytes
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderHandlesMissingOptionalFields(t *testing.T) {
	gen := NewPDFGenerator("ePayroll Pvt Ltd")

	out, err := gen.Render(Data{
		EmployeeID:   "EMP002",
		EmployeeName: "John Roe",
		Month:        "2025-02",
		TotalDays:    28,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

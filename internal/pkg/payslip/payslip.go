package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Data carries everything the renderer needs for one payslip.
type Data struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Designation  string
	Month        string // "YYYY-MM"
	DaysPresent  decimal.Decimal
	TotalDays    int
	EarnedBasic  decimal.Decimal
	HRA          decimal.Decimal
	Bonus        decimal.Decimal
	GrossSalary  decimal.Decimal
	EPF          decimal.Decimal
	TDS          decimal.Decimal
	LOPDeduction decimal.Decimal
	NetSalary    decimal.Decimal
}

// Generator renders a payslip document.
type Generator interface {
	Render(data Data) ([]byte, error)
}

type pdfGenerator struct {
	companyName string
}

// NewPDFGenerator creates a gofpdf-backed payslip renderer.
func NewPDFGenerator(companyName string) Generator {
	return &pdfGenerator{companyName: companyName}
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (g *pdfGenerator) Render(data Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Company header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, g.companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("SALARY SLIP - %s", data.Month), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Employee details
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Employee ID", "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(55, 7, data.EmployeeID, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Name", "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(55, 7, data.EmployeeName, "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Department", "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(55, 7, data.Department, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Designation", "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(55, 7, data.Designation, "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Days Present", "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(55, 7, data.DaysPresent.String(), "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Total Days", "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(55, 7, fmt.Sprintf("%d", data.TotalDays), "1", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Earnings and deductions side by side
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 8, "EARNINGS", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "DEDUCTIONS", "1", 1, "C", false, 0, "")

	rows := []struct {
		earnLabel string
		earn      string
		dedLabel  string
		ded       string
	}{
		{"Basic (earned)", amount(data.EarnedBasic), "EPF", amount(data.EPF)},
		{"HRA", amount(data.HRA), "TDS", amount(data.TDS)},
		{"Bonus", amount(data.Bonus), "Loss of Pay", amount(data.LOPDeduction)},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(55, 7, row.earnLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.earn, "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, row.dedLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.ded, "1", 1, "R", false, 0, "")
	}

	totalDeductions := data.EPF.Add(data.TDS).Add(data.LOPDeduction)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 7, "Gross Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, amount(data.GrossSalary), "1", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, amount(totalDeductions), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(95, 10, "NET SALARY", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 10, amount(data.NetSalary), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, "This is a computer-generated document and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

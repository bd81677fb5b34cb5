package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	labelWidth  = 110.0
	amountWidth = 60.0
	rowHeight   = 7.0
)

// RenderPayslip draws a single payslip as an A4 document and returns the PDF
// bytes. Nothing touches the filesystem; callers stream the result.
func RenderPayslip(p payroll.Payslip, companyName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, companyName)
	doc.Ln(8)
	doc.SetFont("Helvetica", "B", 13)
	doc.Cell(0, 8, "SLIP GAJI / PAYSLIP")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Period: %s %d", time.Month(p.PeriodMonth), p.PeriodYear))
	doc.Ln(5)
	doc.Cell(0, 6, fmt.Sprintf("Payslip No: %s", p.PayslipNumber))
	doc.Ln(9)

	// Employee identity
	doc.SetFont("Helvetica", "", 11)
	if p.EmployeeName != nil {
		doc.Cell(0, 6, fmt.Sprintf("Employee: %s", *p.EmployeeName))
		doc.Ln(5)
	}
	if p.EmployeeCode != nil {
		doc.Cell(0, 6, fmt.Sprintf("Employee Code: %s", *p.EmployeeCode))
		doc.Ln(5)
	}
	doc.Cell(0, 6, fmt.Sprintf("PTKP Status: %s", p.PTKPStatus))
	doc.Ln(9)

	// Earnings
	sectionHeader(doc, "EARNINGS")
	amountRow(doc, "Base Salary", p.BaseSalary)
	amountRow(doc, "Transport Allowance", p.AllowanceTransport)
	amountRow(doc, "Meal Allowance", p.AllowanceMeal)
	amountRow(doc, "Communication Allowance", p.AllowanceCommunication)
	amountRow(doc, "Position Allowance", p.AllowancePosition)
	amountRow(doc, "Other Allowance", p.AllowanceOther)
	amountRow(doc, "Bonus", p.Bonus)
	amountRow(doc, "Overtime", p.Overtime)
	amountRow(doc, "Reimbursements", p.Reimbursements)
	totalRow(doc, "Gross Salary", p.GrossSalary)
	doc.Ln(4)

	// Employee-side deductions
	sectionHeader(doc, "DEDUCTIONS")
	amountRow(doc, "BPJS Kesehatan (1%)", p.BPJSKesehatanEmployee)
	amountRow(doc, "BPJS JHT (2%)", p.BPJSJHTEmployee)
	amountRow(doc, "BPJS JP (1%)", p.BPJSJPEmployee)
	amountRow(doc, "PPh 21", p.PPh21)
	amountRow(doc, "Other Deductions", p.OtherDeductions)
	totalRow(doc, "Total Deductions", p.TotalDeductions)
	doc.Ln(4)

	// Net pay
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(labelWidth, 9, "NET PAY", "T", 0, "L", false, 0, "")
	doc.CellFormat(amountWidth, 9, FormatRupiah(p.NetSalary), "T", 0, "R", false, 0, "")
	doc.Ln(12)
	if p.DeductionsExceedGross {
		doc.SetFont("Helvetica", "I", 9)
		doc.Cell(0, 5, "Deductions exceeded gross salary this period; net pay is floored at zero.")
		doc.Ln(8)
	}

	// Employer contributions are not deducted from the employee; shown for
	// reference the way statutory payslips present them.
	sectionHeader(doc, "EMPLOYER CONTRIBUTIONS (REFERENCE)")
	amountRow(doc, "BPJS Kesehatan (4%)", p.BPJSKesehatanEmployer)
	amountRow(doc, "BPJS JHT (3.7%)", p.BPJSJHTEmployer)
	amountRow(doc, "BPJS JP (2%)", p.BPJSJPEmployer)
	amountRow(doc, fmt.Sprintf("BPJS JKK (risk class %s)", romanRiskClass(p.JKKRiskClass)), p.BPJSJKKEmployer)
	amountRow(doc, "BPJS JKM (0.3%)", p.BPJSJKMEmployer)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(labelWidth+amountWidth, rowHeight, title, "1", 0, "L", true, 0, "")
	doc.Ln(-1)
	doc.SetFont("Helvetica", "", 10)
}

func amountRow(doc *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	doc.CellFormat(labelWidth, rowHeight, label, "LR", 0, "L", false, 0, "")
	doc.CellFormat(amountWidth, rowHeight, FormatRupiah(amount), "LR", 0, "R", false, 0, "")
	doc.Ln(-1)
}

func totalRow(doc *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(labelWidth, rowHeight, label, "1", 0, "L", false, 0, "")
	doc.CellFormat(amountWidth, rowHeight, FormatRupiah(amount), "1", 0, "R", false, 0, "")
	doc.Ln(-1)
	doc.SetFont("Helvetica", "", 10)
}

// FormatRupiah renders a whole-rupiah amount with Indonesian thousand
// separators, e.g. Rp 10.000.000.
func FormatRupiah(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	formatted := "Rp " + strings.Join(groups, ".")
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

func romanRiskClass(class payroll.JKKRiskClass) string {
	switch class {
	case payroll.JKKRiskClass1:
		return "I"
	case payroll.JKKRiskClass2:
		return "II"
	case payroll.JKKRiskClass3:
		return "III"
	case payroll.JKKRiskClass4:
		return "IV"
	case payroll.JKKRiskClass5:
		return "V"
	}
	return fmt.Sprintf("%d", int(class))
}

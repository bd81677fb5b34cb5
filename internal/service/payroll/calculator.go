package payroll

import (
	"fmt"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// PayslipCalculator computes one employee's payslip amounts for one period.
// It is pure: no I/O, no shared state, safe to call from any number of
// goroutines. Every statutory rate, cap and table comes from the
// TaxYearConfig it was built with, which the service freezes by the payroll
// run's period year.
type PayslipCalculator struct {
	cfg payroll.TaxYearConfig
}

func NewPayslipCalculator(cfg payroll.TaxYearConfig) *PayslipCalculator {
	return &PayslipCalculator{cfg: cfg}
}

// Calculate runs the full pipeline: gross salary, BPJS contributions, PPh 21
// withholding, then net salary. Negative amounts and unrecognized enum values
// are rejected with the offending field named, never clamped or defaulted.
// A zero-salary input is valid and yields an all-zero result.
//
// When deductions exceed gross, net salary is clamped at zero and
// DeductionsExceedGross is set; in every other case the result satisfies
// netSalary = grossSalary - totalDeductions exactly.
func (c *PayslipCalculator) Calculate(input payroll.CalculationInput) (payroll.CalculationResult, error) {
	if err := validateInput(input); err != nil {
		return payroll.CalculationResult{}, err
	}

	gross := grossSalary(input)

	bpjs, err := c.bpjsContributions(gross, input.JKKRiskClass)
	if err != nil {
		return payroll.CalculationResult{}, err
	}

	pph21, err := c.monthlyWithholding(gross, bpjs, input.PTKPStatus)
	if err != nil {
		return payroll.CalculationResult{}, err
	}

	totalDeductions := bpjs.KesehatanEmployee.
		Add(bpjs.JHTEmployee).
		Add(bpjs.JPEmployee).
		Add(pph21).
		Add(input.OtherDeductions)

	netSalary := gross.Sub(totalDeductions)
	deductionsExceedGross := netSalary.IsNegative()
	if deductionsExceedGross {
		netSalary = decimal.Zero
	}

	return payroll.CalculationResult{
		GrossSalary:           gross,
		BPJSKesehatanEmployee: bpjs.KesehatanEmployee,
		BPJSKesehatanEmployer: bpjs.KesehatanEmployer,
		BPJSJHTEmployee:       bpjs.JHTEmployee,
		BPJSJHTEmployer:       bpjs.JHTEmployer,
		BPJSJPEmployee:        bpjs.JPEmployee,
		BPJSJPEmployer:        bpjs.JPEmployer,
		BPJSJKKEmployer:       bpjs.JKKEmployer,
		BPJSJKMEmployer:       bpjs.JKMEmployer,
		PPh21:                 pph21,
		OtherDeductions:       input.OtherDeductions,
		TotalDeductions:       totalDeductions,
		NetSalary:             netSalary,
		DeductionsExceedGross: deductionsExceedGross,
	}, nil
}

// grossSalary sums the fixed components and the period's ad-hoc additions.
// Exact integer arithmetic; nothing is rounded here.
func grossSalary(input payroll.CalculationInput) decimal.Decimal {
	return input.BaseSalary.
		Add(input.AllowanceTransport).
		Add(input.AllowanceMeal).
		Add(input.AllowanceCommunication).
		Add(input.AllowancePosition).
		Add(input.AllowanceOther).
		Add(input.Bonus).
		Add(input.Overtime).
		Add(input.Reimbursements)
}

func validateInput(input payroll.CalculationInput) error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"base_salary", input.BaseSalary},
		{"allowance_transport", input.AllowanceTransport},
		{"allowance_meal", input.AllowanceMeal},
		{"allowance_communication", input.AllowanceCommunication},
		{"allowance_position", input.AllowancePosition},
		{"allowance_other", input.AllowanceOther},
		{"bonus", input.Bonus},
		{"overtime", input.Overtime},
		{"reimbursements", input.Reimbursements},
		{"other_deductions", input.OtherDeductions},
	}
	for _, amount := range amounts {
		if amount.value.IsNegative() {
			return fmt.Errorf("%s: %w", amount.field, payroll.ErrNegativeAmount)
		}
	}
	return nil
}

// roundIDR rounds to the nearest whole rupiah, half up. Rupiah has no minor
// unit, so every amount leaving the engine is an integer.
func roundIDR(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// SummarizePayslips folds per-payslip amounts into aggregate totals for a run
// or a year. Plain decimal summation over already rounded fields, so the
// totals introduce no drift of their own.
func SummarizePayslips(payslips []payroll.Payslip) payroll.RunSummary {
	summary := payroll.RunSummary{TotalEmployees: len(payslips)}
	for _, p := range payslips {
		summary.TotalGross = summary.TotalGross.Add(p.GrossSalary)
		summary.TotalPPh21 = summary.TotalPPh21.Add(p.PPh21)
		summary.TotalBPJSKesehatanEmployee = summary.TotalBPJSKesehatanEmployee.Add(p.BPJSKesehatanEmployee)
		summary.TotalBPJSKesehatanEmployer = summary.TotalBPJSKesehatanEmployer.Add(p.BPJSKesehatanEmployer)
		summary.TotalBPJSJHTEmployee = summary.TotalBPJSJHTEmployee.Add(p.BPJSJHTEmployee)
		summary.TotalBPJSJHTEmployer = summary.TotalBPJSJHTEmployer.Add(p.BPJSJHTEmployer)
		summary.TotalBPJSJPEmployee = summary.TotalBPJSJPEmployee.Add(p.BPJSJPEmployee)
		summary.TotalBPJSJPEmployer = summary.TotalBPJSJPEmployer.Add(p.BPJSJPEmployer)
		summary.TotalBPJSJKKEmployer = summary.TotalBPJSJKKEmployer.Add(p.BPJSJKKEmployer)
		summary.TotalBPJSJKMEmployer = summary.TotalBPJSJKMEmployer.Add(p.BPJSJKMEmployer)
		summary.TotalDeductions = summary.TotalDeductions.Add(p.TotalDeductions)
		summary.TotalNet = summary.TotalNet.Add(p.NetSalary)
	}
	return summary
}

package payroll

import (
	"fmt"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// monthlyWithholding implements the monthly progressive PPh 21 method:
//
//  1. subtract the occupational cost deduction (biaya jabatan), 5% of gross
//     capped at the statutory monthly maximum
//  2. subtract the employee-side BPJS deductions (Kesehatan + JHT + JP)
//  3. annualize by twelve
//  4. subtract the PTKP allowance for the employee's status
//  5. zero or negative taxable income means zero withholding
//  6. apply the progressive bracket table
//  7. divide the annual tax back to one month, rounding half-up to whole
//     rupiah only at this final step
func (c *PayslipCalculator) monthlyWithholding(gross decimal.Decimal, bpjs bpjsAmounts, status payroll.PTKPStatus) (decimal.Decimal, error) {
	ptkp, ok := c.cfg.PTKPFor(status)
	if !ok {
		return decimal.Zero, fmt.Errorf("ptkp_status %q: %w", status, payroll.ErrUnknownPTKPStatus)
	}

	occupationalCost := gross.Mul(c.cfg.OccupationalCostRate)
	if occupationalCost.GreaterThan(c.cfg.OccupationalCostMonthlyCap) {
		occupationalCost = c.cfg.OccupationalCostMonthlyCap
	}

	monthlyTaxable := gross.
		Sub(occupationalCost).
		Sub(bpjs.KesehatanEmployee).
		Sub(bpjs.JHTEmployee).
		Sub(bpjs.JPEmployee)

	annualTaxable := monthlyTaxable.Mul(twelve).Sub(ptkp)
	if annualTaxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	var annualTax decimal.Decimal
	for _, bracket := range c.cfg.Brackets {
		if annualTaxable.LessThanOrEqual(bracket.Min) {
			break
		}
		incomeInBracket := decimal.Min(annualTaxable, bracket.Max).Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			annualTax = annualTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}

	return roundIDR(annualTax.Div(twelve)), nil
}

package payroll

import (
	"errors"
	"testing"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func validInput() payroll.CalculationInput {
	return payroll.CalculationInput{
		BaseSalary:   d(10000000),
		PTKPStatus:   payroll.PTKPTK0,
		JKKRiskClass: payroll.JKKRiskClass1,
	}
}

// Hand-computed against the published 2023 tables: Kesehatan 1%/4% on a base
// capped at 12,000,000; JHT 2%/3.7% uncapped; JP 1%/2% on a base capped at
// 9,559,600; JKK class I 0.24%; JKM 0.3%; biaya jabatan 5% capped at 500,000;
// PTKP TK/0 54,000,000; first bracket 5%.
func TestCalculateConcreteScenario2023(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	// Act
	result, err := calc.Calculate(validInput())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "10000000", result.GrossSalary.String())

	assert.Equal(t, "100000", result.BPJSKesehatanEmployee.String())
	assert.Equal(t, "400000", result.BPJSKesehatanEmployer.String())
	assert.Equal(t, "200000", result.BPJSJHTEmployee.String())
	assert.Equal(t, "370000", result.BPJSJHTEmployer.String())
	assert.Equal(t, "95596", result.BPJSJPEmployee.String())
	assert.Equal(t, "191192", result.BPJSJPEmployer.String())
	assert.Equal(t, "24000", result.BPJSJKKEmployer.String())
	assert.Equal(t, "30000", result.BPJSJKMEmployer.String())

	// Taxable: 10,000,000 - 500,000 - 395,596 = 9,104,404 monthly;
	// annualized 109,252,848 - 54,000,000 PTKP = 55,252,848 in the 5% band;
	// 2,762,642.4 / 12 = 230,220.2, rounded half-up.
	assert.Equal(t, "230220", result.PPh21.String())

	assert.Equal(t, "625816", result.TotalDeductions.String())
	assert.Equal(t, "9374184", result.NetSalary.String())
	assert.False(t, result.DeductionsExceedGross)
}

func TestCalculateGrossAdditivity(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	input := payroll.CalculationInput{
		BaseSalary:             d(7250000),
		AllowanceTransport:     d(500000),
		AllowanceMeal:          d(400000),
		AllowanceCommunication: d(150000),
		AllowancePosition:      d(1000000),
		AllowanceOther:         d(75000),
		Bonus:                  d(2000000),
		Overtime:               d(325000),
		Reimbursements:         d(180000),
		PTKPStatus:             payroll.PTKPK1,
		JKKRiskClass:           payroll.JKKRiskClass2,
	}

	result, err := calc.Calculate(input)

	require.NoError(t, err)
	want := input.BaseSalary.
		Add(input.AllowanceTransport).
		Add(input.AllowanceMeal).
		Add(input.AllowanceCommunication).
		Add(input.AllowancePosition).
		Add(input.AllowanceOther).
		Add(input.Bonus).
		Add(input.Overtime).
		Add(input.Reimbursements)
	assert.True(t, result.GrossSalary.Equal(want), "gross %s, want %s", result.GrossSalary, want)
	assert.Equal(t, "11880000", result.GrossSalary.String())
}

func TestCalculateDeductionClosure(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	inputs := []payroll.CalculationInput{
		validInput(),
		{
			BaseSalary:      d(6000000),
			AllowanceMeal:   d(350000),
			OtherDeductions: d(250000),
			PTKPStatus:      payroll.PTKPK2,
			JKKRiskClass:    payroll.JKKRiskClass3,
		},
		{
			BaseSalary:         d(25000000),
			AllowancePosition:  d(5000000),
			AllowanceTransport: d(1000000),
			Bonus:              d(12500000),
			PTKPStatus:         payroll.PTKPKI3,
			JKKRiskClass:       payroll.JKKRiskClass5,
		},
	}

	for _, input := range inputs {
		result, err := calc.Calculate(input)
		require.NoError(t, err)

		deductions := result.BPJSKesehatanEmployee.
			Add(result.BPJSJHTEmployee).
			Add(result.BPJSJPEmployee).
			Add(result.PPh21).
			Add(result.OtherDeductions)
		assert.True(t, result.TotalDeductions.Equal(deductions),
			"total deductions %s, want %s", result.TotalDeductions, deductions)
		assert.True(t, result.NetSalary.Equal(result.GrossSalary.Sub(result.TotalDeductions)),
			"net %s, want %s", result.NetSalary, result.GrossSalary.Sub(result.TotalDeductions))
		assert.True(t, result.NetSalary.Round(0).Equal(result.NetSalary), "net salary is not whole rupiah")
	}
}

func TestCalculateZeroSalary(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	input := payroll.CalculationInput{
		PTKPStatus:   payroll.PTKPTK0,
		JKKRiskClass: payroll.JKKRiskClass1,
	}

	result, err := calc.Calculate(input)

	require.NoError(t, err)
	zeros := []decimal.Decimal{
		result.GrossSalary,
		result.BPJSKesehatanEmployee, result.BPJSKesehatanEmployer,
		result.BPJSJHTEmployee, result.BPJSJHTEmployer,
		result.BPJSJPEmployee, result.BPJSJPEmployer,
		result.BPJSJKKEmployer, result.BPJSJKMEmployer,
		result.PPh21, result.TotalDeductions, result.NetSalary,
	}
	for i, amount := range zeros {
		assert.True(t, amount.IsZero(), "field %d = %s, want 0", i, amount)
	}
	assert.False(t, result.DeductionsExceedGross)
}

// PPh 21 must never decrease as base salary grows. The grid walks gross from
// 9M to 13M, which carries annual taxable income across the 60,000,000
// boundary between the 5% and 15% bands (around 10.4M gross).
func TestCalculatePPh21Monotonicity(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	previous := decimal.Zero
	for base := int64(9000000); base <= 13000000; base += 250000 {
		input := validInput()
		input.BaseSalary = d(base)

		result, err := calc.Calculate(input)
		require.NoError(t, err)

		assert.True(t, result.PPh21.GreaterThanOrEqual(previous),
			"pph21 dropped from %s to %s at base salary %d", previous, result.PPh21, base)
		previous = result.PPh21
	}
}

// A higher PTKP allowance can only lower the withholding: K/3 > K/0 > TK/0.
func TestCalculatePTKPOrdering(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	withholding := func(status payroll.PTKPStatus) decimal.Decimal {
		input := validInput()
		input.PTKPStatus = status
		result, err := calc.Calculate(input)
		require.NoError(t, err)
		return result.PPh21
	}

	tk0 := withholding(payroll.PTKPTK0)
	k0 := withholding(payroll.PTKPK0)
	k3 := withholding(payroll.PTKPK3)

	assert.True(t, k3.LessThanOrEqual(k0), "pph21 K/3 %s > K/0 %s", k3, k0)
	assert.True(t, k0.LessThanOrEqual(tk0), "pph21 K/0 %s > TK/0 %s", k0, tk0)
}

// With a salary above both ceilings the capped schemes stop growing while the
// uncapped ones keep tracking the full salary.
func TestCalculateCapEnforcement(t *testing.T) {
	t.Parallel()

	cfg := payroll.NewTaxYearConfig2023()
	calc := NewPayslipCalculator(cfg)

	input := validInput()
	input.BaseSalary = d(20000000) // above 12,000,000 and 9,559,600

	result, err := calc.Calculate(input)

	require.NoError(t, err)
	assert.Equal(t, "120000", result.BPJSKesehatanEmployee.String(), "1 percent of the 12M cap")
	assert.Equal(t, "480000", result.BPJSKesehatanEmployer.String())
	assert.Equal(t, "95596", result.BPJSJPEmployee.String(), "1 percent of the 9,559,600 cap")
	assert.Equal(t, "191192", result.BPJSJPEmployer.String())

	uncappedKesehatan := roundIDR(input.BaseSalary.Mul(cfg.KesehatanEmployeeRate))
	uncappedJP := roundIDR(input.BaseSalary.Mul(cfg.JPEmployeeRate))
	assert.True(t, result.BPJSKesehatanEmployee.LessThan(uncappedKesehatan))
	assert.True(t, result.BPJSJPEmployee.LessThan(uncappedJP))

	// JHT has no ceiling.
	assert.Equal(t, "400000", result.BPJSJHTEmployee.String())
	assert.Equal(t, "740000", result.BPJSJHTEmployer.String())
}

func TestCalculateRoundsPerField(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	input := validInput()
	input.BaseSalary = d(5555555)

	result, err := calc.Calculate(input)

	require.NoError(t, err)
	assert.Equal(t, "55556", result.BPJSKesehatanEmployee.String(), "55,555.55 rounds up")
	assert.Equal(t, "111111", result.BPJSJHTEmployee.String(), "111,111.1 rounds down")
	assert.Equal(t, "55556", result.BPJSJPEmployee.String(), "55,555.55 rounds up")
	assert.Equal(t, "13333", result.BPJSJKKEmployer.String(), "13,333.332 rounds down")
	assert.Equal(t, "16667", result.BPJSJKMEmployer.String(), "16,666.665 rounds up")
}

func TestCalculateDeductionsExceedGross(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	input := payroll.CalculationInput{
		BaseSalary:      d(1000000),
		OtherDeductions: d(2000000), // e.g. an outstanding loan installment
		PTKPStatus:      payroll.PTKPTK0,
		JKKRiskClass:    payroll.JKKRiskClass1,
	}

	result, err := calc.Calculate(input)

	require.NoError(t, err)
	assert.True(t, result.DeductionsExceedGross)
	assert.True(t, result.NetSalary.IsZero(), "net salary %s, want clamped to 0", result.NetSalary)
	assert.True(t, result.TotalDeductions.GreaterThan(result.GrossSalary))
}

func TestCalculateRejectsNegativeAmounts(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	cases := []struct {
		field  string
		mutate func(*payroll.CalculationInput)
	}{
		{"base_salary", func(in *payroll.CalculationInput) { in.BaseSalary = d(-1) }},
		{"allowance_meal", func(in *payroll.CalculationInput) { in.AllowanceMeal = d(-500) }},
		{"bonus", func(in *payroll.CalculationInput) { in.Bonus = d(-100000) }},
		{"other_deductions", func(in *payroll.CalculationInput) { in.OtherDeductions = d(-1) }},
	}

	for _, c := range cases {
		input := validInput()
		c.mutate(&input)

		_, err := calc.Calculate(input)

		require.Error(t, err, c.field)
		assert.True(t, errors.Is(err, payroll.ErrNegativeAmount), c.field)
		assert.Contains(t, err.Error(), c.field)
	}
}

func TestCalculateRejectsUnknownEnums(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	badStatus := validInput()
	badStatus.PTKPStatus = payroll.PTKPStatus("TK/9")
	_, err := calc.Calculate(badStatus)
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrUnknownPTKPStatus))
	assert.Contains(t, err.Error(), "TK/9")

	badClass := validInput()
	badClass.JKKRiskClass = payroll.JKKRiskClass(9)
	_, err = calc.Calculate(badClass)
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrUnknownJKKRiskClass))

	// Enum preconditions hold even when the salary is zero.
	zeroSalary := payroll.CalculationInput{
		PTKPStatus:   payroll.PTKPTK0,
		JKKRiskClass: payroll.JKKRiskClass(0),
	}
	_, err = calc.Calculate(zeroSalary)
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrUnknownJKKRiskClass))
}

// The frozen JP ceiling is the only thing separating the year configs, so a
// 2023 run recalculated under the 2023 config must not pick up 2024 numbers.
func TestCalculateFrozenPerYear(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.BaseSalary = d(20000000)

	result2023, err := NewPayslipCalculator(payroll.TaxConfigForYear(2023)).Calculate(input)
	require.NoError(t, err)
	result2024, err := NewPayslipCalculator(payroll.TaxConfigForYear(2024)).Calculate(input)
	require.NoError(t, err)

	assert.Equal(t, "95596", result2023.BPJSJPEmployee.String())
	assert.Equal(t, "100423", result2024.BPJSJPEmployee.String())
}

func TestSummarizePayslipsRoundTrip(t *testing.T) {
	t.Parallel()

	calc := NewPayslipCalculator(payroll.NewTaxYearConfig2023())

	inputs := []payroll.CalculationInput{
		{BaseSalary: d(5000000), PTKPStatus: payroll.PTKPTK0, JKKRiskClass: payroll.JKKRiskClass1},
		{BaseSalary: d(10000000), AllowanceTransport: d(750000), PTKPStatus: payroll.PTKPK1, JKKRiskClass: payroll.JKKRiskClass1},
		{BaseSalary: d(15000000), Bonus: d(3000000), OtherDeductions: d(500000), PTKPStatus: payroll.PTKPK3, JKKRiskClass: payroll.JKKRiskClass1},
		{BaseSalary: d(22500000), AllowancePosition: d(2000000), PTKPStatus: payroll.PTKPKI0, JKKRiskClass: payroll.JKKRiskClass1},
	}

	var payslips []payroll.Payslip
	wantGross, wantPPh21, wantNet := decimal.Zero, decimal.Zero, decimal.Zero
	for _, input := range inputs {
		result, err := calc.Calculate(input)
		require.NoError(t, err)

		payslips = append(payslips, payroll.Payslip{
			GrossSalary:           result.GrossSalary,
			BPJSKesehatanEmployee: result.BPJSKesehatanEmployee,
			BPJSKesehatanEmployer: result.BPJSKesehatanEmployer,
			BPJSJHTEmployee:       result.BPJSJHTEmployee,
			BPJSJHTEmployer:       result.BPJSJHTEmployer,
			BPJSJPEmployee:        result.BPJSJPEmployee,
			BPJSJPEmployer:        result.BPJSJPEmployer,
			BPJSJKKEmployer:       result.BPJSJKKEmployer,
			BPJSJKMEmployer:       result.BPJSJKMEmployer,
			PPh21:                 result.PPh21,
			TotalDeductions:       result.TotalDeductions,
			NetSalary:             result.NetSalary,
		})
		wantGross = wantGross.Add(result.GrossSalary)
		wantPPh21 = wantPPh21.Add(result.PPh21)
		wantNet = wantNet.Add(result.NetSalary)
	}

	summary := SummarizePayslips(payslips)

	assert.Equal(t, len(inputs), summary.TotalEmployees)
	assert.True(t, summary.TotalGross.Equal(wantGross), "gross %s, want %s", summary.TotalGross, wantGross)
	assert.True(t, summary.TotalPPh21.Equal(wantPPh21), "pph21 %s, want %s", summary.TotalPPh21, wantPPh21)
	assert.True(t, summary.TotalNet.Equal(wantNet), "net %s, want %s", summary.TotalNet, wantNet)
}

func TestSummarizePayslipsEmpty(t *testing.T) {
	t.Parallel()

	summary := SummarizePayslips(nil)

	assert.Equal(t, 0, summary.TotalEmployees)
	assert.True(t, summary.TotalGross.IsZero())
	assert.True(t, summary.TotalNet.IsZero())
}

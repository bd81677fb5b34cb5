package payroll

import (
	"fmt"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// bpjsAmounts groups the six statutory contributions of one payslip.
type bpjsAmounts struct {
	KesehatanEmployee decimal.Decimal
	KesehatanEmployer decimal.Decimal
	JHTEmployee       decimal.Decimal
	JHTEmployer       decimal.Decimal
	JPEmployee        decimal.Decimal
	JPEmployer        decimal.Decimal
	JKKEmployer       decimal.Decimal
	JKMEmployer       decimal.Decimal
}

// bpjsContributions applies each scheme's rate to its own contribution base.
// Kesehatan and JP cap the base at their own statutory ceilings, which are
// regulated independently and move on different schedules; JHT, JKK and JKM
// use the full salary. Each amount is rounded half-up to whole rupiah per
// field, matching the statutory withholding tables.
func (c *PayslipCalculator) bpjsContributions(gross decimal.Decimal, riskClass payroll.JKKRiskClass) (bpjsAmounts, error) {
	jkkRate, ok := c.cfg.JKKRate(riskClass)
	if !ok {
		return bpjsAmounts{}, fmt.Errorf("jkk_risk_class %d: %w", riskClass, payroll.ErrUnknownJKKRiskClass)
	}

	// No salary, no contributions. An employee without salary history is a
	// valid state for reporting and must not break a run calculation.
	if !gross.IsPositive() {
		return bpjsAmounts{}, nil
	}

	kesehatanBase := gross
	if kesehatanBase.GreaterThan(c.cfg.KesehatanSalaryCap) {
		kesehatanBase = c.cfg.KesehatanSalaryCap
	}

	jpBase := gross
	if jpBase.GreaterThan(c.cfg.JPSalaryCap) {
		jpBase = c.cfg.JPSalaryCap
	}

	return bpjsAmounts{
		KesehatanEmployee: roundIDR(kesehatanBase.Mul(c.cfg.KesehatanEmployeeRate)),
		KesehatanEmployer: roundIDR(kesehatanBase.Mul(c.cfg.KesehatanEmployerRate)),
		JHTEmployee:       roundIDR(gross.Mul(c.cfg.JHTEmployeeRate)),
		JHTEmployer:       roundIDR(gross.Mul(c.cfg.JHTEmployerRate)),
		JPEmployee:        roundIDR(jpBase.Mul(c.cfg.JPEmployeeRate)),
		JPEmployer:        roundIDR(jpBase.Mul(c.cfg.JPEmployerRate)),
		JKKEmployer:       roundIDR(gross.Mul(jkkRate)),
		JKMEmployer:       roundIDR(gross.Mul(c.cfg.JKMEmployerRate)),
	}, nil
}

package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxBracket represents one progressive PPh 21 band over annual taxable
// income. Brackets are contiguous: the Min of a bracket equals the Max of
// the previous one, and income inside [Min, Max) is taxed at Rate.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// TaxYearConfig carries every statutory rate, cap and lookup table the
// engine needs for one tax year. Regulation changes become a new config,
// never an edit to calculation logic. A payroll run always uses the config
// selected by its period year, so recalculating an old run reproduces the
// numbers it was originally paid with.
type TaxYearConfig struct {
	Year int

	// PPh 21
	OccupationalCostRate       decimal.Decimal // biaya jabatan
	OccupationalCostMonthlyCap decimal.Decimal
	PTKPAnnual                 map[PTKPStatus]decimal.Decimal
	Brackets                   []TaxBracket

	// BPJS Kesehatan
	KesehatanEmployeeRate decimal.Decimal
	KesehatanEmployerRate decimal.Decimal
	KesehatanSalaryCap    decimal.Decimal

	// BPJS Ketenagakerjaan
	JHTEmployeeRate decimal.Decimal
	JHTEmployerRate decimal.Decimal
	JPEmployeeRate  decimal.Decimal
	JPEmployerRate  decimal.Decimal
	JPSalaryCap     decimal.Decimal
	JKMEmployerRate decimal.Decimal
	JKKRiskRates    map[JKKRiskClass]decimal.Decimal
}

// JKKRate looks up the employer accident-insurance rate for a risk class.
func (c TaxYearConfig) JKKRate(class JKKRiskClass) (decimal.Decimal, bool) {
	rate, ok := c.JKKRiskRates[class]
	return rate, ok
}

// PTKPFor looks up the annual non-taxable allowance for a status code.
func (c TaxYearConfig) PTKPFor(status PTKPStatus) (decimal.Decimal, bool) {
	allowance, ok := c.PTKPAnnual[status]
	return allowance, ok
}

// NewTaxYearConfig2023 returns the statutory values in force for 2023:
// Perpres 64/2020 Kesehatan rates and cap, PP 44/2015 JKK classes,
// Permenaker JP ceiling effective March 2023, PMK 101/2016 PTKP table and
// the UU HPP progressive brackets.
func NewTaxYearConfig2023() TaxYearConfig {
	cfg := baseTaxYearConfig(2023)
	cfg.JPSalaryCap = decimal.NewFromInt(9559600)
	return cfg
}

// NewTaxYearConfig2024 returns the 2024 values; only the JP ceiling moved
// (adjusted every March from GDP growth).
func NewTaxYearConfig2024() TaxYearConfig {
	cfg := baseTaxYearConfig(2024)
	cfg.JPSalaryCap = decimal.NewFromInt(10042300)
	return cfg
}

// NewTaxYearConfig2025 returns the 2025 values.
func NewTaxYearConfig2025() TaxYearConfig {
	cfg := baseTaxYearConfig(2025)
	cfg.JPSalaryCap = decimal.NewFromInt(10547400)
	return cfg
}

func baseTaxYearConfig(year int) TaxYearConfig {
	return TaxYearConfig{
		Year: year,

		OccupationalCostRate:       decimal.NewFromFloat(0.05),
		OccupationalCostMonthlyCap: decimal.NewFromInt(500000),
		PTKPAnnual: map[PTKPStatus]decimal.Decimal{
			PTKPTK0: decimal.NewFromInt(54000000),
			PTKPTK1: decimal.NewFromInt(58500000),
			PTKPTK2: decimal.NewFromInt(63000000),
			PTKPTK3: decimal.NewFromInt(67500000),
			PTKPK0:  decimal.NewFromInt(58500000),
			PTKPK1:  decimal.NewFromInt(63000000),
			PTKPK2:  decimal.NewFromInt(67500000),
			PTKPK3:  decimal.NewFromInt(72000000),
			PTKPKI0: decimal.NewFromInt(112500000),
			PTKPKI1: decimal.NewFromInt(117000000),
			PTKPKI2: decimal.NewFromInt(121500000),
			PTKPKI3: decimal.NewFromInt(126000000),
		},
		Brackets: []TaxBracket{
			{decimal.Zero, decimal.NewFromInt(60000000), decimal.NewFromFloat(0.05)},
			{decimal.NewFromInt(60000000), decimal.NewFromInt(250000000), decimal.NewFromFloat(0.15)},
			{decimal.NewFromInt(250000000), decimal.NewFromInt(500000000), decimal.NewFromFloat(0.25)},
			{decimal.NewFromInt(500000000), decimal.NewFromInt(5000000000), decimal.NewFromFloat(0.30)},
			{decimal.NewFromInt(5000000000), decimal.NewFromInt(999999999999999), decimal.NewFromFloat(0.35)},
		},

		KesehatanEmployeeRate: decimal.NewFromFloat(0.01),
		KesehatanEmployerRate: decimal.NewFromFloat(0.04),
		KesehatanSalaryCap:    decimal.NewFromInt(12000000),

		JHTEmployeeRate: decimal.NewFromFloat(0.02),
		JHTEmployerRate: decimal.NewFromFloat(0.037),
		JPEmployeeRate:  decimal.NewFromFloat(0.01),
		JPEmployerRate:  decimal.NewFromFloat(0.02),
		JKMEmployerRate: decimal.NewFromFloat(0.003),
		JKKRiskRates: map[JKKRiskClass]decimal.Decimal{
			JKKRiskClass1: decimal.NewFromFloat(0.0024),
			JKKRiskClass2: decimal.NewFromFloat(0.0054),
			JKKRiskClass3: decimal.NewFromFloat(0.0089),
			JKKRiskClass4: decimal.NewFromFloat(0.0127),
			JKKRiskClass5: decimal.NewFromFloat(0.0174),
		},
	}
}

var taxYearConfigs = []TaxYearConfig{
	NewTaxYearConfig2023(),
	NewTaxYearConfig2024(),
	NewTaxYearConfig2025(),
}

// TaxConfigForYear selects the config frozen for a payroll period year: the
// latest known year that is not after the requested one. Years before the
// earliest known config fall back to that earliest config. The selection
// mirrors the effective-date rule for salary components.
func TaxConfigForYear(year int) TaxYearConfig {
	configs := make([]TaxYearConfig, len(taxYearConfigs))
	copy(configs, taxYearConfigs)
	sort.Slice(configs, func(i, j int) bool { return configs[i].Year < configs[j].Year })

	selected := configs[0]
	for _, cfg := range configs {
		if cfg.Year > year {
			break
		}
		selected = cfg
	}
	return selected
}

package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTaxConfigForYear(t *testing.T) {
	cases := []struct {
		year int
		want int
	}{
		{2020, 2023}, // before the earliest known config
		{2023, 2023},
		{2024, 2024},
		{2025, 2025},
		{2030, 2025}, // after the latest known config
	}
	for _, c := range cases {
		got := TaxConfigForYear(c.year)
		if got.Year != c.want {
			t.Errorf("TaxConfigForYear(%d).Year = %d, want %d", c.year, got.Year, c.want)
		}
	}
}

func TestPTKPTableComplete(t *testing.T) {
	cfg := NewTaxYearConfig2023()
	if len(cfg.PTKPAnnual) != len(PTKPStatuses) {
		t.Fatalf("PTKP table has %d entries, want %d", len(cfg.PTKPAnnual), len(PTKPStatuses))
	}
	for _, status := range PTKPStatuses {
		allowance, ok := cfg.PTKPFor(status)
		if !ok {
			t.Errorf("PTKPFor(%q) missing", status)
			continue
		}
		if !allowance.IsPositive() {
			t.Errorf("PTKPFor(%q) = %s, want positive", status, allowance)
		}
	}
}

// Each status with more dependents carries a larger allowance, and the
// combined-income statuses stack the spouse's 54,000,000 on top.
func TestPTKPOrderingValues(t *testing.T) {
	cfg := NewTaxYearConfig2023()

	ordered := []PTKPStatus{PTKPTK0, PTKPK0, PTKPK3, PTKPKI0, PTKPKI3}
	for i := 1; i < len(ordered); i++ {
		lower, _ := cfg.PTKPFor(ordered[i-1])
		higher, _ := cfg.PTKPFor(ordered[i])
		if !higher.GreaterThan(lower) {
			t.Errorf("PTKP %q (%s) should exceed %q (%s)", ordered[i], higher, ordered[i-1], lower)
		}
	}

	tk0, _ := cfg.PTKPFor(PTKPTK0)
	if !tk0.Equal(decimal.NewFromInt(54000000)) {
		t.Errorf("PTKP TK/0 = %s, want 54000000", tk0)
	}
}

func TestBracketsContiguous(t *testing.T) {
	cfg := NewTaxYearConfig2023()
	if len(cfg.Brackets) != 5 {
		t.Fatalf("got %d brackets, want 5", len(cfg.Brackets))
	}
	if !cfg.Brackets[0].Min.IsZero() {
		t.Errorf("first bracket starts at %s, want 0", cfg.Brackets[0].Min)
	}
	for i := 1; i < len(cfg.Brackets); i++ {
		prev, cur := cfg.Brackets[i-1], cfg.Brackets[i]
		if !cur.Min.Equal(prev.Max) {
			t.Errorf("bracket %d starts at %s, previous ends at %s", i, cur.Min, prev.Max)
		}
		if !cur.Rate.GreaterThan(prev.Rate) {
			t.Errorf("bracket %d rate %s not above previous %s", i, cur.Rate, prev.Rate)
		}
	}
}

func TestJKKRiskRatesComplete(t *testing.T) {
	cfg := NewTaxYearConfig2023()
	classes := []JKKRiskClass{JKKRiskClass1, JKKRiskClass2, JKKRiskClass3, JKKRiskClass4, JKKRiskClass5}

	previous := decimal.Zero
	for _, class := range classes {
		rate, ok := cfg.JKKRate(class)
		if !ok {
			t.Fatalf("JKKRate(%d) missing", class)
		}
		if !rate.GreaterThan(previous) {
			t.Errorf("JKKRate(%d) = %s, not above %s", class, rate, previous)
		}
		previous = rate
	}

	if _, ok := cfg.JKKRate(JKKRiskClass(0)); ok {
		t.Error("JKKRate(0) should not resolve")
	}
	if _, ok := cfg.JKKRate(JKKRiskClass(6)); ok {
		t.Error("JKKRate(6) should not resolve")
	}
}

func TestPTKPStatusValid(t *testing.T) {
	for _, status := range PTKPStatuses {
		if !status.Valid() {
			t.Errorf("%q should be valid", status)
		}
	}
	for _, status := range []PTKPStatus{"", "TK/4", "K/I/4", "tk/0", "single"} {
		if status.Valid() {
			t.Errorf("%q should be invalid", status)
		}
	}
}

func TestPeriodEnd(t *testing.T) {
	cases := []struct {
		month, year int
		want        string
	}{
		{1, 2024, "2024-01-31"},
		{2, 2024, "2024-02-29"}, // leap year
		{2, 2025, "2025-02-28"},
		{12, 2023, "2023-12-31"},
	}
	for _, c := range cases {
		run := PayrollRun{PeriodMonth: c.month, PeriodYear: c.year}
		got := run.PeriodEnd().Format("2006-01-02")
		if got != c.want {
			t.Errorf("PeriodEnd(%d/%d) = %s, want %s", c.month, c.year, got, c.want)
		}
	}
}

package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/fixtures"
)

type PayrollJobs struct {
	companyRepo company.CompanyRepository
	payrollRepo payroll.PayrollRepository
	// Day-of-month gates, both validated to 1..28 by config.
	openRunDay       int
	draftReminderDay int
}

func NewPayrollJobs(
	companyRepo company.CompanyRepository,
	payrollRepo payroll.PayrollRepository,
	openRunDay int,
	draftReminderDay int,
) *PayrollJobs {
	return &PayrollJobs{
		companyRepo:      companyRepo,
		payrollRepo:      payrollRepo,
		openRunDay:       openRunDay,
		draftReminderDay: draftReminderDay,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_open_payroll_runs", 1*time.Hour, j.AutoOpenPayrollRuns)
	scheduler.AddJob("remind_draft_payroll_runs", 1*time.Hour, j.RemindDraftPayrollRuns)
}

// AutoOpenPayrollRuns opens a draft run for the current period for every
// company that does not have one yet.
func (j *PayrollJobs) AutoOpenPayrollRuns(ctx context.Context) error {
	// Only run on the configured day, during the first hour (00:00-00:59 UTC)
	now := time.Now().UTC()
	if now.Day() != j.openRunDay || now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-open payroll runs job",
		"period_month", int(now.Month()), "period_year", now.Year())

	companies, err := j.companyRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	openedCount := 0
	for _, comp := range companies {
		_, err := j.payrollRepo.GetPayrollRunByPeriod(ctx, comp.ID, int(now.Month()), now.Year())
		if err == nil {
			// Run already opened by hand, nothing to do.
			continue
		}
		if !errors.Is(err, payroll.ErrPayrollRunNotFound) {
			slog.Error("Cron: Failed to check payroll run", "company_id", comp.ID, "error", err)
			continue
		}

		_, err = j.payrollRepo.CreatePayrollRun(ctx, payroll.PayrollRun{
			CompanyID:   comp.ID,
			PeriodMonth: int(now.Month()),
			PeriodYear:  now.Year(),
			Status:      payroll.RunStatusDraft,
			Notes:       fixtures.DefaultRunNote(),
		})
		if err != nil {
			// A concurrent manual create loses gracefully here.
			if errors.Is(err, payroll.ErrPayrollRunAlreadyExists) {
				continue
			}
			slog.Error("Cron: Failed to open payroll run", "company_id", comp.ID, "error", err)
			continue
		}

		openedCount++
	}

	slog.Info("Cron: Opened payroll runs", "count", openedCount)
	return nil
}

// RemindDraftPayrollRuns logs every company whose current-period run is
// still draft (or missing) near month end. Log-only; nobody's payroll is
// touched.
func (j *PayrollJobs) RemindDraftPayrollRuns(ctx context.Context) error {
	// Only run on the configured day, during the first hour (00:00-00:59 UTC)
	now := time.Now().UTC()
	if now.Day() != j.draftReminderDay || now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting draft payroll run reminder job",
		"period_month", int(now.Month()), "period_year", now.Year())

	companies, err := j.companyRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	reminderCount := 0
	for _, comp := range companies {
		run, err := j.payrollRepo.GetPayrollRunByPeriod(ctx, comp.ID, int(now.Month()), now.Year())
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollRunNotFound) {
				slog.Warn("Cron: No payroll run opened for current period",
					"company_id", comp.ID,
					"period_month", int(now.Month()),
					"period_year", now.Year())
				reminderCount++
			} else {
				slog.Error("Cron: Failed to check payroll run", "company_id", comp.ID, "error", err)
			}
			continue
		}

		if run.Status == payroll.RunStatusDraft {
			slog.Warn("Cron: Payroll run still draft near month end",
				"company_id", comp.ID,
				"payroll_run_id", run.ID,
				"period_month", run.PeriodMonth,
				"period_year", run.PeriodYear)
			reminderCount++
		}
	}

	slog.Info("Cron: Draft payroll run reminders issued", "count", reminderCount)
	return nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/config"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the scheduled jobs: lease expiry reminders to
// tenants and an overdue-charge digest to managers. Each run is
// independent; a failing send never stops the remaining reminders.
type ReminderService struct {
	tenantRepo *repositories.TenantRepository
	chargeRepo *repositories.ChargeRepository
	notifier   Notifier
	cfg        config.ReminderConfig
	cron       *cron.Cron
	now        func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(
	tenantRepo *repositories.TenantRepository,
	chargeRepo *repositories.ChargeRepository,
	notifier Notifier,
	cfg config.ReminderConfig,
) *ReminderService {
	return &ReminderService{
		tenantRepo: tenantRepo,
		chargeRepo: chargeRepo,
		notifier:   notifier,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Start schedules the daily reminder run
func (s *ReminderService) Start() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.cfg.Schedule, err)
	}
	s.cron.Start()
	log.Printf("✅ Reminder job scheduled: %s", s.cfg.Schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Run executes one reminder pass immediately
func (s *ReminderService) Run(ctx context.Context) {
	s.sendLeaseExpiryReminders(ctx)
	s.logOverdueCharges(ctx)
}

func (s *ReminderService) sendLeaseExpiryReminders(ctx context.Context) {
	now := s.now()
	to := now.AddDate(0, 0, s.cfg.LeaseWindowDays)

	tenants, err := s.tenantRepo.ListExpiringLeases(ctx, now, to)
	if err != nil {
		log.Printf("⚠️ Lease expiry scan failed: %v", err)
		return
	}

	for _, tenant := range tenants {
		if tenant.Email == "" || tenant.LeaseEndDate == nil {
			continue
		}
		days := *tenant.DaysUntilLeaseExpiry()
		body := fmt.Sprintf(
			"Dear %s,\n\nYour lease expires on %s (%d day(s) from now). Please contact the property manager to renew.\n\nBest regards,\nManagement",
			tenant.Name, tenant.LeaseEndDate.Format("2006-01-02"), days,
		)
		if err := s.notifier.SendEmail(tenant.Email, "Lease Expiry Reminder", body); err != nil {
			log.Printf("⚠️ Lease reminder failed for tenant %d: %v", tenant.ID, err)
		}
	}

	if len(tenants) > 0 {
		log.Printf("✅ Lease expiry reminders processed: %d tenant(s)", len(tenants))
	}
}

func (s *ReminderService) logOverdueCharges(ctx context.Context) {
	charges, err := s.chargeRepo.ListOverdue(ctx, s.now())
	if err != nil {
		log.Printf("⚠️ Overdue charge scan failed: %v", err)
		return
	}

	var total int64
	for _, c := range charges {
		total += c.Amount
	}
	if len(charges) > 0 {
		log.Printf("⚠️ %d overdue charge(s) outstanding, total %d", len(charges), total)
	}
}

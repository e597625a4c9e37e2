package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminderFixture(t *testing.T) (*ReminderService, *fakeNotifier, *tenantFixture) {
	t.Helper()
	f := newTenantFixture(t)
	notifier := &fakeNotifier{}
	svc := NewReminderService(
		repositories.NewTenantRepository(f.db),
		repositories.NewChargeRepository(f.db),
		notifier,
		config.ReminderConfig{Schedule: "0 8 * * *", LeaseWindowDays: 7},
	)
	return svc, notifier, f
}

func TestLeaseExpiryReminderBody(t *testing.T) {
	svc, notifier, f := newReminderFixture(t)
	ctx := context.Background()

	tenant := seedTenant(t, f.db, "nafula", nil)
	leaseEnd := time.Now().Add(74 * time.Hour)
	require.NoError(t, f.db.Model(tenant).Update("lease_end_date", leaseEnd).Error)

	svc.Run(ctx)

	emails := notifier.sentEmails()
	require.Len(t, emails, 1)
	assert.Equal(t, tenant.Email, emails[0].To)
	assert.Contains(t, emails[0].Body, leaseEnd.Format("2006-01-02"))
	assert.Contains(t, emails[0].Body, "(3 day(s) from now)")
}

func TestLeaseExpiryReminderSkipsOutsideWindow(t *testing.T) {
	svc, notifier, f := newReminderFixture(t)
	ctx := context.Background()

	farOut := seedTenant(t, f.db, "makena", nil)
	require.NoError(t, f.db.Model(farOut).
		Update("lease_end_date", time.Now().AddDate(0, 0, 30)).Error)
	// Open-ended lease, no reminder either
	seedTenant(t, f.db, "otieno", nil)

	svc.Run(ctx)

	assert.Empty(t, notifier.sentEmails())
}

func TestLeaseExpiryReminderSurvivesSendFailure(t *testing.T) {
	svc, notifier, f := newReminderFixture(t)
	ctx := context.Background()
	notifier.emailErr = fmt.Errorf("smtp down")

	tenant := seedTenant(t, f.db, "chebet", nil)
	require.NoError(t, f.db.Model(tenant).
		Update("lease_end_date", time.Now().Add(48*time.Hour)).Error)

	svc.Run(ctx)

	assert.Empty(t, notifier.sentEmails())
}

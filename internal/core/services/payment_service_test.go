package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type paymentFixture struct {
	db       *gorm.DB
	service  *PaymentService
	notifier *fakeNotifier
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	db := newTestDB(t)
	notifier := &fakeNotifier{}

	paymentRepo := repositories.NewPaymentRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	houseRepo := repositories.NewHouseRepository(db)
	occupancy := NewOccupancyService(houseRepo, tenantRepo)

	return &paymentFixture{
		db:       db,
		service:  NewPaymentService(paymentRepo, tenantRepo, occupancy, notifier),
		notifier: notifier,
	}
}

func paymentInput(tenantID uint, paid, due int64) *RecordPaymentInput {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &RecordPaymentInput{
		TenantID:         tenantID,
		AmountPaid:       paid,
		RentAmountDue:    due,
		PaymentStartDate: start,
		PaymentEndDate:   start.AddDate(0, 1, 0),
		RentDueDate:      start.AddDate(0, 0, 5),
		PaymentMethod:    models.PaymentMethodCash,
	}
}

func TestRecordPaymentFirstPayment(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "wanjiku", nil)

	payment, err := f.service.Record(context.Background(), paymentInput(tenant.ID, 12000, 15000))
	require.NoError(t, err)

	assert.Equal(t, int64(3000), payment.BalanceDue)
	assert.Equal(t, int64(0), payment.Overpayment)
}

func TestRecordPaymentCarryForward(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "otieno", nil)
	ctx := context.Background()

	// Overpay first, the excess must offset the next period
	first, err := f.service.Record(ctx, paymentInput(tenant.ID, 18000, 15000))
	require.NoError(t, err)
	assert.Equal(t, int64(3000), first.Overpayment)

	second, err := f.service.Record(ctx, paymentInput(tenant.ID, 12000, 15000))
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.BalanceDue)
	assert.Equal(t, int64(0), second.Overpayment)

	// Carry is a single hop, not a running total: the second payment spent
	// the credit, so the third sees none.
	third, err := f.service.Record(ctx, paymentInput(tenant.ID, 14000, 15000))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), third.BalanceDue)
}

func TestRecordPaymentNeverBothPositive(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "amina", nil)
	ctx := context.Background()

	amounts := []int64{20000, 5000, 15000, 0, 30000, 7500}
	for _, paid := range amounts {
		payment, err := f.service.Record(ctx, paymentInput(tenant.ID, paid, 15000))
		require.NoError(t, err)
		assert.False(t, payment.BalanceDue > 0 && payment.Overpayment > 0,
			"paid=%d produced balance=%d overpayment=%d",
			paid, payment.BalanceDue, payment.Overpayment)
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "njoroge", nil)
	ctx := context.Background()

	t.Run("start after end", func(t *testing.T) {
		in := paymentInput(tenant.ID, 15000, 15000)
		in.PaymentStartDate, in.PaymentEndDate = in.PaymentEndDate, in.PaymentStartDate
		_, err := f.service.Record(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("due date before start", func(t *testing.T) {
		in := paymentInput(tenant.ID, 15000, 15000)
		in.RentDueDate = in.PaymentStartDate.AddDate(0, 0, -1)
		_, err := f.service.Record(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := f.service.Record(ctx, paymentInput(tenant.ID, -1, 15000))
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("non-positive rent", func(t *testing.T) {
		_, err := f.service.Record(ctx, paymentInput(tenant.ID, 15000, 0))
		assert.ErrorIs(t, err, ErrNonPositiveRent)
	})

	t.Run("unknown method", func(t *testing.T) {
		in := paymentInput(tenant.ID, 15000, 15000)
		in.PaymentMethod = "barter"
		_, err := f.service.Record(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})

	t.Run("empty method defaults to cash", func(t *testing.T) {
		in := paymentInput(tenant.ID, 15000, 15000)
		in.PaymentMethod = ""
		payment, err := f.service.Record(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentMethodCash, payment.PaymentMethod)
	})

	// No ledger entries written by the rejected inputs
	var count int64
	require.NoError(t, f.db.Model(&models.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordPaymentUnknownTenant(t *testing.T) {
	f := newPaymentFixture(t)
	_, err := f.service.Record(context.Background(), paymentInput(999, 15000, 15000))
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestRecordPaymentForcesOccupancy(t *testing.T) {
	f := newPaymentFixture(t)
	house := seedHouse(t, f.db, "Mirema Court A1")
	tenant := seedTenant(t, f.db, "chebet", &house.ID)

	// Simulate a stale flag
	require.NoError(t, f.db.Model(&models.House{}).Where("id = ?", house.ID).Update("is_occupied", false).Error)

	_, err := f.service.Record(context.Background(), paymentInput(tenant.ID, 15000, 15000))
	require.NoError(t, err)

	var fresh models.House
	require.NoError(t, f.db.First(&fresh, house.ID).Error)
	assert.True(t, fresh.IsOccupied)
}

func TestRecordPaymentSendsConfirmation(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "baraka", nil)

	_, err := f.service.Record(context.Background(), paymentInput(tenant.ID, 15000, 15000))
	require.NoError(t, err)

	emails := f.notifier.sentEmails()
	require.Len(t, emails, 1)
	assert.Equal(t, tenant.Email, emails[0].To)
}

func TestRecordPaymentSurvivesNotifierFailure(t *testing.T) {
	f := newPaymentFixture(t)
	f.notifier.emailErr = fmt.Errorf("smtp unreachable")
	tenant := seedTenant(t, f.db, "koskei", nil)

	payment, err := f.service.Record(context.Background(), paymentInput(tenant.ID, 15000, 15000))
	require.NoError(t, err)
	assert.NotZero(t, payment.ID)
}

func TestRecordPaymentDuplicateReference(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "nyambura", nil)
	ctx := context.Background()

	ref := "MPESA-QX12345"
	in := paymentInput(tenant.ID, 15000, 15000)
	in.ReferenceNumber = &ref
	_, err := f.service.Record(ctx, in)
	require.NoError(t, err)

	dup := paymentInput(tenant.ID, 15000, 15000)
	dup.ReferenceNumber = &ref
	_, err = f.service.Record(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestListByTenantUnknownTenant(t *testing.T) {
	f := newPaymentFixture(t)
	_, err := f.service.ListByTenant(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestRecordPaymentConcurrentSameTenant(t *testing.T) {
	f := newPaymentFixture(t)
	tenant := seedTenant(t, f.db, "wafula", nil)
	ctx := context.Background()

	// Overpayment credit must be consumed exactly once even when payments
	// for the same tenant race.
	_, err := f.service.Record(ctx, paymentInput(tenant.ID, 18000, 15000))
	require.NoError(t, err)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.service.Record(ctx, paymentInput(tenant.ID, 12000, 15000))
			done <- err
		}()
	}
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	var totalBalance int64
	require.NoError(t, f.db.Model(&models.Payment{}).
		Where("tenant_id = ?", tenant.ID).
		Select("COALESCE(SUM(balance_due), 0)").Scan(&totalBalance).Error)

	// One racer gets the 3000 credit and clears, the other is short 3000.
	// If both had read the same carry, the total would be 0.
	assert.Equal(t, int64(3000), totalBalance)
}

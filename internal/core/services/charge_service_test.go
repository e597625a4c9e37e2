package services

import (
	"context"
	"testing"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type chargeFixture struct {
	db      *gorm.DB
	service *ChargeService
}

func newChargeFixture(t *testing.T) *chargeFixture {
	t.Helper()
	db := newTestDB(t)
	service := NewChargeService(
		repositories.NewChargeRepository(db),
		repositories.NewTenantRepository(db),
	)
	return &chargeFixture{db: db, service: service}
}

func TestCreateChargeBillsCurrentHouse(t *testing.T) {
	f := newChargeFixture(t)
	house := seedHouse(t, f.db, "Langata View 3")
	tenant := seedTenant(t, f.db, "makena", &house.ID)

	charge, err := f.service.Create(context.Background(), &CreateChargeInput{
		TenantID:   tenant.ID,
		ChargeType: models.ChargeTypeWater,
		Amount:     850,
	})
	require.NoError(t, err)
	assert.Equal(t, house.ID, charge.HouseID)
	assert.False(t, charge.IsPaid)
}

func TestCreateChargeValidation(t *testing.T) {
	f := newChargeFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Langata View 4")
	housed := seedTenant(t, f.db, "kendi", &house.ID)
	homeless := seedTenant(t, f.db, "omondi", nil)

	_, err := f.service.Create(ctx, &CreateChargeInput{TenantID: housed.ID, ChargeType: "tribute", Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidChargeType)

	_, err = f.service.Create(ctx, &CreateChargeInput{TenantID: housed.ID, ChargeType: models.ChargeTypeWater, Amount: 0})
	assert.ErrorIs(t, err, ErrNonPositiveCharge)

	_, err = f.service.Create(ctx, &CreateChargeInput{TenantID: homeless.ID, ChargeType: models.ChargeTypeWater, Amount: 100})
	assert.ErrorIs(t, err, ErrTenantNotHoused)

	_, err = f.service.Create(ctx, &CreateChargeInput{TenantID: 999, ChargeType: models.ChargeTypeWater, Amount: 100})
	assert.ErrorIs(t, err, ErrTenantNotFound)

	chargeDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	dueDate := chargeDate.AddDate(0, 0, -3)
	_, err = f.service.Create(ctx, &CreateChargeInput{
		TenantID:   housed.ID,
		ChargeType: models.ChargeTypeElectricity,
		Amount:     1200,
		ChargeDate: &chargeDate,
		DueDate:    &dueDate,
	})
	assert.ErrorIs(t, err, ErrInvalidChargeDue)
}

func TestMarkPaid(t *testing.T) {
	f := newChargeFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Langata View 5")
	tenant := seedTenant(t, f.db, "auma", &house.ID)

	charge, err := f.service.Create(ctx, &CreateChargeInput{
		TenantID:   tenant.ID,
		ChargeType: models.ChargeTypeLateFee,
		Amount:     500,
	})
	require.NoError(t, err)

	paid, err := f.service.MarkPaid(ctx, charge.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.NotNil(t, paid.PaidDate)

	_, err = f.service.MarkPaid(ctx, charge.ID)
	assert.ErrorIs(t, err, ErrChargeAlreadyPaid)
}

func TestListOverdue(t *testing.T) {
	f := newChargeFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Langata View 6")
	tenant := seedTenant(t, f.db, "cherono", &house.ID)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return base }

	pastDue := base.AddDate(0, 0, 7)
	farDue := base.AddDate(0, 2, 0)

	overdue, err := f.service.Create(ctx, &CreateChargeInput{
		TenantID: tenant.ID, ChargeType: models.ChargeTypeWater, Amount: 300, DueDate: &pastDue,
	})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, &CreateChargeInput{
		TenantID: tenant.ID, ChargeType: models.ChargeTypeParking, Amount: 400, DueDate: &farDue,
	})
	require.NoError(t, err)
	settled, err := f.service.Create(ctx, &CreateChargeInput{
		TenantID: tenant.ID, ChargeType: models.ChargeTypeCleaning, Amount: 200, DueDate: &pastDue,
	})
	require.NoError(t, err)
	_, err = f.service.MarkPaid(ctx, settled.ID)
	require.NoError(t, err)

	// Move the clock past the near due date only
	f.service.now = func() time.Time { return base.AddDate(0, 1, 0) }

	got, err := f.service.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, overdue.ID, got[0].ID)
}

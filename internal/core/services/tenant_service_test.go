package services

import (
	"context"
	"testing"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tenantFixture struct {
	db      *gorm.DB
	service *TenantService
}

func newTenantFixture(t *testing.T) *tenantFixture {
	t.Helper()
	db := newTestDB(t)
	tenantRepo := repositories.NewTenantRepository(db)
	houseRepo := repositories.NewHouseRepository(db)
	occupancy := NewOccupancyService(houseRepo, tenantRepo)
	return &tenantFixture{
		db:      db,
		service: NewTenantService(tenantRepo, houseRepo, occupancy),
	}
}

func (f *tenantFixture) houseOccupied(t *testing.T, id uint) bool {
	t.Helper()
	var house models.House
	require.NoError(t, f.db.First(&house, id).Error)
	return house.IsOccupied
}

func TestCreateTenantOccupiesHouse(t *testing.T) {
	f := newTenantFixture(t)
	house := seedHouse(t, f.db, "Kilimani Block B")

	tenant, err := f.service.Create(context.Background(), &CreateTenantInput{
		Name:    "achieng",
		Email:   "achieng@example.com",
		HouseID: &house.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "active", tenant.Status)
	assert.True(t, f.houseOccupied(t, house.ID))
}

func TestCreateTenantValidation(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, &CreateTenantInput{Name: ""})
	assert.ErrorIs(t, err, ErrTenantNameRequired)

	_, err = f.service.Create(ctx, &CreateTenantInput{Name: "x", Status: "squatting"})
	assert.ErrorIs(t, err, ErrInvalidTenantStatus)

	missing := uint(404)
	_, err = f.service.Create(ctx, &CreateTenantInput{Name: "x", HouseID: &missing})
	assert.ErrorIs(t, err, ErrHouseNotFound)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	_, err = f.service.Create(ctx, &CreateTenantInput{Name: "x", LeaseStartDate: &start, LeaseEndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidLeaseWindow)
}

func TestDeactivateVacatesHouseKeepsRecord(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Rongai Gate 4")
	tenant := seedTenant(t, f.db, "mutiso", &house.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, house.ID))
	require.True(t, f.houseOccupied(t, house.ID))

	updated, err := f.service.Deactivate(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)

	// Record and house link survive, only the derived flag flips
	var fresh models.Tenant
	require.NoError(t, f.db.First(&fresh, tenant.ID).Error)
	require.NotNil(t, fresh.HouseID)
	assert.Equal(t, house.ID, *fresh.HouseID)
	assert.False(t, f.houseOccupied(t, house.ID))
}

func TestActivateReoccupiesHouse(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Rongai Gate 5")
	tenant := seedTenant(t, f.db, "wairimu", &house.ID)

	_, err := f.service.Deactivate(ctx, tenant.ID)
	require.NoError(t, err)
	require.False(t, f.houseOccupied(t, house.ID))

	_, err = f.service.Activate(ctx, tenant.ID)
	require.NoError(t, err)
	assert.True(t, f.houseOccupied(t, house.ID))
}

func TestDeactivateSharedHouseStaysOccupied(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Umoja Court 7")
	first := seedTenant(t, f.db, "kamau", &house.ID)
	seedTenant(t, f.db, "njeri", &house.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, house.ID))

	_, err := f.service.Deactivate(ctx, first.ID)
	require.NoError(t, err)

	// One active tenant remains
	assert.True(t, f.houseOccupied(t, house.ID))
}

func TestAssignHouseResyncsBothSides(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	oldHouse := seedHouse(t, f.db, "Lavington 2A")
	newHouse := seedHouse(t, f.db, "Lavington 2B")
	tenant := seedTenant(t, f.db, "odhiambo", &oldHouse.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, oldHouse.ID))

	updated, err := f.service.AssignHouse(ctx, tenant.ID, &newHouse.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.HouseID)
	assert.Equal(t, newHouse.ID, *updated.HouseID)

	// The move must survive a fresh read, not just the returned struct
	var persisted models.Tenant
	require.NoError(t, f.db.First(&persisted, tenant.ID).Error)
	require.NotNil(t, persisted.HouseID)
	assert.Equal(t, newHouse.ID, *persisted.HouseID)

	assert.False(t, f.houseOccupied(t, oldHouse.ID))
	assert.True(t, f.houseOccupied(t, newHouse.ID))
}

func TestUnassignHouseVacates(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "South B 12")
	tenant := seedTenant(t, f.db, "atieno", &house.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, house.ID))

	updated, err := f.service.UnassignHouse(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.HouseID)

	var persisted models.Tenant
	require.NoError(t, f.db.First(&persisted, tenant.ID).Error)
	assert.Nil(t, persisted.HouseID)
	assert.False(t, f.houseOccupied(t, house.ID))
}

func TestAssignHouseRequiresHouseID(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "South C 3")
	tenant := seedTenant(t, f.db, "wekesa", &house.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, house.ID))

	_, err := f.service.AssignHouse(ctx, tenant.ID, nil)
	assert.ErrorIs(t, err, ErrHouseIDRequired)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The assignment is untouched
	var persisted models.Tenant
	require.NoError(t, f.db.First(&persisted, tenant.ID).Error)
	require.NotNil(t, persisted.HouseID)
	assert.Equal(t, house.ID, *persisted.HouseID)
	assert.True(t, f.houseOccupied(t, house.ID))
}

func TestAssignHouseUnknownHouse(t *testing.T) {
	f := newTenantFixture(t)
	tenant := seedTenant(t, f.db, "mwangi", nil)
	missing := uint(404)
	_, err := f.service.AssignHouse(context.Background(), tenant.ID, &missing)
	assert.ErrorIs(t, err, ErrHouseNotFound)
}

func TestDeleteTenantResyncsHouse(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Kasarani Seasons")
	tenant := seedTenant(t, f.db, "kiprop", &house.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, house.ID))

	require.NoError(t, f.service.Delete(ctx, tenant.ID))

	err := f.db.First(&models.Tenant{}, tenant.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.False(t, f.houseOccupied(t, house.ID))
}

func TestUpdateTenantMoveHouses(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	oldHouse := seedHouse(t, f.db, "Ngara Flats 1")
	newHouse := seedHouse(t, f.db, "Ngara Flats 2")
	tenant := seedTenant(t, f.db, "juma", &oldHouse.ID)
	require.NoError(t, f.service.occupancy.Resync(ctx, oldHouse.ID))

	_, err := f.service.Update(ctx, tenant.ID, &UpdateTenantInput{HouseID: &newHouse.ID})
	require.NoError(t, err)

	var persisted models.Tenant
	require.NoError(t, f.db.First(&persisted, tenant.ID).Error)
	require.NotNil(t, persisted.HouseID)
	assert.Equal(t, newHouse.ID, *persisted.HouseID)

	assert.False(t, f.houseOccupied(t, oldHouse.ID))
	assert.True(t, f.houseOccupied(t, newHouse.ID))
}

func TestGetAssignedHouse(t *testing.T) {
	f := newTenantFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Donholm Ph5")
	housed := seedTenant(t, f.db, "wanja", &house.ID)
	homeless := seedTenant(t, f.db, "barasa", nil)

	got, err := f.service.GetAssignedHouse(ctx, housed.ID)
	require.NoError(t, err)
	assert.Equal(t, house.ID, got.ID)

	_, err = f.service.GetAssignedHouse(ctx, homeless.ID)
	assert.ErrorIs(t, err, ErrHouseNotFound)
}

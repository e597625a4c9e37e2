package services

import (
	"context"
	"testing"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type houseFixture struct {
	db      *gorm.DB
	service *HouseService
}

func newHouseFixture(t *testing.T) *houseFixture {
	t.Helper()
	db := newTestDB(t)
	houseRepo := repositories.NewHouseRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	landlordRepo := repositories.NewLandlordRepository(db)
	occupancy := NewOccupancyService(houseRepo, tenantRepo)
	return &houseFixture{
		db:      db,
		service: NewHouseService(houseRepo, tenantRepo, landlordRepo, occupancy),
	}
}

func TestCreateHouseDefaults(t *testing.T) {
	f := newHouseFixture(t)

	house, err := f.service.Create(context.Background(), &CreateHouseInput{
		Price:    20000,
		Location: "Kileleshwa",
	})
	require.NoError(t, err)

	assert.Equal(t, "Unnamed Property", house.Name)
	assert.Equal(t, models.HouseTypeApartment, house.Model)
	assert.Equal(t, uint(1), house.Bedrooms)
	assert.Equal(t, uint(1), house.Bathrooms)
	assert.False(t, house.IsOccupied)
	assert.True(t, house.IsActive)
}

func TestCreateHouseValidation(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, &CreateHouseInput{Price: 0, Location: "CBD"})
	assert.ErrorIs(t, err, ErrNonPositivePrice)

	_, err = f.service.Create(ctx, &CreateHouseInput{Price: 20000})
	assert.ErrorIs(t, err, ErrLocationRequired)

	missing := uint(404)
	_, err = f.service.Create(ctx, &CreateHouseInput{Price: 20000, Location: "CBD", LandlordID: &missing})
	assert.ErrorIs(t, err, ErrLandlordNotFound)
}

func TestDeleteHouseBlockedWhileOccupied(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Westgate 9")
	tenant := seedTenant(t, f.db, "naliaka", &house.ID)

	err := f.service.Delete(ctx, house.ID)
	assert.ErrorIs(t, err, ErrHouseStillOccupied)

	// Once the tenant is out the house can go, and the stale house
	// reference on the tenant record is cleared
	require.NoError(t, f.db.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Update("status", "moved_out").Error)
	require.NoError(t, f.service.Delete(ctx, house.ID))

	assert.ErrorIs(t, f.db.First(&models.House{}, house.ID).Error, gorm.ErrRecordNotFound)

	var fresh models.Tenant
	require.NoError(t, f.db.First(&fresh, tenant.ID).Error)
	assert.Nil(t, fresh.HouseID)
}

func TestHouseResyncRepairsFlag(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Westgate 10")
	seedTenant(t, f.db, "nekesa", &house.ID)

	// Corrupt the derived flag, then repair through the service
	require.NoError(t, f.db.Model(&models.House{}).Where("id = ?", house.ID).Update("is_occupied", false).Error)

	fresh, err := f.service.Resync(ctx, house.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsOccupied)
}

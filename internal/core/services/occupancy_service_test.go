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

func newOccupancyFixture(t *testing.T) (*gorm.DB, *OccupancyService) {
	t.Helper()
	db := newTestDB(t)
	service := NewOccupancyService(
		repositories.NewHouseRepository(db),
		repositories.NewTenantRepository(db),
	)
	return db, service
}

func occupied(t *testing.T, db *gorm.DB, id uint) bool {
	t.Helper()
	var house models.House
	require.NoError(t, db.First(&house, id).Error)
	return house.IsOccupied
}

func TestResyncDerivesFlagFromActiveTenants(t *testing.T) {
	db, service := newOccupancyFixture(t)
	ctx := context.Background()
	house := seedHouse(t, db, "Pangani Ridge 1")

	require.NoError(t, service.Resync(ctx, house.ID))
	assert.False(t, occupied(t, db, house.ID))

	tenant := seedTenant(t, db, "wambui", &house.ID)
	require.NoError(t, service.Resync(ctx, house.ID))
	assert.True(t, occupied(t, db, house.ID))

	// Inactive tenants do not count
	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Update("status", "moved_out").Error)
	require.NoError(t, service.Resync(ctx, house.ID))
	assert.False(t, occupied(t, db, house.ID))
}

func TestResyncIdempotent(t *testing.T) {
	db, service := newOccupancyFixture(t)
	ctx := context.Background()
	house := seedHouse(t, db, "Pangani Ridge 2")
	seedTenant(t, db, "mumbi", &house.ID)

	for i := 0; i < 3; i++ {
		require.NoError(t, service.Resync(ctx, house.ID))
	}
	assert.True(t, occupied(t, db, house.ID))
}

func TestResyncUnknownHouse(t *testing.T) {
	_, service := newOccupancyFixture(t)
	assert.ErrorIs(t, service.Resync(context.Background(), 999), ErrHouseNotFound)
}

func TestMarkOccupiedForcesFlag(t *testing.T) {
	db, service := newOccupancyFixture(t)
	ctx := context.Background()
	house := seedHouse(t, db, "Pangani Ridge 3")

	// No recount happens, the flag is forced even with zero tenants
	require.NoError(t, service.MarkOccupied(ctx, house.ID))
	assert.True(t, occupied(t, db, house.ID))

	require.NoError(t, service.MarkOccupied(ctx, house.ID))
	assert.True(t, occupied(t, db, house.ID))
}

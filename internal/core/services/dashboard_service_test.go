package services

import (
	"context"
	"testing"

	"crossroads-renthub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDashboardAggregates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tenantRepo := repositories.NewTenantRepository(db)
	houseRepo := repositories.NewHouseRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	occupancy := NewOccupancyService(houseRepo, tenantRepo)
	payments := NewPaymentService(paymentRepo, tenantRepo, occupancy, nil)
	dashboard := NewDashboardService(tenantRepo, houseRepo, paymentRepo)

	houseA := seedHouse(t, db, "Thika Rd 21")
	seedHouse(t, db, "Thika Rd 22")
	tenant := seedTenant(t, db, "maina", &houseA.ID)
	require.NoError(t, occupancy.Resync(ctx, houseA.ID))

	_, err := payments.Record(ctx, paymentInput(tenant.ID, 12000, 15000))
	require.NoError(t, err)
	_, err = payments.Record(ctx, paymentInput(tenant.ID, 18000, 15000))
	require.NoError(t, err)

	dash, err := dashboard.GetManagerDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), dash.TotalTenants)
	assert.Equal(t, int64(2), dash.TotalHouses)
	assert.Equal(t, int64(1), dash.OccupiedHouses)
	assert.Equal(t, int64(1), dash.VacantHouses)
	assert.Equal(t, int64(30000), dash.TotalPaid)
	assert.Equal(t, int64(3000), dash.TotalBalance)
	assert.Equal(t, int64(3000), dash.TotalOverpayment)
}

func TestTenantDashboardUsesLatestEntry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tenantRepo := repositories.NewTenantRepository(db)
	houseRepo := repositories.NewHouseRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	occupancy := NewOccupancyService(houseRepo, tenantRepo)
	payments := NewPaymentService(paymentRepo, tenantRepo, occupancy, nil)
	dashboard := NewDashboardService(tenantRepo, houseRepo, paymentRepo)

	tenant := seedTenant(t, db, "akinyi", nil)

	_, err := payments.Record(ctx, paymentInput(tenant.ID, 10000, 15000))
	require.NoError(t, err)
	_, err = payments.Record(ctx, paymentInput(tenant.ID, 17000, 15000))
	require.NoError(t, err)

	dash, err := dashboard.GetTenantDashboard(ctx, tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(27000), dash.TotalPaid)
	assert.Equal(t, int64(2), dash.PaymentCount)

	// Standing reflects the newest ledger entry, not lifetime sums
	assert.Equal(t, int64(0), dash.CurrentBalance)
	assert.Equal(t, int64(2000), dash.CurrentOverpayment)
	require.NotNil(t, dash.LastPayment)
	assert.Equal(t, int64(17000), dash.LastPayment.AmountPaid)
}

package services

import (
	"context"
	"fmt"
	"testing"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type maintenanceFixture struct {
	db       *gorm.DB
	service  *MaintenanceService
	notifier *fakeNotifier
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	service := NewMaintenanceService(
		repositories.NewMaintenanceRepository(db),
		repositories.NewDeviceRepository(db),
		repositories.NewTenantRepository(db),
		notifier,
	)
	return &maintenanceFixture{db: db, service: service, notifier: notifier}
}

// seedUserTenant links a tenant to a user account with a registered device
func (f *maintenanceFixture) seedUserTenant(t *testing.T, name, token string) *models.Tenant {
	t.Helper()
	user := &models.User{Username: name, Email: name + "@example.com", Password: "x", Role: "tenant"}
	require.NoError(t, f.db.Create(user).Error)

	tenant := seedTenant(t, f.db, name, nil)
	require.NoError(t, f.db.Model(tenant).Update("user_id", user.ID).Error)
	tenant.UserID = &user.ID

	if token != "" {
		require.NoError(t, f.service.RegisterDevice(context.Background(), user.ID, token))
	}
	return tenant
}

func TestCreateRequestStartsPending(t *testing.T) {
	f := newMaintenanceFixture(t)
	tenant := seedTenant(t, f.db, "mueni", nil)

	request, err := f.service.Create(context.Background(), &CreateRequestInput{
		TenantID:    tenant.ID,
		Description: "Kitchen tap leaking",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", request.Status)
}

func TestCreateRequestValidation(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, &CreateRequestInput{TenantID: 1, Description: ""})
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = f.service.Create(ctx, &CreateRequestInput{TenantID: 999, Description: "broken lock"})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestUpdateStatusChangeSendsPush(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	tenant := f.seedUserTenant(t, "kariuki", "ExponentPushToken[abc123]")

	request, err := f.service.Create(ctx, &CreateRequestInput{TenantID: tenant.ID, Description: "No hot water"})
	require.NoError(t, err)

	status := "in_progress"
	_, err = f.service.Update(ctx, request.ID, &UpdateRequestInput{Status: &status})
	require.NoError(t, err)

	pushes := f.notifier.sentPushes()
	require.Len(t, pushes, 1)
	assert.Equal(t, "ExponentPushToken[abc123]", pushes[0].Token)
	assert.Contains(t, pushes[0].Body, "in_progress")
}

func TestUpdateSameStatusNoPush(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	tenant := f.seedUserTenant(t, "moraa", "ExponentPushToken[def456]")

	request, err := f.service.Create(ctx, &CreateRequestInput{TenantID: tenant.ID, Description: "Cracked window"})
	require.NoError(t, err)

	status := "pending"
	_, err = f.service.Update(ctx, request.ID, &UpdateRequestInput{Status: &status})
	require.NoError(t, err)

	assert.Empty(t, f.notifier.sentPushes())
}

func TestUpdateInvalidStatus(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	tenant := seedTenant(t, f.db, "simiyu", nil)

	request, err := f.service.Create(ctx, &CreateRequestInput{TenantID: tenant.ID, Description: "Door hinge"})
	require.NoError(t, err)

	status := "abandoned"
	_, err = f.service.Update(ctx, request.ID, &UpdateRequestInput{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidRequestStatus)
}

func TestUpdateSurvivesPushFailure(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	f.notifier.pushErr = fmt.Errorf("expo gateway down")
	tenant := f.seedUserTenant(t, "nduta", "ExponentPushToken[ghi789]")

	request, err := f.service.Create(ctx, &CreateRequestInput{TenantID: tenant.ID, Description: "Blocked drain"})
	require.NoError(t, err)

	status := "completed"
	updated, err := f.service.Update(ctx, request.ID, &UpdateRequestInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
}

func TestUpdateNoDeviceNoError(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	tenant := f.seedUserTenant(t, "gathoni", "")

	request, err := f.service.Create(ctx, &CreateRequestInput{TenantID: tenant.ID, Description: "Fence repair"})
	require.NoError(t, err)

	status := "cancelled"
	_, err = f.service.Update(ctx, request.ID, &UpdateRequestInput{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sentPushes())
}

func TestRegisterDeviceReplacesToken(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	user := &models.User{Username: "owuor", Email: "owuor@example.com", Password: "x", Role: "tenant"}
	require.NoError(t, f.db.Create(user).Error)

	require.NoError(t, f.service.RegisterDevice(ctx, user.ID, "ExponentPushToken[old]"))
	require.NoError(t, f.service.RegisterDevice(ctx, user.ID, "ExponentPushToken[new]"))

	var devices []models.Device
	require.NoError(t, f.db.Where("user_id = ?", user.ID).Find(&devices).Error)
	require.Len(t, devices, 1)
	assert.Equal(t, "ExponentPushToken[new]", devices[0].ExpoPushToken)

	assert.ErrorIs(t, f.service.RegisterDevice(ctx, user.ID, ""), ErrPushTokenRequired)
}

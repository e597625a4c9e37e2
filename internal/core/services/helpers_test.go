package services

import (
	"sync"
	"testing"

	"crossroads-renthub/internal/adapters/persistence/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory store
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type sentPush struct {
	Token string
	Title string
	Body  string
}

// fakeNotifier records outbound notifications and can be told to fail
type fakeNotifier struct {
	mu       sync.Mutex
	emails   []sentEmail
	pushes   []sentPush
	emailErr error
	pushErr  error
}

func (f *fakeNotifier) SendEmail(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailErr != nil {
		return f.emailErr
	}
	f.emails = append(f.emails, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeNotifier) SendPush(token, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushes = append(f.pushes, sentPush{Token: token, Title: title, Body: body})
	return nil
}

func (f *fakeNotifier) sentEmails() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentEmail(nil), f.emails...)
}

func (f *fakeNotifier) sentPushes() []sentPush {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentPush(nil), f.pushes...)
}

func seedHouse(t *testing.T, db *gorm.DB, name string) *models.House {
	t.Helper()
	house := &models.House{
		Name:     name,
		Price:    15000,
		Location: "Westlands",
		Model:    models.HouseTypeApartment,
		IsActive: true,
	}
	require.NoError(t, db.Create(house).Error)
	return house
}

func seedTenant(t *testing.T, db *gorm.DB, name string, houseID *uint) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		Name:    name,
		Email:   name + "@example.com",
		HouseID: houseID,
		Status:  "active",
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

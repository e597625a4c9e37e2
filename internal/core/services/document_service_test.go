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

type documentFixture struct {
	db      *gorm.DB
	service *DocumentService
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	db := newTestDB(t)
	service := NewDocumentService(
		repositories.NewDocumentRepository(db),
		repositories.NewTenantRepository(db),
		repositories.NewHouseRepository(db),
	)
	return &documentFixture{db: db, service: service}
}

func TestCreateDocumentForTenant(t *testing.T) {
	f := newDocumentFixture(t)
	tenant := seedTenant(t, f.db, "sifa", nil)

	doc, err := f.service.Create(context.Background(), &CreateDocumentInput{
		TenantID:     &tenant.ID,
		DocumentType: models.DocumentTypeLeaseAgreement,
		Title:        "Lease 2026",
		FilePath:     "/uploads/leases/sifa-2026.pdf",
	})
	require.NoError(t, err)
	assert.False(t, doc.IsVerified)
	assert.Empty(t, doc.VerifiedBy)
}

func TestCreateDocumentValidation(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	tenant := seedTenant(t, f.db, "zuri", nil)

	_, err := f.service.Create(ctx, &CreateDocumentInput{
		TenantID: &tenant.ID, DocumentType: "scroll", Title: "x", FilePath: "/x",
	})
	assert.ErrorIs(t, err, ErrInvalidDocumentType)

	_, err = f.service.Create(ctx, &CreateDocumentInput{
		DocumentType: models.DocumentTypeIDCopy, Title: "x", FilePath: "/x",
	})
	assert.ErrorIs(t, err, ErrDocumentUnanchored)

	_, err = f.service.Create(ctx, &CreateDocumentInput{
		TenantID: &tenant.ID, DocumentType: models.DocumentTypeIDCopy, Title: "x",
	})
	assert.ErrorIs(t, err, ErrFilePathRequired)

	missing := uint(404)
	_, err = f.service.Create(ctx, &CreateDocumentInput{
		TenantID: &missing, DocumentType: models.DocumentTypeIDCopy, Title: "x", FilePath: "/x",
	})
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = f.service.Create(ctx, &CreateDocumentInput{
		HouseID: &missing, DocumentType: models.DocumentTypeInspectionReport, Title: "x", FilePath: "/x",
	})
	assert.ErrorIs(t, err, ErrHouseNotFound)
}

func TestVerifyDocument(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	house := seedHouse(t, f.db, "Parklands 44")

	doc, err := f.service.Create(ctx, &CreateDocumentInput{
		HouseID:      &house.ID,
		DocumentType: models.DocumentTypeInspectionReport,
		Title:        "Annual inspection",
		FilePath:     "/uploads/inspections/parklands-44.pdf",
	})
	require.NoError(t, err)

	verified, err := f.service.Verify(ctx, doc.ID, "admin")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, "admin", verified.VerifiedBy)

	_, err = f.service.Verify(ctx, 999, "admin")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestListByTenantChecksTenant(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	tenant := seedTenant(t, f.db, "tumaini", nil)

	_, err := f.service.Create(ctx, &CreateDocumentInput{
		TenantID:     &tenant.ID,
		DocumentType: models.DocumentTypeIDCopy,
		Title:        "National ID",
		FilePath:     "/uploads/ids/tumaini.jpg",
	})
	require.NoError(t, err)

	docs, err := f.service.ListByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = f.service.ListByTenant(ctx, 999)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestDeleteDocument(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	tenant := seedTenant(t, f.db, "neema", nil)

	doc, err := f.service.Create(ctx, &CreateDocumentInput{
		TenantID:     &tenant.ID,
		DocumentType: models.DocumentTypeOther,
		Title:        "Deposit receipt",
		FilePath:     "/uploads/receipts/neema.pdf",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, doc.ID))
	assert.ErrorIs(t, f.service.Delete(ctx, doc.ID), ErrDocumentNotFound)
}

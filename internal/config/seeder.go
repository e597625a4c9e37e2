package config

import (
	"log"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedManagerUser(); err != nil {
		log.Printf("⚠️ Manager seeder skipped: %v", err)
	}
	if err := s.seedSampleHouses(); err != nil {
		log.Printf("⚠️ House seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedManagerUser seeds default manager user
// This is for development/testing only
// In production, create managers through secure process
func (s *Seeder) seedManagerUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "manager").Count(&count)
	if count > 0 {
		return nil // Manager already exists
	}

	hashedPassword, err := password.Hash("manager123456")
	if err != nil {
		return err
	}

	manager := &models.User{
		Username: "manager",
		Email:    "manager@renthub.local",
		Password: hashedPassword,
		Role:     "manager",
		IsActive: true,
	}

	if err := s.db.Create(manager).Error; err != nil {
		return err
	}

	log.Printf("✅ Manager user created: %s", manager.Username)
	return nil
}

// seedSampleHouses seeds a couple of vacant properties for development
func (s *Seeder) seedSampleHouses() error {
	var count int64
	s.db.Model(&models.House{}).Count(&count)
	if count > 0 {
		return nil
	}

	houses := []models.House{
		{Name: "Sunrise Apartment 1A", Price: 450000, Location: "Ntinda, Kampala", Model: models.HouseTypeApartment, Bedrooms: 2, Bathrooms: 1},
		{Name: "Hilltop Bungalow", Price: 900000, Location: "Muyenga, Kampala", Model: models.HouseTypeBungalow, Bedrooms: 3, Bathrooms: 2},
	}

	for i := range houses {
		if err := s.db.Create(&houses[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d sample houses", len(houses))
	return nil
}

// SeedData runs the seeders against the given database
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}

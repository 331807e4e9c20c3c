package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call gets its own database so tests stay independent.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// seededCatalog holds the IDs of the products seeded by seedCatalog.
type seededCatalog struct {
	Americano    string // 95.00
	LargeVariant string // Size: Large, +15.00 on Americano
	CinnamonRoll string // 80.00
}

// seedCatalog inserts a small catalog and returns its IDs.
func seedCatalog(t *testing.T, db *gorm.DB) seededCatalog {
	t.Helper()

	repo := repositories.NewGORMProductRepository(db)
	americano := models.Product{
		Category:    "hot-coffee",
		Name:        "Americano",
		Description: "Espresso and hot water",
		Price:       decimal.RequireFromString("95.00"),
		IsActive:    true,
		Variants: []models.ProductVariant{
			{GroupName: "Size", Name: "Large", PriceDelta: decimal.RequireFromString("15.00"), IsActive: true},
		},
	}
	if err := repo.Create(&americano); err != nil {
		t.Fatalf("failed to seed americano: %v", err)
	}

	roll := models.Product{
		Category:    "pastries",
		Name:        "Cinnamon Roll",
		Description: "Warm roll with frosting",
		Price:       decimal.RequireFromString("80.00"),
		IsActive:    true,
	}
	if err := repo.Create(&roll); err != nil {
		t.Fatalf("failed to seed cinnamon roll: %v", err)
	}

	return seededCatalog{
		Americano:    americano.ID,
		LargeVariant: americano.Variants[0].ID,
		CinnamonRoll: roll.ID,
	}
}

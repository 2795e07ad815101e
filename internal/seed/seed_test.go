package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-management-server/internal/models"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.Migrate(db))
	return db
}

func TestCatalogSeedsPriceList(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, Catalog(db))

	var count int64
	db.Model(&models.TestType{}).Count(&count)
	assert.Equal(t, int64(len(testTypeCatalog)), count)

	var urinalysis models.TestType
	require.NoError(t, db.First(&urinalysis, "name = ?", "Urinalysis").Error)
	assert.InDelta(t, 200.0, urinalysis.Price, 0.001)
	assert.Equal(t, models.CategoryLab, urinalysis.Category)

	var doppler models.TestType
	require.NoError(t, db.First(&doppler, "name = ?", "Doppler U/S").Error)
	assert.Equal(t, models.CategoryImaging, doppler.Category)
}

func TestCatalogSeedsStarterFormulary(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, Catalog(db))

	var count int64
	db.Model(&models.Medicine{}).Count(&count)
	assert.Equal(t, int64(len(starterFormulary)), count)

	var paracetamol models.Medicine
	require.NoError(t, db.First(&paracetamol, "name = ?", "Paracetamol 500mg").Error)
	assert.Zero(t, paracetamol.Stock, "starter items carry no stock until restocked")
	assert.InDelta(t, 5.0, paracetamol.SellingPrice, 0.001)
}

func TestCatalogKeepsLocalPriceChanges(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, Catalog(db))

	require.NoError(t, db.Model(&models.TestType{}).
		Where("name = ?", "Urinalysis").
		Update("price", 250).Error)
	require.NoError(t, db.Model(&models.Medicine{}).
		Where("name = ?", "Paracetamol 500mg").
		Update("stock", 80).Error)

	// Re-seeding must not clobber local changes or duplicate rows.
	require.NoError(t, Catalog(db))

	var count int64
	db.Model(&models.TestType{}).Count(&count)
	assert.Equal(t, int64(len(testTypeCatalog)), count)
	db.Model(&models.Medicine{}).Count(&count)
	assert.Equal(t, int64(len(starterFormulary)), count)

	var urinalysis models.TestType
	require.NoError(t, db.First(&urinalysis, "name = ?", "Urinalysis").Error)
	assert.InDelta(t, 250.0, urinalysis.Price, 0.001)

	var paracetamol models.Medicine
	require.NoError(t, db.First(&paracetamol, "name = ?", "Paracetamol 500mg").Error)
	assert.Equal(t, 80, paracetamol.Stock)
}

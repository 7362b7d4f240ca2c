package seed

import (
	"testing"
	"time"

	"documo/internal/database"
	"documo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeederRun(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db)

	opts := Options{Organizations: 2, FoldersPerOrg: 2, RequestsPerFolder: 2}
	require.NoError(t, s.Run(opts))

	var orgs, folders, requests, links, types int64
	require.NoError(t, db.Model(&models.Organization{}).Count(&orgs).Error)
	require.NoError(t, db.Model(&models.Folder{}).Count(&folders).Error)
	require.NoError(t, db.Model(&models.DocumentRequest{}).Count(&requests).Error)
	require.NoError(t, db.Model(&models.ShareLink{}).Count(&links).Error)
	require.NoError(t, db.Model(&models.DocumentType{}).Count(&types).Error)

	assert.EqualValues(t, 2, orgs)
	assert.EqualValues(t, 4, folders)
	assert.EqualValues(t, 8, requests)
	assert.EqualValues(t, 8, links, "every request gets a live share link")
	assert.EqualValues(t, 6, types)

	// Every link is usable right now.
	var expired int64
	require.NoError(t, db.Model(&models.ShareLink{}).
		Where("expires_at <= ?", time.Now().UTC()).Count(&expired).Error)
	assert.Zero(t, expired)

	// Staff users can log in with the shared password.
	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))
	assert.NotNil(t, user.EmailVerifiedAt)
}

func TestSeederClearAll(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db)
	require.NoError(t, s.Run(Options{Organizations: 1, FoldersPerOrg: 1, RequestsPerFolder: 1}))

	require.NoError(t, s.ClearAll())

	for _, model := range []any{
		&models.Organization{}, &models.User{}, &models.DocumentType{},
		&models.Folder{}, &models.DocumentRequest{}, &models.Document{}, &models.ShareLink{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

package repository

import (
	"testing"
	"time"

	"documo/internal/database"
	"documo/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test and migrates the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fixture holds the minimal object graph most repository tests need: one
// organization with one folder containing one request for two document types.
type fixture struct {
	Org      models.Organization
	User     models.User
	Passport models.DocumentType
	Payslip  models.DocumentType
	Folder   models.Folder
	Request  models.DocumentRequest
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{
		Org:      models.Organization{Name: "Acme Lettings"},
		Passport: models.DocumentType{Name: "passport", Label: "Passport"},
		Payslip:  models.DocumentType{Name: "payslip", Label: "Payslip"},
	}
	require.NoError(t, db.Create(&f.Org).Error)
	require.NoError(t, db.Create(&f.Passport).Error)
	require.NoError(t, db.Create(&f.Payslip).Error)

	f.User = models.User{
		Email:          "staff@acme.test",
		Password:       "$2a$10$placeholderplaceholderplaceholderplaceha",
		OrganizationID: f.Org.ID,
	}
	require.NoError(t, db.Create(&f.User).Error)

	f.Folder = models.Folder{
		Name:           "Tenant screening",
		OrganizationID: f.Org.ID,
		RequiredTypes:  []models.DocumentType{f.Passport, f.Payslip},
	}
	require.NoError(t, db.Create(&f.Folder).Error)

	f.Request = models.DocumentRequest{
		FolderID:       f.Folder.ID,
		RecipientEmail: "tenant@example.test",
		RequestedTypes: []models.DocumentType{f.Passport, f.Payslip},
	}
	require.NoError(t, db.Create(&f.Request).Error)

	return f
}

func timePtr(ts time.Time) *time.Time { return &ts }

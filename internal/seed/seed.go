// Package seed populates the database with demo data for development and
// testing. Never run it against production.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"documo/internal/models"
	"documo/internal/token"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded staff user gets.
const DefaultPassword = "password123"

// Options tunes the size of the generated dataset.
type Options struct {
	Organizations     int
	FoldersPerOrg     int
	RequestsPerFolder int
}

// DefaultOptions is a small but representative dataset.
func DefaultOptions() Options {
	return Options{Organizations: 3, FoldersPerOrg: 4, RequestsPerFolder: 3}
}

// Seeder builds demo entities and persists them.
type Seeder struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll wipes every application table, children first.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"share_links", "documents", "request_requested_types", "document_requests",
		"folder_required_types", "folders", "auth_tokens", "users",
		"document_types", "organizations",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("cleared existing data")
	return nil
}

// Run generates the full dataset: a shared document-type catalog, then per
// organization a staff user and folders of requests in assorted lifecycle
// states, each with a live share link.
func (s *Seeder) Run(opts Options) error {
	types, err := s.seedDocumentTypes()
	if err != nil {
		return fmt.Errorf("seed document types: %w", err)
	}
	log.Printf("created %d document types", len(types))

	for i := 0; i < opts.Organizations; i++ {
		org, user, err := s.seedOrganization()
		if err != nil {
			return fmt.Errorf("seed organization: %w", err)
		}
		log.Printf("created organization %q with staff user %s", org.Name, user.Email)

		for j := 0; j < opts.FoldersPerOrg; j++ {
			if err := s.seedFolder(org, types, opts.RequestsPerFolder); err != nil {
				return fmt.Errorf("seed folder for %q: %w", org.Name, err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedDocumentTypes() ([]models.DocumentType, error) {
	catalog := []models.DocumentType{
		{Name: "passport", Label: "Passport", Description: "Photo page of a valid passport"},
		{Name: "proof_of_address", Label: "Proof of address", Description: "Utility bill or bank statement dated within three months"},
		{Name: "payslip", Label: "Payslip", Description: "Most recent monthly payslip"},
		{Name: "bank_statement", Label: "Bank statement", Description: "Three months of statements"},
		{Name: "employment_contract", Label: "Employment contract", Description: "Signed contract or employer reference"},
		{Name: "photo_id", Label: "Photo ID", Description: "Driving licence or national ID card"},
	}
	if err := s.db.Create(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *Seeder) seedOrganization() (*models.Organization, *models.User, error) {
	org := &models.Organization{
		Name: fmt.Sprintf("%s %s", gofakeit.Company(), gofakeit.CompanySuffix()),
	}
	if err := s.db.Create(org).Error; err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	user := &models.User{
		Email:           gofakeit.Email(),
		Password:        string(hash),
		OrganizationID:  org.ID,
		EmailVerifiedAt: &now,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, nil, err
	}
	return org, user, nil
}

func (s *Seeder) seedFolder(org *models.Organization, types []models.DocumentType, requests int) error {
	required := s.pickTypes(types, 1+s.rnd.Intn(3))
	activity := time.Now().UTC().Add(-time.Duration(s.rnd.Intn(30*24)) * time.Hour)
	folder := &models.Folder{
		Name:           fmt.Sprintf("%s screening", gofakeit.LastName()),
		Description:    gofakeit.Sentence(8),
		OrganizationID: org.ID,
		RequiredTypes:  required,
		LastActivityAt: &activity,
	}
	if err := s.db.Create(folder).Error; err != nil {
		return err
	}

	for i := 0; i < requests; i++ {
		if err := s.seedRequest(folder, required); err != nil {
			return err
		}
	}
	return nil
}

// seedRequest creates one request and rolls dice for its lifecycle state:
// pending, accepted, accepted with a partial upload, or declined.
func (s *Seeder) seedRequest(folder *models.Folder, types []models.DocumentType) error {
	req := &models.DocumentRequest{
		FolderID:            folder.ID,
		RecipientEmail:      gofakeit.Email(),
		RecipientIdentifier: gofakeit.UUID(),
		RequestedTypes:      types,
	}

	switch s.rnd.Intn(4) {
	case 1: // accepted, nothing uploaded yet
		at := s.pastTime(14)
		req.AcceptedAt = &at
	case 2: // accepted with one document in
		at := s.pastTime(14)
		req.AcceptedAt = &at
		uploaded := at.Add(time.Duration(1+s.rnd.Intn(48)) * time.Hour)
		req.FirstDocumentUploadedAt = &uploaded
	case 3: // declined with a message
		at := s.pastTime(14)
		msg := gofakeit.Sentence(10)
		req.RejectedAt = &at
		req.DeclineMessage = &msg
	}

	if err := s.db.Create(req).Error; err != nil {
		return err
	}

	if req.FirstDocumentUploadedAt != nil {
		doc := &models.Document{
			RequestID:  req.ID,
			TypeID:     types[0].ID,
			FileName:   gofakeit.Word() + ".pdf",
			MimeType:   "application/pdf",
			SizeBytes:  int64(10_000 + s.rnd.Intn(2_000_000)),
			UploadedAt: req.FirstDocumentUploadedAt,
		}
		if err := s.db.Create(doc).Error; err != nil {
			return err
		}
	}

	tok, err := token.GenerateFor(token.KindShareLink)
	if err != nil {
		return err
	}
	link := &models.ShareLink{
		RequestID: req.ID,
		Token:     tok,
		ExpiresAt: token.ExpiryFor(token.KindShareLink, time.Now().UTC()),
	}
	return s.db.Create(link).Error
}

func (s *Seeder) pickTypes(types []models.DocumentType, n int) []models.DocumentType {
	if n > len(types) {
		n = len(types)
	}
	picked := make([]models.DocumentType, len(types))
	copy(picked, types)
	s.rnd.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:n]
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	return time.Now().UTC().Add(-time.Duration(s.rnd.Intn(maxDays*24)) * time.Hour)
}

package service

import (
	"context"
	"testing"
	"time"

	"documo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shareLinkRepoStub is a stub for repository.ShareLinkRepository.
type shareLinkRepoStub struct {
	createFn        func(context.Context, uint, time.Time) (*models.ShareLink, error)
	getByTokenFn    func(context.Context, string) (*models.ShareLink, error)
	deleteExpiredFn func(context.Context) (int64, error)
}

func (s *shareLinkRepoStub) Create(ctx context.Context, requestID uint, expiresAt time.Time) (*models.ShareLink, error) {
	return s.createFn(ctx, requestID, expiresAt)
}
func (s *shareLinkRepoStub) GetByToken(ctx context.Context, tok string) (*models.ShareLink, error) {
	return s.getByTokenFn(ctx, tok)
}
func (s *shareLinkRepoStub) DeleteExpired(ctx context.Context) (int64, error) {
	return s.deleteExpiredFn(ctx)
}

// requestRepoStub is a stub for repository.RequestRepository.
type requestRepoStub struct {
	createFn       func(context.Context, *models.DocumentRequest, []uint) (*models.DocumentRequest, error)
	getByIDFn      func(context.Context, uint) (*models.DocumentRequest, error)
	getForOrgFn    func(context.Context, uint, uint) (*models.DocumentRequest, error)
	listByFolderFn func(context.Context, uint) ([]models.DocumentRequest, error)
	acceptFn       func(context.Context, uint) (*models.DocumentRequest, error)
	declineFn      func(context.Context, uint, *string) (*models.DocumentRequest, error)
	archiveFn      func(context.Context, uint, uint) error
}

func (s *requestRepoStub) Create(ctx context.Context, req *models.DocumentRequest, typeIDs []uint) (*models.DocumentRequest, error) {
	return s.createFn(ctx, req, typeIDs)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.DocumentRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) GetForOrg(ctx context.Context, id, orgID uint) (*models.DocumentRequest, error) {
	return s.getForOrgFn(ctx, id, orgID)
}
func (s *requestRepoStub) ListByFolder(ctx context.Context, folderID uint) ([]models.DocumentRequest, error) {
	return s.listByFolderFn(ctx, folderID)
}
func (s *requestRepoStub) Accept(ctx context.Context, id uint) (*models.DocumentRequest, error) {
	return s.acceptFn(ctx, id)
}
func (s *requestRepoStub) Decline(ctx context.Context, id uint, message *string) (*models.DocumentRequest, error) {
	return s.declineFn(ctx, id, message)
}
func (s *requestRepoStub) ArchiveForOrg(ctx context.Context, id, orgID uint) error {
	return s.archiveFn(ctx, id, orgID)
}

// documentRepoStub is a stub for repository.DocumentRepository.
type documentRepoStub struct {
	uploadFn            func(context.Context, *models.Document) (*models.Document, error)
	getForOrgFn         func(context.Context, uint, uint) (*models.Document, error)
	validateForOrgFn    func(context.Context, uint, uint) (*models.Document, error)
	invalidateForOrgFn  func(context.Context, uint, uint, string) (*models.InvalidationNotice, error)
	getValidByRequestFn func(context.Context, uint) ([]models.Document, error)
}

func (s *documentRepoStub) Upload(ctx context.Context, doc *models.Document) (*models.Document, error) {
	return s.uploadFn(ctx, doc)
}
func (s *documentRepoStub) GetForOrg(ctx context.Context, docID, orgID uint) (*models.Document, error) {
	return s.getForOrgFn(ctx, docID, orgID)
}
func (s *documentRepoStub) ValidateForOrg(ctx context.Context, docID, orgID uint) (*models.Document, error) {
	return s.validateForOrgFn(ctx, docID, orgID)
}
func (s *documentRepoStub) InvalidateForOrg(ctx context.Context, docID, orgID uint, reason string) (*models.InvalidationNotice, error) {
	return s.invalidateForOrgFn(ctx, docID, orgID, reason)
}
func (s *documentRepoStub) GetValidByRequest(ctx context.Context, requestID uint) ([]models.Document, error) {
	return s.getValidByRequestFn(ctx, requestID)
}

// documentTypeRepoStub is a stub for repository.DocumentTypeRepository.
type documentTypeRepoStub struct {
	listFn    func(context.Context) ([]models.DocumentType, error)
	getByIDFn func(context.Context, uint) (*models.DocumentType, error)
	createFn  func(context.Context, *models.DocumentType) (*models.DocumentType, error)
	updateFn  func(context.Context, *models.DocumentType) (*models.DocumentType, error)
}

func (s *documentTypeRepoStub) List(ctx context.Context) ([]models.DocumentType, error) {
	return s.listFn(ctx)
}
func (s *documentTypeRepoStub) GetByID(ctx context.Context, id uint) (*models.DocumentType, error) {
	return s.getByIDFn(ctx, id)
}
func (s *documentTypeRepoStub) Create(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error) {
	return s.createFn(ctx, dt)
}
func (s *documentTypeRepoStub) Update(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error) {
	return s.updateFn(ctx, dt)
}

// mailerStub records sends instead of delivering.
type mailerStub struct {
	invitations   int
	notices       []*models.InvalidationNotice
	verifications int
	resets        int
	err           error
}

func (m *mailerStub) SendShareLinkInvitation(_ context.Context, _, _, _, _ string, _ time.Time) error {
	m.invitations++
	return m.err
}
func (m *mailerStub) SendInvalidationNotice(_ context.Context, notice *models.InvalidationNotice) error {
	m.notices = append(m.notices, notice)
	return m.err
}
func (m *mailerStub) SendEmailVerification(_ context.Context, _, _ string) error {
	m.verifications++
	return m.err
}
func (m *mailerStub) SendPasswordReset(_ context.Context, _, _ string) error {
	m.resets++
	return m.err
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

package repository

import (
	"context"
	"testing"
	"time"

	"documo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadDoc(t *testing.T, repo DocumentRepository, requestID, typeID uint, name string) *models.Document {
	t.Helper()
	doc, err := repo.Upload(context.Background(), &models.Document{
		RequestID: requestID,
		TypeID:    typeID,
		FileName:  name,
		MimeType:  "application/pdf",
		SizeBytes: 1024,
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentRepository_UploadCompletesRequestWhenTypesCovered(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)

	uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")

	var req models.DocumentRequest
	require.NoError(t, db.First(&req, f.Request.ID).Error)
	assert.NotNil(t, req.FirstDocumentUploadedAt, "first upload is stamped")
	assert.Nil(t, req.CompletedAt, "one of two requested types is not completion")

	uploadDoc(t, repo, f.Request.ID, f.Payslip.ID, "payslip.pdf")

	require.NoError(t, db.First(&req, f.Request.ID).Error)
	assert.NotNil(t, req.CompletedAt, "both requested types covered")

	var folder models.Folder
	require.NoError(t, db.First(&folder, f.Folder.ID).Error)
	assert.NotNil(t, folder.CompletedAt, "last open request completing completes the folder")
	assert.NotNil(t, folder.LastActivityAt)
}

func TestDocumentRepository_DuplicateTypeDoesNotComplete(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)

	uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport-1.pdf")
	uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport-2.pdf")

	var req models.DocumentRequest
	require.NoError(t, db.First(&req, f.Request.ID).Error)
	assert.Nil(t, req.CompletedAt, "two uploads of the same type cover one type only")
}

func TestDocumentRepository_FolderWaitsForSiblingRequests(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)

	sibling := models.DocumentRequest{
		FolderID:       f.Folder.ID,
		RecipientEmail: "guarantor@example.test",
		RequestedTypes: []models.DocumentType{f.Passport},
	}
	require.NoError(t, db.Create(&sibling).Error)

	uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")
	uploadDoc(t, repo, f.Request.ID, f.Payslip.ID, "payslip.pdf")

	var folder models.Folder
	require.NoError(t, db.First(&folder, f.Folder.ID).Error)
	assert.Nil(t, folder.CompletedAt, "folder stays open while a sibling request is open")

	uploadDoc(t, repo, sibling.ID, f.Passport.ID, "guarantor-passport.pdf")

	require.NoError(t, db.First(&folder, f.Folder.ID).Error)
	assert.NotNil(t, folder.CompletedAt)
}

func TestDocumentRepository_ArchivedSiblingsDoNotBlockFolder(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)

	msg := models.ArchivedDeclineMessage
	archived := models.DocumentRequest{
		FolderID:       f.Folder.ID,
		RecipientEmail: "gone@example.test",
		RequestedTypes: []models.DocumentType{f.Passport},
		RejectedAt:     timePtr(time.Now().UTC()),
		DeclineMessage: &msg,
	}
	require.NoError(t, db.Create(&archived).Error)

	uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")
	uploadDoc(t, repo, f.Request.ID, f.Payslip.ID, "payslip.pdf")

	var folder models.Folder
	require.NoError(t, db.First(&folder, f.Folder.ID).Error)
	assert.NotNil(t, folder.CompletedAt, "archived requests are excluded from completion")
}

func TestDocumentRepository_ValidateForOrg(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	doc := uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")

	validated, err := repo.ValidateForOrg(ctx, doc.ID, f.Org.ID)
	require.NoError(t, err)
	assert.NotNil(t, validated.ValidatedAt)
	assert.Nil(t, validated.InvalidatedAt)
	assert.Nil(t, validated.ValidationErrors)
}

func TestDocumentRepository_ValidateDeniedForForeignOrg(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)

	other := models.Organization{Name: "Rival Corp"}
	require.NoError(t, db.Create(&other).Error)

	doc := uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")

	_, err := repo.ValidateForOrg(context.Background(), doc.ID, other.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code, "foreign documents look like missing ones")
}

func TestDocumentRepository_InvalidateReopensAndReissuesLink(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")
	payslip := uploadDoc(t, repo, f.Request.ID, f.Payslip.ID, "payslip.pdf")

	var req models.DocumentRequest
	require.NoError(t, db.First(&req, f.Request.ID).Error)
	require.NotNil(t, req.CompletedAt)

	notice, err := repo.InvalidateForOrg(ctx, payslip.ID, f.Org.ID, "Document is illegible")
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, "tenant@example.test", notice.RecipientEmail)
	assert.Equal(t, "Acme Lettings", notice.OrganizationName)
	assert.Equal(t, "Payslip", notice.DocumentTypeLabel)
	assert.Equal(t, "payslip.pdf", notice.FileName)
	assert.Equal(t, "Document is illegible", notice.Reason)
	assert.NotEmpty(t, notice.ShareToken)
	assert.True(t, notice.ShareExpiresAt.After(time.Now().UTC().Add(6*24*time.Hour)),
		"re-issued link carries a 7-day window")

	// Reload into a zeroed struct: gorm leaves stale field values in place
	// when scanning a NULL column into a reused destination.
	req = models.DocumentRequest{}
	require.NoError(t, db.First(&req, f.Request.ID).Error)
	assert.Nil(t, req.CompletedAt, "invalidation reopens the request")

	var folder models.Folder
	require.NoError(t, db.First(&folder, f.Folder.ID).Error)
	assert.Nil(t, folder.CompletedAt, "and its folder")

	var doc models.Document
	require.NoError(t, db.First(&doc, payslip.ID).Error)
	assert.NotNil(t, doc.InvalidatedAt)
	assert.Nil(t, doc.ValidatedAt)
	assert.Equal(t, models.StringList{"Document is illegible"}, doc.ValidationErrors)
}

func TestDocumentRepository_InvalidateReusesLiveLink(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	docRepo := NewDocumentRepository(db)
	linkRepo := NewShareLinkRepository(db)
	ctx := context.Background()

	existing, err := linkRepo.Create(ctx, f.Request.ID, time.Now().UTC().Add(48*time.Hour))
	require.NoError(t, err)

	doc := uploadDoc(t, docRepo, f.Request.ID, f.Passport.ID, "passport.pdf")
	notice, err := docRepo.InvalidateForOrg(ctx, doc.ID, f.Org.ID, "Wrong document")
	require.NoError(t, err)

	assert.Equal(t, existing.Token, notice.ShareToken, "a live link is reused, not replaced")

	var count int64
	require.NoError(t, db.Model(&models.ShareLink{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDocumentRepository_InvalidateRequiresReason(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	doc := uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := repo.InvalidateForOrg(ctx, doc.ID, f.Org.ID, reason)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}

	var got models.Document
	require.NoError(t, db.First(&got, doc.ID).Error)
	assert.Nil(t, got.InvalidatedAt, "rejected invalidation leaves the document untouched")
}

func TestDocumentRepository_GetValidByRequest(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	keep := uploadDoc(t, repo, f.Request.ID, f.Passport.ID, "passport.pdf")
	rejected := uploadDoc(t, repo, f.Request.ID, f.Payslip.ID, "payslip.pdf")
	_, err := repo.InvalidateForOrg(ctx, rejected.ID, f.Org.ID, "Blurry scan")
	require.NoError(t, err)

	docs, err := repo.GetValidByRequest(ctx, f.Request.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, keep.ID, docs[0].ID)
	require.NotNil(t, docs[0].Type)
	assert.Equal(t, "passport", docs[0].Type.Name)
}

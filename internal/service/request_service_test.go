package service

import (
	"context"
	"testing"
	"time"

	"documo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type folderRepoStub struct {
	createFn    func(context.Context, *models.Folder, []uint) (*models.Folder, error)
	getForOrgFn func(context.Context, uint, uint) (*models.Folder, error)
	listFn      func(context.Context, uint) ([]models.Folder, error)
	updateFn    func(context.Context, uint, uint, string, string) (*models.Folder, error)
	archiveFn   func(context.Context, uint, uint) error
}

func (s *folderRepoStub) Create(ctx context.Context, f *models.Folder, typeIDs []uint) (*models.Folder, error) {
	return s.createFn(ctx, f, typeIDs)
}
func (s *folderRepoStub) GetForOrg(ctx context.Context, id, orgID uint) (*models.Folder, error) {
	return s.getForOrgFn(ctx, id, orgID)
}
func (s *folderRepoStub) ListForOrg(ctx context.Context, orgID uint) ([]models.Folder, error) {
	return s.listFn(ctx, orgID)
}
func (s *folderRepoStub) UpdateForOrg(ctx context.Context, id, orgID uint, name, description string) (*models.Folder, error) {
	return s.updateFn(ctx, id, orgID, name, description)
}
func (s *folderRepoStub) ArchiveForOrg(ctx context.Context, id, orgID uint) error {
	return s.archiveFn(ctx, id, orgID)
}

func TestRequestService_CreateIssuesLinkAndMails(t *testing.T) {
	org := &models.Organization{ID: 2, Name: "Acme Lettings"}
	folderRepo := &folderRepoStub{
		getForOrgFn: func(_ context.Context, id, orgID uint) (*models.Folder, error) {
			assert.Equal(t, uint(2), orgID)
			return &models.Folder{ID: id, Name: "Tenant screening", OrganizationID: orgID, Organization: org}, nil
		},
	}
	requestRepo := &requestRepoStub{
		createFn: func(_ context.Context, req *models.DocumentRequest, typeIDs []uint) (*models.DocumentRequest, error) {
			require.Equal(t, []uint{1}, typeIDs)
			req.ID = 5
			req.RequestedTypes = []models.DocumentType{{ID: 1, Name: "passport", Label: "Passport"}}
			return req, nil
		},
	}
	var issuedFor uint
	linkRepo := &shareLinkRepoStub{
		createFn: func(_ context.Context, requestID uint, expiresAt time.Time) (*models.ShareLink, error) {
			issuedFor = requestID
			return &models.ShareLink{RequestID: requestID, Token: "tok", ExpiresAt: expiresAt}, nil
		},
	}
	mailer := &mailerStub{}
	svc := NewRequestService(requestRepo, folderRepo, linkRepo, mailer)

	result, err := svc.Create(context.Background(), CreateRequestInput{
		OrganizationID: 2,
		FolderID:       3,
		RecipientEmail: "tenant@example.test",
		TypeIDs:        []uint{1},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), issuedFor)
	assert.Equal(t, "tok", result.ShareToken)
	assert.True(t, result.ShareExpiresAt.After(time.Now().Add(6*24*time.Hour)),
		"invitation links carry a 7-day window")
	assert.Equal(t, 1, mailer.invitations)
	assert.Equal(t, models.RequestStatusPending, result.Request.Status)
}

func TestRequestService_CreateForeignFolderDenied(t *testing.T) {
	folderRepo := &folderRepoStub{
		getForOrgFn: func(_ context.Context, _, _ uint) (*models.Folder, error) {
			return nil, models.NewAccessError("Folder")
		},
	}
	svc := NewRequestService(&requestRepoStub{}, folderRepo, &shareLinkRepoStub{}, &mailerStub{})

	_, err := svc.Create(context.Background(), CreateRequestInput{
		OrganizationID: 9,
		FolderID:       3,
		RecipientEmail: "tenant@example.test",
		TypeIDs:        []uint{1},
	})
	assertNotFoundError(t, err)
}

func TestRequestService_CreateSurvivesMailFailure(t *testing.T) {
	org := &models.Organization{ID: 2, Name: "Acme Lettings"}
	folderRepo := &folderRepoStub{
		getForOrgFn: func(_ context.Context, id, orgID uint) (*models.Folder, error) {
			return &models.Folder{ID: id, Name: "Tenant screening", OrganizationID: orgID, Organization: org}, nil
		},
	}
	requestRepo := &requestRepoStub{
		createFn: func(_ context.Context, req *models.DocumentRequest, _ []uint) (*models.DocumentRequest, error) {
			req.ID = 5
			return req, nil
		},
	}
	linkRepo := &shareLinkRepoStub{
		createFn: func(_ context.Context, requestID uint, expiresAt time.Time) (*models.ShareLink, error) {
			return &models.ShareLink{RequestID: requestID, Token: "tok", ExpiresAt: expiresAt}, nil
		},
	}
	svc := NewRequestService(requestRepo, folderRepo, linkRepo, &mailerStub{err: assert.AnError})

	result, err := svc.Create(context.Background(), CreateRequestInput{
		OrganizationID: 2,
		FolderID:       3,
		RecipientEmail: "tenant@example.test",
		TypeIDs:        []uint{1},
	})
	require.NoError(t, err, "a failed invitation mail does not undo the request")
	assert.Equal(t, "tok", result.ShareToken)
}

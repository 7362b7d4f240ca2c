package service

import (
	"context"

	"documo/internal/models"
	"documo/internal/repository"
)

// FolderService manages an organization's folders.
type FolderService struct {
	folderRepo repository.FolderRepository
}

type CreateFolderInput struct {
	OrganizationID  uint
	Name            string
	Description     string
	RequiredTypeIDs []uint
}

type UpdateFolderInput struct {
	OrganizationID uint
	FolderID       uint
	Name           string
	Description    string
}

func NewFolderService(folderRepo repository.FolderRepository) *FolderService {
	return &FolderService{folderRepo: folderRepo}
}

func (s *FolderService) Create(ctx context.Context, in CreateFolderInput) (*FolderView, error) {
	folder := &models.Folder{
		Name:           in.Name,
		Description:    in.Description,
		OrganizationID: in.OrganizationID,
	}
	created, err := s.folderRepo.Create(ctx, folder, in.RequiredTypeIDs)
	if err != nil {
		return nil, err
	}
	view := NewFolderView(created)
	return &view, nil
}

func (s *FolderService) Get(ctx context.Context, folderID, organizationID uint) (*FolderView, error) {
	folder, err := s.folderRepo.GetForOrg(ctx, folderID, organizationID)
	if err != nil {
		return nil, err
	}
	view := NewFolderView(folder)
	return &view, nil
}

func (s *FolderService) List(ctx context.Context, organizationID uint) ([]FolderView, error) {
	folders, err := s.folderRepo.ListForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	views := make([]FolderView, 0, len(folders))
	for i := range folders {
		views = append(views, NewFolderView(&folders[i]))
	}
	return views, nil
}

func (s *FolderService) Update(ctx context.Context, in UpdateFolderInput) (*FolderView, error) {
	folder, err := s.folderRepo.UpdateForOrg(ctx, in.FolderID, in.OrganizationID, in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	view := NewFolderView(folder)
	return &view, nil
}

func (s *FolderService) Archive(ctx context.Context, folderID, organizationID uint) error {
	return s.folderRepo.ArchiveForOrg(ctx, folderID, organizationID)
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/dto"
	"junkops-api/internal/repository"
	"junkops-api/internal/response"
)

// TagService defines the interface for lead tag management
type TagService interface {
	CreateTag(ctx context.Context, businessID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	ListTags(ctx context.Context, businessID uuid.UUID) ([]dto.TagResponse, error)
	UpdateTag(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateTagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, businessID, id uuid.UUID) error
}

// tagServiceImpl is the implementation of TagService
type tagServiceImpl struct {
	tagRepo repository.TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new instance of TagService
func NewTagService(tagRepo repository.TagRepository, logger *zap.Logger) TagService {
	return &tagServiceImpl{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// CreateTag creates a tag. Names are unique within a business.
func (s *tagServiceImpl) CreateTag(ctx context.Context, businessID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if _, err := s.tagRepo.FindByName(ctx, businessID, req.Name); err == nil {
		return nil, response.NewAppError(response.ErrCodeDuplicateTag, "A tag with this name already exists", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify tag name", err.Error())
	}

	tag := &domain.LeadTag{
		BusinessID: businessID,
		Name:       req.Name,
	}
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if isDuplicateKeyError(err) {
			return nil, response.NewAppError(response.ErrCodeDuplicateTag, "A tag with this name already exists", req.Name)
		}
		s.logger.Error("Failed to create tag", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tag", err.Error())
	}

	resp := dto.ToTagResponse(tag)
	return &resp, nil
}

// ListTags lists a business's tags
func (s *tagServiceImpl) ListTags(ctx context.Context, businessID uuid.UUID) ([]dto.TagResponse, error) {
	tags, err := s.tagRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tags", err.Error())
	}
	return dto.ToTagResponses(tags), nil
}

// UpdateTag renames or recolors a tag
func (s *tagServiceImpl) UpdateTag(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	if req.Name == "" && req.Color == "" {
		return nil, response.NewAppError(response.ErrCodeNoValidFields, "No valid fields to update", "")
	}
	if err := s.tagRepo.Update(ctx, businessID, id, req.Name, req.Color); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeTagNotFound, "Tag not found", "")
		default:
			if isDuplicateKeyError(err) {
				return nil, response.NewAppError(response.ErrCodeDuplicateTag, "A tag with this name already exists", req.Name)
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update tag", err.Error())
		}
	}

	tag, err := s.tagRepo.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}
	resp := dto.ToTagResponse(tag)
	return &resp, nil
}

// DeleteTag removes a tag. Tags still assigned to leads cannot be deleted.
func (s *tagServiceImpl) DeleteTag(ctx context.Context, businessID, id uuid.UUID) error {
	count, err := s.tagRepo.AssignmentCount(ctx, id)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check tag usage", err.Error())
	}
	if count > 0 {
		return response.NewAppError(response.ErrCodeTagInUse, "Tag is still assigned to leads", "")
	}

	if err := s.tagRepo.Delete(ctx, businessID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeTagNotFound, "Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete tag", err.Error())
	}
	return nil
}

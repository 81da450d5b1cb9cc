package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type natureRepository interface {
	List(ctx context.Context, filter models.NatureFilter) ([]models.InquiryNature, int, error)
	FindByID(ctx context.Context, id string) (*models.InquiryNature, error)
	FindByName(ctx context.Context, name string) (*models.InquiryNature, error)
	Create(ctx context.Context, nature *models.InquiryNature) error
	Update(ctx context.Context, nature *models.InquiryNature) error
	Referenced(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// SaveNatureRequest holds payload for creating or updating inquiry natures.
type SaveNatureRequest struct {
	Nature      string `json:"nature" validate:"required"`
	RoutingRole string `json:"routing_role" validate:"required"`
	Description string `json:"description"`
}

// CatalogService manages the inquiry nature catalog.
type CatalogService struct {
	repo      natureRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(repo natureRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, validator: validate, logger: logger}
}

// List returns inquiry natures and pagination metadata.
func (s *CatalogService) List(ctx context.Context, filter models.NatureFilter) ([]models.InquiryNature, *models.Pagination, error) {
	natures, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list natures")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return natures, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns an inquiry nature by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.InquiryNature, error) {
	nature, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrUnknownNature
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load nature")
	}
	return nature, nil
}

// Create registers a new inquiry nature. Names are unique case-insensitively
// and the routing role must be a known position.
func (s *CatalogService) Create(ctx context.Context, req SaveNatureRequest) (*models.InquiryNature, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid nature payload")
	}
	role, ok := models.NormalizeRole(req.RoutingRole)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown routing role")
	}

	if _, err := s.repo.FindByName(ctx, req.Nature); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "nature name already used")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate nature name")
	}

	nature := &models.InquiryNature{
		Nature:      req.Nature,
		RoutingRole: role,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, nature); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create nature")
	}
	return nature, nil
}

// Update changes an inquiry nature. Re-routing only affects future
// assignments; existing appointments keep their officer.
func (s *CatalogService) Update(ctx context.Context, id string, req SaveNatureRequest) (*models.InquiryNature, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid nature payload")
	}
	role, ok := models.NormalizeRole(req.RoutingRole)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown routing role")
	}

	nature, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByName(ctx, req.Nature); err == nil && existing.ID != id {
		return nil, appErrors.Clone(appErrors.ErrConflict, "nature name already used")
	} else if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate nature name")
	}

	nature.Nature = req.Nature
	nature.RoutingRole = role
	nature.Description = req.Description
	if err := s.repo.Update(ctx, nature); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update nature")
	}
	return nature, nil
}

// Delete removes an inquiry nature that no appointment references.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	referenced, err := s.repo.Referenced(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check nature references")
	}
	if referenced {
		return appErrors.Clone(appErrors.ErrConflict, "nature is referenced by appointments")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete nature")
	}
	return nil
}

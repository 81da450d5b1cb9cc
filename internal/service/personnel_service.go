package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type personnelRepository interface {
	List(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, int, error)
	FindByID(ctx context.Context, id string) (*models.Personnel, error)
	Create(ctx context.Context, person *models.Personnel) error
	Update(ctx context.Context, person *models.Personnel) error
	Delete(ctx context.Context, id string) error
}

// SavePersonnelRequest holds payload for creating or updating staff records.
type SavePersonnelRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	MiddleName   *string `json:"middle_name"`
	LastName     string  `json:"last_name" validate:"required"`
	Position     string  `json:"position" validate:"required"`
	MobileNumber string  `json:"mobile_number" validate:"required"`
}

// PersonnelService manages staff records.
type PersonnelService struct {
	repo      personnelRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPersonnelService constructs the personnel service.
func NewPersonnelService(repo personnelRepository, validate *validator.Validate, logger *zap.Logger) *PersonnelService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonnelService{repo: repo, validator: validate, logger: logger}
}

// List returns staff records and pagination metadata.
func (s *PersonnelService) List(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, *models.Pagination, error) {
	personnel, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list personnel")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return personnel, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a staff record.
func (s *PersonnelService) Get(ctx context.Context, id string) (*models.Personnel, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "personnel not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
	}
	return person, nil
}

// Create registers a new staff record. The position must normalize to a known
// routing role, accepting legacy spellings.
func (s *PersonnelService) Create(ctx context.Context, req SavePersonnelRequest) (*models.Personnel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid personnel payload")
	}
	position, ok := models.NormalizeRole(req.Position)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown position")
	}

	person := &models.Personnel{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Position:     position,
		MobileNumber: req.MobileNumber,
		Active:       true,
	}
	if err := s.repo.Create(ctx, person); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create personnel")
	}
	return person, nil
}

// Update changes a staff record.
func (s *PersonnelService) Update(ctx context.Context, id string, req SavePersonnelRequest) (*models.Personnel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid personnel payload")
	}
	position, ok := models.NormalizeRole(req.Position)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown position")
	}

	person, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	person.FirstName = req.FirstName
	person.MiddleName = req.MiddleName
	person.LastName = req.LastName
	person.Position = position
	person.MobileNumber = req.MobileNumber
	if err := s.repo.Update(ctx, person); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update personnel")
	}
	return person, nil
}

// Deactivate marks a staff record inactive. Existing assignments keep the
// officer until staff reassign them.
func (s *PersonnelService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate personnel")
	}
	return nil
}

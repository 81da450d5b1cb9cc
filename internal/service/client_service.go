package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type clientRepository interface {
	List(ctx context.Context, filter models.ClientFilter) ([]models.Client, int, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
}

// SaveClientRequest holds payload for creating or updating client profiles.
type SaveClientRequest struct {
	FirstName     string    `json:"first_name" validate:"required"`
	MiddleName    *string   `json:"middle_name"`
	LastName      string    `json:"last_name" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
	ContactNumber string    `json:"contact_number" validate:"required"`
	Province      string    `json:"province" validate:"required"`
	City          string    `json:"city" validate:"required"`
	Barangay      string    `json:"barangay" validate:"required"`
	Street        *string   `json:"street"`
	Birthday      time.Time `json:"birthday" validate:"required"`
	IsPWD         bool      `json:"is_pwd"`
	IsPregnant    bool      `json:"is_pregnant"`
}

// ClientService manages client profiles.
type ClientService struct {
	repo      clientRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClientService constructs the client service.
func NewClientService(repo clientRepository, validate *validator.Validate, logger *zap.Logger) *ClientService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{repo: repo, validator: validate, logger: logger}
}

// List returns clients and pagination metadata.
func (s *ClientService) List(ctx context.Context, filter models.ClientFilter) ([]models.Client, *models.Pagination, error) {
	clients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list clients")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return clients, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a client profile.
func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}
	return client, nil
}

// Create registers a new client profile.
func (s *ClientService) Create(ctx context.Context, req SaveClientRequest) (*models.Client, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid client payload")
	}
	if req.Birthday.After(time.Now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "birthday cannot be in the future")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}

	client := &models.Client{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Province:      req.Province,
		City:          req.City,
		Barangay:      req.Barangay,
		Street:        req.Street,
		Birthday:      req.Birthday,
		IsPWD:         req.IsPWD,
		IsPregnant:    req.IsPregnant,
		Active:        true,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create client")
	}
	return client, nil
}

// Update changes a client profile.
func (s *ClientService) Update(ctx context.Context, id string, req SaveClientRequest) (*models.Client, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid client payload")
	}

	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing.ID != id {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	} else if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}

	client.FirstName = req.FirstName
	client.MiddleName = req.MiddleName
	client.LastName = req.LastName
	client.Email = req.Email
	client.ContactNumber = req.ContactNumber
	client.Province = req.Province
	client.City = req.City
	client.Barangay = req.Barangay
	client.Street = req.Street
	client.Birthday = req.Birthday
	client.IsPWD = req.IsPWD
	client.IsPregnant = req.IsPregnant
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update client")
	}
	return client, nil
}

// Deactivate marks a client profile inactive. History is preserved.
func (s *ClientService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate client")
	}
	return nil
}

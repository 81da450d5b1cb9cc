package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/govdesk/front-office-api/internal/models"
)

// NatureRepository provides database access for the inquiry nature catalog.
type NatureRepository struct {
	db *sqlx.DB
}

// NewNatureRepository creates a new instance of NatureRepository.
func NewNatureRepository(db *sqlx.DB) *NatureRepository {
	return &NatureRepository{db: db}
}

// FindByID returns an inquiry nature by identifier.
func (r *NatureRepository) FindByID(ctx context.Context, id string) (*models.InquiryNature, error) {
	const query = `SELECT id, nature, routing_role, description, created_at, updated_at FROM inquiry_natures WHERE id = $1 LIMIT 1`
	var nature models.InquiryNature
	if err := r.db.GetContext(ctx, &nature, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find nature by id: %w", err)
	}
	return &nature, nil
}

// FindByName returns an inquiry nature matched case-insensitively on its name.
func (r *NatureRepository) FindByName(ctx context.Context, name string) (*models.InquiryNature, error) {
	const query = `SELECT id, nature, routing_role, description, created_at, updated_at FROM inquiry_natures WHERE LOWER(nature) = LOWER($1) LIMIT 1`
	var nature models.InquiryNature
	if err := r.db.GetContext(ctx, &nature, query, strings.TrimSpace(name)); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find nature by name: %w", err)
	}
	return &nature, nil
}

// List returns inquiry natures matching the filter with the total count.
func (r *NatureRepository) List(ctx context.Context, filter models.NatureFilter) ([]models.InquiryNature, int, error) {
	baseQuery := `FROM inquiry_natures WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(nature) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.RoutingRole != "" {
		conditions = append(conditions, fmt.Sprintf("routing_role = $%d", len(args)+1))
		args = append(args, filter.RoutingRole)
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT id, nature, routing_role, description, created_at, updated_at %s ORDER BY nature ASC LIMIT %d OFFSET %d", baseQuery, pageSize, offset)

	var natures []models.InquiryNature
	if err := r.db.SelectContext(ctx, &natures, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list natures: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count natures: %w", err)
	}

	return natures, total, nil
}

// Create inserts a new inquiry nature.
func (r *NatureRepository) Create(ctx context.Context, nature *models.InquiryNature) error {
	if nature.ID == "" {
		nature.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if nature.CreatedAt.IsZero() {
		nature.CreatedAt = now
	}
	nature.UpdatedAt = now

	const query = `INSERT INTO inquiry_natures (id, nature, routing_role, description, created_at, updated_at) VALUES (:id, :nature, :routing_role, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, nature); err != nil {
		return fmt.Errorf("create nature: %w", err)
	}
	return nil
}

// Update updates mutable fields of an inquiry nature.
func (r *NatureRepository) Update(ctx context.Context, nature *models.InquiryNature) error {
	nature.UpdatedAt = time.Now().UTC()
	const query = `UPDATE inquiry_natures SET nature = :nature, routing_role = :routing_role, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, nature); err != nil {
		return fmt.Errorf("update nature: %w", err)
	}
	return nil
}

// Referenced reports whether any appointment points at the nature.
func (r *NatureRepository) Referenced(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM appointments WHERE inquiry_nature_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check nature references: %w", err)
	}
	return exists, nil
}

// Delete removes an inquiry nature. Callers must ensure no appointment still
// references it.
func (r *NatureRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM inquiry_natures WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete nature: %w", err)
	}
	return nil
}

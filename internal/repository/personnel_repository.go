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

const personnelColumns = `id, first_name, middle_name, last_name, position, mobile_number, active, created_at, updated_at`

// PersonnelRepository provides database access for staff records.
type PersonnelRepository struct {
	db *sqlx.DB
}

// NewPersonnelRepository creates a new instance of PersonnelRepository.
func NewPersonnelRepository(db *sqlx.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// FindByID returns a staff member by identifier.
func (r *PersonnelRepository) FindByID(ctx context.Context, id string) (*models.Personnel, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel WHERE id = $1 LIMIT 1`, personnelColumns)
	var person models.Personnel
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find personnel by id: %w", err)
	}
	return &person, nil
}

// FindActiveByPosition returns the first active staff member holding the given
// position, ordered by seniority of record.
func (r *PersonnelRepository) FindActiveByPosition(ctx context.Context, position models.RoutingRole) (*models.Personnel, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel WHERE position = $1 AND active = TRUE ORDER BY created_at ASC LIMIT 1`, personnelColumns)
	var person models.Personnel
	if err := r.db.GetContext(ctx, &person, query, position); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find personnel by position: %w", err)
	}
	return &person, nil
}

// FindAnyActive returns an active staff member regardless of position.
func (r *PersonnelRepository) FindAnyActive(ctx context.Context) (*models.Personnel, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel WHERE active = TRUE ORDER BY created_at ASC LIMIT 1`, personnelColumns)
	var person models.Personnel
	if err := r.db.GetContext(ctx, &person, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find any active personnel: %w", err)
	}
	return &person, nil
}

// List returns staff records matching the filter with the total count.
func (r *PersonnelRepository) List(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, int, error) {
	baseQuery := `FROM personnel WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Position != "" {
		conditions = append(conditions, fmt.Sprintf("position = $%d", len(args)+1))
		args = append(args, filter.Position)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY last_name ASC, first_name ASC LIMIT %d OFFSET %d", personnelColumns, baseQuery, pageSize, offset)

	var personnel []models.Personnel
	if err := r.db.SelectContext(ctx, &personnel, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list personnel: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count personnel: %w", err)
	}

	return personnel, total, nil
}

// Create inserts a new staff record.
func (r *PersonnelRepository) Create(ctx context.Context, person *models.Personnel) error {
	if person.ID == "" {
		person.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	const query = `INSERT INTO personnel (id, first_name, middle_name, last_name, position, mobile_number, active, created_at, updated_at)
		VALUES (:id, :first_name, :middle_name, :last_name, :position, :mobile_number, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("create personnel: %w", err)
	}
	return nil
}

// Update updates mutable fields of a staff record.
func (r *PersonnelRepository) Update(ctx context.Context, person *models.Personnel) error {
	person.UpdatedAt = time.Now().UTC()
	const query = `UPDATE personnel SET first_name = :first_name, middle_name = :middle_name, last_name = :last_name, position = :position, mobile_number = :mobile_number, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("update personnel: %w", err)
	}
	return nil
}

// Delete performs a soft delete by marking the staff record inactive.
func (r *PersonnelRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE personnel SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete personnel: %w", err)
	}
	return nil
}

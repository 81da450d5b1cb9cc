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

const clientColumns = `id, first_name, middle_name, last_name, email, contact_number, province, city, barangay, street, birthday, is_pwd, is_pregnant, active, created_at, updated_at`

// ClientRepository provides database access for client profiles.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindByID returns a client by identifier.
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1 LIMIT 1`, clientColumns)
	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return &client, nil
}

// FindByEmail returns a client by email address.
func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE LOWER(email) = LOWER($1) LIMIT 1`, clientColumns)
	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find client by email: %w", err)
	}
	return &client, nil
}

// List returns clients matching the filter with the total count. The Priority
// filter selects clients who are PWD, pregnant, or senior citizens.
func (r *ClientRepository) List(ctx context.Context, filter models.ClientFilter) ([]models.Client, int, error) {
	baseQuery := `FROM clients WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d OR contact_number LIKE $%d)", len(args)+1, len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Priority != nil {
		op := ""
		if !*filter.Priority {
			op = "NOT "
		}
		conditions = append(conditions, fmt.Sprintf("%s(is_pwd OR is_pregnant OR birthday <= $%d)", op, len(args)+1))
		args = append(args, seniorCutoff(time.Now().UTC()))
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY last_name ASC, first_name ASC LIMIT %d OFFSET %d", clientColumns, baseQuery, pageSize, offset)

	var clients []models.Client
	if err := r.db.SelectContext(ctx, &clients, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	return clients, total, nil
}

// Create inserts a new client profile.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	const query = `INSERT INTO clients (id, first_name, middle_name, last_name, email, contact_number, province, city, barangay, street, birthday, is_pwd, is_pregnant, active, created_at, updated_at)
		VALUES (:id, :first_name, :middle_name, :last_name, :email, :contact_number, :province, :city, :barangay, :street, :birthday, :is_pwd, :is_pregnant, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// Update updates mutable fields of a client profile.
func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	client.UpdatedAt = time.Now().UTC()
	const query = `UPDATE clients SET first_name = :first_name, middle_name = :middle_name, last_name = :last_name, email = :email, contact_number = :contact_number, province = :province, city = :city, barangay = :barangay, street = :street, birthday = :birthday, is_pwd = :is_pwd, is_pregnant = :is_pregnant, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete performs a soft delete by marking the client inactive.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE clients SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// seniorCutoff returns the latest birthday that makes a client at least 60
// years old at the reference time.
func seniorCutoff(at time.Time) time.Time {
	return at.AddDate(-60, 0, 0)
}

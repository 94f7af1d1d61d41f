package directory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/types"
)

// Directory is the read surface for categories and doctors.
type Directory interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	ListDoctorsByCategory(ctx context.Context, categoryID types.ID) ([]Doctor, error)
}

// Repository provides database operations for the medical directory
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new directory repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListCategories lists all categories ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	defer rows.Close()

	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]Category, error) {
	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// ListDoctors lists all doctors with their category, ordered by category
// then name
func (r *Repository) ListDoctors(ctx context.Context) ([]Doctor, error) {
	query := `
		SELECT d.id, d.category_id, d.full_name, c.name, d.created_at
		FROM doctors d
		JOIN categories c ON d.category_id = c.id
		ORDER BY c.name, d.full_name`

	return r.queryDoctors(ctx, query)
}

// ListDoctorsByCategory lists doctors for one category ordered by name
func (r *Repository) ListDoctorsByCategory(ctx context.Context, categoryID types.ID) ([]Doctor, error) {
	query := `
		SELECT d.id, d.category_id, d.full_name, c.name, d.created_at
		FROM doctors d
		JOIN categories c ON d.category_id = c.id
		WHERE d.category_id = $1
		ORDER BY d.full_name`

	return r.queryDoctors(ctx, query, categoryID)
}

func (r *Repository) queryDoctors(ctx context.Context, query string, args ...any) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list doctors")
	}
	defer rows.Close()

	return scanDoctors(rows)
}

func scanDoctors(rows pgx.Rows) ([]Doctor, error) {
	var doctors []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.FullName, &d.CategoryName, &d.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan doctor")
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list doctors")
	}

	return doctors, nil
}

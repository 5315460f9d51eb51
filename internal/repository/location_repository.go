package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/domain"
)

// LocationRepository defines domain-specific operations for locations
type LocationRepository interface {
	Repository[domain.Location, int64]
	FindByName(ctx context.Context, name string) (domain.Location, error)
}

// locationRepositoryImpl implements LocationRepository
type locationRepositoryImpl struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepositoryImpl{db: db}
}

const locationColumns = "id, name, created_at, updated_at"

func validateLocation(l *domain.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidEntity)
	}
	if len([]rune(l.Name)) > 100 {
		return fmt.Errorf("name must be at most 100 characters: %w", ErrInvalidEntity)
	}
	return nil
}

// Save creates or updates a location
func (r *locationRepositoryImpl) Save(ctx context.Context, location domain.Location) (domain.Location, error) {
	if err := validateLocation(&location); err != nil {
		return domain.Location{}, err
	}

	if location.ID == 0 {
		result, err := r.db.ExecContext(ctx,
			"INSERT INTO locations (name) VALUES (?)", location.Name)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.Location{}, fmt.Errorf("location %q: %w", location.Name, ErrDuplicate)
			}
			return domain.Location{}, fmt.Errorf("failed to create location: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.Location{}, fmt.Errorf("failed to get location ID: %w", err)
		}
		return r.FindByID(ctx, id)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE locations SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		location.Name, location.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Location{}, fmt.Errorf("location %q: %w", location.Name, ErrDuplicate)
		}
		return domain.Location{}, fmt.Errorf("failed to update location: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Location{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Location{}, fmt.Errorf("location with ID %d: %w", location.ID, ErrNotFound)
	}
	return r.FindByID(ctx, location.ID)
}

// FindByID retrieves a location by its ID
func (r *locationRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Location, error) {
	var l domain.Location
	err := r.db.QueryRowContext(ctx, "SELECT "+locationColumns+" FROM locations WHERE id = ?", id).
		Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Location{}, fmt.Errorf("location with ID %d: %w", id, ErrNotFound)
		}
		return domain.Location{}, fmt.Errorf("failed to find location: %w", err)
	}
	return l, nil
}

// FindByName retrieves a location by its name
func (r *locationRepositoryImpl) FindByName(ctx context.Context, name string) (domain.Location, error) {
	var l domain.Location
	err := r.db.QueryRowContext(ctx, "SELECT "+locationColumns+" FROM locations WHERE name = ?", name).
		Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Location{}, fmt.Errorf("location %q: %w", name, ErrNotFound)
		}
		return domain.Location{}, fmt.Errorf("failed to find location: %w", err)
	}
	return l, nil
}

// FindAll retrieves all locations ordered by name
func (r *locationRepositoryImpl) FindAll(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+locationColumns+" FROM locations ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return locations, nil
}

// DeleteByID removes a location by its ID. Machines referencing the
// location by name keep their now-dangling string.
func (r *locationRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("location with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExistsByID checks if a location exists by its ID
func (r *locationRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check location existence: %w", err)
	}
	return count > 0, nil
}

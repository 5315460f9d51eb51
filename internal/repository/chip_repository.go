package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/domain"
)

// ChipRepository defines domain-specific operations for SIM chips
type ChipRepository interface {
	Repository[domain.Chip, int64]
}

// chipRepositoryImpl implements ChipRepository
type chipRepositoryImpl struct {
	db *sql.DB
}

// NewChipRepository creates a new chip repository
func NewChipRepository(db *sql.DB) ChipRepository {
	return &chipRepositoryImpl{db: db}
}

var chipIPPattern = regexp.MustCompile(`^\d{1,3}$`)

const chipColumns = "id, ip, number, carrier, consultant, status, created_at, updated_at"

func validateChip(c *domain.Chip) error {
	c.IP = strings.TrimSpace(c.IP)
	c.Number = strings.TrimSpace(c.Number)
	c.Consultant = strings.TrimSpace(c.Consultant)

	if !chipIPPattern.MatchString(c.IP) {
		return fmt.Errorf("ip must be 1 to 3 digits: %w", ErrInvalidEntity)
	}
	if c.Number == "" {
		return fmt.Errorf("number is required: %w", ErrInvalidEntity)
	}
	if !domain.InVocabulary(c.Carrier, domain.ChipCarriers) {
		return fmt.Errorf("carrier %q is not an allowed value: %w", c.Carrier, ErrInvalidEntity)
	}
	if c.Consultant == "" {
		return fmt.Errorf("consultant is required: %w", ErrInvalidEntity)
	}
	if !domain.InVocabulary(c.Status, domain.ChipStatuses) {
		return fmt.Errorf("status %q is not an allowed value: %w", c.Status, ErrInvalidEntity)
	}
	return nil
}

// Save creates or updates a chip
func (r *chipRepositoryImpl) Save(ctx context.Context, chip domain.Chip) (domain.Chip, error) {
	if err := validateChip(&chip); err != nil {
		return domain.Chip{}, err
	}

	if chip.ID == 0 {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO chips (ip, number, carrier, consultant, status)
			VALUES (?, ?, ?, ?, ?)`,
			chip.IP, chip.Number, chip.Carrier, chip.Consultant, chip.Status)
		if err != nil {
			return domain.Chip{}, fmt.Errorf("failed to create chip: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.Chip{}, fmt.Errorf("failed to get chip ID: %w", err)
		}
		return r.FindByID(ctx, id)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE chips
		SET ip = ?, number = ?, carrier = ?, consultant = ?, status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		chip.IP, chip.Number, chip.Carrier, chip.Consultant, chip.Status, chip.ID)
	if err != nil {
		return domain.Chip{}, fmt.Errorf("failed to update chip: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Chip{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Chip{}, fmt.Errorf("chip with ID %d: %w", chip.ID, ErrNotFound)
	}
	return r.FindByID(ctx, chip.ID)
}

// FindByID retrieves a chip by its ID
func (r *chipRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Chip, error) {
	var c domain.Chip
	err := r.db.QueryRowContext(ctx, "SELECT "+chipColumns+" FROM chips WHERE id = ?", id).
		Scan(&c.ID, &c.IP, &c.Number, &c.Carrier, &c.Consultant, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Chip{}, fmt.Errorf("chip with ID %d: %w", id, ErrNotFound)
		}
		return domain.Chip{}, fmt.Errorf("failed to find chip: %w", err)
	}
	return c, nil
}

// FindAll retrieves all chips, newest first
func (r *chipRepositoryImpl) FindAll(ctx context.Context) ([]domain.Chip, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+chipColumns+" FROM chips ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list chips: %w", err)
	}
	defer rows.Close()

	var chips []domain.Chip
	for rows.Next() {
		var c domain.Chip
		if err := rows.Scan(&c.ID, &c.IP, &c.Number, &c.Carrier, &c.Consultant, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chip: %w", err)
		}
		chips = append(chips, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chips: %w", err)
	}
	return chips, nil
}

// DeleteByID removes a chip by its ID
func (r *chipRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM chips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete chip: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("chip with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExistsByID checks if a chip exists by its ID
func (r *chipRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chips WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check chip existence: %w", err)
	}
	return count > 0, nil
}

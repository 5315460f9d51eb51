package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helpdesk-tools/inventory/internal/domain"
)

// SessionTTL is how long a pairing session code stays valid. The dashboard
// polls for about a minute; the extra slack covers slow phones.
const SessionTTL = 5 * time.Minute

// TelSystemRepository defines domain-specific operations for phone-system
// numbers, including channel assignment and the QR pairing flow.
type TelSystemRepository interface {
	Repository[domain.TelSystem, int64]

	// AssignByNumberType atomically creates or updates the (number, type)
	// channel row in a single statement. No read-then-write sequence.
	AssignByNumberType(ctx context.Context, number, channelType string, consultant *string) (domain.TelSystem, error)

	// CreateSession issues a fresh pairing session code on the type-less
	// row for number, creating that row if needed.
	CreateSession(ctx context.Context, number string) (domain.TelSystem, error)

	// Pair marks the number as paired when sessionCode matches an
	// unexpired session. The session code is consumed.
	Pair(ctx context.Context, number, sessionCode string) (domain.TelSystem, error)

	// Unpair clears pairing metadata for the number.
	Unpair(ctx context.Context, number string) (domain.TelSystem, error)

	// UpdateBattery records the phone's battery level on the type-less row,
	// creating it if the agent reports before the number is registered.
	UpdateBattery(ctx context.Context, number string, level int64) (domain.TelSystem, error)
}

// telSystemRepositoryImpl implements TelSystemRepository
type telSystemRepositoryImpl struct {
	db *sql.DB
}

// NewTelSystemRepository creates a new tel-system repository
func NewTelSystemRepository(db *sql.DB) TelSystemRepository {
	return &telSystemRepositoryImpl{db: db}
}

const telSystemColumns = `id, number, type, consultant, session_code,
	session_expires_at, paired_at, battery_level, battery_updated_at,
	created_at, updated_at`

func validateTelSystem(ts *domain.TelSystem) error {
	ts.Number = strings.TrimSpace(ts.Number)
	if ts.Number == "" {
		return fmt.Errorf("number is required: %w", ErrInvalidEntity)
	}
	if ts.Type != nil && *ts.Type != "" && !domain.InVocabulary(*ts.Type, domain.TelSystemTypes) {
		return fmt.Errorf("type %q is not an allowed value: %w", *ts.Type, ErrInvalidEntity)
	}
	if ts.Consultant != nil {
		trimmed := strings.TrimSpace(*ts.Consultant)
		ts.Consultant = &trimmed
	}
	return nil
}

// Save creates or updates a tel-system row
func (r *telSystemRepositoryImpl) Save(ctx context.Context, ts domain.TelSystem) (domain.TelSystem, error) {
	if err := validateTelSystem(&ts); err != nil {
		return domain.TelSystem{}, err
	}

	if ts.ID == 0 {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO tel_systems (number, type, consultant)
			VALUES (?, ?, ?)`,
			ts.Number, nullable(ts.Type), nullable(ts.Consultant))
		if err != nil {
			if isUniqueViolation(err) {
				return domain.TelSystem{}, fmt.Errorf("number %s already has this channel: %w", ts.Number, ErrDuplicate)
			}
			return domain.TelSystem{}, fmt.Errorf("failed to create tel system: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.TelSystem{}, fmt.Errorf("failed to get tel system ID: %w", err)
		}
		return r.FindByID(ctx, id)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE tel_systems
		SET number = ?, type = ?, consultant = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		ts.Number, nullable(ts.Type), nullable(ts.Consultant), ts.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.TelSystem{}, fmt.Errorf("number %s already has this channel: %w", ts.Number, ErrDuplicate)
		}
		return domain.TelSystem{}, fmt.Errorf("failed to update tel system: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.TelSystem{}, fmt.Errorf("tel system with ID %d: %w", ts.ID, ErrNotFound)
	}
	return r.FindByID(ctx, ts.ID)
}

func scanTelSystem(row interface{ Scan(...any) error }) (domain.TelSystem, error) {
	var ts domain.TelSystem
	var channelType, consultant, sessionCode, sessionExpiresAt, pairedAt, batteryUpdatedAt sql.NullString
	var batteryLevel sql.NullInt64
	err := row.Scan(&ts.ID, &ts.Number, &channelType, &consultant, &sessionCode,
		&sessionExpiresAt, &pairedAt, &batteryLevel, &batteryUpdatedAt,
		&ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		return domain.TelSystem{}, err
	}
	ts.Type = stringPtr(channelType)
	ts.Consultant = stringPtr(consultant)
	ts.SessionCode = stringPtr(sessionCode)
	ts.SessionExpiresAt = stringPtr(sessionExpiresAt)
	ts.PairedAt = stringPtr(pairedAt)
	ts.BatteryLevel = int64Ptr(batteryLevel)
	ts.BatteryUpdatedAt = stringPtr(batteryUpdatedAt)
	return ts, nil
}

// FindByID retrieves a tel-system row by its ID
func (r *telSystemRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.TelSystem, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+telSystemColumns+" FROM tel_systems WHERE id = ?", id)
	ts, err := scanTelSystem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.TelSystem{}, fmt.Errorf("tel system with ID %d: %w", id, ErrNotFound)
		}
		return domain.TelSystem{}, fmt.Errorf("failed to find tel system: %w", err)
	}
	return ts, nil
}

// FindAll retrieves all tel-system rows, newest first
func (r *telSystemRepositoryImpl) FindAll(ctx context.Context) ([]domain.TelSystem, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+telSystemColumns+" FROM tel_systems ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list tel systems: %w", err)
	}
	defer rows.Close()

	var systems []domain.TelSystem
	for rows.Next() {
		ts, err := scanTelSystem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tel system: %w", err)
		}
		systems = append(systems, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tel systems: %w", err)
	}
	return systems, nil
}

// DeleteByID removes a tel-system row by its ID
func (r *telSystemRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tel_systems WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tel system: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tel system with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExistsByID checks if a tel-system row exists by its ID
func (r *telSystemRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tel_systems WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check tel system existence: %w", err)
	}
	return count > 0, nil
}

// AssignByNumberType creates or updates the (number, type) channel row
func (r *telSystemRepositoryImpl) AssignByNumberType(ctx context.Context, number, channelType string, consultant *string) (domain.TelSystem, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return domain.TelSystem{}, fmt.Errorf("number is required: %w", ErrInvalidEntity)
	}
	if !domain.InVocabulary(channelType, domain.TelSystemTypes) {
		return domain.TelSystem{}, fmt.Errorf("type %q is not an allowed value: %w", channelType, ErrInvalidEntity)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tel_systems (number, type, consultant)
		VALUES (?, ?, ?)
		ON CONFLICT (number, type) WHERE type IS NOT NULL
		DO UPDATE SET consultant = excluded.consultant, updated_at = CURRENT_TIMESTAMP`,
		number, channelType, nullable(consultant))
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to assign tel system: %w", err)
	}
	return r.findByNumberType(ctx, number, channelType)
}

func (r *telSystemRepositoryImpl) findByNumberType(ctx context.Context, number, channelType string) (domain.TelSystem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+telSystemColumns+" FROM tel_systems WHERE number = ? AND type = ?",
		number, channelType)
	ts, err := scanTelSystem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.TelSystem{}, fmt.Errorf("tel system %s/%s: %w", number, channelType, ErrNotFound)
		}
		return domain.TelSystem{}, fmt.Errorf("failed to find tel system: %w", err)
	}
	return ts, nil
}

func (r *telSystemRepositoryImpl) findUntypedRow(ctx context.Context, number string) (domain.TelSystem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+telSystemColumns+" FROM tel_systems WHERE number = ? AND type IS NULL", number)
	ts, err := scanTelSystem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.TelSystem{}, fmt.Errorf("tel system number %s: %w", number, ErrNotFound)
		}
		return domain.TelSystem{}, fmt.Errorf("failed to find tel system: %w", err)
	}
	return ts, nil
}

// CreateSession issues a fresh pairing session code for number
func (r *telSystemRepositoryImpl) CreateSession(ctx context.Context, number string) (domain.TelSystem, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return domain.TelSystem{}, fmt.Errorf("number is required: %w", ErrInvalidEntity)
	}

	code := uuid.NewString()
	expiresAt := time.Now().UTC().Add(SessionTTL).Format("2006-01-02 15:04:05")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tel_systems (number, session_code, session_expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (number) WHERE type IS NULL
		DO UPDATE SET session_code = excluded.session_code,
			session_expires_at = excluded.session_expires_at,
			updated_at = CURRENT_TIMESTAMP`,
		number, code, expiresAt)
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to create pairing session: %w", err)
	}
	return r.findUntypedRow(ctx, number)
}

// Pair consumes a valid session code and stamps paired_at
func (r *telSystemRepositoryImpl) Pair(ctx context.Context, number, sessionCode string) (domain.TelSystem, error) {
	number = strings.TrimSpace(number)

	// The row must exist before we can tell a bad code from a bad number.
	if _, err := r.findUntypedRow(ctx, number); err != nil {
		return domain.TelSystem{}, err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE tel_systems
		SET paired_at = CURRENT_TIMESTAMP, session_code = NULL,
			session_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE number = ? AND type IS NULL AND session_code = ?
			AND session_expires_at > datetime('now')`,
		number, sessionCode)
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to pair tel system: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.TelSystem{}, fmt.Errorf("session code is invalid or expired: %w", ErrInvalidEntity)
	}
	return r.findUntypedRow(ctx, number)
}

// Unpair clears pairing metadata for number
func (r *telSystemRepositoryImpl) Unpair(ctx context.Context, number string) (domain.TelSystem, error) {
	number = strings.TrimSpace(number)

	result, err := r.db.ExecContext(ctx, `
		UPDATE tel_systems
		SET paired_at = NULL, session_code = NULL, session_expires_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE number = ? AND type IS NULL`, number)
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to unpair tel system: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.TelSystem{}, fmt.Errorf("tel system number %s: %w", number, ErrNotFound)
	}
	return r.findUntypedRow(ctx, number)
}

// UpdateBattery records the battery level reported by the phone agent
func (r *telSystemRepositoryImpl) UpdateBattery(ctx context.Context, number string, level int64) (domain.TelSystem, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return domain.TelSystem{}, fmt.Errorf("number is required: %w", ErrInvalidEntity)
	}
	if level < 0 || level > 100 {
		return domain.TelSystem{}, fmt.Errorf("batteryLevel must be between 0 and 100: %w", ErrInvalidEntity)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tel_systems (number, battery_level, battery_updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (number) WHERE type IS NULL
		DO UPDATE SET battery_level = excluded.battery_level,
			battery_updated_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP`,
		number, level)
	if err != nil {
		return domain.TelSystem{}, fmt.Errorf("failed to update battery level: %w", err)
	}
	return r.findUntypedRow(ctx, number)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/domain"
)

// MigrationResult summarizes a bulk user migration run.
type MigrationResult struct {
	Inserted int `json:"inserted"`
	Matched  int `json:"matched"`
}

// UserRepository defines domain-specific operations for users
type UserRepository interface {
	Repository[domain.User, int64]
	FindByName(ctx context.Context, name string) (domain.User, error)

	// MigrateFromMachines upserts the distinct assigned-user strings found
	// on machines into the users collection.
	MigrateFromMachines(ctx context.Context) (MigrationResult, error)
}

// userRepositoryImpl implements UserRepository
type userRepositoryImpl struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = "id, name, email, created_at, updated_at"

func validateUser(u *domain.User) error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidEntity)
	}
	if u.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*u.Email))
		u.Email = &email
	}
	return nil
}

// Save creates or updates a user
func (r *userRepositoryImpl) Save(ctx context.Context, user domain.User) (domain.User, error) {
	if err := validateUser(&user); err != nil {
		return domain.User{}, err
	}

	if user.ID == 0 {
		result, err := r.db.ExecContext(ctx,
			"INSERT INTO users (name, email) VALUES (?, ?)",
			user.Name, nullable(user.Email))
		if err != nil {
			if isUniqueViolation(err) {
				return domain.User{}, fmt.Errorf("user %q: %w", user.Name, ErrDuplicate)
			}
			return domain.User{}, fmt.Errorf("failed to create user: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.User{}, fmt.Errorf("failed to get user ID: %w", err)
		}
		return r.FindByID(ctx, id)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		user.Name, nullable(user.Email), user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("user %q: %w", user.Name, ErrDuplicate)
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.User{}, fmt.Errorf("user with ID %d: %w", user.ID, ErrNotFound)
	}
	return r.FindByID(ctx, user.ID)
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var email sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, err
	}
	u.Email = stringPtr(email)
	return u, nil
}

// FindByID retrieves a user by its ID
func (r *userRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

// FindByName retrieves a user by name
func (r *userRepositoryImpl) FindByName(ctx context.Context, name string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE name = ?", name)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, fmt.Errorf("user %q: %w", name, ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

// FindAll retrieves all users ordered by name
func (r *userRepositoryImpl) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// DeleteByID removes a user by its ID
func (r *userRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExistsByID checks if a user exists by its ID
func (r *userRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// MigrateFromMachines upserts distinct machine.user values into users
func (r *userRepositoryImpl) MigrateFromMachines(ctx context.Context) (MigrationResult, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT TRIM(user)) FROM machines
		WHERE user IS NOT NULL AND TRIM(user) <> ''`).Scan(&total)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to count machine users: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (name)
		SELECT DISTINCT TRIM(user) FROM machines
		WHERE user IS NOT NULL AND TRIM(user) <> ''
		ON CONFLICT (name) DO NOTHING`)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to migrate users from machines: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return MigrationResult{
		Inserted: int(inserted),
		Matched:  total - int(inserted),
	}, nil
}

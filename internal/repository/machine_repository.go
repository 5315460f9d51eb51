package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/domain"
)

// MachineRepository defines domain-specific operations for machines
type MachineRepository interface {
	Repository[domain.Machine, int64]
	FindByMachineID(ctx context.Context, machineID int64) (domain.Machine, error)
	DistinctUsers(ctx context.Context) ([]string, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// machineRepositoryImpl implements MachineRepository
type machineRepositoryImpl struct {
	db *sql.DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *sql.DB) MachineRepository {
	return &machineRepositoryImpl{db: db}
}

const machineColumns = `id, name, machine_id, agent_url, category, status,
	processor, ram, storage, location, user, description, created_at, updated_at`

func validateMachine(m *domain.Machine) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidEntity)
	}
	if m.MachineID == 0 {
		return fmt.Errorf("machineID is required: %w", ErrInvalidEntity)
	}
	if !domain.InVocabulary(m.Category, domain.MachineCategories) {
		return fmt.Errorf("category %q is not an allowed value: %w", m.Category, ErrInvalidEntity)
	}
	if !domain.InVocabulary(m.Status, domain.MachineStatuses) {
		return fmt.Errorf("status %q is not an allowed value: %w", m.Status, ErrInvalidEntity)
	}
	if m.RAM != nil && *m.RAM != "" && !domain.InVocabulary(*m.RAM, domain.MachineRAMSizes) {
		return fmt.Errorf("ram %q is not an allowed value: %w", *m.RAM, ErrInvalidEntity)
	}
	if m.Storage != nil && *m.Storage != "" && !domain.InVocabulary(*m.Storage, domain.MachineStorageSizes) {
		return fmt.Errorf("storage %q is not an allowed value: %w", *m.Storage, ErrInvalidEntity)
	}
	if m.Location != nil && *m.Location != "" && !domain.InVocabulary(*m.Location, domain.MachineLocations) {
		return fmt.Errorf("location %q is not an allowed value: %w", *m.Location, ErrInvalidEntity)
	}
	return nil
}

// Save creates or updates a machine
func (r *machineRepositoryImpl) Save(ctx context.Context, machine domain.Machine) (domain.Machine, error) {
	if err := validateMachine(&machine); err != nil {
		return domain.Machine{}, err
	}

	if machine.ID == 0 {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO machines (name, machine_id, agent_url, category, status,
				processor, ram, storage, location, user, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			machine.Name, machine.MachineID, nullable(machine.AgentURL),
			machine.Category, machine.Status, nullable(machine.Processor),
			nullable(machine.RAM), nullable(machine.Storage), nullable(machine.Location),
			nullable(machine.User), nullable(machine.Description))
		if err != nil {
			if isUniqueViolation(err) {
				return domain.Machine{}, fmt.Errorf("machine with machineID %d: %w", machine.MachineID, ErrDuplicate)
			}
			return domain.Machine{}, fmt.Errorf("failed to create machine: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.Machine{}, fmt.Errorf("failed to get machine ID: %w", err)
		}
		return r.FindByID(ctx, id)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE machines
		SET name = ?, machine_id = ?, agent_url = ?, category = ?, status = ?,
			processor = ?, ram = ?, storage = ?, location = ?, user = ?,
			description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		machine.Name, machine.MachineID, nullable(machine.AgentURL),
		machine.Category, machine.Status, nullable(machine.Processor),
		nullable(machine.RAM), nullable(machine.Storage), nullable(machine.Location),
		nullable(machine.User), nullable(machine.Description), machine.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Machine{}, fmt.Errorf("machine with machineID %d: %w", machine.MachineID, ErrDuplicate)
		}
		return domain.Machine{}, fmt.Errorf("failed to update machine: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Machine{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Machine{}, fmt.Errorf("machine with ID %d: %w", machine.ID, ErrNotFound)
	}
	return r.FindByID(ctx, machine.ID)
}

func scanMachine(row interface{ Scan(...any) error }) (domain.Machine, error) {
	var m domain.Machine
	var agentURL, processor, ram, storage, location, user, description sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.MachineID, &agentURL, &m.Category, &m.Status,
		&processor, &ram, &storage, &location, &user, &description,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Machine{}, err
	}
	m.AgentURL = stringPtr(agentURL)
	m.Processor = stringPtr(processor)
	m.RAM = stringPtr(ram)
	m.Storage = stringPtr(storage)
	m.Location = stringPtr(location)
	m.User = stringPtr(user)
	m.Description = stringPtr(description)
	return m, nil
}

// FindByID retrieves a machine by its ID
func (r *machineRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Machine, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+machineColumns+" FROM machines WHERE id = ?", id)
	m, err := scanMachine(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Machine{}, fmt.Errorf("machine with ID %d: %w", id, ErrNotFound)
		}
		return domain.Machine{}, fmt.Errorf("failed to find machine: %w", err)
	}
	return m, nil
}

// FindByMachineID retrieves a machine by its asset number
func (r *machineRepositoryImpl) FindByMachineID(ctx context.Context, machineID int64) (domain.Machine, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+machineColumns+" FROM machines WHERE machine_id = ?", machineID)
	m, err := scanMachine(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Machine{}, fmt.Errorf("machine with machineID %d: %w", machineID, ErrNotFound)
		}
		return domain.Machine{}, fmt.Errorf("failed to find machine: %w", err)
	}
	return m, nil
}

// FindAll retrieves all machines, newest first
func (r *machineRepositoryImpl) FindAll(ctx context.Context) ([]domain.Machine, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+machineColumns+" FROM machines ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	defer rows.Close()

	var machines []domain.Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan machine: %w", err)
		}
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating machines: %w", err)
	}
	return machines, nil
}

// DeleteByID removes a machine by its ID
func (r *machineRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM machines WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete machine: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("machine with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExistsByID checks if a machine exists by its ID
func (r *machineRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM machines WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check machine existence: %w", err)
	}
	return count > 0, nil
}

// DistinctUsers returns the distinct non-empty assigned-user strings
func (r *machineRepositoryImpl) DistinctUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT TRIM(user) FROM machines
		WHERE user IS NOT NULL AND TRIM(user) <> ''
		ORDER BY TRIM(user)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list machine users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan machine user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating machine users: %w", err)
	}
	return users, nil
}

// CountByCategory returns machine counts keyed by category
func (r *machineRepositoryImpl) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM machines GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to count machines: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan machine count: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating machine counts: %w", err)
	}
	return counts, nil
}

package migrations

import (
	"database/sql"
)

// GetPerformanceMigrations returns performance optimization migrations
func GetPerformanceMigrations() []Migration {
	return []Migration{
		{
			Version: 10,
			Name:    "add_performance_indices",
			Up: func(tx *sql.Tx) error {
				// Indices for the common list orderings and lookups
				indices := []string{
					"CREATE INDEX IF NOT EXISTS idx_machines_machine_id ON machines(machine_id)",
					"CREATE INDEX IF NOT EXISTS idx_machines_created_at ON machines(created_at)",
					"CREATE INDEX IF NOT EXISTS idx_chips_created_at ON chips(created_at)",
					"CREATE INDEX IF NOT EXISTS idx_tel_systems_number ON tel_systems(number)",
					"CREATE INDEX IF NOT EXISTS idx_tel_systems_created_at ON tel_systems(created_at)",
					"CREATE INDEX IF NOT EXISTS idx_locations_name ON locations(name)",
					"CREATE INDEX IF NOT EXISTS idx_users_name ON users(name)",
				}

				for _, indexSQL := range indices {
					if _, err := tx.Exec(indexSQL); err != nil {
						return err
					}
				}

				return nil
			},
			Down: func(tx *sql.Tx) error {
				indices := []string{
					"DROP INDEX IF EXISTS idx_machines_machine_id",
					"DROP INDEX IF EXISTS idx_machines_created_at",
					"DROP INDEX IF EXISTS idx_chips_created_at",
					"DROP INDEX IF EXISTS idx_tel_systems_number",
					"DROP INDEX IF EXISTS idx_tel_systems_created_at",
					"DROP INDEX IF EXISTS idx_locations_name",
					"DROP INDEX IF EXISTS idx_users_name",
				}

				for _, dropSQL := range indices {
					if _, err := tx.Exec(dropSQL); err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}

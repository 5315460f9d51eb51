package migrations

import (
	"database/sql"
)

// GetInitialMigrations returns all initial migrations
func GetInitialMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_inventory_tables",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE machines (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						machine_id INTEGER NOT NULL UNIQUE,
						agent_url TEXT,
						category TEXT NOT NULL,
						status TEXT NOT NULL,
						processor TEXT,
						ram TEXT,
						storage TEXT,
						location TEXT,
						user TEXT,
						description TEXT,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE chips (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						ip TEXT NOT NULL,
						number TEXT NOT NULL,
						carrier TEXT NOT NULL,
						consultant TEXT NOT NULL,
						status TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE tel_systems (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						number TEXT NOT NULL,
						type TEXT,
						consultant TEXT,
						session_code TEXT,
						session_expires_at DATETIME,
						paired_at DATETIME,
						battery_level INTEGER,
						battery_updated_at DATETIME,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				if err != nil {
					return err
				}

				// One row per (number, type) channel, and a single type-less
				// row per number carrying pairing metadata.
				_, err = tx.Exec(`CREATE UNIQUE INDEX idx_tel_systems_number_type
					ON tel_systems(number, type) WHERE type IS NOT NULL`)
				if err != nil {
					return err
				}
				_, err = tx.Exec(`CREATE UNIQUE INDEX idx_tel_systems_number_untyped
					ON tel_systems(number) WHERE type IS NULL`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE locations (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL UNIQUE,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE users (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL UNIQUE,
						email TEXT,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				return err
			},
			Down: func(tx *sql.Tx) error {
				for _, table := range []string{"users", "locations", "tel_systems", "chips", "machines"} {
					if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version: 2,
			Name:    "create_products_table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE products (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						quantity INTEGER NOT NULL,
						price REAL NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				return err
			},
			Down: func(tx *sql.Tx) error {
				_, err := tx.Exec("DROP TABLE IF EXISTS products")
				return err
			},
		},
	}
}

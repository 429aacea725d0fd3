// Package seeders populates dictionary data and a default admin so a
// fresh database is immediately usable.
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Run executes all seeders. Every step is idempotent: rerunning against
// a populated database changes nothing.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("seeding database...")

	if err := seedDepartments(ctx, db); err != nil {
		return fmt.Errorf("seeding departments: %w", err)
	}
	if err := seedTeams(ctx, db); err != nil {
		return fmt.Errorf("seeding maintenance teams: %w", err)
	}
	if err := seedAdminUser(ctx, db); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := seedEquipment(ctx, db); err != nil {
		return fmt.Errorf("seeding equipment: %w", err)
	}

	log.Println("seeding finished")
	return nil
}

func seedDepartments(ctx context.Context, db *pgxpool.Pool) error {
	for _, d := range departmentsData {
		_, err := db.Exec(ctx,
			"INSERT INTO departments (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
			d.Name, d.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTeams(ctx context.Context, db *pgxpool.Pool) error {
	for _, t := range teamsData {
		_, err := db.Exec(ctx,
			"INSERT INTO maintenance_teams (name, specialization) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
			t.Name, t.Specialization)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	const email = "admin@gearguard.local"

	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		log.Println("  - admin user already present, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (name, email, password_hash, role, is_active)
		VALUES ('Administrator', $1, $2, 'admin', TRUE)
	`, email, string(hash))
	if err != nil {
		return err
	}

	log.Println("  - admin user created (admin@gearguard.local / admin123, change it)")
	return nil
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	for _, e := range equipmentData {
		var departmentID, teamID string
		if err := db.QueryRow(ctx, "SELECT id FROM departments WHERE name = $1", e.Department).Scan(&departmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("department %q not seeded", e.Department)
			}
			return err
		}
		if err := db.QueryRow(ctx, "SELECT id FROM maintenance_teams WHERE name = $1", e.Team).Scan(&teamID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("maintenance team %q not seeded", e.Team)
			}
			return err
		}

		_, err := db.Exec(ctx, `
			INSERT INTO equipment (name, serial_number, category, location, department_id, maintenance_team_id, status)
			VALUES ($1, $2, $3, $4, $5, $6, 'active')
			ON CONFLICT (serial_number) DO NOTHING
		`, e.Name, e.SerialNumber, e.Category, e.Location, departmentID, teamID)
		if err != nil {
			return err
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		seedDatabase(db)
	},
}

func clearTables(db *sqlx.DB) {
	tables := []string{
		"notifications",
		"leave_requests",
		"expense_requests",
		"leave_balances",
		"accounts",
		"employees",
		"departments",
	}
	for _, t := range tables {
		if _, err := db.Exec("DELETE FROM " + t); err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedDatabase(db *sqlx.DB) {
	departments := []struct {
		Name string
	}{
		{"Engineering"},
		{"Operations"},
		{"Finance"},
	}

	deptIDs := make(map[string]int64)
	for _, d := range departments {
		var id int64
		err := db.Get(&id, "SELECT id FROM departments WHERE name = $1", d.Name)
		if err != nil {
			if err := db.Get(&id,
				"INSERT INTO departments (name, created_at, updated_at) VALUES ($1, now(), now()) RETURNING id",
				d.Name); err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Name, err)
			}
			fmt.Println("Seeded department:", d.Name)
		}
		deptIDs[d.Name] = id
	}

	employees := []struct {
		Name       string
		Email      string
		Department string
		Role       string
		IsManager  bool
	}{
		{"Rani Kusuma", "rani@mail.com", "Engineering", "head", true},
		{"Bima Putra", "bima@mail.com", "Engineering", "deputy", false},
		{"Sari Dewi", "sari@mail.com", "Engineering", "member", false},
		{"Joko Santoso", "joko@mail.com", "Operations", "head", true},
		{"Lina Hartati", "lina@mail.com", "Operations", "member", false},
		{"Agus Wijaya", "agus@mail.com", "Finance", "member", false},
	}

	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	empIDs := make(map[string]int64)
	for _, e := range employees {
		var id int64
		err := db.Get(&id, "SELECT id FROM employees WHERE email = $1", e.Email)
		if err != nil {
			if err := db.Get(&id,
				"INSERT INTO employees (name, email, department_id, role, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now()) RETURNING id",
				e.Name, e.Email, deptIDs[e.Department], e.Role); err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Email, err)
			}
			fmt.Println("Seeded employee:", e.Email)
		}
		empIDs[e.Email] = id

		var exists int
		if err := db.Get(&exists, "SELECT 1 FROM accounts WHERE email = $1", e.Email); err != nil {
			if _, err := db.Exec(
				"INSERT INTO accounts (email, password_hash, is_active, is_manager, created_at, updated_at) VALUES ($1, $2, true, $3, now(), now())",
				e.Email, string(hash), e.IsManager); err != nil {
				log.Fatalf("failed to insert account %s: %v", e.Email, err)
			}
			fmt.Println("Seeded account:", e.Email)
		}
	}

	// Headship pointers on the departments
	headships := []struct {
		Department string
		Head       string
		Deputy     *string
	}{
		{"Engineering", "rani@mail.com", ptr("bima@mail.com")},
		{"Operations", "joko@mail.com", nil},
	}
	for _, h := range headships {
		var deputyID *int64
		if h.Deputy != nil {
			id := empIDs[*h.Deputy]
			deputyID = &id
		}
		if _, err := db.Exec(
			"UPDATE departments SET manager_id = $1, deputy_manager_id = $2, updated_at = now() WHERE id = $3",
			empIDs[h.Head], deputyID, deptIDs[h.Department]); err != nil {
			log.Fatalf("failed to set headship for %s: %v", h.Department, err)
		}
	}

	// Annual leave allowance for every employee
	for _, e := range employees {
		var exists int
		if err := db.Get(&exists,
			"SELECT 1 FROM leave_balances WHERE employee_id = $1 AND leave_type = 'annual'",
			empIDs[e.Email]); err != nil {
			if _, err := db.Exec(
				"INSERT INTO leave_balances (employee_id, leave_type, remaining_days, created_at, updated_at) VALUES ($1, 'annual', 20, now(), now())",
				empIDs[e.Email]); err != nil {
				log.Fatalf("failed to insert leave balance for %s: %v", e.Email, err)
			}
		}
	}

	fmt.Println("Database seeded successfully")
}

func ptr(s string) *string { return &s }

// Command seed inserts a demo catalog into the database: a handful of
// provider accounts and the services they offer. It refuses to run when
// services already exist.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"golang.org/x/crypto/bcrypt"
)

type demoService struct {
	Name        string
	Description string
	Price       float64
	Location    string
}

type demoProvider struct {
	Username string
	Email    string
	Location string
	Services []demoService
}

var demoProviders = []demoProvider{
	{
		Username: "sparkle_cleaning",
		Email:    "contact@sparklecleaning.example",
		Location: "Springfield",
		Services: []demoService{
			{"Home cleaning", "Full apartment or house cleaning, supplies included.", 45, "Springfield"},
			{"Office cleaning", "After-hours office cleaning for small businesses.", 80, "Springfield"},
		},
	},
	{
		Username: "fixit_plumbing",
		Email:    "jobs@fixitplumbing.example",
		Location: "Shelbyville",
		Services: []demoService{
			{"Leak repair", "Diagnosis and repair of pipe and faucet leaks.", 60, "Shelbyville"},
			{"Water heater installation", "Supply and install of standard water heaters.", 220, "Shelbyville"},
		},
	},
	{
		Username: "green_gardens",
		Email:    "hello@greengardens.example",
		Location: "Springfield",
		Services: []demoService{
			{"Lawn mowing", "Weekly or one-off lawn mowing and edging.", 30, "Springfield"},
			{"Garden cleanup", "Seasonal pruning, weeding and green waste removal.", 75, "Springfield"},
		},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "")
	dbName := getEnv("DB_NAME", "local_services_db")
	dbSSLMode := getEnv("DB_SSL_MODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("✅ Successfully connected to database")

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM services").Scan(&count); err != nil {
		log.Fatal("Failed to check services count:", err)
	}
	if count > 0 {
		log.Printf("⚠️  Services already exist (%d found). Skipping insertion.", count)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("SEED_PASSWORD", "provider123")), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password:", err)
	}

	inserted := 0
	for _, p := range demoProviders {
		var providerID int64
		err := db.QueryRow(`
			INSERT INTO users (username, email, password_hash, role, location, created_at, updated_at)
			VALUES ($1, $2, $3, 'provider', $4, NOW(), NOW())
			RETURNING id
		`, p.Username, p.Email, string(hash), p.Location).Scan(&providerID)
		if err != nil {
			log.Fatalf("Failed to insert provider %s: %v", p.Username, err)
		}

		for _, s := range p.Services {
			_, err := db.Exec(`
				INSERT INTO services (provider_id, name, description, price, location, is_available, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
			`, providerID, s.Name, s.Description, s.Price, s.Location)
			if err != nil {
				log.Fatalf("Failed to insert service %s: %v", s.Name, err)
			}
			inserted++
		}
	}

	log.Printf("✅ Seeded %d providers and %d services", len(demoProviders), inserted)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

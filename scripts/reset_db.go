package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL STUDENT DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all students and their fee ledgers")
	fmt.Println("  - Delete all exam results and reviews")
	fmt.Println("  - Delete all login logs and online transactions")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println("  - Keep admin logins and staff records")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "institute_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	ctx := context.Background()

	fmt.Println()
	fmt.Println("Resetting database...")

	tables := []string{
		"online_course_registrations",
		"online_transactions",
		"login_logs",
		"reviews",
		"exam_results",
		"fee_audit_log",
		"fee_installments",
		"students",
		"roll_sequences",
	}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v", table, err)
		}
		fmt.Printf("  - cleared %s\n", table)
	}

	fmt.Println()
	fmt.Println("Done. Admin logins and staff records were kept.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package main

import (
	"log"
	"os"

	"fixzit-be/internal/model"
	"fixzit-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'work_order_status') THEN CREATE TYPE work_order_status AS ENUM ('open', 'in_progress', 'on_hold', 'resolved', 'closed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'work_order_priority') THEN CREATE TYPE work_order_priority AS ENUM ('low', 'medium', 'high', 'urgent'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'invoice_status') THEN CREATE TYPE invoice_status AS ENUM ('draft', 'issued', 'paid', 'voided', 'overdue'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'property_type') THEN CREATE TYPE property_type AS ENUM ('residential', 'commercial', 'industrial', 'mixed_use'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Organization{},
		&model.Property{},
		&model.WorkOrder{},
		&model.Invoice{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes GORM tags can't express
	log.Println("Step 3: Creating Search Indexes...")

	postMigrationSQL := []string{
		// Full-text search over work order titles and descriptions
		`CREATE INDEX IF NOT EXISTS idx_work_orders_fts
		 ON work_orders
		 USING GIN (to_tsvector('english', coalesce(title,'') || ' ' || coalesce(description,'')));`,

		// ANN index for description embeddings (cosine distance)
		`CREATE INDEX IF NOT EXISTS idx_work_orders_embedding
		 ON work_orders
		 USING hnsw (description_embedding vector_cosine_ops);`,

		// Tenant-qualified lookups dominate every query plan
		`CREATE INDEX IF NOT EXISTS idx_work_orders_org_status ON work_orders (org_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_org_status ON invoices (org_id, status);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

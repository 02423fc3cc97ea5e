package main

import (
	"log"
	"os"

	"ai-commerce-chat-be/internal/model"
	"ai-commerce-chat-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// Extensions GORM AutoMigrate does not manage
	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Store{},
		&model.Product{},
		&model.ProductEmbedding{},
		&model.Campaign{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Order{},
		&model.OrderLineItem{},
		&model.Faq{},
		&model.StorePolicy{},
		&model.Discount{},
		&model.UsageEvent{},
		&model.CreditTopup{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// ANN index for vector search, store-scoped lookups
	log.Println("Step 3: Creating indexes...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_product_embeddings_hnsw
		 ON product_embeddings USING hnsw (embedding_value vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_products_store_handle
		 ON products (store_id, handle);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sessions_store_guest
		 ON chat_sessions (store_id, guest_id);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sessions_store_email
		 ON chat_sessions (store_id, customer_email);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_session_created
		 ON chat_messages (chat_session_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_usage_events_store_created
		 ON usage_events (store_id, created_at);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	log.Println("Migration completed successfully")
}

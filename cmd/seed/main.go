package main

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"ai-commerce-chat-be/internal/model"
	"ai-commerce-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Seeds a demo store with a small catalog so the chat widget can be exercised
// end to end against a fresh database.
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

	green := color.New(color.FgGreen).PrintfFunc()
	yellow := color.New(color.FgYellow).PrintfFunc()

	var existing model.Store
	if err := db.Where("shop_domain = ?", "demo.myshop.test").First(&existing).Error; err == nil {
		yellow("Demo store already exists (public key %s), skipping\n", existing.PublicKey)
		return
	}

	store := model.Store{
		Id:           uuid.New(),
		ShopDomain:   "demo.myshop.test",
		Name:         "Aurora Outfitters",
		PublicKey:    "pk_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		SupportEmail: "support@demo.myshop.test",
		Description:  "Outdoor apparel and accessories for year-round adventures.",
		AiCredits:    500,
		IsActive:     true,
	}
	if err := db.Create(&store).Error; err != nil {
		log.Fatalf("Error creating demo store: %v", err)
	}
	green("Created store %s\n", store.Name)

	products := []model.Product{
		{Title: "Classic Canvas Sneakers", Handle: "classic-canvas-sneakers", ProductType: "Shoes", Price: "49.99",
			Description: "Low-top canvas sneakers with a cushioned sole, good for everyday wear.",
			Tags:        mustJSON([]string{"shoes", "canvas", "casual"})},
		{Title: "Trail Runner Pro", Handle: "trail-runner-pro", ProductType: "Shoes", Price: "129.00",
			Description: "Lightweight trail running shoes with aggressive grip and rock plate.",
			Tags:        mustJSON([]string{"shoes", "running", "trail"})},
		{Title: "Merino Wool Beanie", Handle: "merino-wool-beanie", ProductType: "Accessories", Price: "24.50",
			Description: "Soft merino beanie that regulates temperature in cold weather.",
			Tags:        mustJSON([]string{"winter", "wool", "hat"})},
		{Title: "Waterproof Shell Jacket", Handle: "waterproof-shell-jacket", ProductType: "Jackets", Price: "189.00",
			Description: "Three-layer waterproof shell with taped seams and pit zips.",
			Tags:        mustJSON([]string{"jacket", "waterproof", "hiking"})},
		{Title: "Everyday Tote Bag", Handle: "everyday-tote-bag", ProductType: "Bags", Price: "39.00",
			Description: "Durable cotton tote with internal pockets, fits a 15 inch laptop.",
			Tags:        mustJSON([]string{"bag", "cotton", "casual"})},
		{Title: "Insulated Water Bottle 750ml", Handle: "insulated-water-bottle-750", ProductType: "Accessories", Price: "29.95",
			Description: "Double-wall steel bottle, keeps drinks cold 24 hours.",
			Tags:        mustJSON([]string{"bottle", "steel", "outdoor"})},
	}
	for i := range products {
		products[i].Id = uuid.New()
		products[i].StoreId = store.Id
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatalf("Error creating product %s: %v", products[i].Title, err)
		}
	}
	green("Created %d products\n", len(products))

	faqs := []model.Faq{
		{Question: "How long does shipping take?", Answer: "Standard shipping takes 3-5 business days within the country, 7-14 days international."},
		{Question: "Do you ship internationally?", Answer: "Yes, we ship to over 40 countries. Duties may apply at delivery."},
		{Question: "What is your return policy?", Answer: "Unworn items can be returned within 30 days for a full refund."},
	}
	for i := range faqs {
		faqs[i].Id = uuid.New()
		faqs[i].StoreId = store.Id
		if err := db.Create(&faqs[i]).Error; err != nil {
			log.Fatalf("Error creating faq: %v", err)
		}
	}
	green("Created %d FAQs\n", len(faqs))

	policies := []model.StorePolicy{
		{PolicyType: "shipping", Content: "Orders placed before 2pm ship the same day. Free shipping over $75."},
		{PolicyType: "returns", Content: "30-day returns on unworn items with original tags. Refunds issued to the original payment method."},
		{PolicyType: "privacy", Content: "We never sell customer data. Chat transcripts are retained for 90 days."},
	}
	for i := range policies {
		policies[i].Id = uuid.New()
		policies[i].StoreId = store.Id
		if err := db.Create(&policies[i]).Error; err != nil {
			log.Fatalf("Error creating policy: %v", err)
		}
	}
	green("Created %d policies\n", len(policies))

	discount := model.Discount{
		Id:          uuid.New(),
		StoreId:     store.Id,
		Code:        "WELCOME10",
		Description: "10% off your first order",
		Value:       "10%",
		IsActive:    true,
	}
	if err := db.Create(&discount).Error; err != nil {
		log.Fatalf("Error creating discount: %v", err)
	}
	green("Created discount %s\n", discount.Code)

	campaign := model.Campaign{
		Id:              uuid.New(),
		StoreId:         store.Id,
		Name:            "Winter sale",
		TriggerKeywords: mustJSON([]string{"winter sale", "sale", "discount code"}),
		ResponseMessage: "Our winter sale is on! Use code WELCOME10 for 10% off your first order.",
		ProductIds:      mustJSON([]uuid.UUID{products[2].Id, products[3].Id}),
		IsActive:        true,
	}
	if err := db.Create(&campaign).Error; err != nil {
		log.Fatalf("Error creating campaign: %v", err)
	}
	green("Created campaign %s\n", campaign.Name)

	green("\nDone. Widget key: %s\n", store.PublicKey)
	yellow("Run the embedding reindex endpoint (POST /api/product/v1/reindex) to populate vectors.\n")
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Error marshaling seed data: %v", err)
	}
	return datatypes.JSON(b)
}

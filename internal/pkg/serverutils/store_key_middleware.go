package serverutils

import (
	"context"
	"time"

	"ai-commerce-chat-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
)

// StoreLookup resolves a widget public key to its store.
type StoreLookup func(ctx context.Context, publicKey string) (*entity.Store, error)

// StoreKeyMiddleware authenticates storefront widget requests via the
// X-Store-Key header. Resolved stores are cached briefly so a busy widget
// does not hit the database on every message.
func StoreKeyMiddleware(lookup StoreLookup) fiber.Handler {
	cache := gocache.New(1*time.Minute, 5*time.Minute)

	return func(ctx *fiber.Ctx) error {
		key := ctx.Get("X-Store-Key")
		if key == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing store key"})
		}

		var store *entity.Store
		if cached, found := cache.Get(key); found {
			store = cached.(*entity.Store)
		} else {
			found, err := lookup(ctx.Context(), key)
			if err != nil {
				return err
			}
			if found == nil {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unknown store key"})
			}
			cache.Set(key, found, gocache.DefaultExpiration)
			store = found
		}

		if !store.IsActive {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Store is not active"})
		}

		ctx.Locals("store", store)
		ctx.Locals("store_id", store.Id.String())
		return ctx.Next()
	}
}

package tools

import (
	"context"
	"encoding/json"

	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
)

// OrderTracker resolves an order by its customer-facing number.
type OrderTracker interface {
	OrderByNumber(ctx context.Context, storeId uuid.UUID, orderNumber string) (*entity.Order, error)
}

// ProductFinder resolves a single product by handle or fuzzy title.
type ProductFinder interface {
	ProductByHandleOrTitle(ctx context.Context, storeId uuid.UUID, handleOrTitle string) (*entity.Product, error)
}

// --- track_order ---

type TrackOrderTool struct {
	orders OrderTracker
}

func NewTrackOrderTool(orders OrderTracker) *TrackOrderTool {
	return &TrackOrderTool{orders: orders}
}

func (t *TrackOrderTool) Name() string { return "track_order" }

func (t *TrackOrderTool) Description() string {
	return "Look up the status of a customer's order by its order number (e.g. #1001)."
}

func (t *TrackOrderTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"order_number": {"type": "string", "description": "The order number the customer provided"}
		},
		"required": ["order_number"]
	}`)
}

func (t *TrackOrderTool) Execute(ctx context.Context, call Call) (*Result, error) {
	var args struct {
		OrderNumber string `json:"order_number"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil || args.OrderNumber == "" {
		return &Result{Content: jsonResult(map[string]string{"error": "an order number is required"})}, nil
	}

	order, err := t.orders.OrderByNumber(ctx, call.StoreId, args.OrderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return &Result{Content: jsonResult(map[string]string{
			"message": "No order with that number was found. Ask the customer to double-check it.",
		})}, nil
	}

	view := map[string]string{
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total":        order.Total,
	}
	if order.TrackingURL != "" {
		view["tracking_url"] = order.TrackingURL
	}
	return &Result{Content: jsonResult(view)}, nil
}

// --- get_product_details ---

type GetProductDetailsTool struct {
	products ProductFinder
}

func NewGetProductDetailsTool(products ProductFinder) *GetProductDetailsTool {
	return &GetProductDetailsTool{products: products}
}

func (t *GetProductDetailsTool) Name() string { return "get_product_details" }

func (t *GetProductDetailsTool) Description() string {
	return "Fetch full details of one specific product the customer is asking about, by its name or handle."
}

func (t *GetProductDetailsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"product": {"type": "string", "description": "Product name or handle"}
		},
		"required": ["product"]
	}`)
}

func (t *GetProductDetailsTool) Execute(ctx context.Context, call Call) (*Result, error) {
	var args struct {
		Product string `json:"product"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil || args.Product == "" {
		return &Result{Content: jsonResult(map[string]string{"error": "a product name is required"})}, nil
	}

	product, err := t.products.ProductByHandleOrTitle(ctx, call.StoreId, args.Product)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return &Result{Content: jsonResult(map[string]string{
			"message": "No product with that name was found in this store.",
		})}, nil
	}

	return &Result{
		Content: jsonResult(map[string]interface{}{
			"title":       product.Title,
			"description": product.Description,
			"price":       product.Price,
			"type":        product.ProductType,
			"tags":        product.Tags,
		}),
		Products: []entity.ProductRef{{
			Id:     product.Id,
			Title:  product.Title,
			Handle: product.Handle,
			Price:  product.Price,
		}},
	}, nil
}

package store

// ProductRef is the compact product reference kept in the runtime session
// state and on persisted assistant turns.
type ProductRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Price  string `json:"price"`
}

// Session is the active chat session state held in memory between turns.
// It is a hot cache only: the durable copy lives in Postgres and Redis.
type Session struct {
	ID      string `json:"id"` // ChatSessionID
	StoreID string `json:"store_id"`

	// Last retrieval context, used to resolve short refinement queries
	// ("how much is it") without a new search.
	LastQuery    string       `json:"last_query"`
	LastProducts []ProductRef `json:"last_products"`
}

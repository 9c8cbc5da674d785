package ai

import (
	"context"

	"concierge/models"
	"concierge/services/booking"
)

// LLMClient is the language-model surface the chat service depends on.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Retriever answers similarity searches over the ingested documents.
type Retriever interface {
	// Ready reports whether any document has been ingested yet.
	Ready() bool
	Search(ctx context.Context, query string, topK int) ([]models.SearchResult, error)
}

// ChatContext is everything the service remembers about one conversation:
// the rolling transcript plus that conversation's own booking session. Each
// conversation owns an independent session; there is no shared booking state.
type ChatContext struct {
	History       []models.ChatMessage `json:"history"`
	Booking       booking.Session      `json:"booking"`
	BookingActive bool                 `json:"bookingActive"`
}

// ContextStore persists chat contexts keyed by conversation ID.
type ContextStore interface {
	// Get returns the stored context, or a zero-valued one for unknown IDs.
	Get(ctx context.Context, conversationID string) (*ChatContext, error)
	Set(ctx context.Context, conversationID string, cc *ChatContext) error
	Clear(ctx context.Context, conversationID string) error
}

// ChatService processes user messages end to end: routing, booking flow,
// document Q&A and transcript upkeep.
type ChatService interface {
	ProcessUserInput(ctx context.Context, conversationID, text string) (*models.ChatResponse, error)
	CancelBooking(ctx context.Context, conversationID string) (*models.ChatResponse, error)
}

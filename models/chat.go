package models

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the rolling conversation transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text" binding:"required"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	ConversationID    string `json:"conversation_id"`
	Reply             string `json:"reply"`
	BookingInProgress bool   `json:"booking_in_progress"`
}

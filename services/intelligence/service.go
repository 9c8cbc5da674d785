package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"concierge/models"
	"concierge/services/booking"

	"go.uber.org/zap"
)

const (
	welcomeMessage = "Hello! I can help with questions about uploaded documents, " +
		"or book an appointment for you. Just say 'book appointment' to get started."

	fallbackMessage = "I can only assist with questions about uploaded documents " +
		"or with booking appointments. Please upload a PDF or say 'book appointment' to proceed."

	bookingTip = "Tip: you can book an appointment by saying 'book appointment'."

	cancelledMessage = "Your booking has been cancelled. Say 'book appointment' whenever you want to start again."

	answerFailedMessage = "Sorry, I could not answer that right now. Please try again."

	historyLimit = 20
	searchTopK   = 4
)

var bookingKeywords = []string{"book", "appointment", "schedule", "reserve"}

var greetings = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

// DefaultChatService routes each user message: an active booking session
// always consumes the message; otherwise booking intent, greetings, document
// Q&A and the capabilities fallback are tried in that order. The booking flow
// itself never touches the LLM.
type DefaultChatService struct {
	LLM      LLMClient
	Store    ContextStore
	Flow     *booking.Flow
	Docs     Retriever
	Logger   *zap.Logger
	Timezone string

	now func() time.Time // overridable in tests
}

func NewDefaultChatService(llm LLMClient, store ContextStore, flow *booking.Flow, docs Retriever, timezone string, logger *zap.Logger) *DefaultChatService {
	return &DefaultChatService{
		LLM:      llm,
		Store:    store,
		Flow:     flow,
		Docs:     docs,
		Logger:   logger,
		Timezone: timezone,
		now:      time.Now,
	}
}

func (s *DefaultChatService) ProcessUserInput(ctx context.Context, conversationID, text string) (*models.ChatResponse, error) {
	cc, err := s.Store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load chat context: %w", err)
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	var reply string

	switch {
	case cc.BookingActive:
		res := s.Flow.Advance(cc.Booking, text, s.now())
		cc.Booking = res.Session
		reply = res.Reply
		if res.Done {
			cc.BookingActive = false
		}

	case hasBookingIntent(lower):
		cc.Booking = booking.NewSession()
		cc.BookingActive = true
		reply = fmt.Sprintf("Happy to set that up. Current time: %s. What date works for you? (e.g., tomorrow, next Monday)",
			booking.CurrentTime(s.now(), s.Timezone))

	case isGreeting(lower):
		reply = welcomeMessage

	case s.Docs != nil && s.Docs.Ready():
		answer, err := s.answerFromDocuments(ctx, cc, text)
		if err != nil {
			s.Logger.Error("document answer failed",
				zap.String("conversationID", conversationID), zap.Error(err))
			reply = answerFailedMessage
		} else {
			reply = answer + "\n\n" + bookingTip
		}

	default:
		reply = fallbackMessage
	}

	cc.History = append(cc.History,
		models.ChatMessage{Role: models.RoleUser, Content: text},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	)
	if len(cc.History) > historyLimit {
		cc.History = cc.History[len(cc.History)-historyLimit:]
	}

	if err := s.Store.Set(ctx, conversationID, cc); err != nil {
		return nil, fmt.Errorf("save chat context: %w", err)
	}

	return &models.ChatResponse{
		ConversationID:    conversationID,
		Reply:             reply,
		BookingInProgress: cc.BookingActive,
	}, nil
}

// CancelBooking discards the conversation's booking session unconditionally.
func (s *DefaultChatService) CancelBooking(ctx context.Context, conversationID string) (*models.ChatResponse, error) {
	cc, err := s.Store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load chat context: %w", err)
	}
	cc.Booking = booking.Cancel(cc.Booking)
	cc.BookingActive = false
	cc.History = append(cc.History,
		models.ChatMessage{Role: models.RoleAssistant, Content: cancelledMessage})
	if err := s.Store.Set(ctx, conversationID, cc); err != nil {
		return nil, fmt.Errorf("save chat context: %w", err)
	}
	return &models.ChatResponse{
		ConversationID: conversationID,
		Reply:          cancelledMessage,
	}, nil
}

// answerFromDocuments retrieves the top matching chunks and asks the LLM to
// answer from them, with the recent transcript for conversational context.
func (s *DefaultChatService) answerFromDocuments(ctx context.Context, cc *ChatContext, question string) (string, error) {
	results, err := s.Docs.Search(ctx, question, searchTopK)
	if err != nil {
		return "", fmt.Errorf("search documents: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Answer the question using only the context below. If the context does not contain the answer, say you don't know.\n\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "[Source: %s]\n%s\n\n", r.Chunk.Source, r.Chunk.Content)
	}
	if len(cc.History) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, m := range cc.History {
			fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Question: %s", question)

	answer, err := s.LLM.Generate(ctx, sb.String())
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

func hasBookingIntent(lower string) bool {
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isGreeting(lower string) bool {
	trimmed := strings.Trim(lower, " .,!?")
	for _, g := range greetings {
		if trimmed == g {
			return true
		}
	}
	return false
}

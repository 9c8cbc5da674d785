package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"concierge/models"
	"concierge/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLLM struct {
	answer      string
	generateErr error
}

func (s *stubLLM) Generate(context.Context, string) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return s.answer, nil
}

func (s *stubLLM) EmbedText(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}

type stubRetriever struct {
	ready   bool
	results []models.SearchResult
}

func (s *stubRetriever) Ready() bool { return s.ready }

func (s *stubRetriever) Search(context.Context, string, int) ([]models.SearchResult, error) {
	return s.results, nil
}

type memRepo struct {
	saved []models.CompletedBooking
}

func (r *memRepo) Save(b models.CompletedBooking) error {
	r.saved = append(r.saved, b)
	return nil
}

func (r *memRepo) List() ([]models.CompletedBooking, error) { return r.saved, nil }

func newTestService(llm *stubLLM, docs Retriever) (*DefaultChatService, *memRepo) {
	repo := &memRepo{}
	flow := booking.NewFlow(repo, zap.NewNop())
	svc := NewDefaultChatService(llm, NewMemoryContextStore(), flow, docs, "UTC", zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestGreetingReply(t *testing.T) {
	svc, _ := newTestService(&stubLLM{}, nil)
	resp, err := svc.ProcessUserInput(context.Background(), "c1", "Hello!")
	require.NoError(t, err)
	assert.Equal(t, welcomeMessage, resp.Reply)
	assert.False(t, resp.BookingInProgress)
}

func TestFallbackWithoutDocuments(t *testing.T) {
	svc, _ := newTestService(&stubLLM{}, &stubRetriever{ready: false})
	resp, err := svc.ProcessUserInput(context.Background(), "c1", "what is the meaning of life?")
	require.NoError(t, err)
	assert.Equal(t, fallbackMessage, resp.Reply)
}

func TestBookingIntentStartsFlow(t *testing.T) {
	svc, _ := newTestService(&stubLLM{}, nil)
	resp, err := svc.ProcessUserInput(context.Background(), "c1", "I'd like to book an appointment")
	require.NoError(t, err)
	assert.True(t, resp.BookingInProgress)
	assert.Contains(t, resp.Reply, "What date")
	// The first prompt grounds relative dates with the current time.
	assert.Contains(t, resp.Reply, "2024-05-01")
}

func TestFullBookingConversation(t *testing.T) {
	svc, repo := newTestService(&stubLLM{}, nil)
	ctx := context.Background()

	inputs := []string{
		"book appointment",
		"tomorrow",
		"3 PM",
		"Jane Doe",
		"jane@doe.com",
		"+1234567890",
	}
	var resp *models.ChatResponse
	var err error
	for _, input := range inputs {
		resp, err = svc.ProcessUserInput(ctx, "c1", input)
		require.NoError(t, err)
	}

	assert.False(t, resp.BookingInProgress)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "2024-05-02", repo.saved[0].Date)
	assert.Equal(t, "15:00", repo.saved[0].Time)

	// A follow-up message routes normally again.
	resp, err = svc.ProcessUserInput(ctx, "c1", "hello")
	require.NoError(t, err)
	assert.Equal(t, welcomeMessage, resp.Reply)
}

func TestBookingRePromptKeepsSessionAlive(t *testing.T) {
	svc, repo := newTestService(&stubLLM{}, nil)
	ctx := context.Background()

	_, err := svc.ProcessUserInput(ctx, "c1", "book appointment")
	require.NoError(t, err)

	resp, err := svc.ProcessUserInput(ctx, "c1", "whenever works")
	require.NoError(t, err)
	assert.True(t, resp.BookingInProgress)

	// Valid input afterwards still lands in the right slot.
	resp, err = svc.ProcessUserInput(ctx, "c1", "tomorrow")
	require.NoError(t, err)
	assert.True(t, resp.BookingInProgress)
	assert.Contains(t, resp.Reply, "What time")
	assert.Empty(t, repo.saved)
}

func TestConversationsAreIndependent(t *testing.T) {
	svc, _ := newTestService(&stubLLM{}, nil)
	ctx := context.Background()

	_, err := svc.ProcessUserInput(ctx, "c1", "book appointment")
	require.NoError(t, err)

	// A second conversation is not dragged into c1's booking flow.
	resp, err := svc.ProcessUserInput(ctx, "c2", "hello")
	require.NoError(t, err)
	assert.Equal(t, welcomeMessage, resp.Reply)
	assert.False(t, resp.BookingInProgress)
}

func TestDocumentAnswerWithTip(t *testing.T) {
	docs := &stubRetriever{
		ready: true,
		results: []models.SearchResult{
			{Chunk: models.Chunk{Source: "guide.pdf", Content: "the capital is Paris"}, Score: 0.9},
		},
	}
	svc, _ := newTestService(&stubLLM{answer: "The capital is Paris."}, docs)

	resp, err := svc.ProcessUserInput(context.Background(), "c1", "what is the capital?")
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "The capital is Paris.")
	assert.Contains(t, resp.Reply, bookingTip)
}

func TestDocumentAnswerFailureIsRecoverable(t *testing.T) {
	docs := &stubRetriever{ready: true}
	svc, _ := newTestService(&stubLLM{generateErr: errors.New("quota exceeded")}, docs)

	resp, err := svc.ProcessUserInput(context.Background(), "c1", "what is the capital?")
	require.NoError(t, err)
	assert.Equal(t, answerFailedMessage, resp.Reply)
}

func TestCancelBookingResetsSession(t *testing.T) {
	svc, repo := newTestService(&stubLLM{}, nil)
	ctx := context.Background()

	_, err := svc.ProcessUserInput(ctx, "c1", "book appointment")
	require.NoError(t, err)
	_, err = svc.ProcessUserInput(ctx, "c1", "tomorrow")
	require.NoError(t, err)

	resp, err := svc.CancelBooking(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, resp.BookingInProgress)

	// Partially filled slots are gone; the next message routes normally.
	resp, err = svc.ProcessUserInput(ctx, "c1", "hello")
	require.NoError(t, err)
	assert.Equal(t, welcomeMessage, resp.Reply)
	assert.Empty(t, repo.saved)
}

func TestHistoryIsTrimmed(t *testing.T) {
	svc, _ := newTestService(&stubLLM{}, nil)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := svc.ProcessUserInput(ctx, "c1", "hello")
		require.NoError(t, err)
	}

	cc, err := svc.Store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(cc.History), historyLimit)
}

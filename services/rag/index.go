package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"concierge/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Embedder turns text into a vector. Satisfied by the Gemini client.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Index holds embedded document chunks in memory and answers cosine-similarity
// searches over them. Re-ingesting a document with the same name replaces its
// previous chunks.
type Index struct {
	embedder Embedder
	chunker  *Chunker
	logger   *zap.Logger

	mu     sync.RWMutex
	chunks []models.Chunk
	docs   map[string]models.Document // keyed by document name
}

func NewIndex(embedder Embedder, chunker *Chunker, logger *zap.Logger) *Index {
	return &Index{
		embedder: embedder,
		chunker:  chunker,
		logger:   logger,
		docs:     make(map[string]models.Document),
	}
}

// IngestPDF extracts, chunks and embeds one PDF, then swaps it into the index.
func (ix *Index) IngestPDF(ctx context.Context, name string, data []byte) (*models.Document, error) {
	text, err := ExtractPDFText(data)
	if err != nil {
		return nil, err
	}
	return ix.IngestText(ctx, name, text)
}

// IngestText indexes already-extracted text under the given document name.
func (ix *Index) IngestText(ctx context.Context, name, text string) (*models.Document, error) {
	pieces := ix.chunker.Split(text)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("document %q contains no extractable text", name)
	}

	doc := models.Document{
		ID:         uuid.New().String(),
		Name:       name,
		Chunks:     len(pieces),
		IngestedAt: time.Now(),
	}

	chunks := make([]models.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		embedding, err := ix.embedder.EmbedText(ctx, piece)
		if err != nil {
			return nil, fmt.Errorf("embed chunk of %q: %w", name, err)
		}
		chunks = append(chunks, models.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Source:     name,
			Content:    piece,
			Embedding:  embedding,
		})
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if old, ok := ix.docs[name]; ok {
		kept := ix.chunks[:0]
		for _, c := range ix.chunks {
			if c.DocumentID != old.ID {
				kept = append(kept, c)
			}
		}
		ix.chunks = kept
	}
	ix.chunks = append(ix.chunks, chunks...)
	ix.docs[name] = doc

	ix.logger.Info("document ingested",
		zap.String("name", name), zap.Int("chunks", len(chunks)))
	return &doc, nil
}

// Ready reports whether anything has been ingested.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks) > 0
}

// Documents lists the ingested documents.
func (ix *Index) Documents() []models.Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	docs := make([]models.Document, 0, len(ix.docs))
	for _, d := range ix.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].IngestedAt.Before(docs[j].IngestedAt) })
	return docs
}

// Search embeds the query and returns the topK most similar chunks.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = 4
	}
	queryVec, err := ix.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]models.SearchResult, 0, len(ix.chunks))
	for _, c := range ix.chunks {
		results = append(results, models.SearchResult{
			Chunk: c,
			Score: cosineSimilarity(queryVec, c.Embedding),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

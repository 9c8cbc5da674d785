package models

import "time"

// Document describes one ingested PDF.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Chunks     int       `json:"chunks"`
	IngestedAt time.Time `json:"ingestedAt"`
}

// Chunk is one embedded slice of a document.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Source     string    `json:"source"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
}

// SearchResult is a chunk scored against a query embedding.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

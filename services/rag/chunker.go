package rag

import "strings"

// Chunker splits document text into overlapping pieces small enough to embed.
// It works recursively through the separator list, preferring paragraph
// breaks, then lines, then words, and finally hard character cuts.
type Chunker struct {
	Size    int
	Overlap int
}

var separators = []string{"\n\n", "\n", " ", ""}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 200
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Split breaks text into chunks of at most Size characters, with roughly
// Overlap characters shared between neighbors.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return c.split(text, separators)
}

func (c *Chunker) split(text string, seps []string) []string {
	if len(text) <= c.Size {
		return []string{text}
	}

	sep := ""
	rest := []string{}
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return c.hardCut(text)
	}

	// Size-bound every piece first, then merge neighbors back together.
	var pieces []string
	for _, p := range strings.Split(text, sep) {
		if p == "" {
			continue
		}
		if len(p) > c.Size {
			pieces = append(pieces, c.split(p, rest)...)
		} else {
			pieces = append(pieces, p)
		}
	}
	return c.merge(pieces, sep)
}

// merge greedily joins pieces up to Size, carrying trailing pieces into the
// next chunk until their combined length drops under Overlap.
func (c *Chunker) merge(pieces []string, sep string) []string {
	var chunks []string
	var current []string
	length := 0

	for _, p := range pieces {
		added := len(p)
		if len(current) > 0 {
			added += len(sep)
		}
		if length+added > c.Size && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, sep))
			for length > c.Overlap && len(current) > 0 {
				length -= len(current[0]) + len(sep)
				current = current[1:]
			}
			if len(current) == 0 {
				length = 0
			}
		}
		if len(current) > 0 {
			length += len(sep)
		}
		current = append(current, p)
		length += len(p)
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, sep))
	}
	return chunks
}

func (c *Chunker) hardCut(text string) []string {
	step := c.Size - c.Overlap
	var chunks []string
	for start := 0; start < len(text); start += step {
		end := min(start+c.Size, len(text))
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}

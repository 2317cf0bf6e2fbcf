package memory

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/dgraph-io/ristretto"

	"memory-agent/pkg/log"
	"memory-agent/pkg/voyage"
)

// VoyageEmbedder embeds text with the Voyage AI API.
type VoyageEmbedder struct {
	client     voyage.IVoyage
	dimensions int
}

// NewVoyageEmbedder wraps client. dimensions must match the client's model.
func NewVoyageEmbedder(client voyage.IVoyage, dimensions int) *VoyageEmbedder {
	return &VoyageEmbedder{client: client, dimensions: dimensions}
}

func (e *VoyageEmbedder) Embed(ctx context.Context, texts []string, purpose Purpose) ([][]float32, error) {
	inputType := voyage.InputTypeDocument
	if purpose == PurposeQuery {
		inputType = voyage.InputTypeQuery
	}
	return e.client.Embed(ctx, texts, inputType)
}

func (e *VoyageEmbedder) Dimensions() int {
	return e.dimensions
}

// HashEmbedder is an offline embedder: a hashed bag of lowercase words,
// normalized to unit length. Texts sharing words land close together.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder creates a hash embedder producing vectors of the given size.
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = 256
	}
	return &HashEmbedder{dimensions: dimensions}
}

func (e *HashEmbedder) Embed(_ context.Context, texts []string, _ Purpose) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.embedOne(t)
	}
	return out, nil
}

func (e *HashEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *HashEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, e.dimensions)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New64a()
		_, _ = h.Write([]byte(w))
		sum := h.Sum64()
		idx := sum % uint64(e.dimensions)
		if sum&(1<<63) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	if len(words) == 0 {
		// No words: derive a stable pseudo-random vector from the raw text.
		h := fnv.New64a()
		_, _ = h.Write([]byte(text))
		seed := h.Sum64()
		for i := range vec {
			seed = seed*6364136223846793005 + 1442695040888963407
			vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
		}
	}

	return Normalize(vec)
}

// CachedEmbedder memoizes another Embedder in a ristretto cache.
type CachedEmbedder struct {
	next  Embedder
	cache *ristretto.Cache
	l     log.Logger
}

// NewCachedEmbedder caches up to maxItems embeddings from next.
func NewCachedEmbedder(next Embedder, maxItems int, l log.Logger) (*CachedEmbedder, error) {
	if maxItems <= 0 {
		maxItems = 10000
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        int64(maxItems) * 10,
		MaxCost:            int64(maxItems),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &CachedEmbedder{next: next, cache: cache, l: l}, nil
}

func (e *CachedEmbedder) Embed(ctx context.Context, texts []string, purpose Purpose) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int

	for i, t := range texts {
		if v, ok := e.cache.Get(cacheKey(purpose, t)); ok {
			if vec, ok := v.([]float32); ok {
				out[i] = append([]float32(nil), vec...)
				continue
			}
		}
		missTexts = append(missTexts, t)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := e.next.Embed(ctx, missTexts, purpose)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(missTexts))
	}

	for j, vec := range vecs {
		out[missIdx[j]] = vec
		if !e.cache.Set(cacheKey(purpose, missTexts[j]), append([]float32(nil), vec...), 1) {
			e.l.Debugf(ctx, "%s: cache dropped entry", LogPrefixCachedEmbedder)
		}
	}
	return out, nil
}

func (e *CachedEmbedder) Dimensions() int {
	return e.next.Dimensions()
}

// Close releases the cache.
func (e *CachedEmbedder) Close() {
	e.cache.Close()
}

func cacheKey(purpose Purpose, text string) string {
	return string(purpose) + "\x00" + text
}

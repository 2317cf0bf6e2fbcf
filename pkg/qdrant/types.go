package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // Collection name (in URL)
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point represents a vector with payload.
// Qdrant only accepts UUID strings or unsigned integers as ids.
type Point struct {
	ID      string                 `json:"id"`
	Vector  []float32              `json:"vector,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// Filter is the subset of the Qdrant filter language used here.
type Filter struct {
	Must    []Condition `json:"must,omitempty"`
	MustNot []Condition `json:"must_not,omitempty"`
}

// Condition matches a payload field or a set of point ids.
type Condition struct {
	Key   string      `json:"key,omitempty"`
	Match *MatchValue `json:"match,omitempty"`
	HasID []string    `json:"has_id,omitempty"`
}

// MatchValue is an exact-value match.
type MatchValue struct {
	Value interface{} `json:"value"`
}

// FieldEquals builds a Condition matching key == value.
func FieldEquals(key string, value interface{}) Condition {
	return Condition{Key: key, Match: &MatchValue{Value: value}}
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
	Filter      *Filter   `json:"filter,omitempty"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search result with similarity score.
type ScoredPoint struct {
	ID      string                 `json:"id"`
	Score   float64                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
}

// ScrollRequest pages through points matching a filter.
type ScrollRequest struct {
	Filter      *Filter     `json:"filter,omitempty"`
	Limit       int         `json:"limit,omitempty"`
	Offset      interface{} `json:"offset,omitempty"`
	WithPayload bool        `json:"with_payload"`
	WithVector  bool        `json:"with_vector"`
}

// ScrollResponse is one page of a scroll.
type ScrollResponse struct {
	Result struct {
		Points         []RecordPoint `json:"points"`
		NextPageOffset interface{}   `json:"next_page_offset"`
	} `json:"result"`
}

// RecordPoint is a stored point without a score.
type RecordPoint struct {
	ID      string                 `json:"id"`
	Payload map[string]interface{} `json:"payload"`
}

// RetrieveRequest fetches points by id.
type RetrieveRequest struct {
	IDs         []string `json:"ids"`
	WithPayload bool     `json:"with_payload"`
	WithVector  bool     `json:"with_vector"`
}

// RetrieveResponse holds the points found by a retrieve call.
type RetrieveResponse struct {
	Result []RecordPoint `json:"result"`
}

// DeletePointsRequest deletes either explicit ids or everything matching a filter.
type DeletePointsRequest struct {
	Points []string `json:"points,omitempty"`
	Filter *Filter  `json:"filter,omitempty"`
}

// CreateIndexRequest creates a payload index.
type CreateIndexRequest struct {
	FieldName   string `json:"field_name"`
	FieldSchema string `json:"field_schema"` // "keyword", "integer", "float"
}

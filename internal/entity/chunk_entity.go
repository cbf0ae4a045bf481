package entity

// Chunk is one sanitized slice of extracted document text, ready for
// embedding. Metadata travels with the chunk into the vector store.
type Chunk struct {
	Text     string
	Metadata map[string]interface{}
}

// RetrievedChunk is a chunk returned from similarity search.
type RetrievedChunk struct {
	Text       string
	Metadata   map[string]interface{}
	Similarity float64
}

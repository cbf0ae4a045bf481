package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "doc_assistant_embeddings", CollectionName("doc_assistant_embeddings", "default"))
	assert.Equal(t, "doc_assistant_embeddings", CollectionName("doc_assistant_embeddings", ""))
	assert.Equal(t, "doc_assistant_embeddings_42", CollectionName("doc_assistant_embeddings", "42"))
	assert.Equal(t, "doc_assistant_embeddings_abc_session", CollectionName("doc_assistant_embeddings", "abc_session"))
}

func TestCollectionNameDistinctNamespaces(t *testing.T) {
	a := CollectionName("base", "7")
	b := CollectionName("base", "8")
	assert.NotEqual(t, a, b)
}

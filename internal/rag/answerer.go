package rag

import (
	"context"
	"fmt"
	"strings"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/pkg/llm"
)

const answerSystemPrompt = "You are a helpful assistant that answers questions about uploaded documents. " +
	"Use only the provided context. If the context does not contain the answer, say you don't know."

// LLMAnswerer answers questions by stuffing the retrieved chunks into a
// single prompt for the chat model.
type LLMAnswerer struct {
	provider llm.LLMProvider
}

func NewLLMAnswerer(provider llm.LLMProvider) *LLMAnswerer {
	return &LLMAnswerer{provider: provider}
}

func (a *LLMAnswerer) Answer(ctx context.Context, question string, chunks []*entity.RetrievedChunk) (string, error) {
	var sb strings.Builder
	for i, c := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.Text)
	}

	history := []llm.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", sb.String(), question)},
	}

	return a.provider.Chat(ctx, history)
}

package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docuseek/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnswerSystemPrompt constrains the model to the retrieved pages only.
func (pb *PromptBuilder) BuildAnswerSystemPrompt() string {
	return `You are a document search assistant. Answer the user's question using ONLY the page excerpts supplied in the context. Cite the page numbers you used, e.g. "(page 4)". If the context does not contain the answer, say so plainly. Do not use outside knowledge.`
}

// BuildAnswerPrompt assembles the context block and the question into a single
// user turn. Each excerpt carries its document, page number and deep link so
// the model can cite them.
func (pb *PromptBuilder) BuildAnswerPrompt(query string, hits []models.SearchHit, snippetMaxChars int) string {
	var context strings.Builder

	for i, hit := range hits {
		// Truncation counts characters, not bytes; slicing bytes could split
		// a rune and leave invalid UTF-8 in the prompt.
		snippet := hit.Content
		if utf8.RuneCountInString(snippet) > snippetMaxChars {
			snippet = string([]rune(snippet)[:snippetMaxChars])
		}

		context.WriteString(fmt.Sprintf("[%d] Document: %s | Page: %d | Link: %s\n%s\n\n",
			i+1, hit.DocumentName, hit.PageNumber, hit.Link, snippet))
	}

	return fmt.Sprintf("CONTEXT:\n%s\nQUESTION: %s", context.String(), query)
}

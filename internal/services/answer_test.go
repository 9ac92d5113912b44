package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuseek/internal/models"
)

type fakeGemini struct {
	response string
	err      error

	calls         int
	systemPrompts []string
	userPrompts   []string
}

func (f *fakeGemini) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.systemPrompts = append(f.systemPrompts, systemPrompt)
	f.userPrompts = append(f.userPrompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func hitsOf(n int) []models.SearchHit {
	hits := make([]models.SearchHit, n)
	for i := range hits {
		hits[i] = models.SearchHit{
			DocumentName: "manual",
			PageNumber:   i + 1,
			Content:      fmt.Sprintf("content of page %d", i+1),
			Link:         fmt.Sprintf("http://cdn.local/manual.pdf#page=%d", i+1),
			Score:        float64(n - i),
		}
	}
	return hits
}

func TestAnswerEmptyHitsShortCircuits(t *testing.T) {
	gemini := &fakeGemini{response: "should not be used"}
	svc := NewAnswerService(gemini, 3, 300)

	answer := svc.Answer(context.Background(), "anything", nil)

	assert.Equal(t, NoResultsAnswer, answer)
	assert.Zero(t, gemini.calls, "the model must not be called for an empty hit list")
}

func TestAnswerUsesTopThreeHitsOnly(t *testing.T) {
	gemini := &fakeGemini{response: "grounded answer (page 1)"}
	svc := NewAnswerService(gemini, 3, 300)

	answer := svc.Answer(context.Background(), "what is in the manual?", hitsOf(5))

	assert.Equal(t, "grounded answer (page 1)", answer)
	require.Equal(t, 1, gemini.calls)

	prompt := gemini.userPrompts[0]
	assert.Contains(t, prompt, "content of page 1")
	assert.Contains(t, prompt, "content of page 3")
	assert.NotContains(t, prompt, "content of page 4")
	assert.Contains(t, prompt, "what is in the manual?")
	assert.Contains(t, prompt, "http://cdn.local/manual.pdf#page=2")
}

func TestAnswerTruncatesLongContent(t *testing.T) {
	gemini := &fakeGemini{response: "ok"}
	svc := NewAnswerService(gemini, 3, 300)

	hits := []models.SearchHit{{
		DocumentName: "manual",
		PageNumber:   1,
		Content:      strings.Repeat("a", 450),
		Link:         "http://cdn.local/manual.pdf#page=1",
	}}

	svc.Answer(context.Background(), "q", hits)

	require.Equal(t, 1, gemini.calls)
	prompt := gemini.userPrompts[0]
	assert.Contains(t, prompt, strings.Repeat("a", 300))
	assert.NotContains(t, prompt, strings.Repeat("a", 301))
}

func TestAnswerTruncatesByCharactersNotBytes(t *testing.T) {
	gemini := &fakeGemini{response: "ok"}
	svc := NewAnswerService(gemini, 3, 300)

	// Multibyte content must keep its full 300-character budget and never be
	// cut mid-rune.
	hits := []models.SearchHit{{
		DocumentName: "manual",
		PageNumber:   1,
		Content:      "x" + strings.Repeat("日", 450),
		Link:         "http://cdn.local/manual.pdf#page=1",
	}}

	svc.Answer(context.Background(), "q", hits)

	require.Equal(t, 1, gemini.calls)
	prompt := gemini.userPrompts[0]
	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, "x"+strings.Repeat("日", 299))
	assert.NotContains(t, prompt, "x"+strings.Repeat("日", 300))
}

func TestAnswerDegradesOnModelFailure(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("connection refused")}
	svc := NewAnswerService(gemini, 3, 300)

	answer := svc.Answer(context.Background(), "q", hitsOf(2))

	assert.Equal(t, DegradedAnswer, answer)
}

func TestAnswerHandlesEmptyCompletion(t *testing.T) {
	gemini := &fakeGemini{response: ""}
	svc := NewAnswerService(gemini, 3, 300)

	answer := svc.Answer(context.Background(), "q", hitsOf(1))

	assert.Equal(t, NoResponseAnswer, answer)
}

func TestAnswerSystemPromptConstrainsToContext(t *testing.T) {
	gemini := &fakeGemini{response: "ok"}
	svc := NewAnswerService(gemini, 3, 300)

	svc.Answer(context.Background(), "q", hitsOf(1))

	require.Equal(t, 1, gemini.calls)
	assert.Contains(t, gemini.systemPrompts[0], "ONLY")
	assert.Contains(t, gemini.systemPrompts[0], "page numbers")
}

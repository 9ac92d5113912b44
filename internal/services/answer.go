package services

import (
	"context"
	"log"

	"docuseek/internal/models"
)

// Fixed answer strings. Generation never fails a request: search hits have
// intrinsic value even when summarization does not happen.
const (
	NoResultsAnswer  = "No relevant information was found in the indexed documents."
	NoResponseAnswer = "No response was generated. Please try rephrasing your question."
	DegradedAnswer   = "The answer could not be generated right now. The matching pages are listed below."
)

type AnswerService interface {
	// Answer produces a natural-language answer grounded on the ranked hits.
	// An empty hit list short-circuits to NoResultsAnswer without calling the
	// model; model errors degrade to DegradedAnswer.
	Answer(ctx context.Context, query string, hits []models.SearchHit) string
}

type answerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	contextPages  int
	snippetChars  int
}

func NewAnswerService(gemini GeminiService, contextPages, snippetChars int) AnswerService {
	return &answerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		contextPages:  contextPages,
		snippetChars:  snippetChars,
	}
}

// Answer implements AnswerService.
func (a *answerService) Answer(ctx context.Context, query string, hits []models.SearchHit) string {
	if len(hits) == 0 {
		return NoResultsAnswer
	}

	top := hits
	if len(top) > a.contextPages {
		top = top[:a.contextPages]
	}

	systemPrompt := a.promptBuilder.BuildAnswerSystemPrompt()
	userPrompt := a.promptBuilder.BuildAnswerPrompt(query, top, a.snippetChars)

	answer, err := a.gemini.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("⚠️  Answer generation failed: %v\n", err)
		return DegradedAnswer
	}

	if answer == "" {
		return NoResponseAnswer
	}

	return answer
}

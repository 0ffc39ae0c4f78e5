package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/llm"
	"alfredoptarigan/interview-coach/internal/models"
)

// Generator returns a best-effort completion; "" means no model answered.
// *llm.Gateway satisfies it.
type Generator interface {
	Complete(ctx context.Context, messages []llm.ChatMessage, temperature float32) string
}

type CoachService interface {
	GenerateQuestions(ctx context.Context, resume models.ResumeDocument) []string
	AnalyzeAnswer(ctx context.Context, question, transcript string) models.AnswerFeedback
	AnalyzeInterview(ctx context.Context, transcripts []string) models.InterviewFeedback
}

type coachService struct {
	generator     Generator
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewCoachService(generator Generator) CoachService {
	return &coachService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		logger:        zap.L().Named("coach"),
	}
}

func (c *coachService) GenerateQuestions(ctx context.Context, resume models.ResumeDocument) []string {
	text := c.generator.Complete(ctx, c.promptBuilder.BuildQuestionsPrompt(resume), QuestionsTemperature)
	questions := DecodeQuestions(text)
	if len(questions) == 0 {
		c.logger.Warn("no questions decoded from completion", zap.Int("completion_length", len(text)))
	}
	return questions
}

// AnalyzeAnswer skips the model entirely for an empty transcript.
func (c *coachService) AnalyzeAnswer(ctx context.Context, question, transcript string) models.AnswerFeedback {
	if strings.TrimSpace(transcript) == "" {
		return models.UnansweredFeedback()
	}

	text := c.generator.Complete(ctx, c.promptBuilder.BuildAnswerPrompt(question, transcript), AnswerTemperature)
	if text == "" {
		c.logger.Warn("answer critique unavailable, using fallback")
	}
	return DecodeAnswerFeedback(text)
}

func (c *coachService) AnalyzeInterview(ctx context.Context, transcripts []string) models.InterviewFeedback {
	text := c.generator.Complete(ctx, c.promptBuilder.BuildInterviewPrompt(transcripts), InterviewTemperature)
	if text == "" {
		c.logger.Warn("interview critique unavailable, using fallback")
	}
	return DecodeInterviewFeedback(text)
}

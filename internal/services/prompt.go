package services

import (
	"encoding/json"
	"fmt"

	"alfredoptarigan/interview-coach/internal/llm"
)

const (
	QuestionsTemperature float32 = 0.4
	AnswerTemperature    float32 = 0.3
	InterviewTemperature float32 = 0.4

	questionsSystemPrompt = "Return only valid JSON array of questions."
	answerSystemPrompt    = "Return only valid JSON."
	interviewSystemPrompt = "Return only JSON."
)

// PromptBuilder turns domain data into chat requests. It never talks to a model.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionsPrompt asks for 4-6 interview questions about the resume.
func (pb *PromptBuilder) BuildQuestionsPrompt(resume interface{}) []llm.ChatMessage {
	prompt := fmt.Sprintf(`You are an interview coach. Generate 4-6 targeted interview questions based on this resume JSON.

Return ONLY a JSON array of strings.

Resume JSON:
%s
`, indentJSON(resume))

	return []llm.ChatMessage{
		llm.SystemMessage(questionsSystemPrompt),
		llm.UserMessage(prompt),
	}
}

// BuildAnswerPrompt asks for a critique of one spoken answer.
func (pb *PromptBuilder) BuildAnswerPrompt(question, transcript string) []llm.ChatMessage {
	prompt := fmt.Sprintf(`You are an interview evaluator. Analyze the candidate's spoken answer.

Return JSON with these fields:
{
  "accent": "brief note",
  "fluency": "brief note",
  "word_choice": "brief note",
  "emotion": "brief note of tone/energy",
  "clarity": "short note about clarity & structure",
  "conciseness": "short note about length and relevance",
  "confidence": "short note about confidence level",
  "relevance": "short note about relevance to the question",
  "examples": "note if examples/evidence were given",
  "strengths": ["list of key strengths"],
  "improvements": ["list of specific improvements"],
  "recommendation": "short closing recommendation",
  "overall_score": 0-10
}

If the transcript is empty or very short, return an overall_score of 0 and add an improvement stating that the user did not answer.

Question: %q
Transcript:
"""
%s
"""
Return only JSON.
`, question, transcript)

	return []llm.ChatMessage{
		llm.SystemMessage(answerSystemPrompt),
		llm.UserMessage(prompt),
	}
}

// BuildInterviewPrompt asks for a critique across all answers, in question order.
func (pb *PromptBuilder) BuildInterviewPrompt(transcripts []string) []llm.ChatMessage {
	if transcripts == nil {
		transcripts = []string{}
	}

	prompt := fmt.Sprintf(`You are an experienced interview coach. Analyze the candidate's overall performance across ALL questions.

Return JSON with:
{
  "summary": "short overview of performance",
  "strengths": ["list of overall strengths"],
  "improvements": ["list of overall improvements"],
  "communication": "note about clarity, tone, and engagement",
  "consistency": "note about consistency across answers",
  "examples_usage": "note about how well they supported answers with examples",
  "final_recommendation": "short closing recommendation",
  "overall_score": 0-10
}

Here are the transcripts of all answers:
%s

Return only JSON.
`, indentJSON(transcripts))

	return []llm.ChatMessage{
		llm.SystemMessage(interviewSystemPrompt),
		llm.UserMessage(prompt),
	}
}

func indentJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(b)
}

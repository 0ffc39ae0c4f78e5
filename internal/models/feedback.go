package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	NotAvailable = "N/A"

	FallbackAnswerRecommendation    = "No valid response captured."
	FallbackInterviewSummary        = "Could not analyze answers properly."
	FallbackInterviewRecommendation = "Try again with more complete responses."
	UnansweredImprovement           = "No answer was provided for this question."

	MinScore = 0.0
	MaxScore = 10.0
)

// AnswerFeedback is the critique of a single spoken answer.
type AnswerFeedback struct {
	Accent         string   `json:"accent"`
	Fluency        string   `json:"fluency"`
	WordChoice     string   `json:"word_choice"`
	Emotion        string   `json:"emotion"`
	Clarity        string   `json:"clarity"`
	Conciseness    string   `json:"conciseness"`
	Confidence     string   `json:"confidence"`
	Relevance      string   `json:"relevance"`
	Examples       string   `json:"examples"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	Recommendation string   `json:"recommendation"`
	OverallScore   float64  `json:"overall_score"`
}

// InterviewFeedback is the critique of a whole interview.
type InterviewFeedback struct {
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
	Communication       string   `json:"communication"`
	Consistency         string   `json:"consistency"`
	ExamplesUsage       string   `json:"examples_usage"`
	FinalRecommendation string   `json:"final_recommendation"`
	OverallScore        float64  `json:"overall_score"`
}

// FallbackAnswerFeedback is substituted when an answer critique cannot be decoded.
func FallbackAnswerFeedback() AnswerFeedback {
	return AnswerFeedback{
		Accent:         NotAvailable,
		Fluency:        NotAvailable,
		WordChoice:     NotAvailable,
		Emotion:        NotAvailable,
		Clarity:        NotAvailable,
		Conciseness:    NotAvailable,
		Confidence:     NotAvailable,
		Relevance:      NotAvailable,
		Examples:       NotAvailable,
		Strengths:      []string{},
		Improvements:   []string{},
		Recommendation: FallbackAnswerRecommendation,
		OverallScore:   0,
	}
}

// UnansweredFeedback is recorded for an empty transcript without asking the model.
func UnansweredFeedback() AnswerFeedback {
	fb := FallbackAnswerFeedback()
	fb.Improvements = []string{UnansweredImprovement}
	fb.Recommendation = NotAvailable
	return fb
}

// FallbackInterviewFeedback is substituted when an interview critique cannot be decoded.
func FallbackInterviewFeedback() InterviewFeedback {
	return InterviewFeedback{
		Summary:             FallbackInterviewSummary,
		Strengths:           []string{},
		Improvements:        []string{},
		Communication:       NotAvailable,
		Consistency:         NotAvailable,
		ExamplesUsage:       NotAvailable,
		FinalRecommendation: FallbackInterviewRecommendation,
		OverallScore:        0,
	}
}

// QuestionList is the ordered set of questions asked in one interview.
type QuestionList []string

// ResumeDocument is the structured form of an uploaded resume.
type ResumeDocument struct {
	RawText string   `json:"rawText"`
	Lines   []string `json:"lines"`
}

func (f AnswerFeedback) Value() (driver.Value, error) { return valueJSON(f) }

func (f *AnswerFeedback) Scan(value interface{}) error { return scanJSON(value, f) }

func (f InterviewFeedback) Value() (driver.Value, error) { return valueJSON(f) }

func (f *InterviewFeedback) Scan(value interface{}) error { return scanJSON(value, f) }

func (q QuestionList) Value() (driver.Value, error) { return valueJSON(q) }

func (q *QuestionList) Scan(value interface{}) error { return scanJSON(value, q) }

func (d ResumeDocument) Value() (driver.Value, error) { return valueJSON(d) }

func (d *ResumeDocument) Scan(value interface{}) error { return scanJSON(value, d) }

func valueJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return string(b), nil
}

func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported type %T for json column", value)
	}
}

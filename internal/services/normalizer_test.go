package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/interview-coach/internal/models"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `["a"]`, `["a"]`},
		{"json tag", "```json\n[\"a\"]\n```", `["a"]`},
		{"upper tag", "```JSON\n{\"x\":1}\n```", `{"x":1}`},
		{"no tag", "```\n{\"x\":1}\n```", `{"x":1}`},
		{"other tag", "```javascript\n[1]\n```", `[1]`},
		{"space before tag", "``` json\n[\"a\"]\n```", `["a"]`},
		{"tab before tag", "```\tjson\n[1]\n```", `[1]`},
		{"surrounding whitespace", "  \n```json\n[1]\n```  \n", `[1]`},
		{"json glued to payload", "```json[1]```", `[1]`},
		{"only leading fence", "```json\n[1]", `[1]`},
		{"only trailing fence", "[1]\n```", `[1]`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFence(tc.in))
		})
	}
}

func TestDecodeQuestions(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["What?", "Why?"]`, []string{"What?", "Why?"}},
		{"fenced", "```json\n[\"What?\"]\n```", []string{"What?"}},
		{"fenced with spaced tag", "``` json\n[\"What?\"]\n```", []string{"What?"}},
		{"blank entries dropped", `["What?", "  ", ""]`, []string{"What?"}},
		{"capped at six", `["1","2","3","4","5","6","7","8"]`, []string{"1", "2", "3", "4", "5", "6"}},
		{"empty completion", "", []string{}},
		{"prose", "Sorry, I cannot comply", []string{}},
		{"object", `{"questions": ["a"]}`, []string{}},
		{"non-string items", `[1, 2]`, []string{}},
		{"trailing text", `["a"] and more`, []string{}},
		{"null", `null`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeQuestions(tc.in)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeAnswerFeedback_Fallback(t *testing.T) {
	for _, in := range []string{"", "not json", "[1,2]", "null", `"text"`, "{broken", "```json\n```"} {
		assert.Equal(t, models.FallbackAnswerFeedback(), DecodeAnswerFeedback(in), "input %q", in)
	}
}

func TestDecodeAnswerFeedback_FullObject(t *testing.T) {
	reply := `{
		"accent": "neutral",
		"fluency": "smooth",
		"word_choice": "precise",
		"emotion": "calm",
		"clarity": "clear",
		"conciseness": "concise",
		"confidence": "high",
		"relevance": "on topic",
		"examples": "one example",
		"strengths": ["structure"],
		"improvements": ["add metrics"],
		"recommendation": "keep going",
		"overall_score": 8
	}`

	got := DecodeAnswerFeedback(reply)

	assert.Equal(t, models.AnswerFeedback{
		Accent:         "neutral",
		Fluency:        "smooth",
		WordChoice:     "precise",
		Emotion:        "calm",
		Clarity:        "clear",
		Conciseness:    "concise",
		Confidence:     "high",
		Relevance:      "on topic",
		Examples:       "one example",
		Strengths:      []string{"structure"},
		Improvements:   []string{"add metrics"},
		Recommendation: "keep going",
		OverallScore:   8,
	}, got)
	assert.Equal(t, got, DecodeAnswerFeedback("```json\n"+reply+"\n```"))
}

func TestDecodeAnswerFeedback_PartialObjectDegradesPerField(t *testing.T) {
	got := DecodeAnswerFeedback(`{"fluency": "good", "strengths": "not a list", "overall_score": "7.5", "clarity": 3}`)

	want := models.FallbackAnswerFeedback()
	want.Fluency = "good"
	want.OverallScore = 7.5
	assert.Equal(t, want, got)
}

func TestDecodeAnswerFeedback_ScoreClamped(t *testing.T) {
	assert.Equal(t, 10.0, DecodeAnswerFeedback(`{"overall_score": 42}`).OverallScore)
	assert.Equal(t, 0.0, DecodeAnswerFeedback(`{"overall_score": -3}`).OverallScore)
	assert.Equal(t, 0.0, DecodeAnswerFeedback(`{"overall_score": "high"}`).OverallScore)
}

func TestDecodeInterviewFeedback(t *testing.T) {
	reply := `{"summary": "Solid", "strengths": ["clear"], "improvements": [], "communication": "good",
		"consistency": "steady", "examples_usage": "some", "final_recommendation": "hire", "overall_score": 7}`

	got := DecodeInterviewFeedback("```json\n" + reply + "\n```")

	assert.Equal(t, models.InterviewFeedback{
		Summary:             "Solid",
		Strengths:           []string{"clear"},
		Improvements:        []string{},
		Communication:       "good",
		Consistency:         "steady",
		ExamplesUsage:       "some",
		FinalRecommendation: "hire",
		OverallScore:        7,
	}, got)
}

func TestDecodeInterviewFeedback_Fallback(t *testing.T) {
	got := DecodeInterviewFeedback("Sorry, I cannot comply")

	assert.Equal(t, models.FallbackInterviewFeedback(), got)
	assert.Equal(t, "Could not analyze answers properly.", got.Summary)
	assert.Equal(t, "Try again with more complete responses.", got.FinalRecommendation)
	assert.Equal(t, models.NotAvailable, got.Communication)
	assert.Empty(t, got.Strengths)
	assert.NotNil(t, got.Strengths)
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{`7`, 7, true},
		{`6.5`, 6.5, true},
		{`"8"`, 8, true},
		{`" 4.5 "`, 4.5, true},
		{`"NaN"`, 0, false},
		{`"seven"`, 0, false},
		{`"8/10"`, 0, false},
		{`null`, 0, true},
		{`[1]`, 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseScore(json.RawMessage(tc.raw))
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

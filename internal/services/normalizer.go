package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
)

// MaxQuestions caps how many generated questions an interview keeps.
const MaxQuestions = 6

var (
	// A language tag is only taken when followed by whitespace, except the
	// common "json" hint which may be glued to the payload.
	leadingFence  = regexp.MustCompile("(?i)^\\s*```[ \\t]*(?:[a-z][\\w+-]*\\s|json)?")
	trailingFence = regexp.MustCompile("\\s*```\\s*$")

	errTrailingData = errors.New("unexpected data after JSON value")
)

// StripCodeFence removes a Markdown code fence wrapped around a model reply.
func StripCodeFence(text string) string {
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// DecodeQuestions returns the generated questions, or an empty list when the
// reply is not a JSON array of strings.
func DecodeQuestions(text string) []string {
	questions := []string{}

	var decoded []string
	if err := decodeStrict(StripCodeFence(text), &decoded); err != nil {
		return questions
	}

	for _, q := range decoded {
		if q = strings.TrimSpace(q); q == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) == MaxQuestions {
			break
		}
	}
	return questions
}

// DecodeAnswerFeedback never fails. Fields missing from the reply, or of the
// wrong type, keep their fallback value.
func DecodeAnswerFeedback(text string) models.AnswerFeedback {
	fb := models.FallbackAnswerFeedback()

	fields, ok := decodeObject(text)
	if !ok {
		return fb
	}

	fields.str("accent", &fb.Accent)
	fields.str("fluency", &fb.Fluency)
	fields.str("word_choice", &fb.WordChoice)
	fields.str("emotion", &fb.Emotion)
	fields.str("clarity", &fb.Clarity)
	fields.str("conciseness", &fb.Conciseness)
	fields.str("confidence", &fb.Confidence)
	fields.str("relevance", &fb.Relevance)
	fields.str("examples", &fb.Examples)
	fields.list("strengths", &fb.Strengths)
	fields.list("improvements", &fb.Improvements)
	fields.str("recommendation", &fb.Recommendation)
	fields.score("overall_score", &fb.OverallScore)

	return fb
}

// DecodeInterviewFeedback never fails. Fields missing from the reply, or of
// the wrong type, keep their fallback value.
func DecodeInterviewFeedback(text string) models.InterviewFeedback {
	fb := models.FallbackInterviewFeedback()

	fields, ok := decodeObject(text)
	if !ok {
		return fb
	}

	fields.str("summary", &fb.Summary)
	fields.list("strengths", &fb.Strengths)
	fields.list("improvements", &fb.Improvements)
	fields.str("communication", &fb.Communication)
	fields.str("consistency", &fb.Consistency)
	fields.str("examples_usage", &fb.ExamplesUsage)
	fields.str("final_recommendation", &fb.FinalRecommendation)
	fields.score("overall_score", &fb.OverallScore)

	return fb
}

// ParseScore reads a score given either as a JSON number or a numeric string.
func ParseScore(raw json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, !math.IsNaN(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ClampScore bounds a score to the 0-10 scale.
func ClampScore(score float64) float64 {
	return math.Min(models.MaxScore, math.Max(models.MinScore, score))
}

type rawObject map[string]json.RawMessage

func decodeObject(text string) (rawObject, bool) {
	var fields rawObject
	if err := decodeStrict(StripCodeFence(text), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func (o rawObject) str(key string, dst *string) {
	raw, ok := o[key]
	if !ok {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
		*dst = strings.TrimSpace(s)
	}
}

func (o rawObject) list(key string, dst *[]string) {
	raw, ok := o[key]
	if !ok {
		return
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func (o rawObject) score(key string, dst *float64) {
	raw, ok := o[key]
	if !ok {
		return
	}
	if n, ok := ParseScore(raw); ok {
		*dst = ClampScore(n)
	}
}

// decodeStrict accepts exactly one JSON value and nothing after it.
func decodeStrict(text string, dst interface{}) error {
	if text == "" {
		return io.ErrUnexpectedEOF
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

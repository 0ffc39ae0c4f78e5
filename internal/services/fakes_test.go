package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/llm"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type generatorCall struct {
	messages    []llm.ChatMessage
	temperature float32
}

// stubGenerator replies with the queued texts in order, then "".
type stubGenerator struct {
	replies []string
	calls   []generatorCall
}

func (g *stubGenerator) Complete(_ context.Context, messages []llm.ChatMessage, temperature float32) string {
	g.calls = append(g.calls, generatorCall{messages: messages, temperature: temperature})
	if len(g.replies) == 0 {
		return ""
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (s *memoryStorage) Save(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type stubPDFParser struct {
	text string
	err  error
}

func (p *stubPDFParser) ExtractText(string) (string, error) {
	return p.text, p.err
}

func (p *stubPDFParser) ExtractTextFromBytes([]byte) (string, error) {
	return p.text, p.err
}

type memoryResumeRepo struct {
	resumes   map[uuid.UUID]models.Resume
	createErr error
}

func newMemoryResumeRepo() *memoryResumeRepo {
	return &memoryResumeRepo{resumes: map[uuid.UUID]models.Resume{}}
}

func (r *memoryResumeRepo) Create(_ context.Context, resume *models.Resume) error {
	if r.createErr != nil {
		return r.createErr
	}
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	r.resumes[resume.ID] = *resume
	return nil
}

func (r *memoryResumeRepo) FindByIDForUser(_ context.Context, id uuid.UUID, userID string) (*models.Resume, error) {
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != userID {
		return nil, fmt.Errorf("resume not found: %w", repositories.ErrNotFound)
	}
	return &resume, nil
}

type memoryInterviewRepo struct {
	interviews map[uuid.UUID]*models.Interview
	finalized  int
}

func newMemoryInterviewRepo() *memoryInterviewRepo {
	return &memoryInterviewRepo{interviews: map[uuid.UUID]*models.Interview{}}
}

func (r *memoryInterviewRepo) Create(_ context.Context, interview *models.Interview) error {
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	stored := *interview
	r.interviews[interview.ID] = &stored
	return nil
}

func (r *memoryInterviewRepo) FindByIDForUser(_ context.Context, id uuid.UUID, userID string) (*models.Interview, error) {
	it, ok := r.interviews[id]
	if !ok || it.UserID != userID {
		return nil, fmt.Errorf("interview not found: %w", repositories.ErrNotFound)
	}
	return r.copyOf(it), nil
}

func (r *memoryInterviewRepo) ListByUser(_ context.Context, userID string) ([]models.Interview, error) {
	var out []models.Interview
	for _, it := range r.interviews {
		if it.UserID == userID {
			out = append(out, *r.copyOf(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (r *memoryInterviewRepo) AddAnswer(_ context.Context, answer *models.Answer) error {
	it, ok := r.interviews[answer.InterviewID]
	if !ok {
		return repositories.ErrNotFound
	}
	if it.Status == models.StatusFinalized {
		return repositories.ErrStaleState
	}
	for _, a := range it.Answers {
		if a.QuestionIndex == answer.QuestionIndex {
			return repositories.ErrDuplicate
		}
	}
	answer.ID = uuid.New()
	it.Answers = append(it.Answers, *answer)
	it.Status = models.StatusAnswering
	return nil
}

func (r *memoryInterviewRepo) Finalize(_ context.Context, id uuid.UUID, data *repositories.FinalizeData) error {
	it, ok := r.interviews[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if it.Status == models.StatusFinalized {
		return repositories.ErrStaleState
	}
	fb := data.Feedback
	score := data.Score
	completedAt := data.CompletedAt
	it.Feedback = &fb
	it.Score = &score
	it.CompletedAt = &completedAt
	it.Status = models.StatusFinalized
	r.finalized++
	return nil
}

func (r *memoryInterviewRepo) copyOf(it *models.Interview) *models.Interview {
	c := *it
	c.Answers = append([]models.Answer(nil), it.Answers...)
	sort.Slice(c.Answers, func(i, j int) bool { return c.Answers[i].QuestionIndex < c.Answers[j].QuestionIndex })
	return &c
}

type memoryUserRepo struct {
	users map[string]models.User
	err   error
}

func (r *memoryUserRepo) Upsert(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	existing, ok := r.users[user.ExternalID]
	if ok {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	} else {
		user.ID = uuid.New()
		user.CreatedAt = time.Now()
	}
	r.users[user.ExternalID] = *user
	return nil
}

var errBoom = errors.New("boom")

func pdfUpload(name string) *UploadedFile {
	return &UploadedFile{
		FileName:    name,
		ContentType: "application/pdf",
		Content:     bytes.Repeat([]byte("%PDF"), 4),
	}
}

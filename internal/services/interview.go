package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type SubmitAnswerInput struct {
	InterviewID   uuid.UUID
	QuestionIndex int
	Transcript    string
	// Audio is optional.
	Audio *UploadedFile
}

type InterviewService interface {
	StartInterview(ctx context.Context, userID string, resumeID uuid.UUID) (*models.StartInterviewResponse, error)
	GetInterview(ctx context.Context, userID string, interviewID uuid.UUID) (*models.Interview, error)
	SubmitAnswer(ctx context.Context, userID string, input SubmitAnswerInput) (*models.Answer, error)
	FinalizeInterview(ctx context.Context, userID string, interviewID uuid.UUID) (*models.InterviewFeedback, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	resumeRepo    repositories.ResumeRepository
	coach         CoachService
	storage       StorageService
	now           func() time.Time
	logger        *zap.Logger
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	resumeRepo repositories.ResumeRepository,
	coach CoachService,
	storage StorageService,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		resumeRepo:    resumeRepo,
		coach:         coach,
		storage:       storage,
		now:           time.Now,
		logger:        zap.L().Named("interview"),
	}
}

func (s *interviewService) StartInterview(ctx context.Context, userID string, resumeID uuid.UUID) (*models.StartInterviewResponse, error) {
	resume, err := s.resumeRepo.FindByIDForUser(ctx, resumeID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFound("Resume not found")
		}
		return nil, Internal("failed to load resume", err)
	}

	questions := s.coach.GenerateQuestions(ctx, resume.ParsedJSON)
	if len(questions) == 0 {
		return nil, Upstream("Could not generate questions", nil)
	}

	interview := &models.Interview{
		UserID:    userID,
		ResumeID:  resume.ID,
		Questions: questions,
		Status:    models.StatusCreated,
		StartedAt: s.now(),
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, Internal("failed to create interview", err)
	}

	s.logger.Info("interview started",
		zap.String("interview_id", interview.ID.String()),
		zap.Int("questions", len(questions)),
	)

	return &models.StartInterviewResponse{
		InterviewID: interview.ID.String(),
		Questions:   questions,
	}, nil
}

func (s *interviewService) GetInterview(ctx context.Context, userID string, interviewID uuid.UUID) (*models.Interview, error) {
	return s.loadInterview(ctx, userID, interviewID)
}

// SubmitAnswer records the critique of one answer. Each question can be
// answered once and nothing can be answered after finalization.
func (s *interviewService) SubmitAnswer(ctx context.Context, userID string, input SubmitAnswerInput) (*models.Answer, error) {
	interview, err := s.loadInterview(ctx, userID, input.InterviewID)
	if err != nil {
		return nil, err
	}
	if interview.IsFinalized() {
		return nil, Conflict("Interview is already finalized")
	}
	if input.QuestionIndex < 0 || input.QuestionIndex >= len(interview.Questions) {
		return nil, InvalidInput("Invalid question index")
	}
	for _, a := range interview.Answers {
		if a.QuestionIndex == input.QuestionIndex {
			return nil, Conflict("Question has already been answered")
		}
	}

	transcript := input.Transcript
	if strings.TrimSpace(transcript) == "" {
		transcript = ""
	}
	question := interview.Questions[input.QuestionIndex]

	var audioKey string
	if input.Audio != nil && len(input.Audio.Content) > 0 {
		audioKey = NewStorageKey("audio", input.Audio.FileName)
		audio := input.Audio
		if err := s.storage.Save(ctx, audioKey, bytes.NewReader(audio.Content), audio.Size(), audio.ContentType); err != nil {
			return nil, Internal("failed to store audio", err)
		}
	}

	answer := &models.Answer{
		InterviewID:   interview.ID,
		QuestionIndex: input.QuestionIndex,
		Question:      question,
		Transcript:    transcript,
		AudioKey:      audioKey,
		AIFeedback:    s.coach.AnalyzeAnswer(ctx, question, transcript),
	}

	if err := s.interviewRepo.AddAnswer(ctx, answer); err != nil {
		s.discardAudio(ctx, audioKey)
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, Conflict("Question has already been answered")
		case errors.Is(err, repositories.ErrStaleState):
			return nil, Conflict("Interview is already finalized")
		default:
			return nil, Internal("failed to save answer", err)
		}
	}

	return answer, nil
}

// FinalizeInterview requires an answer for every question. The critique is
// written once; later calls are conflicts.
func (s *interviewService) FinalizeInterview(ctx context.Context, userID string, interviewID uuid.UUID) (*models.InterviewFeedback, error) {
	interview, err := s.loadInterview(ctx, userID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.IsFinalized() {
		return nil, Conflict("Interview is already finalized")
	}

	transcripts, ok := orderedTranscripts(interview)
	if !ok {
		return nil, InvalidInput("interview has unanswered questions")
	}

	feedback := s.coach.AnalyzeInterview(ctx, transcripts)
	completedAt := s.now()

	err = s.interviewRepo.Finalize(ctx, interview.ID, &repositories.FinalizeData{
		Feedback:    feedback,
		Score:       feedback.OverallScore,
		CompletedAt: completedAt,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrStaleState) {
			return nil, Conflict("Interview is already finalized")
		}
		return nil, Internal("failed to finalize interview", err)
	}

	s.logger.Info("interview finalized",
		zap.String("interview_id", interview.ID.String()),
		zap.Float64("score", feedback.OverallScore),
	)

	return &feedback, nil
}

func (s *interviewService) loadInterview(ctx context.Context, userID string, interviewID uuid.UUID) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByIDForUser(ctx, interviewID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFound("Interview not found")
		}
		return nil, Internal("failed to load interview", err)
	}
	return interview, nil
}

func (s *interviewService) discardAudio(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to clean up stored audio", zap.String("key", key), zap.Error(err))
	}
}

// orderedTranscripts returns one transcript per question, in question order,
// or false when a question has no answer.
func orderedTranscripts(interview *models.Interview) ([]string, bool) {
	byIndex := make(map[int]string, len(interview.Answers))
	for _, a := range interview.Answers {
		byIndex[a.QuestionIndex] = a.Transcript
	}

	transcripts := make([]string, len(interview.Questions))
	for i := range interview.Questions {
		t, ok := byIndex[i]
		if !ok {
			return nil, false
		}
		transcripts[i] = t
	}
	return transcripts, true
}

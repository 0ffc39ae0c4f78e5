package services

import (
	"context"
	"math"
	"time"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error)
}

type dashboardService struct {
	interviewRepo repositories.InterviewRepository
}

func NewDashboardService(interviewRepo repositories.InterviewRepository) DashboardService {
	return &dashboardService{interviewRepo: interviewRepo}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error) {
	interviews, err := s.interviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, Internal("failed to load dashboard", err)
	}
	return BuildDashboard(interviews), nil
}

// BuildDashboard expects interviews ordered by start time, oldest first.
func BuildDashboard(interviews []models.Interview) *models.DashboardResponse {
	resp := &models.DashboardResponse{
		Interviews: make([]models.DashboardInterview, 0, len(interviews)),
		Trend:      make([]models.TrendPoint, 0, len(interviews)),
	}

	var total float64
	for i := range interviews {
		it := &interviews[i]
		item := models.DashboardInterview{
			ID:        it.ID.String(),
			StartedAt: it.StartedAt.UTC().Format(time.RFC3339),
			Status:    string(it.Status),
			Score:     it.Score,
			Feedback:  dashboardFeedback(it),
		}
		resp.Interviews = append(resp.Interviews, item)
		resp.Trend = append(resp.Trend, trendPoint(it.StartedAt, item.Feedback.OverallScore))

		if score := item.Feedback.OverallScore; score != nil {
			total += *score
		}
		resp.Stats.LastScore = item.Feedback.OverallScore
	}

	resp.Stats.InterviewCount = len(interviews)
	if len(interviews) > 0 {
		resp.Stats.AverageScore = roundOneDecimal(total / float64(len(interviews)))
	}

	return resp
}

// OverallScore is the interview critique score when one was written, otherwise
// the average of the answer scores (see DeriveOverallScore).
func OverallScore(interview *models.Interview) *float64 {
	if interview.Feedback != nil {
		score := interview.Feedback.OverallScore
		return &score
	}
	return DeriveOverallScore(interview.Answers)
}

// DeriveOverallScore averages the per-answer scores, rounded to one decimal.
// It returns nil when there are no answers.
func DeriveOverallScore(answers []models.Answer) *float64 {
	if len(answers) == 0 {
		return nil
	}

	var sum float64
	for _, a := range answers {
		sum += a.AIFeedback.OverallScore
	}
	avg := roundOneDecimal(sum / float64(len(answers)))
	return &avg
}

func dashboardFeedback(interview *models.Interview) models.DashboardFeedback {
	fb := models.DashboardFeedback{
		OverallScore: OverallScore(interview),
	}
	if interview.Feedback != nil {
		summary := interview.Feedback.Summary
		fb.Summary = &summary
		fb.Strengths = interview.Feedback.Strengths
		fb.Improvements = interview.Feedback.Improvements
	}
	return fb
}

func trendPoint(startedAt time.Time, score *float64) models.TrendPoint {
	point := models.TrendPoint{Date: startedAt.UTC().Format("2006-01-02")}
	if score != nil {
		rounded := roundOneDecimal(*score)
		point.Score = &rounded
	}
	return point
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

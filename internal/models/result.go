package models

type SyncUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type ResumeResponse struct {
	ResumeID   string         `json:"resume_id"`
	ParsedJSON ResumeDocument `json:"parsed_json"`
}

type StartInterviewRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
}

type StartInterviewResponse struct {
	InterviewID string   `json:"interview_id"`
	Questions   []string `json:"questions"`
}

type AnswerResponse struct {
	ID         string         `json:"id"`
	Transcript string         `json:"transcript"`
	AIFeedback AnswerFeedback `json:"ai_feedback"`
}

// DashboardFeedback is the subset of interview feedback shown on the dashboard.
type DashboardFeedback struct {
	Summary      *string  `json:"summary"`
	OverallScore *float64 `json:"overall_score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type DashboardInterview struct {
	ID        string            `json:"id"`
	StartedAt string            `json:"started_at"`
	Status    string            `json:"status"`
	Score     *float64          `json:"score"`
	Feedback  DashboardFeedback `json:"feedback"`
}

type TrendPoint struct {
	Date  string   `json:"date"`
	Score *float64 `json:"score"`
}

type DashboardStats struct {
	InterviewCount int      `json:"interview_count"`
	AverageScore   float64  `json:"average_score"`
	LastScore      *float64 `json:"last_score"`
}

type DashboardResponse struct {
	Interviews []DashboardInterview `json:"interviews"`
	Stats      DashboardStats       `json:"stats"`
	Trend      []TrendPoint         `json:"trend"`
}

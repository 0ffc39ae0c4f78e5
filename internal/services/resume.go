package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

const pdfContentType = "application/pdf"

// UploadedFile is a fully read multipart upload.
type UploadedFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

func (f *UploadedFile) Size() int64 {
	return int64(len(f.Content))
}

func (f *UploadedFile) IsPDF() bool {
	contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
	if strings.HasPrefix(contentType, pdfContentType) {
		return true
	}
	return strings.EqualFold(filepath.Ext(f.FileName), ".pdf")
}

type ResumeService interface {
	SaveResume(ctx context.Context, userID string, file *UploadedFile) (*models.ResumeResponse, error)
}

type resumeService struct {
	resumeRepo  repositories.ResumeRepository
	storage     StorageService
	pdfParser   PDFParserService
	maxFileSize int64
	logger      *zap.Logger
}

func NewResumeService(
	resumeRepo repositories.ResumeRepository,
	storage StorageService,
	pdfParser PDFParserService,
	maxFileSize int64,
) ResumeService {
	return &resumeService{
		resumeRepo:  resumeRepo,
		storage:     storage,
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
		logger:      zap.L().Named("resume"),
	}
}

func (s *resumeService) SaveResume(ctx context.Context, userID string, file *UploadedFile) (*models.ResumeResponse, error) {
	if file == nil || len(file.Content) == 0 {
		return nil, InvalidInput("No file uploaded")
	}
	if !file.IsPDF() {
		return nil, InvalidInput("Please upload a PDF.")
	}
	if s.maxFileSize > 0 && file.Size() > s.maxFileSize {
		return nil, InvalidInput(fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}

	rawText, err := s.pdfParser.ExtractTextFromBytes(file.Content)
	if err != nil {
		return nil, newError(CodeInvalidInput, "could not read text from the PDF", err)
	}
	parsed := ToStructuredResume(rawText)

	key := NewStorageKey("resumes", file.FileName)
	if err := s.storage.Save(ctx, key, bytes.NewReader(file.Content), file.Size(), pdfContentType); err != nil {
		return nil, Internal("failed to store resume", err)
	}

	resume := &models.Resume{
		UserID:     userID,
		FileName:   file.FileName,
		StorageKey: key,
		ParsedJSON: parsed,
	}
	if err := s.resumeRepo.Create(ctx, resume); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up stored resume", zap.String("key", key), zap.Error(delErr))
		}
		return nil, Internal("failed to save resume", err)
	}

	s.logger.Info("resume saved",
		zap.String("resume_id", resume.ID.String()),
		zap.Int("lines", len(parsed.Lines)),
	)

	return &models.ResumeResponse{
		ResumeID:   resume.ID.String(),
		ParsedJSON: resume.ParsedJSON,
	}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

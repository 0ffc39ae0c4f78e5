package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/services"
)

// readUpload loads a multipart file into memory, refusing anything above maxSize.
func readUpload(file *multipart.FileHeader, maxSize int64) (*services.UploadedFile, error) {
	if maxSize > 0 && file.Size > maxSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("file too large. Max size: %d bytes", maxSize))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &services.UploadedFile{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}

package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/entity"
)

var AllowedExtensions = map[string]bool{
	".pdf": true,
}

var allowedContentTypes = map[string]bool{
	"":                         true,
	"application/pdf":          true,
	"application/x-pdf":        true,
	"application/octet-stream": true,
}

// Validator validates document uploads and pipeline requests
type Validator struct {
	cfg config.DocumentConfig
}

func NewValidator(cfg config.DocumentConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateTurn reports every violated constraint of a question-answering turn, not just the first
func ValidateTurn(question, document string) error {
	var violations []string

	if strings.TrimSpace(question) == "" {
		violations = append(violations, "Question cannot be empty.")
	}
	if strings.TrimSpace(document) == "" {
		violations = append(violations, "PDF content cannot be empty.")
	}

	if len(violations) > 0 {
		return &entity.ValidationError{Violations: violations}
	}

	return nil
}

// ValidateExport validates an answered turn submitted for export
func ValidateExport(req *entity.ExportRequest) error {
	var violations []string

	if strings.TrimSpace(req.Question) == "" {
		violations = append(violations, "Question cannot be empty.")
	}
	if strings.TrimSpace(req.Answer) == "" {
		violations = append(violations, "Answer cannot be empty.")
	}

	if len(violations) > 0 {
		return &entity.ValidationError{Violations: violations}
	}

	return nil
}

// ValidateUpload validates an uploaded PDF file
func (v *Validator) ValidateUpload(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedExtensions[ext] {
		return fmt.Errorf("%w: %q (only .pdf files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if file.Size <= 0 {
		return fmt.Errorf("%w: file '%s' is empty", entity.ErrInvalidFile, file.Filename)
	}

	if file.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: content type '%s' (expected application/pdf)", entity.ErrInvalidExtension, contentType)
	}

	return nil
}

// ValidateContent checks the size of raw document bytes; readability is left to the extraction service
func (v *Validator) ValidateContent(filename string, content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("%w: file '%s' is empty", entity.ErrInvalidFile, filename)
	}

	if int64(len(content)) > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, filename, len(content), v.cfg.MaxFileSize)
	}

	return nil
}

// SanitizeFilename sanitizes a filename for logs and download headers
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"\"", "",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}

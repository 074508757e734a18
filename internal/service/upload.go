package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"alzmate/internal/config"
)

// ErrUploadsDisabled is returned when Cloudinary is not configured.
var ErrUploadsDisabled = errors.New("voice uploads are not configured")

// UploadService pushes voice recordings to Cloudinary via unsigned upload
type UploadService struct {
	config *config.UploadConfig
	client *http.Client
	logger *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(cfg *config.UploadConfig, logger *zap.Logger) *UploadService {
	return &UploadService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// UploadVoiceRecording stores an audio file under the patient's journal
// folder and returns its public URL.
func (s *UploadService) UploadVoiceRecording(ctx context.Context, patientID, journalEntryID string, file io.Reader, filename string) (string, error) {
	if !s.config.IsEnabled() {
		return "", ErrUploadsDisabled
	}

	folder := "journal/" + patientID
	if journalEntryID != "" {
		folder += "/" + journalEntryID
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := writer.WriteField("upload_preset", s.config.UploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := writer.WriteField("folder", folder); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.UploadEndpoint(), pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.Error("cloudinary upload failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("cloudinary upload failed with status %d", resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary response missing secure_url")
	}
	return result.SecureURL, nil
}

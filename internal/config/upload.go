package config

import "os"

// UploadConfig holds the Cloudinary settings for voice journal uploads.
// Uploads are unsigned and scoped by an upload preset.
type UploadConfig struct {
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset"`
	TimeoutMS    int    `json:"timeoutMs"`
}

// DefaultUploadConfig returns the default upload configuration
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		UploadPreset: getEnvOrDefault("CLOUDINARY_UPLOAD_PRESET", "alzmate_journal"),
		TimeoutMS:    30000,
	}
}

// IsEnabled returns true if Cloudinary is configured
func (c *UploadConfig) IsEnabled() bool {
	return c.CloudName != ""
}

// UploadEndpoint returns the unsigned video upload endpoint. Voice
// recordings go through the video pipeline on Cloudinary.
func (c *UploadConfig) UploadEndpoint() string {
	return "https://api.cloudinary.com/v1_1/" + c.CloudName + "/video/upload"
}

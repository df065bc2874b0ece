package configuration

import (
	"fmt"
	"os"
)

// YouTubeConfig is the resolved YouTube API configuration for the service-level
// client (API key mode). Per-user OAuth tokens live in the oauth_tokens table.
type YouTubeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIKey       string
}

// GetYouTubeConfig returns YouTube configuration from the JSON config with
// environment variable fallback.
func GetYouTubeConfig() (*YouTubeConfig, error) {
	defaultRedirect := fmt.Sprintf("http://localhost:%d/auth/youtube/callback", C.App.Port)
	config := &YouTubeConfig{
		ClientID:     getConfigValue(C.YouTube.ClientID, "YOUTUBE_CLIENT_ID", ""),
		ClientSecret: getConfigValue(C.YouTube.ClientSecret, "YOUTUBE_CLIENT_SECRET", ""),
		RedirectURL:  getConfigValue(C.YouTube.RedirectURI, "YOUTUBE_REDIRECT_URL", defaultRedirect),
		APIKey:       getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
	}
	if config.APIKey == "" && config.ClientID == "" {
		return nil, fmt.Errorf("no YouTube credentials configured")
	}
	return config, nil
}

func getConfigValue(fromConfig, envKey, fallback string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return getEnv(envKey, fallback)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

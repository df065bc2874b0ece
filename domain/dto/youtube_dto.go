package dto

// YouTubeTokenRequest links a user's YouTube OAuth credentials. Tokens are
// obtained by the frontend OAuth flow and stored server-side.
type YouTubeTokenRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at,omitempty"` // RFC3339
	Scopes       string `json:"scopes,omitempty"`
}

// YouTubeStatusResponse reports whether the user has linked YouTube. Token
// values are never echoed back.
type YouTubeStatusResponse struct {
	Connected bool   `json:"connected"`
	Scopes    string `json:"scopes,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

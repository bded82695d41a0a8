// File: internal/auth/model.go
package auth

// SessionRequest carries the Firebase ID token exchanged for session tokens.
type SessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// RefreshRequest carries a refresh token to be exchanged for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SessionUser is the user summary embedded in session responses.
type SessionUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

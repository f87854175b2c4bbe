package dto

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required" example:"User42"`
	Email     string `json:"email" binding:"required,email" example:"user@example.com"`
	Password  string `json:"password" binding:"required" example:"secret12"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
}

// ActivateRequest confirms an account or a pending email change
type ActivateRequest struct {
	ActivationCode string `json:"activationCode" binding:"required" example:"a3c1f0f4-4f0f-4d1e-bb1a-7b1be4a9f6c1"`
}

// LoginRequest is the payload for username/password login
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"User42"`
	Password string `json:"password" binding:"required" example:"secret12"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

package handler

// Request and response shapes for the auth endpoints. Field names follow the
// public API contract; 2FACode keeps its historical JSON spelling.

type signupRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	RequiresTwoFactor bool   `json:"requires2FA"`
}

type signupResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type twoFactorRequiredResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

type verifyTwoFactorRequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	Code           string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

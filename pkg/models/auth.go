package models

// TokenResponse is returned by POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ProtectedResponse is returned by GET /auth/protected and names the
// identity the bearer token was issued for.
type ProtectedResponse struct {
	Message string `json:"message"`
	Subject string `json:"subject"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

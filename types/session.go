package types

// ServerConfig is the GET /api/config response.
type ServerConfig struct {
	SessionEnabled      bool     `json:"session_enabled"`
	MaxFileSize         int64    `json:"max_file_size"`
	AutoRefreshInterval int      `json:"auto_refresh_interval"`
	AllowedExtensions   []string `json:"allowed_extensions"`
}

// SessionCreateResponse is the POST /api/session/create response.
// IsNew distinguishes a freshly issued token from a resumed session.
type SessionCreateResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	SessionID int    `json:"session_id"`
	Message   string `json:"message"`
	IsNew     bool   `json:"is_new"`
	Error     string `json:"error,omitempty"`
}

// SessionValidateRequest is the POST /api/session/validate request body.
type SessionValidateRequest struct {
	Token string `json:"token"`
}

// SessionValidateResponse is the POST /api/session/validate response.
// Success means the server answered; Valid is the verdict on the token.
type SessionValidateResponse struct {
	Success bool   `json:"success"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

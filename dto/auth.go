package dto

// SignupRequest represents registration data
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"email"`
	Password string `json:"password" binding:"min=7"`
}

// ValidationMessages maps each field to the message shown when its rule fails.
func (SignupRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"Username": "Please enter a username",
		"Email":    "Please enter a valid email",
		"Password": "Please enter a password with at least 7 characters",
	}
}

// LoginRequest represents login credentials. Either username or email
// identifies the account.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// ValidationMessages maps each field to the message shown when its rule fails.
func (LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"Password": "Please enter your password",
	}
}

// SignupResponse is returned after a successful signup
type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

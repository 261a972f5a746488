package dto

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponseDTO carries the issued bearer token and the resolved role so
// clients can route admins to the dashboard.
type LoginResponseDTO struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PasswordResetRequestDTO starts the reset flow: both fields must match one
// account.
type PasswordResetRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type PasswordResetTokenDTO struct {
	ResetToken string `json:"reset_token"`
}

type PasswordResetConfirmDTO struct {
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=4"`
}

type PasswordChangeDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4"`
}

type AdminSetPasswordDTO struct {
	NewPassword string `json:"new_password" binding:"required,min=4"`
}

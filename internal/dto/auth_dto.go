package dto

type RegisterRequest struct {
	UserName       string `json:"userName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	PasswordVerify string `json:"passwordVerify" validate:"required"`
	AvatarImage    string `json:"avatarImage,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EditAccountRequest carries a partial account update. Empty fields are left
// untouched; a password change requires the matching verify field.
type EditAccountRequest struct {
	UserName       string `json:"userName,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Password       string `json:"password,omitempty" validate:"omitempty,min=8"`
	PasswordVerify string `json:"passwordVerify,omitempty"`
	AvatarImage    string `json:"avatarImage,omitempty"`
}

// UserResponse is the public view of an account. The password hash and
// playlist ids never leave the server through auth endpoints.
type UserResponse struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	AvatarImage string `json:"avatarImage,omitempty"`
}

type LoggedInResponse struct {
	LoggedIn bool          `json:"loggedIn"`
	User     *UserResponse `json:"user"`
}

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

package dto

// CreateUserRequest provisions a back-office operator account. The
// provisional password is bcrypt-hashed before it reaches the database.
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN OPERATOR"`
}

// UpdateUserStatusRequest activates or deactivates an operator account.
type UpdateUserStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

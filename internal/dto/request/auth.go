package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest fields are optional, but at least one must be sent
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,max=72"`
}

package auth

// RegisterRequest carries the multipart form fields of POST
// /auth/signup; the optional profile image is read separately.
type RegisterRequest struct {
	Name     string `form:"name" validate:"required,min=3,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

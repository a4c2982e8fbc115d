package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// registerForm is bound from the multipart registration form; the resume
// file itself travels as the "resume" form file.
type registerForm struct {
	Name     string `form:"name"     validate:"required"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type adminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
}

// adminUpdateForm is bound from the multipart admin-update form. Password
// and the "resume" form file are optional; absent means leave unchanged.
type adminUpdateForm struct {
	Name     string `form:"name"  validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password"`
}

type updateUserRequest struct {
	Name       string `json:"name"  validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	ResumePath string `json:"resume_path"`
}

type userResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ResumePath string `json:"resume_path"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type urlListResponse struct {
	URLs []string `json:"urls"`
}

package dto

// LoginRequest carries the credentials posted to /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse returns the opaque session token.
type LoginResponse struct {
	Status    string `json:"status"`
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}

// MeResponse describes the caller. Student fields are omitted for the superuser.
type MeResponse struct {
	Status      string  `json:"status"`
	User        string  `json:"user"`
	Role        string  `json:"role"`
	StudentName *string `json:"student_name,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	Course      *string `json:"course,omitempty"`
	Batch       *string `json:"batch,omitempty"`
}

// ProvisionedCredential is a credential created by the bootstrap, with its one-time plaintext password.
type ProvisionedCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BootstrapResponse lists the credentials created by a bootstrap run.
type BootstrapResponse struct {
	Status      string                  `json:"status"`
	Message     string                  `json:"message"`
	Provisioned []ProvisionedCredential `json:"provisioned"`
}

package auth

type CredentialsRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterResponse struct {
	ServiceID string `json:"service_id"`
}

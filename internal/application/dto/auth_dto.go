package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// LoginResponse token Bearer para las rutas de escritura.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"` // segundos
	Role      string `json:"role"`
}

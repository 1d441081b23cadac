package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/freshfruits-billing/internal/application/dto"
	"github.com/jhoicas/freshfruits-billing/internal/domain"
	"github.com/jhoicas/freshfruits-billing/pkg/jwt"
)

// OperatorSubject sujeto fijo del token: hay un solo operador por instancia.
const OperatorSubject = "operator"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login opcional del operador con PIN.
type AuthUseCase struct {
	pinHash []byte
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso. Con pinHash o secret vacíos el login queda deshabilitado.
func NewAuthUseCase(pinHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{pinHash: []byte(strings.TrimSpace(pinHash)), jwtCfg: jwtCfg}
}

// Enabled indica si las rutas de escritura exigen token.
func (uc *AuthUseCase) Enabled() bool {
	return len(uc.pinHash) > 0 && uc.jwtCfg.Secret != ""
}

// Secret clave de firma para el middleware.
func (uc *AuthUseCase) Secret() string { return uc.jwtCfg.Secret }

// Login verifica el PIN contra el hash bcrypt y emite un JWT.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrAuthDisabled
	}
	if in.PIN == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := bcrypt.CompareHashAndPassword(uc.pinHash, []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, OperatorSubject, jwt.RoleOperator, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Role:      jwt.RoleOperator,
	}, nil
}

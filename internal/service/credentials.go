package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialInfo resume el estado del bearer token capturado. Los tokens de
// Hinge son JWT: se inspeccionan sin verificar firma (no tenemos la clave
// del servidor) solo para anticipar un Fatal por credencial vencida.
type CredentialInfo struct {
	PlayerID  string    `json:"player_id,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Expired   bool      `json:"expired"`
}

// InspectToken parsea el token sin validar firma y extrae sub/iat/exp.
func InspectToken(token string) (CredentialInfo, error) {
	if token == "" {
		return CredentialInfo{}, fmt.Errorf("empty bearer token")
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return CredentialInfo{}, fmt.Errorf("parse bearer token: %w", err)
	}

	var info CredentialInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.PlayerID = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = time.Now().After(exp.Time)
	}
	return info, nil
}

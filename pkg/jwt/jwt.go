// Package jwt firma y valida los tokens de acceso de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos por la API.
const (
	RoleAdmin      = "admin"      // todo, incluida la importación de tasas
	RoleAccountant = "accountant" // contabiliza y liquida
	RoleClerk      = "clerk"      // crea documentos y asientos en borrador
)

// ErrInvalidClaims el token no trae usuario o entidad.
var ErrInvalidClaims = errors.New("jwt: claims inválidos")

// Claims claims estándar más usuario, entidad y rol.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token HS256.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve usuario, entidad y rol.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", "", "", err
	}
	if !token.Valid || claims.UserID == "" || claims.CompanyID == "" {
		return "", "", "", ErrInvalidClaims
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}

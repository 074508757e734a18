package model

import "github.com/golang-jwt/jwt/v5"

// CaregiverClaims are the JWT claims for a caregiver session.
type CaregiverClaims struct {
	CaregiverID string `json:"caregiverId"`
	jwt.RegisteredClaims
}

// LoginRequest is the caregiver login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token       string `json:"token"`
	CaregiverID string `json:"caregiverId"`
}

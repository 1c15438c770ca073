package models

import "github.com/golang-jwt/jwt/v5"

// UserRole mirrors the roles issued by the upstream auth service.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims represents the access-token payload issued upstream. The console
// validates tokens but never issues them.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Session is the explicit per-request session context handed to services.
// It replaces any notion of process-wide "current user" state.
type Session struct {
	UserID string
	Role   UserRole
	Token  string
}

// SessionFromClaims builds the session context for downstream calls.
func SessionFromClaims(claims *JWTClaims, token string) Session {
	if claims == nil {
		return Session{Token: token}
	}
	return Session{UserID: claims.UserID, Role: claims.Role, Token: token}
}

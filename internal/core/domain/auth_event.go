package domain

import "time"

// AuthEventType names an entry of the authentication audit trail.
type AuthEventType string

const (
	EventLoginSucceeded         AuthEventType = "login_succeeded"
	EventLoginFailed            AuthEventType = "login_failed"
	EventPasswordChanged        AuthEventType = "password_changed"
	EventPasswordChangeRejected AuthEventType = "password_change_rejected"
	EventTokenRefreshed         AuthEventType = "token_refreshed"
)

// AuthEvent records one authentication-relevant outcome.
// Reason holds the internal failure cause and is never shown to clients.
type AuthEvent struct {
	Type      AuthEventType
	Login     string
	Reason    string
	ClientIP  string
	RequestID string
	Timestamp time.Time
}

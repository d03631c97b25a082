// internal/pkg/session/types.go
package session

import "encoding/json"

// Session is the auth blob the hosted provider persists for a signed-in
// account. Only AccessToken is required by the gateway; the rest is kept
// so a save/clear round trip does not lose fields.
type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	TokenType    string          `json:"token_type,omitempty"`
	ExpiresAt    int64           `json:"expires_at,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

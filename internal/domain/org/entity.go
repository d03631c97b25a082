// internal/domain/org/entity.go
package org

import (
	"fmt"
	"time"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/google/uuid"
)

// Org is an organization as seen by the admin console.
type Org struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// User is an account row returned by the admin_list_users RPC.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	Role         string
	OrgID        uuid.UUID
	LastSignInAt *time.Time
	CreatedAt    time.Time
}

type UserRow struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	OrgID        string     `json:"org_id"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ParseUserRow(r UserRow) (User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return User{}, &xerrors.SchemaError{Entity: "user", Field: "id", Cause: err}
	}
	orgID, err := uuid.Parse(r.OrgID)
	if err != nil {
		return User{}, &xerrors.SchemaError{Entity: "user", Field: "org_id", Cause: err}
	}
	return User{
		ID:           id,
		Email:        r.Email,
		FullName:     r.FullName,
		Role:         r.Role,
		OrgID:        orgID,
		LastSignInAt: r.LastSignInAt,
		CreatedAt:    r.CreatedAt,
	}, nil
}

func ParseUserRows(rows []UserRow) ([]User, error) {
	out := make([]User, 0, len(rows))
	for i, r := range rows {
		u, err := ParseUserRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}

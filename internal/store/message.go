// internal/store/message.go
package store

import (
	xerrors "crmdash-service/internal/pkg/errors"
)

// HumanMessage maps an operation failure onto the message shown in a
// container's error slot.
func HumanMessage(err error) string {
	var authErr *xerrors.AuthError
	if xerrors.As(err, &authErr) {
		return "Your session has expired. Please sign in again."
	}

	var netErr *xerrors.NetworkError
	if xerrors.As(err, &netErr) {
		return "Network error. Check your connection and try again."
	}

	var srvErr *xerrors.ServerError
	if xerrors.As(err, &srvErr) {
		if srvErr.Message != "" {
			return srvErr.Message
		}
		return "The server could not complete the request."
	}

	var valErr *xerrors.ValidationError
	if xerrors.As(err, &valErr) {
		return valErr.Reason
	}

	return "Something went wrong. Please try again."
}

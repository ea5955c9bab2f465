package sessionmgr

import (
	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
)

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request payload.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// PasswordChange is the change-password request payload.
type PasswordChange struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

// ProfileUpdate carries the mutable profile fields. When Avatar is set the
// request is sent as multipart form data, otherwise as JSON.
type ProfileUpdate struct {
	Name   *string
	Avatar *apiclient.File
}

// SuccessResponse is the acknowledgement shape of request-style endpoints.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// authPayload is the response shape of auth endpoints: the user snapshot
// plus an optional (rotated) token.
type authPayload struct {
	Token string          `json:"token"`
	User  *apiclient.User `json:"user"`
}

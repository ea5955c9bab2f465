package credsync

import (
	"encoding/json"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
)

// Credential is the persisted authentication snapshot: the opaque bearer
// token plus the minimal user model that came with it. It survives page
// loads / process restarts and is the seed for the next startup.
type Credential struct {
	Token string          `json:"token"`
	Model *apiclient.User `json:"model"`
}

// IsZero reports whether the credential carries no token.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// Encode serializes the credential to its canonical JSON form.
func (c Credential) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// DecodeCredential parses the canonical JSON form.
func DecodeCredential(data []byte) (Credential, error) {
	var c Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return Credential{}, ErrInvalidCredential
	}
	return c, nil
}

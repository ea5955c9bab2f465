package apiclient

import (
	"encoding/json"
	"maps"
)

// User is the minimal identity snapshot returned by the backend. Fields
// beyond the ones the UI needs are preserved opaquely in Extra so that a
// round trip through the persisted credential does not lose data.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`

	// Extra holds backend fields this layer does not interpret.
	Extra map[string]any `json:"-"`
}

var knownUserFields = map[string]struct{}{
	"id": {}, "name": {}, "username": {}, "email": {}, "avatar": {},
}

// UnmarshalJSON decodes the known identity fields and keeps everything else
// in Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range knownUserFields {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*u = User(known)
	u.Extra = raw
	return nil
}

// MarshalJSON merges the known fields with Extra. Known fields win on key
// collision.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+5)
	maps.Copy(out, u.Extra)
	out["id"] = u.ID
	out["name"] = u.Name
	out["username"] = u.Username
	out["email"] = u.Email
	out["avatar"] = u.Avatar
	return json.Marshal(out)
}

// Clone returns a deep-enough copy for snapshot semantics: Extra is copied
// one level deep, which is sufficient because this layer never mutates
// nested values.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.Extra != nil {
		cp.Extra = make(map[string]any, len(u.Extra))
		maps.Copy(cp.Extra, u.Extra)
	}
	return &cp
}

package models

import "slices"

// Profile is the local user
type Profile struct {
	Handle    string   `json:"handle"`
	Bio       string   `json:"bio,omitempty"`
	Following []string `json:"following"`
}

// IsFollowing reports whether handle is in the following list
func (p Profile) IsFollowing(handle string) bool {
	return slices.Contains(p.Following, handle)
}

// Clone returns a copy of p with its own following slice
func (p Profile) Clone() Profile {
	c := p
	c.Following = slices.Clone(p.Following)
	return c
}

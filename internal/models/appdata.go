package models

import "slices"

// AppData is the root document. It is loaded and saved as a whole.
type AppData struct {
	Posts   []Post   `json:"posts"`
	Meetups []Meetup `json:"meetups"`
	Profile Profile  `json:"profile"`
	// Handles is the discovery list of every handle seen so far.
	Handles []string `json:"handles"`
}

// FindPost returns a pointer into d.Posts, or nil
func (d *AppData) FindPost(id string) *Post {
	for i := range d.Posts {
		if d.Posts[i].ID == id {
			return &d.Posts[i]
		}
	}
	return nil
}

// AddHandle appends handle to the discovery list unless it is already known.
// It reports whether the list changed.
func (d *AppData) AddHandle(handle string) bool {
	if slices.Contains(d.Handles, handle) {
		return false
	}
	d.Handles = append(d.Handles, handle)
	return true
}


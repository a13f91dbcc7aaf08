package models

import (
	"slices"
	"time"
)

// VehicleType is the kind of vehicle a build post is about
type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
)

// Valid reports whether t is one of the known vehicle types
func (t VehicleType) Valid() bool {
	return t == VehicleCar || t == VehicleBike
}

// VehicleSpecs holds the spec sheet of a build. Make and Model are required.
type VehicleSpecs struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         *int   `json:"year,omitempty"`
	Engine       string `json:"engine,omitempty"`
	Horsepower   *int   `json:"horsepower,omitempty"`
	Torque       *int   `json:"torque,omitempty"`
	Drivetrain   string `json:"drivetrain,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Color        string `json:"color,omitempty"`
}

// Location is a point on the map with an optional display name
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// Post represents a shared build
type Post struct {
	ID           string       `json:"id"`
	Type         VehicleType  `json:"type"`
	Title        string       `json:"title"`
	ImageURL     string       `json:"imageUrl"`
	AuthorHandle string       `json:"authorHandle"`
	Description  string       `json:"description,omitempty"`
	Specs        VehicleSpecs `json:"specs"`
	Mods         []string     `json:"mods"`
	CreatedAt    time.Time    `json:"createdAt"`
	Likes        int          `json:"likes"`
	Location     *Location    `json:"location,omitempty"`
	// MeetupIdea is carried through storage untouched; nothing reads it.
	MeetupIdea *bool `json:"meetupIdea,omitempty"`
}

// NewPost is the caller-supplied part of a post. ID, CreatedAt and Likes are
// assigned by the store.
type NewPost struct {
	Type         VehicleType
	Title        string
	ImageURL     string
	AuthorHandle string
	Description  string
	Specs        VehicleSpecs
	Mods         []string
	Location     *Location
	MeetupIdea   *bool
}

// Clone returns a copy of p that shares no slices or pointers with it
func (p Post) Clone() Post {
	c := p
	c.Mods = slices.Clone(p.Mods)
	c.Specs.Year = cloneInt(p.Specs.Year)
	c.Specs.Horsepower = cloneInt(p.Specs.Horsepower)
	c.Specs.Torque = cloneInt(p.Specs.Torque)
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	if p.MeetupIdea != nil {
		v := *p.MeetupIdea
		c.MeetupIdea = &v
	}
	return c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

package models

import "time"

// Meetup is a scheduled, location-based gathering
type Meetup struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	HostHandle  string    `json:"hostHandle"`
	DatetimeISO time.Time `json:"datetimeIso"`
	Location    Location  `json:"location"`
}

// NewMeetup is the caller-supplied part of a meetup
type NewMeetup struct {
	Title       string
	Description string
	HostHandle  string
	DatetimeISO time.Time
	Location    Location
}

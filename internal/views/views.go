// Package views assembles the read models of the app screens from store
// snapshots.
package views

import (
	"slices"
	"strings"
	"time"

	"github.com/iiviie/gearheads/internal/geo"
	"github.com/iiviie/gearheads/internal/models"
	"github.com/iiviie/gearheads/internal/store"
)

// MaxSuggestions caps the "people to follow" list
const MaxSuggestions = 8

// FeedQuery selects what the feed shows. An empty Type means all vehicles.
type FeedQuery struct {
	Type   models.VehicleType
	Author string
	Search string
}

// Feed returns posts matching q in display order
func Feed(s *store.Store, q FeedQuery) []models.Post {
	posts := s.AllPosts(store.PostFilter{Type: q.Type, Author: q.Author})
	return SearchPosts(posts, q.Search)
}

// SearchPosts keeps posts whose title, author, make or model contains query,
// ignoring case. A blank query keeps everything.
func SearchPosts(posts []models.Post, query string) []models.Post {
	if strings.TrimSpace(query) == "" {
		return posts
	}
	q := strings.ToLower(query)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.AuthorHandle), q) ||
			strings.Contains(strings.ToLower(p.Specs.Make), q) ||
			strings.Contains(strings.ToLower(p.Specs.Model), q) {
			out = append(out, p)
		}
	}
	return out
}

// ProfileView is the profile screen
type ProfileView struct {
	Profile     models.Profile `json:"profile"`
	Posts       []models.Post  `json:"posts"`
	Suggestions []string       `json:"suggestions"`
}

// Profile builds the profile screen for the local user
func Profile(s *store.Store) ProfileView {
	profile := s.MyProfile()
	return ProfileView{
		Profile:     profile,
		Posts:       s.MyPosts(),
		Suggestions: Suggestions(s.KnownHandles(), profile, MaxSuggestions),
	}
}

// Suggestions lists known handles that are neither the profile itself nor
// already followed, in discovery order
func Suggestions(known []string, profile models.Profile, limit int) []string {
	out := []string{}
	for _, h := range known {
		if len(out) == limit {
			break
		}
		if h == profile.Handle || slices.Contains(profile.Following, h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// MeetupsView is the meetups screen
type MeetupsView struct {
	Meetups []models.Meetup `json:"meetups"`
	Map     geo.MapView     `json:"map"`
}

// MapDefaults positions the map when there is nothing to center on
type MapDefaults struct {
	Center   models.Location
	Zoom     int
	Location *time.Location
}

// Meetups builds the meetups screen with its map
func Meetups(s *store.Store, d MapDefaults) MeetupsView {
	meetups := s.AllMeetups()
	return MeetupsView{
		Meetups: meetups,
		Map:     geo.MeetupMap(meetups, d.Center, d.Zoom, d.Location),
	}
}

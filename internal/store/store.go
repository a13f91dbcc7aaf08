// Package store holds the application document and the operations that read
// and change it. Every operation loads the whole document, applies one change
// and writes the whole document back.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iiviie/gearheads/internal/models"
)

// Store is the single entry point to application state
type Store struct {
	adapter *Adapter
	mu      sync.Mutex

	now   func() time.Time
	newID func() string
}

// Option customises a Store
type Option func(*Store)

// WithClock overrides the time source used for createdAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides id generation
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a store over adapter
func New(adapter *Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withDocument runs fn against a freshly loaded document while holding the
// store lock. The document is saved only when fn reports a change.
func withDocument[T any](s *Store, fn func(doc *models.AppData) (T, bool)) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.adapter.Load()
	result, changed := fn(doc)
	if changed {
		s.adapter.Save(doc)
	}
	return result
}

// AddPost stores a new post at the head of the feed and returns it with its
// generated fields filled in
func (s *Store) AddPost(in models.NewPost) models.Post {
	return withDocument(s, func(doc *models.AppData) (models.Post, bool) {
		post := models.Post{
			ID:           s.newID(),
			Type:         in.Type,
			Title:        in.Title,
			ImageURL:     in.ImageURL,
			AuthorHandle: in.AuthorHandle,
			Description:  in.Description,
			Specs:        in.Specs,
			Mods:         in.Mods,
			CreatedAt:    s.now().UTC(),
			Likes:        0,
			Location:     in.Location,
			MeetupIdea:   in.MeetupIdea,
		}
		if post.Mods == nil {
			post.Mods = []string{}
		}
		post = post.Clone()
		doc.Posts = append([]models.Post{post}, doc.Posts...)
		doc.AddHandle(post.AuthorHandle)
		return post.Clone(), true
	})
}

// LikePost adds one like to the post with id. Unknown ids are ignored.
func (s *Store) LikePost(id string) {
	withDocument(s, func(doc *models.AppData) (struct{}, bool) {
		p := doc.FindPost(id)
		if p == nil {
			return struct{}{}, false
		}
		p.Likes++
		return struct{}{}, true
	})
}

// AddMeetup stores a new meetup at the head of the list
func (s *Store) AddMeetup(in models.NewMeetup) models.Meetup {
	return withDocument(s, func(doc *models.AppData) (models.Meetup, bool) {
		m := models.Meetup{
			ID:          s.newID(),
			Title:       in.Title,
			Description: in.Description,
			HostHandle:  in.HostHandle,
			DatetimeISO: in.DatetimeISO.UTC(),
			Location:    in.Location,
		}
		doc.Meetups = append([]models.Meetup{m}, doc.Meetups...)
		doc.AddHandle(m.HostHandle)
		return m, true
	})
}

// FollowHandle adds handle to the local profile's following list. Following
// yourself or someone already followed is a no-op.
func (s *Store) FollowHandle(handle string) {
	withDocument(s, func(doc *models.AppData) (struct{}, bool) {
		if doc.Profile.Handle == handle || doc.Profile.IsFollowing(handle) {
			return struct{}{}, false
		}
		doc.Profile.Following = append(doc.Profile.Following, handle)
		return struct{}{}, true
	})
}

// SetHandle renames the local user. No uniqueness or format checks.
func (s *Store) SetHandle(handle string) {
	withDocument(s, func(doc *models.AppData) (struct{}, bool) {
		doc.Profile.Handle = handle
		doc.AddHandle(handle)
		return struct{}{}, true
	})
}

// SetBio replaces the local profile bio
func (s *Store) SetBio(bio string) {
	withDocument(s, func(doc *models.AppData) (struct{}, bool) {
		doc.Profile.Bio = bio
		return struct{}{}, true
	})
}

// MyHandle returns the local user's handle
func (s *Store) MyHandle() string {
	return withDocument(s, func(doc *models.AppData) (string, bool) {
		return doc.Profile.Handle, false
	})
}

// MyProfile returns a copy of the local profile
func (s *Store) MyProfile() models.Profile {
	return withDocument(s, func(doc *models.AppData) (models.Profile, bool) {
		return doc.Profile.Clone(), false
	})
}

// MyPosts returns the local user's posts, newest first
func (s *Store) MyPosts() []models.Post {
	return withDocument(s, func(doc *models.AppData) ([]models.Post, bool) {
		return filterPosts(doc.Posts, PostFilter{Author: doc.Profile.Handle}), false
	})
}

// PostFilter narrows AllPosts. Zero fields match everything.
type PostFilter struct {
	Type   models.VehicleType
	Author string
}

// AllPosts returns the feed in display order, optionally filtered
func (s *Store) AllPosts(filter PostFilter) []models.Post {
	return withDocument(s, func(doc *models.AppData) ([]models.Post, bool) {
		return filterPosts(doc.Posts, filter), false
	})
}

// AllMeetups returns every meetup, newest first
func (s *Store) AllMeetups() []models.Meetup {
	return withDocument(s, func(doc *models.AppData) ([]models.Meetup, bool) {
		return append([]models.Meetup{}, doc.Meetups...), false
	})
}

// KnownHandles returns the discovery list in the order handles were first seen
func (s *Store) KnownHandles() []string {
	return withDocument(s, func(doc *models.AppData) ([]string, bool) {
		return append([]string{}, doc.Handles...), false
	})
}

func filterPosts(posts []models.Post, f PostFilter) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.Author != "" && p.AuthorHandle != f.Author {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

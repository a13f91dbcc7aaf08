package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iiviie/gearheads/internal/geo"
)

const defaultSession = "default"

func sessionID(id string) string {
	if id == "" {
		return defaultSession
	}
	return id
}

type session struct {
	picker   *geo.Picker
	lastUsed time.Time
}

// picker returns the picker of a form session, creating it on first use.
// Idle sessions are closed on the way.
func (s *Server) picker(id string) *geo.Picker {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, sess := range s.pickers {
		if key != id && now.Sub(sess.lastUsed) > s.opts.SessionIdle {
			sess.picker.Close()
			delete(s.pickers, key)
		}
	}

	sess, ok := s.pickers[id]
	if !ok {
		if len(s.pickers) >= s.opts.MaxSessions {
			s.evictOldest()
		}
		sess = &session{picker: geo.NewPicker(s.searcher, s.opts.Debounce, s.opts.MinQueryLen)}
		s.pickers[id] = sess
	}
	sess.lastUsed = now
	return sess.picker
}

// evictOldest closes the least recently used session. Callers hold s.mu.
func (s *Server) evictOldest() {
	var oldest string
	var oldestAt time.Time
	for key, sess := range s.pickers {
		if oldest == "" || sess.lastUsed.Before(oldestAt) {
			oldest, oldestAt = key, sess.lastUsed
		}
	}
	if sess, ok := s.pickers[oldest]; ok {
		sess.picker.Close()
		delete(s.pickers, oldest)
	}
}

// searchPlaces runs a type-ahead lookup. A request replaced by a newer one
// from the same session answers with no results and superseded=true.
func (s *Server) searchPlaces(c *gin.Context) {
	p := s.picker(sessionID(c.Query("session")))

	places, err := p.Search(c.Request.Context(), c.Query("q"))
	superseded := errors.Is(err, geo.ErrSuperseded) || errors.Is(err, geo.ErrClosed)
	if places == nil {
		places = []geo.Place{}
	}
	c.JSON(http.StatusOK, gin.H{
		"results":    places,
		"superseded": superseded,
	})
}

type selectRequest struct {
	Session string `json:"session"`
	Index   int    `json:"index"`
}

func (s *Server) selectPlace(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	loc, err := s.picker(sessionID(req.Session)).Select(req.Index)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// closePlaces tears a form session down, cancelling its in-flight lookup
func (s *Server) closePlaces(c *gin.Context) {
	id := sessionID(c.Param("session"))
	s.mu.Lock()
	sess, ok := s.pickers[id]
	delete(s.pickers, id)
	s.mu.Unlock()
	if ok {
		sess.picker.Close()
	}
	c.Status(http.StatusNoContent)
}

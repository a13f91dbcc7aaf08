// Package server exposes the app screens and actions as a JSON API.
package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iiviie/gearheads/internal/forms"
	"github.com/iiviie/gearheads/internal/geo"
	"github.com/iiviie/gearheads/internal/models"
	"github.com/iiviie/gearheads/internal/store"
	"github.com/iiviie/gearheads/internal/views"
)

// Options tunes the server
type Options struct {
	Debounce    time.Duration
	MinQueryLen int
	Map         views.MapDefaults
	// Location is used to read datetime-local form values and format map labels
	Location *time.Location
	// MaxSessions caps open place-search sessions; the least recently used
	// one is closed to make room
	MaxSessions int
	// SessionIdle closes place-search sessions unused for this long
	SessionIdle time.Duration
}

const (
	defaultMaxSessions = 64
	defaultSessionIdle = 10 * time.Minute
)

// Server wires HTTP handlers to the store and the place search
type Server struct {
	store    *store.Store
	searcher geo.Searcher
	opts     Options

	mu      sync.Mutex
	pickers map[string]*session
	now     func() time.Time
}

// New creates a server
func New(st *store.Store, searcher geo.Searcher, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Map.Location == nil {
		opts.Map.Location = opts.Location
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.SessionIdle <= 0 {
		opts.SessionIdle = defaultSessionIdle
	}
	return &Server{
		store:    st,
		searcher: searcher,
		opts:     opts,
		pickers:  make(map[string]*session),
		now:      time.Now,
	}
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.IndentedJSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})

	router.GET("/posts", s.getFeed)
	router.POST("/posts", s.createPost)
	router.POST("/posts/:id/like", s.likePost)

	router.GET("/profile", s.getProfile)
	router.PUT("/profile/handle", s.setHandle)
	router.PUT("/profile/bio", s.setBio)
	router.POST("/follow/:handle", s.follow)
	router.GET("/handles", s.getHandles)

	router.GET("/meetups", s.getMeetups)
	router.POST("/meetups", s.createMeetup)

	router.GET("/places", s.searchPlaces)
	router.POST("/places/select", s.selectPlace)
	router.DELETE("/places/:session", s.closePlaces)

	return router
}

// Close cancels every open place search
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.pickers {
		sess.picker.Close()
		delete(s.pickers, id)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) getFeed(c *gin.Context) {
	q := views.FeedQuery{
		Author: c.Query("author"),
		Search: c.Query("q"),
	}
	switch t := c.Query("type"); t {
	case "", "all":
	default:
		q.Type = models.VehicleType(t)
		if !q.Type.Valid() {
			badRequest(c, errors.New("type must be all, car or bike"))
			return
		}
	}

	posts := views.Feed(s.store, q)
	c.JSON(http.StatusOK, gin.H{
		"count": len(posts),
		"posts": posts,
	})
}

func (s *Server) createPost(c *gin.Context) {
	var form forms.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := form.Post(s.store.MyHandle())
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.store.AddPost(draft))
}

func (s *Server) likePost(c *gin.Context) {
	s.store.LikePost(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, views.Profile(s.store))
}

type handleRequest struct {
	Handle string `json:"handle"`
}

func (s *Server) setHandle(c *gin.Context) {
	var req handleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.store.SetHandle(req.Handle)
	c.JSON(http.StatusOK, s.store.MyProfile())
}

type bioRequest struct {
	Bio string `json:"bio"`
}

func (s *Server) setBio(c *gin.Context) {
	var req bioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.store.SetBio(req.Bio)
	c.JSON(http.StatusOK, s.store.MyProfile())
}

func (s *Server) follow(c *gin.Context) {
	s.store.FollowHandle(c.Param("handle"))
	c.JSON(http.StatusOK, s.store.MyProfile())
}

func (s *Server) getHandles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"handles": s.store.KnownHandles()})
}

func (s *Server) getMeetups(c *gin.Context) {
	c.JSON(http.StatusOK, views.Meetups(s.store, s.opts.Map))
}

func (s *Server) createMeetup(c *gin.Context) {
	var form forms.MeetupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := form.Meetup(s.store.MyHandle(), s.opts.Location)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.store.AddMeetup(draft))
}

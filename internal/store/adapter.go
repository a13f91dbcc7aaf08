package store

import (
	"encoding/json"
	"time"

	"github.com/iiviie/gearheads/internal/log"
	"github.com/iiviie/gearheads/internal/models"
	"github.com/iiviie/gearheads/internal/storage"
)

// DefaultKey is the well-known key the document lives under
const DefaultKey = "gearheads_app_data_v1"

// Adapter reads and writes the whole document through a key-value backend.
// A nil backend means no persistent store is available.
type Adapter struct {
	backend storage.Storage
	key     string
	now     func() time.Time
}

// NewAdapter creates an adapter for key on backend. backend may be nil.
func NewAdapter(backend storage.Storage, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{backend: backend, key: key, now: time.Now}
}

// Load returns the stored document. It never fails: an unreachable backend
// yields an unsaved seed, and a missing or undecodable value is replaced by a
// freshly persisted seed.
func (a *Adapter) Load() *models.AppData {
	if a.backend == nil {
		return Seed(a.now())
	}

	raw, found, err := a.backend.GetItem(a.key)
	if err != nil {
		log.Warn.Printf("storage read failed, using unsaved seed data: %v", err)
		return Seed(a.now())
	}
	if !found || raw == "" {
		log.Info.Printf("no document under %q, seeding", a.key)
		return a.reseed()
	}

	var data models.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Warn.Printf("document under %q is corrupt, reseeding: %v", a.key, err)
		return a.reseed()
	}
	return &data
}

// Save replaces the stored document. Without a backend it does nothing;
// write errors are logged and dropped.
func (a *Adapter) Save(data *models.AppData) {
	if a.backend == nil {
		return
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Error.Printf("encode document: %v", err)
		return
	}
	if err := a.backend.SetItem(a.key, string(b)); err != nil {
		log.Warn.Printf("storage write failed, change not persisted: %v", err)
	}
}

func (a *Adapter) reseed() *models.AppData {
	data := Seed(a.now())
	a.Save(data)
	return data
}

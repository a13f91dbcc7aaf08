package store

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iiviie/gearheads/internal/log"
	"github.com/iiviie/gearheads/internal/models"
	"github.com/iiviie/gearheads/internal/storage"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// brokenStorage fails every call, like a store that denies access.
type brokenStorage struct {
	sets int
}

func (b *brokenStorage) GetItem(string) (string, bool, error) {
	return "", false, errors.New("access denied")
}

func (b *brokenStorage) SetItem(string, string) error {
	b.sets++
	return errors.New("quota exceeded")
}

func (b *brokenStorage) Close() error { return nil }

func assertSeedShape(t *testing.T, data *models.AppData) {
	t.Helper()
	if len(data.Posts) != 2 {
		t.Fatalf("expected 2 seed posts, got %d", len(data.Posts))
	}
	if data.Posts[0].Type != models.VehicleCar || data.Posts[1].Type != models.VehicleBike {
		t.Fatalf("seed posts should cover car then bike, got %s, %s", data.Posts[0].Type, data.Posts[1].Type)
	}
	if len(data.Meetups) != 1 {
		t.Fatalf("expected 1 seed meetup, got %d", len(data.Meetups))
	}
	if strings.Join(data.Handles, ",") != strings.Join(SeedHandles, ",") {
		t.Fatalf("unexpected seed handles %v", data.Handles)
	}
	if !strings.HasPrefix(data.Profile.Handle, "guest_") || len(data.Profile.Handle) != len("guest_")+6 {
		t.Fatalf("unexpected guest handle %q", data.Profile.Handle)
	}
}

func TestAdapterLoad_MissingKeySeedsAndPersists(t *testing.T) {
	mem := storage.NewMemoryStorage()
	a := NewAdapter(mem, DefaultKey)

	data := a.Load()
	assertSeedShape(t, data)

	raw, found, _ := mem.GetItem(DefaultKey)
	if !found {
		t.Fatalf("seed was not persisted")
	}
	var stored models.AppData
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("persisted seed does not parse: %v", err)
	}
	if stored.Profile.Handle != data.Profile.Handle {
		t.Fatalf("persisted handle %q != returned %q", stored.Profile.Handle, data.Profile.Handle)
	}
}

func TestAdapterLoad_EmptyValueSeeds(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.SetItem(DefaultKey, "")
	assertSeedShape(t, NewAdapter(mem, DefaultKey).Load())
}

func TestAdapterLoad_CorruptValueReseeds(t *testing.T) {
	cases := []string{
		"{not json",
		`{"posts": "nope"}`,
		`[1, 2, 3]`,
	}
	for i, raw := range cases {
		mem := storage.NewMemoryStorage()
		mem.SetItem(DefaultKey, raw)
		a := NewAdapter(mem, DefaultKey)

		first := a.Load()
		assertSeedShape(t, first)

		second := a.Load()
		if second.Profile.Handle != first.Profile.Handle {
			t.Fatalf("case %d: guest handle changed between loads: %q then %q", i, first.Profile.Handle, second.Profile.Handle)
		}
		if second.Posts[0].ID != first.Posts[0].ID || second.Meetups[0].ID != first.Meetups[0].ID {
			t.Fatalf("case %d: reseeded document was not persisted", i)
		}
	}
}

func TestAdapterLoad_ParseableDocumentReturnedAsIs(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.SetItem(DefaultKey, `{"profile":{"handle":"me","following":[]}}`)

	data := NewAdapter(mem, DefaultKey).Load()
	if data.Profile.Handle != "me" {
		t.Fatalf("expected stored profile, got %+v", data.Profile)
	}
	if len(data.Posts) != 0 || len(data.Handles) != 0 {
		t.Fatalf("missing fields must not be filled with seed data: %+v", data)
	}
}

func TestAdapter_NoBackend(t *testing.T) {
	a := NewAdapter(nil, DefaultKey)
	first := a.Load()
	assertSeedShape(t, first)

	first.Profile.Handle = "changed"
	a.Save(first)

	if a.Load().Profile.Handle == "changed" {
		t.Fatalf("save without a backend must not persist")
	}
}

func TestAdapter_BackendErrors(t *testing.T) {
	b := &brokenStorage{}
	a := NewAdapter(b, DefaultKey)

	assertSeedShape(t, a.Load())
	if b.sets != 0 {
		t.Fatalf("unavailable backend should not be written on load, got %d writes", b.sets)
	}

	// write failures are swallowed
	a.Save(&models.AppData{})
	if b.sets != 1 {
		t.Fatalf("expected one write attempt, got %d", b.sets)
	}
}

func TestSeed_FreshGuestHandle(t *testing.T) {
	a := Seed(fixedNow())
	b := Seed(fixedNow())
	if a.Profile.Handle == b.Profile.Handle {
		t.Fatalf("each seeding should mint a new guest handle")
	}
	if !a.Meetups[0].DatetimeISO.Equal(fixedNow().Add(4 * 24 * time.Hour)) {
		t.Fatalf("seed meetup should be four days out, got %s", a.Meetups[0].DatetimeISO)
	}
	if a.Profile.IsFollowing(a.Profile.Handle) {
		t.Fatalf("seed profile follows itself")
	}
}

package forms

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/iiviie/gearheads/internal/models"
)

func TestPostForm(t *testing.T) {
	cases := []struct {
		name string
		form PostForm
		ok   bool
	}{
		{"minimal", PostForm{Title: "X", ImageURL: "u", Make: "Honda", Model: "Civic"}, true},
		{"bike", PostForm{Type: "bike", Title: "X", ImageURL: "u", Make: "Ducati", Model: "V4"}, true},
		{"unknown type", PostForm{Type: "boat", Title: "X", ImageURL: "u", Make: "a", Model: "b"}, false},
		{"missing title", PostForm{ImageURL: "u", Make: "a", Model: "b"}, false},
		{"missing image", PostForm{Title: "X", Make: "a", Model: "b"}, false},
		{"missing make", PostForm{Title: "X", ImageURL: "u", Model: "b"}, false},
		{"missing model", PostForm{Title: "X", ImageURL: "u", Make: "a"}, false},
		{"bad year", PostForm{Title: "X", ImageURL: "u", Make: "a", Model: "b", Year: "nineties"}, false},
		{"bad horsepower", PostForm{Title: "X", ImageURL: "u", Make: "a", Model: "b", Horsepower: "lots"}, false},
	}
	for _, c := range cases {
		_, err := c.form.Post("me")
		if c.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestPostForm_Fields(t *testing.T) {
	loc := &models.Location{Lat: 1, Lng: 2, Name: "here"}
	p, err := PostForm{
		Title:      "Build",
		ImageURL:   "https://img",
		Make:       "Nissan",
		Model:      "Silvia",
		Year:       " 1999 ",
		Horsepower: "400",
		Mods:       " Coilovers, , Intake ,Exhaust,",
		Location:   loc,
	}.Post("drift_dan")
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if p.Type != models.VehicleCar {
		t.Fatalf("type should default to car, got %q", p.Type)
	}
	if p.AuthorHandle != "drift_dan" {
		t.Fatalf("author = %q", p.AuthorHandle)
	}
	if p.Specs.Year == nil || *p.Specs.Year != 1999 || p.Specs.Horsepower == nil || *p.Specs.Horsepower != 400 {
		t.Fatalf("numeric specs not parsed: %+v", p.Specs)
	}
	if p.Specs.Torque != nil || p.Specs.Engine != "" {
		t.Fatalf("empty optional specs should stay unset: %+v", p.Specs)
	}
	if !reflect.DeepEqual(p.Mods, []string{"Coilovers", "Intake", "Exhaust"}) {
		t.Fatalf("mods = %q", p.Mods)
	}
	if p.Location != loc {
		t.Fatalf("location not carried")
	}
}

func TestSplitMods_Empty(t *testing.T) {
	if mods := SplitMods(""); mods == nil || len(mods) != 0 {
		t.Fatalf("expected empty, non-nil slice, got %#v", mods)
	}
}

func TestMeetupForm(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*3600)
	where := &models.Location{Lat: 37.77, Lng: -122.41, Name: "SF"}

	m, err := MeetupForm{Title: "Meet", Datetime: "2024-06-01T18:30", Location: where}.Meetup("host", pdt)
	if err != nil {
		t.Fatalf("meetup: %v", err)
	}
	want := time.Date(2024, 6, 2, 1, 30, 0, 0, time.UTC)
	if !m.DatetimeISO.Equal(want) || m.DatetimeISO.Location() != time.UTC {
		t.Fatalf("datetime = %s, want %s", m.DatetimeISO, want)
	}
	if m.HostHandle != "host" || m.Location != *where {
		t.Fatalf("unexpected meetup %+v", m)
	}

	m, err = MeetupForm{Title: "Meet", Datetime: "2024-06-01T18:30:00Z", Location: where}.Meetup("host", pdt)
	if err != nil || !m.DatetimeISO.Equal(time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339: %v %s", err, m.DatetimeISO)
	}

	bad := []MeetupForm{
		{Datetime: "2024-06-01T18:30", Location: where},
		{Title: "Meet", Location: where},
		{Title: "Meet", Datetime: "2024-06-01T18:30"},
		{Title: "Meet", Datetime: "tomorrow", Location: where},
	}
	for i, f := range bad {
		if _, err := f.Meetup("host", pdt); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

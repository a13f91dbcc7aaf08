// Package forms turns raw form input into drafts the store accepts.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iiviie/gearheads/internal/models"
)

// ErrInvalidInput wraps every validation failure
var ErrInvalidInput = errors.New("invalid input")

// datetimeLocal is the layout of an HTML datetime-local input
const datetimeLocal = "2006-01-02T15:04"

// PostForm is the "share your build" form. Numeric fields arrive as text.
type PostForm struct {
	Type         string           `json:"type"`
	Title        string           `json:"title"`
	ImageURL     string           `json:"imageUrl"`
	Description  string           `json:"description"`
	Make         string           `json:"make"`
	Model        string           `json:"model"`
	Year         string           `json:"year"`
	Engine       string           `json:"engine"`
	Horsepower   string           `json:"horsepower"`
	Torque       string           `json:"torque"`
	Color        string           `json:"color"`
	Drivetrain   string           `json:"drivetrain"`
	Transmission string           `json:"transmission"`
	Mods         string           `json:"mods"`
	Location     *models.Location `json:"location"`
}

// Post validates the form and builds a draft authored by author
func (f PostForm) Post(author string) (models.NewPost, error) {
	vt := models.VehicleType(strings.TrimSpace(f.Type))
	if vt == "" {
		vt = models.VehicleCar
	}
	if !vt.Valid() {
		return models.NewPost{}, fmt.Errorf("%w: type must be car or bike", ErrInvalidInput)
	}
	if f.Title == "" || f.ImageURL == "" || f.Make == "" || f.Model == "" {
		return models.NewPost{}, fmt.Errorf("%w: title, imageUrl, make and model are required", ErrInvalidInput)
	}

	year, err := optionalInt("year", f.Year)
	if err != nil {
		return models.NewPost{}, err
	}
	hp, err := optionalInt("horsepower", f.Horsepower)
	if err != nil {
		return models.NewPost{}, err
	}
	torque, err := optionalInt("torque", f.Torque)
	if err != nil {
		return models.NewPost{}, err
	}

	return models.NewPost{
		Type:         vt,
		Title:        f.Title,
		ImageURL:     f.ImageURL,
		AuthorHandle: author,
		Description:  f.Description,
		Specs: models.VehicleSpecs{
			Make:         f.Make,
			Model:        f.Model,
			Year:         year,
			Engine:       f.Engine,
			Horsepower:   hp,
			Torque:       torque,
			Drivetrain:   f.Drivetrain,
			Transmission: f.Transmission,
			Color:        f.Color,
		},
		Mods:     SplitMods(f.Mods),
		Location: f.Location,
	}, nil
}

// SplitMods splits a comma separated mod list, dropping blank entries
func SplitMods(text string) []string {
	mods := []string{}
	for _, m := range strings.Split(text, ",") {
		if m = strings.TrimSpace(m); m != "" {
			mods = append(mods, m)
		}
	}
	return mods
}

func optionalInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidInput, field)
	}
	return &n, nil
}

// MeetupForm is the "create a meetup" form
type MeetupForm struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Datetime    string           `json:"datetime"`
	Location    *models.Location `json:"location"`
}

// Meetup validates the form and builds a draft hosted by host. A
// datetime-local value is read in loc.
func (f MeetupForm) Meetup(host string, loc *time.Location) (models.NewMeetup, error) {
	if f.Title == "" || f.Datetime == "" || f.Location == nil {
		return models.NewMeetup{}, fmt.Errorf("%w: title, datetime and location are required", ErrInvalidInput)
	}
	at, err := ParseDatetime(f.Datetime, loc)
	if err != nil {
		return models.NewMeetup{}, err
	}
	return models.NewMeetup{
		Title:       f.Title,
		Description: f.Description,
		HostHandle:  host,
		DatetimeISO: at.UTC(),
		Location:    *f.Location,
	}, nil
}

// ParseDatetime accepts RFC 3339 or a datetime-local value
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(datetimeLocal, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: datetime %q is not a valid date and time", ErrInvalidInput, s)
}

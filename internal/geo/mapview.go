package geo

import (
	"time"

	"github.com/iiviie/gearheads/internal/models"
)

// Defaults used when nothing on the map suggests a better center
var (
	DefaultCenter = models.Location{Lat: 37.7749, Lng: -122.4194}
	DefaultZoom   = 11
)

// Marker is one labeled pin
type Marker struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

// MapView is everything a map renderer needs
type MapView struct {
	Center  models.Location `json:"center"`
	Zoom    int             `json:"zoom"`
	Markers []Marker        `json:"markers"`
}

// MeetupMap builds a map of meetups centered on the first one. Times in
// labels are shown in loc.
func MeetupMap(meetups []models.Meetup, center models.Location, zoom int, loc *time.Location) MapView {
	markers := make([]Marker, 0, len(meetups))
	for _, m := range meetups {
		markers = append(markers, Marker{
			ID:    m.ID,
			Lat:   m.Location.Lat,
			Lng:   m.Location.Lng,
			Label: m.Title + " · " + m.DatetimeISO.In(loc).Format("Jan 2, 2006 3:04 PM"),
		})
	}
	if len(markers) > 0 {
		center = models.Location{Lat: markers[0].Lat, Lng: markers[0].Lng}
	}
	return MapView{Center: center, Zoom: zoom, Markers: markers}
}

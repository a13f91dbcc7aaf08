package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/iiviie/gearheads/internal/models"
)

// SeedHandles are the handles every fresh document starts out knowing
var SeedHandles = []string{"boosted_ben", "vtec_violet", "two_wheel_tony", "stance_sam"}

// GuestHandle returns a new random guest identity
func GuestHandle() string {
	return "guest_" + uuid.NewString()[:6]
}

func intPtr(v int) *int { return &v }

// Seed builds the default document. Every call generates new ids and a new
// guest handle.
func Seed(now time.Time) *models.AppData {
	now = now.UTC()

	posts := []models.Post{
		{
			ID:           uuid.NewString(),
			Type:         models.VehicleCar,
			Title:        "Mk4 Supra - Single Turbo Build",
			ImageURL:     "https://images.unsplash.com/photo-1542362567-b07e54358753?q=80&w=1600&auto=format&fit=crop",
			AuthorHandle: "boosted_ben",
			Description:  "Fresh 6466 single turbo setup. Tuned on E85.",
			Specs: models.VehicleSpecs{
				Make:         "Toyota",
				Model:        "Supra",
				Year:         intPtr(1997),
				Engine:       "2JZ-GTE",
				Horsepower:   intPtr(720),
				Drivetrain:   "RWD",
				Transmission: "6MT",
				Color:        "Black",
			},
			Mods:      []string{"Precision 6466", "AEM Infinity", "ID1300 injectors", "BC coilovers"},
			CreatedAt: now,
			Likes:     42,
			Location:  &models.Location{Lat: 34.0522, Lng: -118.2437, Name: "Los Angeles"},
		},
		{
			ID:           uuid.NewString(),
			Type:         models.VehicleBike,
			Title:        "Yamaha R6 Track Setup",
			ImageURL:     "https://images.unsplash.com/photo-1520877745935-6a1f0b2e5f5a?q=80&w=1600&auto=format&fit=crop",
			AuthorHandle: "two_wheel_tony",
			Description:  "Suspension dialed in, ready for the weekend.",
			Specs: models.VehicleSpecs{
				Make:  "Yamaha",
				Model: "R6",
				Year:  intPtr(2018),
				Color: "Blue",
			},
			Mods:      []string{"Akrapovic exhaust", "Quickshifter", "Race fairings"},
			CreatedAt: now,
			Likes:     27,
			Location:  &models.Location{Lat: 36.174465, Lng: -115.137221, Name: "Las Vegas"},
		},
	}

	meetups := []models.Meetup{
		{
			ID:          uuid.NewString(),
			Title:       "Saturday Cars & Coffee",
			Description: "All builds welcome. Be respectful.",
			HostHandle:  "stance_sam",
			DatetimeISO: now.Add(4 * 24 * time.Hour),
			Location:    models.Location{Lat: 37.7749, Lng: -122.4194, Name: "San Francisco"},
		},
	}

	profile := models.Profile{
		Handle:    GuestHandle(),
		Bio:       "Car/bike enthusiast. Building my dream machine.",
		Following: []string{"boosted_ben"},
	}

	return &models.AppData{
		Posts:   posts,
		Meetups: meetups,
		Profile: profile,
		Handles: append([]string(nil), SeedHandles...),
	}
}

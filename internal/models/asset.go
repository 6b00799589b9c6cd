package models

import (
	"errors"
	"time"
)

// AssetFormat is the physical format of a billboard face.
type AssetFormat string

const (
	FormatBulletin AssetFormat = "bulletin"
	FormatPoster   AssetFormat = "poster"
	FormatDigital  AssetFormat = "digital"
)

// Asset is a registered outdoor-advertising face. The registry exists so
// reports can be requested by asset ID alone; the ID is otherwise opaque
// to the simulation and only seeds determinism.
type Asset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	Format          AssetFormat    `json:"format"`
	Profile         TrafficProfile `json:"profile"`
	DailyBaseVolume float64        `json:"daily_base_volume"`
	Active          bool           `json:"active"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Validate checks required fields before an asset is saved.
func (a *Asset) Validate() error {
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.DailyBaseVolume < 0 {
		return errors.New("daily_base_volume must be >= 0")
	}
	switch a.Format {
	case FormatBulletin, FormatPoster, FormatDigital:
	case "":
		a.Format = FormatBulletin
	default:
		return errors.New("unknown format")
	}
	// Normalize the profile so lookups downstream are exact.
	a.Profile = ParseProfile(string(a.Profile))
	return nil
}

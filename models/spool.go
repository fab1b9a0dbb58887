package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// DefaultDensity is PLA, in g/cm³.
const DefaultDensity = 1.24

// Spool is the subset of a Spoolman spool the planner uses.
type Spool struct {
	Id       int `json:"id"`
	Filament struct {
		Id       int    `json:"id"`
		Name     string `json:"name"`
		Material string `json:"material"`
		Vendor   struct {
			Name string `json:"name"`
		} `json:"vendor"`
		Density         float64 `json:"density"`
		Diameter        float64 `json:"diameter"`
		ColorHex        string  `json:"color_hex"`
		MultiColorHexes string  `json:"multi_color_hexes"`
	} `json:"filament"`
	RemainingWeight float64 `json:"remaining_weight"`
	Location        string  `json:"location"`
	Archived        bool    `json:"archived"`
}

// Density returns the filament density, falling back to DefaultDensity when
// the spool does not record one.
func (s Spool) Density() float64 {
	if s.Filament.Density > 0 {
		return s.Filament.Density
	}
	return DefaultDensity
}

// Requirement turns a part volume into a plate requirement for this spool.
func (s Spool) Requirement(volume float64) PlateRequirement {
	hex := s.Filament.ColorHex
	if hex != "" {
		hex = "#" + hex
	}
	return PlateRequirement{
		FilamentID: s.Filament.Id,
		Name:       s.Filament.Name,
		Material:   s.Filament.Material,
		Color:      hex,
		Amount:     FilamentGrams(volume, s.Density()),
	}
}

func (s Spool) String() string {
	location := s.Location
	if location == "" {
		location = "N/A"
	}
	archived := ""
	if s.Archived {
		archived = color.RedString(" (archived)")
	}
	return fmt.Sprintf("%s%s - #%d %s (%s) - %.2f g/cm³, %.1fg remaining%s",
		GetColorBlock(s.Filament.ColorHex, s.Filament.MultiColorHexes),
		color.New(color.Bold).Sprint(location),
		s.Id, s.Filament.Name, s.Filament.Material, s.Density(), s.RemainingWeight, archived)
}

// FilamentGrams converts a volume in mm³ to grams at density g/cm³, rounded
// to a tenth of a gram.
func FilamentGrams(volume, density float64) float64 {
	grams := volume / 1000 * density
	return float64(int64(grams*10+0.5)) / 10
}

// GetColorBlock renders a swatch for a spool color. Semi-transparent colors
// (8 hex digits) use a shaded block; multi-color spools show two swatches.
func GetColorBlock(hex, multi string) string {
	if color.NoColor {
		return ""
	}
	if multi != "" {
		colors := strings.SplitN(multi, ",", 2)
		block := ""
		for _, c := range colors {
			r, g, b := convertFromHex(c)
			block += color.RGB(r, g, b).Sprint("██")
		}
		return block + " "
	}
	if hex == "" {
		return ""
	}
	chars := "████"
	if len(hex) > 6 {
		chars = "▓▓▓▓"
	}
	r, g, b := convertFromHex(hex)
	return color.RGB(r, g, b).Sprint(chars) + " "
}

func convertFromHex(hex string) (int, int, int) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) < 6 {
		return 0, 0, 0
	}
	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return int(r), int(g), int(b)
}

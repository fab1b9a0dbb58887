package models

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConvertFromHex(t *testing.T) {
	tests := []struct {
		hex   string
		wantR int
		wantG int
		wantB int
	}{
		{"000000", 0, 0, 0},
		{"FFFFFF", 255, 255, 255},
		{"FF0000", 255, 0, 0},
		{"00FF00", 0, 255, 0},
		{"#0000FF", 0, 0, 255},
		{"123456", 18, 52, 86},
		{"12", 0, 0, 0},
	}

	for _, tt := range tests {
		r, g, b := convertFromHex(tt.hex)
		if r != tt.wantR || g != tt.wantG || b != tt.wantB {
			t.Errorf("convertFromHex(%q) = (%d, %d, %d), want (%d, %d, %d)", tt.hex, r, g, b, tt.wantR, tt.wantG, tt.wantB)
		}
	}
}

func TestGetColorBlock(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()

	t.Run("single color", func(t *testing.T) {
		got := GetColorBlock("FF0000", "")
		if !strings.Contains(got, "████") {
			t.Errorf("GetColorBlock should contain block characters, got %q", got)
		}
	})

	t.Run("semi-transparent", func(t *testing.T) {
		got := GetColorBlock("FF0000AA", "")
		if !strings.Contains(got, "▓▓▓▓") {
			t.Errorf("GetColorBlock for semi-transparent should contain shaded blocks, got %q", got)
		}
	})

	t.Run("multi-color", func(t *testing.T) {
		got := GetColorBlock("", "FF0000,00FF00")
		if strings.Count(got, "██") != 2 {
			t.Errorf("GetColorBlock multi-color should contain two swatches, got %q", got)
		}
	})

	t.Run("no color", func(t *testing.T) {
		color.NoColor = true
		defer func() { color.NoColor = false }()
		if got := GetColorBlock("FF0000", ""); got != "" {
			t.Errorf("GetColorBlock should be empty when NoColor is true, got %q", got)
		}
	})
}

func TestSpoolRequirement(t *testing.T) {
	var s Spool
	s.Id = 12
	s.Filament.Id = 7
	s.Filament.Name = "Cotton White"
	s.Filament.Material = "PLA"
	s.Filament.ColorHex = "E6DDDB"

	require.Equal(t, DefaultDensity, s.Density())
	s.Filament.Density = 1.27

	req := s.Requirement(10000)
	require.Equal(t, PlateRequirement{
		FilamentID: 7,
		Name:       "Cotton White",
		Material:   "PLA",
		Color:      "#E6DDDB",
		Amount:     12.7,
	}, req)
}

func TestSpoolString(t *testing.T) {
	color.NoColor = true
	var s Spool
	s.Id = 123
	s.Filament.Name = "PolyTerra Black"
	s.Filament.Material = "PLA"
	s.RemainingWeight = 91.5
	s.Archived = true

	got := s.String()
	for _, want := range []string{"N/A", "#123 PolyTerra Black (PLA)", "1.24 g/cm³", "91.5g remaining", "(archived)"} {
		require.Contains(t, got, want)
	}
}

func TestFilamentGrams(t *testing.T) {
	require.Equal(t, 1.2, FilamentGrams(1000, 1.24))
	require.Equal(t, 0.0, FilamentGrams(0, 1.24))
	require.Equal(t, 12.4, FilamentGrams(10000, 1.24))
}

func TestPlanFileDecode(t *testing.T) {
	doc := `
projects:
  - name: partgen
    plates:
      - name: clip
        model: out/clip.stl
        needs:
          - name: Black
            material: PLA
            amount: 3.2
      - name: tail_curved
        status: completed
        needs:
          - name: Black
            amount: 10.1
`
	var plan PlanFile
	require.NoError(t, yaml.Unmarshal([]byte(doc), &plan))
	plan.DefaultStatus()
	require.NoError(t, plan.Validate())

	proj := plan.Projects[0]
	require.Equal(t, StatusTodo, proj.Status)
	require.Equal(t, StatusTodo, proj.Plates[0].Status)
	require.Equal(t, StatusCompleted, proj.Plates[1].Status)
	require.Equal(t, "out/clip.stl", proj.Plates[0].Model)
	require.InDelta(t, 13.3, proj.Grams(), 1e-9)

	require.Error(t, PlanFile{}.Validate())
	require.Error(t, PlanFile{Projects: []Project{{}}}.Validate())
}

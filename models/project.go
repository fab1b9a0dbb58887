package models

import "fmt"

// Plan statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// PlateRequirement is the filament one plate needs.
type PlateRequirement struct {
	FilamentID int     `yaml:"filament_id,omitempty"`
	Name       string  `yaml:"name,omitempty"`
	Material   string  `yaml:"material,omitempty"`
	Color      string  `yaml:"color,omitempty"`
	Amount     float64 `yaml:"amount"` // grams
}

// Plate is one print job: a single exported part.
type Plate struct {
	Name   string             `yaml:"name"`
	Model  string             `yaml:"model,omitempty"`
	Status string             `yaml:"status"`
	Needs  []PlateRequirement `yaml:"needs"`
}

func (p *Plate) DefaultStatus() {
	if p.Status == "" {
		p.Status = StatusTodo
	}
}

// Grams sums the filament needed for the plate.
func (p Plate) Grams() float64 {
	var total float64
	for _, n := range p.Needs {
		total += n.Amount
	}
	return total
}

type Project struct {
	Name   string  `yaml:"name"`
	Status string  `yaml:"status"`
	Plates []Plate `yaml:"plates"`
}

func (p *Project) DefaultStatus() {
	if p.Status == "" {
		p.Status = StatusTodo
	}
	for i := range p.Plates {
		p.Plates[i].DefaultStatus()
	}
}

func (p Project) Grams() float64 {
	var total float64
	for _, pl := range p.Plates {
		total += pl.Grams()
	}
	return total
}

type PlanFile struct {
	OriginalLocation string    `yaml:"original_location,omitempty"`
	Projects         []Project `yaml:"projects"`
}

func (p *PlanFile) DefaultStatus() {
	for i := range p.Projects {
		p.Projects[i].DefaultStatus()
	}
}

// Validate rejects plans that could not be printed.
func (p PlanFile) Validate() error {
	if len(p.Projects) == 0 {
		return fmt.Errorf("plan has no projects")
	}
	for _, proj := range p.Projects {
		if proj.Name == "" {
			return fmt.Errorf("project without a name")
		}
		for _, pl := range proj.Plates {
			for _, n := range pl.Needs {
				if n.Amount < 0 {
					return fmt.Errorf("plate %q needs a negative amount of %s", pl.Name, n.Name)
				}
			}
		}
	}
	return nil
}

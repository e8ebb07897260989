package scrollfx

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is a measured page layout: everything the engine reads through
// Geometry and Element.Layout, frozen into a file. Snapshots are produced by
// the capture tool from a live page and replayed through a VirtualPage.
type Snapshot struct {
	URL           string               `yaml:"url,omitempty"`
	Width         float64              `yaml:"width"`
	Height        float64              `yaml:"height"`
	ScrollHeight  float64              `yaml:"scroll_height"`
	ReducedMotion bool                 `yaml:"reduced_motion,omitempty"`
	CanHover      bool                 `yaml:"can_hover"`
	Elements      map[ElementName]Rect `yaml:"elements,omitempty"`
	Cards         []Rect               `yaml:"cards,omitempty"`
	NavLinks      []SnapshotLink       `yaml:"nav_links,omitempty"`
}

// SnapshotLink is one sidebar link and the section it targets.
type SnapshotLink struct {
	Target  string `yaml:"target"`
	Section *Rect  `yaml:"section,omitempty"`
}

// LoadSnapshot parses a YAML snapshot.
func LoadSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("parse snapshot: viewport %vx%v must be positive", s.Width, s.Height)
	}
	return &s, nil
}

// Encode renders the snapshot as YAML.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// NewVirtualPageFromSnapshot builds a VirtualPage replaying s.
func NewVirtualPageFromSnapshot(s *Snapshot) *VirtualPage {
	p := NewVirtualPage(s.Width, s.Height, s.ScrollHeight)
	p.SetReducedMotion(s.ReducedMotion)
	p.SetCanHover(s.CanHover)
	for name, r := range s.Elements {
		p.AddElement(name, r)
	}
	for _, r := range s.Cards {
		p.AddCard(r)
	}
	for _, l := range s.NavLinks {
		var section Rect
		if l.Section != nil {
			section = *l.Section
		}
		p.AddNavLink(l.Target, section)
	}
	return p
}

// DemoSnapshot is the reference page used by the preview when no snapshot
// file is given: a 1600x900 viewport over a 5000px document with the quote
// section at 1000.
func DemoSnapshot() *Snapshot {
	s := &Snapshot{
		Width:        1600,
		Height:       900,
		ScrollHeight: 5000,
		CanHover:     true,
		Elements: map[ElementName]Rect{
			ElemJupiter:        {Width: 260, Height: 260},
			ElemSaturn:         {Width: 360, Height: 220},
			ElemSpaceBg:        {Width: 1600, Height: 5000},
			ElemQuoteSection:   {Y: 1000, Width: 1600, Height: 500},
			ElemLibrarySection: {Y: 1700, Width: 1600, Height: 2400},
			ElemEssayCard:      {X: 200, Y: 1800, Width: 560, Height: 320},
			ElemFooter:         {Y: 4600, Width: 1600, Height: 400},
			ElemProgressBar:    {Width: 1600, Height: 4},
			ElemBackToTop:      {X: 1520, Y: 820, Width: 48, Height: 48},
		},
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			s.Cards = append(s.Cards, Rect{
				X:      200 + float64(col)*420,
				Y:      1800 + float64(row)*600,
				Width:  360,
				Height: 420,
			})
		}
	}
	intro := Rect{Y: 0, Width: 1600, Height: 1000}
	quote := s.Elements[ElemQuoteSection]
	library := s.Elements[ElemLibrarySection]
	s.NavLinks = []SnapshotLink{
		{Target: "intro", Section: &intro},
		{Target: "quote-section", Section: &quote},
		{Target: "library-section", Section: &library},
	}
	return s
}

package world

import (
	"fmt"

	"github.com/dogwalk/server/internal/game/geom"
)

// Office is a delivery base of radius officeRadius centered on its
// position.
type Office struct {
	ID       string
	Position geom.Point
	Offset   geom.Offset
}

const officeRadius = 0.5

// Building is a purely cosmetic rectangle; it never blocks movement.
type Building struct {
	Bounds geom.Rectangle
}

// Map is a single game level: its roads, buildings, offices, and the
// per-map overrides for dog speed and bag capacity.
type Map struct {
	ID            string
	Name          string
	DogSpeed      float64
	BagCapacity   int
	Roads         []geom.Road
	Buildings     []Building
	Offices       []Office
	officeIndex   map[string]int
	roadIdx       *geom.RoadIndex
}

// NewMap constructs an (initially empty) map with the given defaults.
func NewMap(id, name string, dogSpeed float64, bagCapacity int) *Map {
	return &Map{
		ID:          id,
		Name:        name,
		DogSpeed:    dogSpeed,
		BagCapacity: bagCapacity,
		officeIndex: make(map[string]int),
		roadIdx:     geom.NewRoadIndex(),
	}
}

// AddRoad appends a road and incrementally indexes every cell it covers.
func (m *Map) AddRoad(r geom.Road) {
	idx := len(m.Roads)
	m.Roads = append(m.Roads, r)
	m.roadIdx.Add(r, idx)
}

func (m *Map) AddBuilding(b Building) {
	m.Buildings = append(m.Buildings, b)
}

// AddOffice appends an office, rejecting a duplicate id.
func (m *Map) AddOffice(o Office) error {
	if _, exists := m.officeIndex[o.ID]; exists {
		return fmt.Errorf("duplicate office id %q on map %q", o.ID, m.ID)
	}
	m.officeIndex[o.ID] = len(m.Offices)
	m.Offices = append(m.Offices, o)
	return nil
}

// RoadsAt returns the roads covering the given lattice cell.
func (m *Map) RoadsAt(p geom.Point) []geom.Road {
	idxs := m.roadIdx.At(p)
	if len(idxs) == 0 {
		return nil
	}
	roads := make([]geom.Road, len(idxs))
	for i, ri := range idxs {
		roads[i] = m.Roads[ri]
	}
	return roads
}

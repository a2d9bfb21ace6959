package configio

import (
	"fmt"

	"github.com/dogwalk/server/internal/game/geom"
	"github.com/dogwalk/server/internal/game/world"
)

// toRoad distinguishes horizontal from vertical by which of x1/y1 is
// present, same as the original's json_loader.cpp AddRoad.
func toRoad(r rawRoad) (geom.Road, error) {
	start := geom.Point{X: r.X0, Y: r.Y0}
	switch {
	case r.X1 != nil:
		return geom.NewHorizontalRoad(start, *r.X1), nil
	case r.Y1 != nil:
		return geom.NewVerticalRoad(start, *r.Y1), nil
	default:
		return geom.Road{}, fmt.Errorf("road at (%d,%d) has neither x1 nor y1", r.X0, r.Y0)
	}
}

func toBuilding(b rawBuilding) world.Building {
	return world.Building{
		Bounds: geom.Rectangle{
			Position: geom.Point{X: b.X, Y: b.Y},
			Size:     geom.Size{W: b.W, H: b.H},
		},
	}
}

func toOffice(o rawOffice) world.Office {
	return world.Office{
		ID:       o.ID,
		Position: geom.Point{X: o.X, Y: o.Y},
		Offset:   geom.Offset{DX: o.OffsetX, DY: o.OffsetY},
	}
}

package maps

import (
	"encoding/json"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"carpool/internal/types"
)

// LineStringGeoJSON encodes path as a GeoJSON LineString geometry. An empty path encodes
// to nil.
func LineStringGeoJSON(path []types.Point) (json.RawMessage, error) {
	if len(path) == 0 {
		return nil, nil
	}
	coords := make([]geom.Coord, len(path))
	for i, p := range path {
		coords[i] = geom.Coord{p.Lng, p.Lat}
	}
	ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	b, err := gjson.Marshal(ls)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

package models

import "encoding/json"

// Transport modes accepted by the routing collaborator
const (
	ModeWalk  = "walk"
	ModeBike  = "bike"
	ModeDrive = "drive"
	ModeTrain = "train"
	ModeFly   = "fly"
	ModeBoat  = "boat"
)

// MetaTransportToNext is the metadata key holding an item's persisted
// transport segment to the next stop
const MetaTransportToNext = "transportToNext"

// ValidMode reports whether mode is one the routing collaborator accepts
func ValidMode(mode string) bool {
	switch mode {
	case ModeWalk, ModeBike, ModeDrive, ModeTrain, ModeFly, ModeBoat:
		return true
	}
	return false
}

// TransportSegment is a resolved transit estimate between two consecutive
// stops. Persistent segments live in the "from" item's metadata; ephemeral
// segments exist only for the current render of a multi-day occurrence.
type TransportSegment struct {
	Mode        string       `json:"mode"`
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	Geometry    [][2]float64 `json:"geometry,omitempty"` // (lng,lat) pairs
	ResolvedAt  int64        `json:"resolved_at,omitempty"`
}

// SegmentFromMetadata decodes a transportToNext entry from an item's
// metadata map. The value may be a typed segment (in-process) or a plain
// map (after a JSON round trip through storage).
func SegmentFromMetadata(meta map[string]any) (*TransportSegment, bool) {
	if meta == nil {
		return nil, false
	}
	raw, ok := meta[MetaTransportToNext]
	if !ok || raw == nil {
		return nil, false
	}
	if seg, ok := raw.(*TransportSegment); ok {
		return seg, true
	}
	if seg, ok := raw.(TransportSegment); ok {
		return &seg, true
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var seg TransportSegment
	if err := json.Unmarshal(buf, &seg); err != nil {
		return nil, false
	}
	if seg.Mode == "" && seg.DistanceKm == 0 && seg.DurationMin == 0 {
		return nil, false
	}
	return &seg, true
}

// RouteRequest is the request contract of the routing collaborator
type RouteRequest struct {
	FromLat float64 `json:"from_lat" form:"fromLat" binding:"required"`
	FromLng float64 `json:"from_lng" form:"fromLng" binding:"required"`
	ToLat   float64 `json:"to_lat" form:"toLat" binding:"required"`
	ToLng   float64 `json:"to_lng" form:"toLng" binding:"required"`
	Mode    string  `json:"mode" form:"mode"`
}

// RouteResponse is the response contract of the routing collaborator
type RouteResponse struct {
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	Geometry    [][2]float64 `json:"geometry,omitempty"` // (lng,lat) pairs
	Provider    string       `json:"provider,omitempty"`
	Cached      bool         `json:"cached,omitempty"`
}

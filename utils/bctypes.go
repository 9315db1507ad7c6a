package utils

import "strings"

// BdryType is the physical condition attached to a boundary marker
type BdryType uint8

const (
	BdryInvalid BdryType = iota
	BdryPeriodic
	BdrySymmetry
	BdryInlet
	BdryOutlet
	BdryWall
)

func (bt BdryType) String() string {
	switch bt {
	case BdryPeriodic:
		return "Periodic"
	case BdrySymmetry:
		return "Symmetry"
	case BdryInlet:
		return "Inlet"
	case BdryOutlet:
		return "Outlet"
	case BdryWall:
		return "Wall"
	}
	return "Invalid"
}

// BdryNameMap provides a mapping from common boundary names to BdryType
// Keys are lowercase for case-insensitive matching
var BdryNameMap = map[string]BdryType{
	"periodic": BdryPeriodic,

	"symmetry":  BdrySymmetry,
	"symmetric": BdrySymmetry,

	"inlet":  BdryInlet,
	"inflow": BdryInlet,
	"in":     BdryInlet,

	"outlet":  BdryOutlet,
	"outflow": BdryOutlet,
	"out":     BdryOutlet,
	"exit":    BdryOutlet,

	"wall":    BdryWall,
	"no_slip": BdryWall,
	"noslip":  BdryWall,
}

// ParseBdryType converts a boundary name to BdryType. Matching is
// case-insensitive and trims whitespace, unknown names yield BdryInvalid.
func ParseBdryType(name string) (bt BdryType, ok bool) {
	bt, ok = BdryNameMap[strings.ToLower(strings.TrimSpace(name))]
	return
}

package InputParameters

import (
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"

	"github.com/notargets/incomflow/dualgrid"
	"github.com/notargets/incomflow/utils"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title      string         `json:"Title"`
	GridFile   string         `json:"GridFile"`
	Boundaries map[int]string `json:"Boundaries"` // Marker to boundary type name
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func ReadInputParameters(filename string) (ip *InputParameters, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(filename); err != nil {
		return nil, fmt.Errorf("unable to read input parameters: %w", err)
	}
	ip = &InputParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse input parameters in %s: %w", filename, err)
	}
	return
}

// BoundaryDef converts the boundary names into a BoundaryDef, an unknown
// boundary type name is an error
func (ip *InputParameters) BoundaryDef() (bd *dualgrid.BoundaryDef, err error) {
	bd = dualgrid.NewBoundaryDef()
	for marker, name := range ip.Boundaries {
		bt, ok := utils.ParseBdryType(name)
		if !ok {
			return nil, fmt.Errorf("unknown boundary type [%s] for marker %d", name, marker)
		}
		if marker < 0 {
			return nil, fmt.Errorf("negative boundary marker %d", marker)
		}
		bd.AddMarker(marker, bt)
	}
	return
}

func (ip *InputParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t= GridFile\n", ip.GridFile)
	bd, err := ip.BoundaryDef()
	if err != nil {
		fmt.Fprintf(w, "Boundaries = %v\n", ip.Boundaries)
		return
	}
	for marker, bt := range bd.All() {
		fmt.Fprintf(w, "Boundaries[%d] = %s\n", marker, bt)
	}
}

package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/notargets/incomflow/mesh"
)

// Section keys of a primary grid file and the number of values on each of
// their data lines
const (
	SectionVertices      = "VERTICES"
	SectionIntrEdges     = "INTERIOREDGES"
	SectionBdryEdges     = "BOUNDARYEDGES"
	SectionQuads         = "QUADS"
	SectionTris          = "TRIANGLES"
	SectionTriNeighbors  = "TRIANGLENEIGHBORS"
	SectionQuadNeighbors = "QUADNEIGHBORS"
)

var sectionWidths = map[string]int{
	SectionVertices:      2, // x, y
	SectionIntrEdges:     4, // v0, v1, left cell, right cell
	SectionBdryEdges:     4, // v0, v1, cell, marker
	SectionQuads:         5, // v0, v1, v2, v3, color
	SectionTris:          4, // v0, v1, v2, color
	SectionTriNeighbors:  3,
	SectionQuadNeighbors: 4,
}

type gridSection struct {
	name string
	rows [][]float64
}

/*
ReadPrimaryGrid reads a primary grid file. The file is a sequence of sections,
each a header line "KEY n" followed by n lines of comma separated values:

	VERTICES n           x, y
	INTERIOREDGES n      v0, v1, c0, c1
	BOUNDARYEDGES n      v0, v1, cell, marker
	QUADS n              v0, v1, v2, v3, color
	TRIANGLES n          v0, v1, v2, color
	TRIANGLENEIGHBORS n  n0, n1, n2
	QUADNEIGHBORS n      n0, n1, n2, n3

Blank lines and lines starting with # are skipped, as are sections with other
keys. Cells are numbered triangles first, neighbor sections are optional and
default to -1.
*/
func ReadPrimaryGrid(filename string) (pg *mesh.PrimaryGrid, err error) {
	var (
		file *os.File
	)
	zap.L().Debug("reading primary grid", zap.String("file", filename))
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open grid file: %w", err)
	}
	defer file.Close()
	if pg, err = ReadPrimaryGridFrom(file); err != nil {
		return nil, fmt.Errorf("grid file %s: %w", filename, err)
	}
	return
}

func ReadPrimaryGridFrom(r io.Reader) (pg *mesh.PrimaryGrid, err error) {
	var (
		sections = make(map[string]*gridSection)
		scanner  = bufio.NewScanner(r)
		lineNum  int
	)
	nextLine := func() (line string, ok bool) {
		for scanner.Scan() {
			lineNum++
			line = strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, true
		}
		return "", false
	}
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		var (
			name  string
			count int
		)
		if name, count, err = parseHeader(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if _, known := sectionWidths[name]; !known {
			zap.L().Warn("skipping unknown grid section",
				zap.String("section", name), zap.Int("line", lineNum), zap.Int("rows", count))
			for i := 0; i < count; i++ {
				if _, ok = nextLine(); !ok {
					return nil, fmt.Errorf("section %s: early end of file after %d of %d lines",
						name, i, count)
				}
			}
			continue
		}
		if _, dup := sections[name]; dup {
			return nil, fmt.Errorf("line %d: duplicate section %s", lineNum, name)
		}
		sec := &gridSection{name: name, rows: make([][]float64, count)}
		for i := range sec.rows {
			if line, ok = nextLine(); !ok {
				return nil, fmt.Errorf("section %s: early end of file after %d of %d lines",
					name, i, count)
			}
			if sec.rows[i], err = parseValues(line, sectionWidths[name]); err != nil {
				return nil, fmt.Errorf("section %s, line %d: %w", name, lineNum, err)
			}
		}
		sections[name] = sec
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	if pg, err = assembleGrid(sections); err != nil {
		return nil, err
	}
	if err = pg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	zap.L().Debug("read primary grid",
		zap.Int("vertices", pg.NVertices),
		zap.Int("tris", pg.NTris),
		zap.Int("quads", pg.NQuads),
		zap.Int("interior edges", pg.NIntrEdges),
		zap.Int("boundary edges", pg.NBdryEdges),
	)
	return
}

func parseHeader(line string) (name string, count int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		err = fmt.Errorf("badly formed section header [%s], should be KEY n", line)
		return
	}
	name = strings.ToUpper(fields[0])
	if count, err = strconv.Atoi(fields[1]); err != nil || count < 0 {
		err = fmt.Errorf("unable to read count of section %s from [%s]", name, fields[1])
	}
	return
}

func parseValues(line string, width int) (vals []float64, err error) {
	fields := strings.Split(line, ",")
	if len(fields) != width {
		return nil, fmt.Errorf("expected %d values, found %d in [%s]", width, len(fields), line)
	}
	vals = make([]float64, width)
	for i, f := range fields {
		if vals[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return nil, fmt.Errorf("unable to parse value %d of [%s]: %w", i, line, err)
		}
	}
	return
}

func assembleGrid(sections map[string]*gridSection) (pg *mesh.PrimaryGrid, err error) {
	rowsOf := func(name string) [][]float64 {
		if sec, ok := sections[name]; ok {
			return sec.rows
		}
		return nil
	}
	var (
		verts     = rowsOf(SectionVertices)
		intrEdges = rowsOf(SectionIntrEdges)
		bdryEdges = rowsOf(SectionBdryEdges)
		quads     = rowsOf(SectionQuads)
		tris      = rowsOf(SectionTris)
		triNbrs   = rowsOf(SectionTriNeighbors)
		quadNbrs  = rowsOf(SectionQuadNeighbors)
	)
	if len(verts) == 0 {
		return nil, fmt.Errorf("section %s: missing or empty", SectionVertices)
	}
	if _, ok := sections[SectionTriNeighbors]; ok && len(triNbrs) != len(tris) {
		return nil, fmt.Errorf("section %s: %d rows for %d triangles",
			SectionTriNeighbors, len(triNbrs), len(tris))
	}
	if _, ok := sections[SectionQuadNeighbors]; ok && len(quadNbrs) != len(quads) {
		return nil, fmt.Errorf("section %s: %d rows for %d quads",
			SectionQuadNeighbors, len(quadNbrs), len(quads))
	}
	pg = mesh.NewPrimaryGrid(len(verts), len(tris), len(quads), len(intrEdges), len(bdryEdges))
	for i, xy := range verts {
		pg.VertexCoords.SetRow(i, xy)
	}
	pg.TriNeighbors.Fill(-1)
	pg.QuadNeighbors.Fill(-1)
	setInts := func(name string, rows [][]float64, ncols int, set func(i, j, v int)) error {
		for i, row := range rows {
			for j := 0; j < ncols; j++ {
				v := int(row[j])
				if float64(v) != row[j] {
					return fmt.Errorf("section %s: value %v in row %d is not an integer",
						name, row[j], i)
				}
				set(i, j, v)
			}
		}
		return nil
	}
	steps := []struct {
		name  string
		ncols int
		set   func(i, j, v int)
	}{
		{SectionTris, 3, func(i, j, v int) { pg.Tris.Set(i, j, v) }},
		{SectionQuads, 4, func(i, j, v int) { pg.Quads.Set(i, j, v) }},
		{SectionTriNeighbors, 3, func(i, j, v int) { pg.TriNeighbors.Set(i, j, v) }},
		{SectionQuadNeighbors, 4, func(i, j, v int) { pg.QuadNeighbors.Set(i, j, v) }},
		{SectionIntrEdges, 4, func(i, j, v int) {
			if j < 2 {
				pg.IntrEdges.Set(i, j, v)
			} else {
				pg.IntrEdgeNeighbors.Set(i, j-2, v)
			}
		}},
		{SectionBdryEdges, 4, func(i, j, v int) {
			switch j {
			case 0, 1:
				pg.BdryEdges.Set(i, j, v)
			case 2:
				pg.BdryEdgeNeighbors[i] = v
			case 3:
				pg.BdryEdgeMarkers[i] = v
			}
		}},
	}
	for _, step := range steps {
		if err = setInts(step.name, rowsOf(step.name), step.ncols, step.set); err != nil {
			return nil, err
		}
	}
	return
}

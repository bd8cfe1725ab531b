package wake

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// panelPointIndices returns the logical point indices of a panel's corners,
// in the same order as panelCorners.
func (w *Wake) panelPointIndices(row, col int) [4]int {
	width := w.points.Width()
	pc := w.pointColumn(col)
	return [4]int{
		row*width + pc,
		row*width + pc + 1,
		(row+1)*width + pc + 1,
		(row+1)*width + pc,
	}
}

// WriteOBJ writes the wake sheet as a Wavefront OBJ mesh, one face per
// panel. Steady wakes have no sheet to export.
func (w *Wake) WriteOBJ(out io.Writer) error {
	if w.Kind == Steady {
		return fmt.Errorf("wake: steady wake has no point grid to export")
	}

	buf := bufio.NewWriter(out)

	fmt.Fprintln(buf, "o wake")
	for _, p := range w.WakePoints() {
		fmt.Fprintf(buf, "v %g %g %g\n", p.X, p.Y, p.Z)
	}

	for row := 0; row < w.panels.Rows(); row++ {
		for col := 0; col < w.panels.Width(); col++ {
			idx := w.panelPointIndices(row, col)
			fmt.Fprintf(buf, "f %d %d %d %d\n", idx[0]+1, idx[1]+1, idx[2]+1, idx[3]+1)
		}
	}

	return buf.Flush()
}

// WriteVTK writes the wake sheet and per-panel strength as VTK PolyData, for
// inspection in ParaView.
func (w *Wake) WriteVTK(out io.Writer) error {
	if w.Kind == Steady {
		return fmt.Errorf("wake: steady wake has no point grid to export")
	}

	buf := bufio.NewWriter(out)

	points := w.WakePoints()
	strengths := w.Strengths()

	fmt.Fprintln(buf, `<?xml version="1.0"?>`)
	fmt.Fprintln(buf, `<VTKFile type="PolyData" version="0.1" byte_order="LittleEndian">`)
	fmt.Fprintln(buf, "\t<PolyData>")
	fmt.Fprintf(buf, "\t\t<Piece NumberOfPoints=\"%d\" NumberOfVerts=\"0\" NumberOfLines=\"0\" NumberOfStrips=\"0\" NumberOfPolys=\"%d\">\n",
		len(points), len(strengths))

	fmt.Fprintln(buf, "\t\t\t<Points>")
	fmt.Fprintln(buf, "\t\t\t\t<DataArray type=\"Float32\" NumberOfComponents=\"3\" format=\"ascii\">")
	for _, p := range points {
		fmt.Fprintf(buf, "\t\t\t\t\t%g %g %g\n", p.X, p.Y, p.Z)
	}
	fmt.Fprintln(buf, "\t\t\t\t</DataArray>")
	fmt.Fprintln(buf, "\t\t\t</Points>")

	fmt.Fprintln(buf, "\t\t\t<Polys>")
	fmt.Fprintln(buf, "\t\t\t\t<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">")
	for row := 0; row < w.panels.Rows(); row++ {
		for col := 0; col < w.panels.Width(); col++ {
			idx := w.panelPointIndices(row, col)
			fmt.Fprintf(buf, "\t\t\t\t\t%d %d %d %d\n", idx[0], idx[1], idx[2], idx[3])
		}
	}
	fmt.Fprintln(buf, "\t\t\t\t</DataArray>")
	fmt.Fprintln(buf, "\t\t\t\t<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">")
	for i := range strengths {
		fmt.Fprintf(buf, "\t\t\t\t\t%d\n", (i+1)*4)
	}
	fmt.Fprintln(buf, "\t\t\t\t</DataArray>")
	fmt.Fprintln(buf, "\t\t\t</Polys>")

	fmt.Fprintln(buf, "\t\t\t<CellData Scalars=\"strength\">")
	fmt.Fprintln(buf, "\t\t\t\t<DataArray type=\"Float32\" Name=\"strength\" format=\"ascii\">")
	for _, s := range strengths {
		fmt.Fprintf(buf, "\t\t\t\t\t%g\n", s)
	}
	fmt.Fprintln(buf, "\t\t\t\t</DataArray>")
	fmt.Fprintln(buf, "\t\t\t</CellData>")

	fmt.Fprintln(buf, "\t\t</Piece>")
	fmt.Fprintln(buf, "\t</PolyData>")
	fmt.Fprintln(buf, "</VTKFile>")

	return buf.Flush()
}

// ExportOBJFile writes the wake mesh to a file path.
func (w *Wake) ExportOBJFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return w.WriteOBJ(f)
}

// ExportVTKFile writes the wake mesh and strengths to a file path.
func (w *Wake) ExportVTKFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return w.WriteVTK(f)
}

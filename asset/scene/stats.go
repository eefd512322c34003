package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
)

type geometryStats struct {
	vertices, normals, triangles, uvw []interface{}
	numVertices, numTriangles         int
}

func (sc *Scene) geometryStats() geometryStats {
	var gs geometryStats
	for _, o := range sc.Objects {
		if o.Mesh == nil {
			continue
		}
		for p := range o.Mesh.Vertices {
			gs.vertices = append(gs.vertices, o.Mesh.Vertices[p])
			gs.normals = append(gs.normals, o.Mesh.Normals[p])
		}
		if len(o.Mesh.Vertices) > 0 {
			gs.numVertices += len(o.Mesh.Vertices[0])
		}
		gs.numTriangles += len(o.Mesh.Triangles)
		gs.triangles = append(gs.triangles, o.Mesh.Triangles)
		for _, ch := range o.Mesh.UVW {
			gs.uvw = append(gs.uvw, ch)
		}
	}
	return gs
}

func (sc *Scene) countObjects(typ ObjectType) int {
	count := 0
	for _, o := range sc.Objects {
		if o.Type == typ {
			count++
		}
	}
	return count
}

func (sc *Scene) countEmitters() int {
	count := 0
	for _, m := range sc.Materials {
		if m.IsEmitter() {
			count++
		}
	}
	return count
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	gs := sc.geometryStats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"Objects", "---", fmt.Sprint(len(sc.Objects)), ""})
	table.Append([]string{"", "Empties", fmt.Sprint(sc.countObjects(ObjectEmpty)), ""})
	table.Append([]string{"", "Meshes", fmt.Sprint(sc.countObjects(ObjectMesh)), ""})
	table.Append([]string{"", "Instances", fmt.Sprint(sc.countObjects(ObjectInstance)), ""})
	table.Append([]string{"", "References", fmt.Sprint(sc.countObjects(ObjectReference)), ""})
	table.Append([]string{"", "Extensions", fmt.Sprint(sc.countObjects(ObjectProcedural) + sc.countObjects(ObjectLoader)), ""})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Geometry", "---", "", fmtSize(gs.vertices, gs.normals, gs.triangles, gs.uvw)})
	table.Append([]string{"", "Vertices", fmt.Sprint(gs.numVertices), fmtSize(gs.vertices)})
	table.Append([]string{"", "Normals", "", fmtSize(gs.normals)})
	table.Append([]string{"", "Triangles", fmt.Sprint(gs.numTriangles), fmtSize(gs.triangles)})
	table.Append([]string{"", "UVWs", "", fmtSize(gs.uvw)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Materials", "---", fmt.Sprint(len(sc.Materials)), ""})
	table.Append([]string{"", "Emitters", fmt.Sprint(sc.countEmitters()), ""})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Cameras", "---", fmt.Sprint(len(sc.Cameras)), ""})
	table.Append([]string{"", "Active", sc.ActiveCamera, ""})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtSize(gs.vertices, gs.normals, gs.triangles, gs.uvw), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit. Items may be slices or slices
// of slices.
func fmtSize(items ...interface{}) string {
	var totalBytes float64
	for _, item := range items {
		totalBytes += sliceBytes(reflect.ValueOf(item))
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}

func sliceBytes(v reflect.Value) float64 {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return 0
	}
	switch v.Type().Elem().Kind() {
	case reflect.Slice, reflect.Interface:
		var total float64
		for i := 0; i < v.Len(); i++ {
			total += sliceBytes(v.Index(i))
		}
		return total
	}
	return float64(int(v.Type().Elem().Size()) * v.Len())
}

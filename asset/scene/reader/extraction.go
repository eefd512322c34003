package reader

import (
	"errors"
	"math"
	"strings"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/log"
	"github.com/oomer/blendmaxwell/types"
)

// Returned when extracting data from a scene with protection enabled.
var ErrProtectedScene = errors.New("reader: scene is protected")

// Name reported for the sun.
const SunName = "The Sun"

var extractLogger = log.New("scene reader")

// An object as listed by the scene reader.
type ObjectInfo struct {
	Name   string
	Type   scene.ObjectType
	Parent string

	Base  types.Base
	Pivot types.Base

	// Comma separated 8-bit color id, e.g. "255, 0, 0".
	ColorID string

	// Comma separated hidden flags: C (camera), GI and RR
	// (reflections/refractions).
	Hidden string

	// Instanced object of instances.
	Instanced string

	// Distinct material names in triangle order for meshes; the object
	// material for instances.
	Materials []string

	NumVertices   int
	NumNormals    int
	NumTriangles  int
	NumUVChannels int
}

// A camera as listed by the scene reader. Lengths are in millimetres.
type CameraInfo struct {
	Name   string
	Active bool

	// Exposure in seconds.
	Shutter     float64
	ISO         float64
	XResolution int
	YResolution int
	PixelAspect float64

	Origin      types.Vec3
	FocalPoint  types.Vec3
	Up          types.Vec3
	FocalLength float64
	FStop       float64

	FilmWidth  float64
	FilmHeight float64
	SensorFit  string

	ZClip     bool
	ZClipNear float64
	ZClipFar  float64

	ShiftX float64
	ShiftY float64

	DiaphragmType   string
	DiaphragmAngle  float64
	DiaphragmBlades int
}

// The sun as listed by the scene reader.
type SunInfo struct {
	Name      string
	Direction types.Vec3
}

func hiddenFlags(o *scene.Object) string {
	var flags []string
	if o.HideToCamera {
		flags = append(flags, "C")
	}
	if o.HideToGI {
		flags = append(flags, "GI")
	}
	if o.HideToReflectionsRefractions {
		flags = append(flags, "RR")
	}
	return strings.Join(flags, ", ")
}

// Material names used by the triangles of a mesh, in first use order.
func triangleMaterials(o *scene.Object) []string {
	var names []string
	seen := make(map[string]bool)
	for i := range o.Mesh.Triangles {
		n := o.TriangleMaterial(i)
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

func objectInfo(o *scene.Object) (ObjectInfo, bool) {
	info := ObjectInfo{
		Name:    o.Name,
		Type:    o.Type,
		Parent:  o.Parent,
		Base:    o.Base,
		Pivot:   o.Pivot,
		ColorID: o.ColorID.RGB8().String(),
	}

	switch o.Type {
	case scene.ObjectEmpty:
	case scene.ObjectInstance:
		info.Hidden = hiddenFlags(o)
		info.Instanced = o.Instanced
		if o.Material != "" {
			info.Materials = []string{o.Material}
		}
	case scene.ObjectMesh:
		info.Hidden = hiddenFlags(o)
		m := o.Mesh
		if m.NumPositions > 1 {
			extractLogger.Warningf("object %q: only one position per vertex is supported; reading position 0", o.Name)
		}
		info.NumVertices = len(m.Vertices[0])
		info.NumNormals = len(m.Normals[0])
		info.NumTriangles = len(m.Triangles)
		info.NumUVChannels = len(m.UVW)
		info.Materials = triangleMaterials(o)
	default:
		extractLogger.Warningf("object %q: only empties, meshes and instances are supported; skipping %s", o.Name, o.Type)
		return info, false
	}
	return info, true
}

// Report whether any material used by a mesh or instance has an emitter
// layer, enabled or not. Emitter listings feed light placement in the host,
// so a material with a single disabled or partial emitter layer still counts.
// CheckEmitter applies the stricter rule used for standalone materials.
func hasEmitterMaterial(sc *scene.Scene, o *scene.Object) bool {
	var names []string
	switch o.Type {
	case scene.ObjectMesh:
		names = triangleMaterials(o)
	case scene.ObjectInstance:
		names = []string{o.Material}
	default:
		return false
	}
	for _, n := range names {
		if m := sc.GetMaterial(n); m != nil && m.HasEmitterLayer() {
			return true
		}
	}
	return false
}

// List the empties, meshes and instances of a scene. In emitter mode only
// emitting objects are listed, placed by their world transform and without a
// parent.
func Objects(sc *scene.Scene, onlyEmitters bool) ([]ObjectInfo, error) {
	if sc.Protected {
		return nil, ErrProtectedScene
	}

	var out []ObjectInfo
	for _, o := range sc.Objects {
		if onlyEmitters && !hasEmitterMaterial(sc, o) {
			continue
		}
		info, ok := objectInfo(o)
		if !ok {
			continue
		}
		if onlyEmitters {
			info.Base = sc.WorldTransform(o)
			info.Pivot = types.IdentBase()
			info.Parent = ""
		}
		out = append(out, info)
	}
	return out, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// List the scene cameras. With several cameras only the active one is
// flagged; a lone camera is always active.
func Cameras(sc *scene.Scene) ([]CameraInfo, error) {
	if sc.Protected {
		return nil, ErrProtectedScene
	}

	out := make([]CameraInfo, 0, len(sc.Cameras))
	for _, c := range sc.Cameras {
		info := CameraInfo{
			Name:            c.Name,
			ISO:             c.ISO,
			XResolution:     c.XResolution,
			YResolution:     c.YResolution,
			PixelAspect:     c.PixelAspect,
			FilmWidth:       round3(c.FilmWidth * 1000),
			FilmHeight:      round3(c.FilmHeight * 1000),
			ZClipFar:        1e6,
			ShiftX:          c.ShiftLens[0],
			ShiftY:          c.ShiftLens[1],
			DiaphragmType:   c.DiaphragmType,
			DiaphragmAngle:  c.Angle,
			DiaphragmBlades: c.Blades,
		}
		if c.Shutter != 0 {
			info.Shutter = 1 / c.Shutter
		}
		if info.FilmWidth > info.FilmHeight {
			info.SensorFit = "HORIZONTAL"
		} else {
			info.SensorFit = "VERTICAL"
		}
		if c.CutPlanes.Enabled {
			info.ZClip = true
			info.ZClipNear = c.CutPlanes.Near
			info.ZClipFar = c.CutPlanes.Far
		}

		if len(c.Steps) != 0 {
			s := c.Steps[0]
			info.Origin = s.Origin
			info.FocalPoint = s.FocalPoint
			info.Up = s.Up
			info.FStop = s.FStop
			f, err := scene.UncorrectFocalLength(s.Origin, s.FocalPoint, s.FocalLength)
			if err != nil {
				extractLogger.Warningf("camera %q: %v; reporting the stored focal length", c.Name, err)
				f = s.FocalLength
			}
			info.FocalLength = f * 1000
		}

		info.Active = len(sc.Cameras) == 1 || c.Name == sc.ActiveCamera
		out = append(out, info)
	}
	return out, nil
}

// Get the sun. Nil is returned when the physical sun is disabled.
func Sun(sc *scene.Scene) (*SunInfo, error) {
	if sc.Protected {
		return nil, ErrProtectedScene
	}

	env := sc.Environment
	if env == nil || !env.SunEnabled() {
		return nil, nil
	}
	dir := env.SunDirection
	if env.SunPositionType != scene.SunPositionDirection {
		dir = env.SunDirectionUsedForRendering()
	}
	return &SunInfo{Name: SunName, Direction: dir}, nil
}

// Report whether a material emits light, i.e. every layer carries an enabled
// emitter. This is stricter than the emitter listing of Objects, which
// accepts any material with an emitter layer.
func CheckEmitter(m *scene.Material) bool {
	return m.IsEmitter()
}

// Read a material container and check whether it is an emitter.
func CheckEmitterFile(filename string) (bool, error) {
	m, err := ReadMaterial(filename)
	if err != nil {
		return false, err
	}
	return CheckEmitter(m), nil
}

package reader

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/log"
	"github.com/oomer/blendmaxwell/types"
)

const (
	defaultFStop = 8.0

	// Camera name used for camera_* directives.
	wavefrontCameraName = "Camera"
)

type wavefrontMaterial struct {
	Name string

	// Diffuse, specular, emissive and transmission colors.
	Kd types.Vec3
	Ks types.Vec3
	Ke types.Vec3
	Tf types.Vec3

	// Index of refraction.
	Ni float64

	// Texture paths, already resolved against the material library.
	KdTex   string
	KsTex   string
	BumpTex string

	// True if this material is used by at least one face.
	Used bool
}

// Build an extension material description from the wavefront material
// properties. Emission takes precedence, followed by specular reflection.
func (wf *wavefrontMaterial) describe() *material.Material {
	d := &material.Material{Name: wf.Name, Subtype: "EXTENSION"}

	isSpecular := wf.Ks.MaxComponent() > 0 || wf.KsTex != ""
	switch {
	case wf.Ke.MaxComponent() > 0:
		d.Use = material.UseEmitter
		d.Emitter = material.NewPresetEmitter(types.RGB(wf.Ke).RGB8())
	case isSpecular && wf.Ni != 0:
		d.Use = material.UseTransparent
		d.Transparent = &material.Transparent{
			Color: types.RGB(wf.Tf).RGB8(),
			IOR:   wf.Ni,
		}
	case isSpecular:
		d.Use = material.UseMetal
		d.Metal = &material.Metal{Color: types.RGB(wf.Ks).RGB8()}
		if wf.KsTex != "" {
			d.Metal.ColorType = 1
			d.Metal.ColorMap = texture.New(wf.KsTex)
		}
	default:
		d.Use = material.UseOpaque
		d.Opaque = &material.Opaque{Color: types.RGB(wf.Kd).RGB8()}
		if wf.KdTex != "" {
			d.Opaque.ColorType = 1
			d.Opaque.ColorMap = texture.New(wf.KdTex)
		}
	}

	if wf.BumpTex != "" {
		g := material.NewGlobalProps()
		g.Bump = true
		g.BumpValue = 1
		g.BumpMap = texture.New(wf.BumpTex)
		d.GlobalProps = g
	}
	return d
}

// A mesh object under construction. Wavefront indices are global to the
// file so each mesh keeps its own remapping into local storage.
type wavefrontMesh struct {
	obj *input.Object

	vertexIndex map[int]int
	normalIndex map[int]int

	// Face normals generated for faces without vertex normals. Triangles
	// reference them with negative indices until the mesh is finished.
	faceNormals []types.Vec3

	uvs    [][9]float64
	hasUVs bool

	slots map[string]int
}

func newWavefrontMesh(name string) *wavefrontMesh {
	m := input.IdentMatrix()
	m.Scale = types.Vec3{1, 1, 1}
	return &wavefrontMesh{
		obj: &input.Object{
			Name:         name,
			Type:         input.ObjectMesh,
			Matrix:       &m,
			NumPositions: 1,
			Vertices:     [][]types.Vec3{nil},
			Normals:      [][]types.Vec3{nil},
		},
		vertexIndex: make(map[int]int),
		normalIndex: make(map[int]int),
		slots:       make(map[string]int),
	}
}

func (m *wavefrontMesh) vertex(global int, v types.Vec3) int {
	if local, ok := m.vertexIndex[global]; ok {
		return local
	}
	m.obj.Vertices[0] = append(m.obj.Vertices[0], v)
	m.vertexIndex[global] = len(m.obj.Vertices[0]) - 1
	return m.vertexIndex[global]
}

func (m *wavefrontMesh) normal(global int, n types.Vec3) int {
	if local, ok := m.normalIndex[global]; ok {
		return local
	}
	m.obj.Normals[0] = append(m.obj.Normals[0], n)
	m.normalIndex[global] = len(m.obj.Normals[0]) - 1
	return m.normalIndex[global]
}

func (m *wavefrontMesh) faceNormal(n types.Vec3) int {
	m.faceNormals = append(m.faceNormals, n)
	return -len(m.faceNormals)
}

func (m *wavefrontMesh) slot(name string) int {
	if s, ok := m.slots[name]; ok {
		return s
	}
	m.obj.Materials = append(m.obj.Materials, name)
	m.slots[name] = len(m.obj.Materials) - 1
	return m.slots[name]
}

// Resolve face normal references and drop unused channels.
func (m *wavefrontMesh) finish() *input.Object {
	o := m.obj
	offset := len(o.Normals[0])
	for i := range o.Triangles {
		for k := 3; k < 6; k++ {
			if n := o.Triangles[i][k]; n < 0 {
				o.Triangles[i][k] = offset - n - 1
			}
		}
	}
	if len(m.faceNormals) != 0 {
		o.TriangleNormals = [][]types.Vec3{m.faceNormals}
	}
	if m.hasUVs {
		o.UVChannels = [][][9]float64{m.uvs}
	}
	if len(o.Materials) < 2 {
		o.TriangleMaterials = nil
	}
	return o
}

type wavefrontSceneReader struct {
	logger log.Logger

	// The parsed description.
	desc *input.Scene

	// A map of material names to parsed wavefront materials
	matNameToIndex map[string]int

	// Parsed wavefront materials.
	materials []*wavefrontMaterial

	// Name of the currently selected material.
	curMaterial string

	// Mesh being parsed; nil until the first face or object directive.
	curMesh *wavefrontMesh

	// Instance counters per instanced mesh.
	instances map[string]int

	// Camera settings from camera_* directives.
	camera    *input.Camera
	cameraFOV float64
	cameraEye types.Vec3
	cameraAt  types.Vec3
	cameraUp  types.Vec3

	// List of vertices, normals and uv coords.
	vertexList []types.Vec3
	normalList []types.Vec3
	uvList     []types.Vec2

	// An error stack that provides additional error information when
	// scene files include other files (models, mat libs e.t.c)
	errStack []string
}

// Create a new wavefront scene reader.
func newWavefrontReader() *wavefrontSceneReader {
	return &wavefrontSceneReader{
		logger:         log.New("wavefront reader"),
		desc:           &input.Scene{},
		matNameToIndex: make(map[string]int),
		instances:      make(map[string]int),
		cameraFOV:      45,
		cameraUp:       types.Vec3{0, 1, 0},
	}
}

// Read a scene description from a wavefront object file.
func (r *wavefrontSceneReader) Read(res *asset.Resource) (*input.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}
	r.finishMesh()
	r.finishCamera()
	r.processMaterials()

	r.desc.Source = res
	r.logger.Noticef("parsed %d object(s) in %d ms", len(r.desc.Objects), time.Since(start).Nanoseconds()/1e6)
	if err := r.desc.Validate(); err != nil {
		return nil, err
	}
	return r.desc, nil
}

// Add descriptions for the materials in use. Faces selecting a material that
// no library defines resolve to the placeholder at compile time.
func (r *wavefrontSceneReader) processMaterials() {
	pruned := 0
	for _, wf := range r.materials {
		if !wf.Used {
			r.logger.Infof("skipping unused material %q", wf.Name)
			pruned++
			continue
		}
		r.desc.Materials = append(r.desc.Materials, wf.describe())
	}
	if pruned > 0 {
		r.logger.Noticef("pruned %d unused material(s)", pruned)
	}
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}
	return fmt.Errorf("%s", strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *wavefrontSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse wavefront object scene format.
func (r *wavefrontSceneReader) parse(res *asset.Resource) error {
	var lineNum int
	var err error

	// The main obj file may include (call) several other object files. Each
	// object file contains 1-based indices (when they are positive). By
	// tracking the current vertex/uv/normal offsets we can apply them
	// while parsing faces to select the correct coordinates.
	relVertexOffset := len(r.vertexList)
	relUvOffset := len(r.uvList)
	relNormalOffset := len(r.normalList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call", "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			switch lineTokens[0] {
			case "call":
				err = r.parse(incRes)
			case "mtllib":
				err = r.parseMaterials(incRes)
			}
			incRes.Close()

			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			r.curMaterial = lineTokens[1]
			if index, exists := r.matNameToIndex[r.curMaterial]; exists {
				r.materials[index].Used = true
			} else {
				r.logger.Warningf("[%s: %d] undefined material %q; using %s", res.Path(), lineNum, r.curMaterial, material.PlaceholderName)
			}
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.normalList = append(r.normalList, v)
		case "vt":
			v, err := parseVec2(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.uvList = append(r.uvList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.finishMesh()
			r.curMesh = newWavefrontMesh(lineTokens[1])
		case "f":
			// If no object has been defined create a default one
			if r.curMesh == nil {
				r.curMesh = newWavefrontMesh("default")
			}
			if err = r.parseFace(lineTokens, relVertexOffset, relUvOffset, relNormalOffset); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "camera_fov":
			r.useCamera()
			r.cameraFOV, err = parseFloat(lineTokens)
		case "camera_eye":
			r.useCamera()
			r.cameraEye, err = parseVec3(lineTokens)
		case "camera_look":
			r.useCamera()
			r.cameraAt, err = parseVec3(lineTokens)
		case "camera_up":
			r.useCamera()
			r.cameraUp, err = parseVec3(lineTokens)
		case "instance":
			// Instances may only reference finished meshes.
			r.finishMesh()
			var instance *input.Object
			if instance, err = r.parseMeshInstance(lineTokens); err == nil {
				r.desc.Objects = append(r.desc.Objects, instance)
			}
		}

		if err != nil {
			return r.emitError(res.Path(), lineNum, "%s", err.Error())
		}
	}

	return scanner.Err()
}

// Append the mesh being parsed to the description. Meshes without faces are
// dropped.
func (r *wavefrontSceneReader) finishMesh() {
	m := r.curMesh
	if m == nil {
		return
	}
	r.curMesh = nil
	if len(m.obj.Triangles) == 0 {
		r.logger.Warningf(`dropping mesh "%s" as it contains no polygons`, m.obj.Name)
		return
	}
	r.desc.Objects = append(r.desc.Objects, m.finish())
}

func (r *wavefrontSceneReader) useCamera() {
	if r.camera == nil {
		r.camera = input.NewCamera(wavefrontCameraName)
	}
}

// Build the camera from the collected directives. The field of view spans
// the film width.
func (r *wavefrontSceneReader) finishCamera() {
	c := r.camera
	if c == nil {
		return
	}
	fov := r.cameraFOV * math.Pi / 180
	c.Steps = []input.CameraStep{{
		Origin:      r.cameraEye,
		FocalPoint:  r.cameraAt,
		Up:          r.cameraUp,
		FocalLength: c.FilmWidth / 2 / math.Tan(fov/2),
		FStop:       defaultFStop,
	}}
	c.Active = true
	r.desc.Cameras = append(r.desc.Cameras, c)
}

// Parse mesh instance definition. Definitions use the following format:
// instance mesh_name tX tY tZ yaw pitch roll sX sY sZ
// where:
// - tX, tY, tZ       : translation vector
// - yaw, pitch, roll : rotation angles in degrees
// - sX, sY, sZ	      : scale
func (r *wavefrontSceneReader) parseMeshInstance(lineTokens []string) (*input.Object, error) {
	if len(lineTokens) != 11 {
		return nil, fmt.Errorf(`unsupported syntax for "instance"; expected 10 arguments: mesh_name tX tY tZ yaw pitch roll sX sY sZ; got %d`, len(lineTokens)-1)
	}

	meshName := lineTokens[1]
	found := false
	for _, o := range r.desc.Objects {
		if o.Name == meshName && o.Type == input.ObjectMesh {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf(`unknown mesh with name "%s"`, meshName)
	}

	var values [9]float64
	for index := range values {
		v, err := strconv.ParseFloat(lineTokens[index+2], 64)
		if err != nil {
			return nil, err
		}
		values[index] = v
	}
	translation := types.Vec3{values[0], values[1], values[2]}
	rotation := types.Vec3{values[3], values[4], values[5]}
	scale := types.Vec3{values[6], values[7], values[8]}

	m := input.IdentMatrix()
	m.Base = types.QuatFromEuler(rotation.Mul(math.Pi/180)).Base(translation, types.Vec3{1, 1, 1}).Rows()
	m.Location = translation
	m.Rotation = rotation
	m.Scale = scale

	r.instances[meshName]++
	return &input.Object{
		Name:      fmt.Sprintf("%s.%03d", meshName, r.instances[meshName]),
		Type:      input.ObjectInstance,
		Matrix:    &m,
		Instanced: meshName,
	}, nil
}

// Parse face definition. Each face definitions consists of at least 3
// arguments, one for each vertex. Each one of the vertex arguments is
// comprised of 1, 2 or 3 args separated by a slash character. The following
// formats are supported:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate
// an offset off the end of the vertex/uv list.
//
// Polygons are split into a triangle fan around their first vertex.
func (r *wavefrontSceneReader) parseFace(lineTokens []string, relVertexOffset, relUvOffset, relNormalOffset int) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	numVerts := len(lineTokens) - 1
	vertices := make([]int, numVerts)
	normals := make([]int, numVerts)
	uvs := make([]types.Vec2, numVerts)
	positions := make([]types.Vec3, numVerts)
	expIndices := 0
	hasNormals := false
	hasUVs := false
	mesh := r.curMesh
	for arg := 0; arg < numVerts; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		positions[arg] = r.vertexList[offset]
		vertices[arg] = mesh.vertex(offset, positions[arg])

		// Parse UV coords if specified
		if expIndices > 1 && vTokens[1] != "" {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.uvList), relUvOffset)
			if err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
			uvs[arg] = r.uvList[offset]
			hasUVs = true
		}

		// Parse normal coords if specified
		if expIndices > 2 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList), relNormalOffset)
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			normals[arg] = mesh.normal(offset, r.normalList[offset])
			hasNormals = true
		}
	}

	// If no normals are available generate one from the vertices
	if !hasNormals {
		e01 := positions[1].Sub(positions[0])
		e02 := positions[2].Sub(positions[0])
		n := mesh.faceNormal(e01.Cross(e02).Normalize())
		for i := range normals {
			normals[i] = n
		}
	}
	if hasUVs {
		mesh.hasUVs = true
	}

	slot := mesh.slot(r.curMaterial)
	for i := 1; i+1 < numVerts; i++ {
		fan := [3]int{0, i, i + 1}
		var tri input.Triangle
		var uvw [9]float64
		for k, index := range fan {
			tri[k] = vertices[index]
			tri[k+3] = normals[index]
			uvw[k*3] = uvs[index][0]
			uvw[k*3+1] = uvs[index][1]
		}
		o := mesh.obj
		o.TriangleMaterials = append(o.TriangleMaterials, input.TriangleMaterial{len(o.Triangles), slot})
		o.Triangles = append(o.Triangles, tri)
		mesh.uvs = append(mesh.uvs, uvw)
	}
	return nil
}

// Parse a wavefront material library.
func (r *wavefrontSceneReader) parseMaterials(res *asset.Resource) error {
	var lineNum int
	var err error

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)

	var curMaterial *wavefrontMaterial
	var matName string

	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "newmtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName = lineTokens[1]
			if _, exists := r.matNameToIndex[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			// Allocate new material and add it to library
			curMaterial = &wavefrontMaterial{Name: matName}
			r.materials = append(r.materials, curMaterial)
			r.matNameToIndex[matName] = len(r.materials) - 1
		default:
			if curMaterial == nil {
				return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
			}

			switch lineTokens[0] {
			case "include":
				if len(lineTokens) < 2 {
					return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
				}

				baseMaterialIndex, exists := r.matNameToIndex[lineTokens[1]]
				if !exists {
					return r.emitError(res.Path(), lineNum, `could not include unknown material "%s"`, lineTokens[1])
				}

				// Overwrite material but keep the original name
				*curMaterial = *r.materials[baseMaterialIndex]
				curMaterial.Name = matName
				curMaterial.Used = false
			case "Kd", "Ks", "Ke", "Tf":
				var target *types.Vec3
				switch lineTokens[0] {
				case "Kd":
					target = &curMaterial.Kd
				case "Ks":
					target = &curMaterial.Ks
				case "Ke":
					target = &curMaterial.Ke
				case "Tf":
					target = &curMaterial.Tf
				}

				*target, err = parseVec3(lineTokens)
			case "Ni":
				curMaterial.Ni, err = parseFloat(lineTokens)
			case "map_Kd", "map_Ks", "map_bump", "bump":
				if len(lineTokens) < 2 {
					return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
				}

				var target *string
				switch lineTokens[0] {
				case "map_Kd":
					target = &curMaterial.KdTex
				case "map_Ks":
					target = &curMaterial.KsTex
				default:
					target = &curMaterial.BumpTex
				}

				// The map file name is the last token; options precede it.
				*target, err = asset.ResolvePath(lineTokens[len(lineTokens)-1], res)
			}

			// Report any errors
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		}
	}

	return scanner.Err()
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a float scalar value.
func parseFloat(lineTokens []string) (float64, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}
	return strconv.ParseFloat(lineTokens[1], 64)
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec2{}
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}

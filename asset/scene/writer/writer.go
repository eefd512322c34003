package writer

import "github.com/oomer/blendmaxwell/asset/scene"

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(*scene.Scene) error
}

// Write a scene container.
func WriteScene(sc *scene.Scene, filename string) error {
	var writer Writer = newMXSWriter(filename)
	return writer.Write(sc)
}

// Write a material container.
func WriteMaterial(m *scene.Material, filename string) error {
	writer := newMXSWriter(filename)
	return writer.WriteMaterial(m)
}

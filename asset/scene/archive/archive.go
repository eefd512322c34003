package archive

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/oomer/blendmaxwell/asset/scene"
)

// Zip entries holding the gob encoded object model.
const (
	SceneEntry    = "scene.bin"
	MaterialEntry = "material.bin"
)

// Write a scene container.
func EncodeScene(w io.Writer, sc *scene.Scene) error {
	return encode(w, SceneEntry, sc)
}

// Read a scene container. Gob omits zero values, so the scene is decoded
// into a blank value rather than one carrying defaults.
func DecodeScene(r io.Reader) (*scene.Scene, error) {
	sc := &scene.Scene{}
	if err := decode(r, SceneEntry, sc); err != nil {
		return nil, err
	}
	sc.Restore()
	return sc, nil
}

// Write a material container.
func EncodeMaterial(w io.Writer, m *scene.Material) error {
	return encode(w, MaterialEntry, m)
}

// Read a material container.
func DecodeMaterial(r io.Reader) (*scene.Material, error) {
	m := &scene.Material{}
	if err := decode(r, MaterialEntry, m); err != nil {
		return nil, err
	}
	return m, nil
}

func encode(w io.Writer, entry string, v interface{}) error {
	zw := zip.NewWriter(w)
	f, err := zw.Create(entry)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("archive: failed to encode %s: %v", entry, err)
	}
	return zw.Close()
}

func decode(r io.Reader, entry string, v interface{}) error {
	// zip requires a ReaderAt; load the whole container in memory.
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("archive: not a valid container: %v", err)
	}

	for _, f := range zr.File {
		if f.Name != entry {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = gob.NewDecoder(rc).Decode(v)
		rc.Close()
		if err != nil {
			return fmt.Errorf("archive: failed to decode %s: %v", f.Name, err)
		}
		return nil
	}
	return fmt.Errorf("archive: container has no %s entry", entry)
}

package reader

import (
	"fmt"

	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/compiler"
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/archive"
)

// The Reader interface is implemented by all scene description readers.
type Reader interface {
	// Read a scene description from a resource.
	Read(*asset.Resource) (*input.Scene, error)
}

type jsonReader struct{}

func (jsonReader) Read(res *asset.Resource) (*input.Scene, error) {
	return input.Load(res)
}

// Select a description reader based on the file extension.
func readerFor(res *asset.Resource) (Reader, error) {
	switch res.Ext() {
	case ".json":
		return jsonReader{}, nil
	case ".obj":
		return newWavefrontReader(), nil
	}
	return nil, fmt.Errorf("reader: unsupported description format %q", res.Ext())
}

// Read a scene description from file.
func ReadDescription(filename string) (*input.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	r, err := readerFor(res)
	if err != nil {
		return nil, err
	}
	return r.Read(res)
}

// Read a scene from file. Compiled .mxs containers are decoded as-is while
// descriptions are compiled with the default options.
func ReadScene(filename string) (*scene.Scene, error) {
	return ReadSceneWithOptions(filename, compiler.Options{})
}

// Read a scene from file using the supplied compiler options for
// descriptions.
func ReadSceneWithOptions(filename string, opts compiler.Options) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	if res.Ext() == ".mxs" {
		return newMXSReader().Read(res)
	}

	r, err := readerFor(res)
	if err != nil {
		return nil, err
	}
	desc, err := r.Read(res)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(desc, opts)
}

// Read a material from file. Both .mxm containers and JSON material
// descriptions are supported.
func ReadMaterial(filename string) (*scene.Material, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	switch res.Ext() {
	case ".mxm":
		return archive.DecodeMaterial(res)
	case ".json":
		d := &material.Material{}
		if err = res.DecodeJSON(d); err != nil {
			return nil, err
		}
		return compiler.CompileMaterial(d, res)
	}
	return nil, fmt.Errorf("reader: unsupported material format %q", res.Ext())
}

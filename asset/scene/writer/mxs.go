package writer

import (
	"io"
	"os"
	"time"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/archive"
	"github.com/oomer/blendmaxwell/log"
	"github.com/pkg/errors"
)

type mxsWriter struct {
	logger   log.Logger
	filename string
}

// Create a new writer for scene and material containers.
func newMXSWriter(filename string) *mxsWriter {
	return &mxsWriter{
		logger:   log.New("mxs writer"),
		filename: filename,
	}
}

// Write scene definition to a container file.
func (w *mxsWriter) Write(sc *scene.Scene) error {
	w.logger.Noticef("writing scene to %s", w.filename)
	start := time.Now()

	err := w.create(func(f io.Writer) error {
		return archive.EncodeScene(f, sc)
	})
	if err != nil {
		return err
	}

	w.logger.Noticef("wrote %d object(s) in %d ms", len(sc.Objects), time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Write a material to a container file.
func (w *mxsWriter) WriteMaterial(m *scene.Material) error {
	w.logger.Noticef("writing material %q to %s", m.Name, w.filename)
	start := time.Now()

	err := w.create(func(f io.Writer) error {
		return archive.EncodeMaterial(f, m)
	})
	if err != nil {
		return err
	}

	w.logger.Noticef("wrote material in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Create the output file and run encode on it. A failed encode removes the
// partially written file.
func (w *mxsWriter) create(encode func(io.Writer) error) error {
	f, err := os.Create(w.filename)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}

	err = encode(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(w.filename)
		return errors.Wrapf(err, "writing %s", w.filename)
	}
	return nil
}

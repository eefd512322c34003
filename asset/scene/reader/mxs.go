package reader

import (
	"time"

	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/archive"
	"github.com/oomer/blendmaxwell/log"
	"github.com/pkg/errors"
)

type mxsReader struct {
	logger log.Logger
}

// Create a new reader for compiled scene containers.
func newMXSReader() *mxsReader {
	return &mxsReader{
		logger: log.New("mxs reader"),
	}
}

// Read a compiled scene.
func (r *mxsReader) Read(res *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`loading compiled scene from "%s"`, res.Path())
	start := time.Now()

	sc, err := archive.DecodeScene(res)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", res.Path())
	}

	r.logger.Noticef("loaded scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}

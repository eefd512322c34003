package cmd

import (
	"io"

	"github.com/oomer/blendmaxwell/config"
	"github.com/oomer/blendmaxwell/log"
	"github.com/urfave/cli"
)

var logger = log.New("blendmaxwell")

// Load the configuration selected by --config and apply its logging
// settings. The -v and -vv flags override the configured level. The returned
// closer releases the configured log file, if any.
func setupLogging(ctx *cli.Context) (*config.Config, io.Closer, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, nil, err
	}

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	if ctx.GlobalBool("v") {
		level = log.Info
	}
	if ctx.GlobalBool("vv") {
		level = log.Debug
	}
	log.SetLevel(level)

	var closer io.Closer = nopCloser{}
	if cfg.Logging.File != "" {
		if closer, err = log.AddFileSink(cfg.Logging.File); err != nil {
			return nil, nil, err
		}
	}
	return cfg, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

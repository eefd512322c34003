package cmd

import (
	"os"
	"time"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/preview"
	"github.com/oomer/blendmaxwell/asset/scene/reader"
	"github.com/oomer/blendmaxwell/asset/scene/writer"
	"github.com/oomer/blendmaxwell/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Builds the material container; replaced in tests.
var materialWriter = writeMaterial

// Write a material container from a serialized material description. All
// progress is appended to the log file; on failure, including a panic, the
// error and its stack trace are logged and the process exits with status 1.
func WriteMaterial(ctx *cli.Context) (err error) {
	if ctx.NArg() != 4 {
		return errors.New("expected arguments: sdk_path log_file data_path result_path")
	}
	args := ctx.Args()
	sdkPath, logFile, dataPath, resultPath := args.Get(0), args.Get(1), args.Get(2), args.Get(3)

	_, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	f, err := log.AddFileSink(logFile)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
		if err != nil {
			logger.Errorf("%+v", err)
			err = cli.NewExitError("", 1)
		}
	}()
	return materialWriter(sdkPath, dataPath, resultPath)
}

func writeMaterial(sdkPath, dataPath, resultPath string) error {
	start := time.Now()
	if _, err := os.Stat(sdkPath); err != nil {
		return errors.Wrap(err, "locating renderer sdk")
	}
	if err := scene.CheckPlatform(false); err != nil {
		return errors.WithStack(err)
	}

	logger.Notice(log.Indent(2, "loading data.."))
	m, err := reader.ReadMaterial(dataPath)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.Notice(log.Indent(2, "writing material.."))
	if err = writer.WriteMaterial(m, resultPath); err != nil {
		return err
	}

	logger.Notice(log.Indent(2, "done."))
	logger.Infof("wrote %s in %d ms", resultPath, time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Report whether a material file describes an emitter.
func CheckEmitter(ctx *cli.Context) error {
	_, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 1 {
		return errors.New("missing material file argument")
	}

	ok, err := reader.CheckEmitterFile(ctx.Args().First())
	if err != nil {
		return err
	}
	logger.Noticef("%s: emitter %t", ctx.Args().First(), ok)
	return nil
}

// Render a material swatch.
func Preview(ctx *cli.Context) error {
	cfg, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 2 {
		return errors.New("expected arguments: material_file image_file")
	}

	size := ctx.Int("size")
	if size == 0 {
		size = cfg.Preview.Size
	}

	m, err := reader.ReadMaterial(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	out := ctx.Args().Get(1)
	if err = preview.WriteFile(m, out, size); err != nil {
		return err
	}
	logger.Noticef("wrote %dx%d preview of %q to %s", size, size, m.Name, out)
	return nil
}

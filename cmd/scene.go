package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oomer/blendmaxwell/asset/compiler"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/reader"
	"github.com/oomer/blendmaxwell/asset/scene/writer"
	"github.com/oomer/blendmaxwell/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Compile scene descriptions into scene containers.
func WriteScene(ctx *cli.Context) error {
	cfg, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() == 0 {
		return errors.New("missing scene description argument")
	}
	if ctx.String("out") != "" && ctx.NArg() > 1 {
		return errors.New("--out can only be used with a single scene description")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		ext := filepath.Ext(sceneFile)
		if ext != ".json" && ext != ".obj" {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		outFile := ctx.String("out")
		if outFile == "" {
			outFile = strings.TrimSuffix(sceneFile, ext) + ".mxs"
		}

		opts := compiler.Options{
			PluginID:             cfg.PluginID,
			EraseUnusedMaterials: cfg.Export.EraseUnusedMaterials,
			InspectTextures:      cfg.Textures.Inspect,
		}
		if ctx.Bool("append") || cfg.Export.Append {
			if opts.Base, err = existingScene(outFile); err != nil {
				return err
			}
		}

		start := time.Now()
		logger.Noticef("compiling scene: %s", sceneFile)
		sc, err := reader.ReadSceneWithOptions(sceneFile, opts)
		if err != nil {
			return err
		}

		logger.Noticef("scene information:\n%s", sc.Stats())

		if err = writer.WriteScene(sc, outFile); err != nil {
			return err
		}
		logger.Noticef("wrote %s in %d ms", outFile, time.Since(start).Nanoseconds()/1e6)
	}

	return nil
}

// Read the scene being appended to. A missing file starts a new scene.
func existingScene(filename string) (*scene.Scene, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		logger.Infof("append target %s does not exist; creating a new scene", filename)
		return nil, nil
	}
	logger.Noticef("appending to scene: %s", filename)
	return reader.ReadScene(filename)
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	_, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}

// List the objects, cameras and sun of a compiled scene.
func ReadScene(ctx *cli.Context) error {
	_, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	objects, err := reader.Objects(sc, ctx.Bool("emitters"))
	if err != nil {
		return err
	}
	logger.Noticef("objects\n%s", objectTable(objects))

	if ctx.Bool("emitters") {
		return nil
	}

	cameras, err := reader.Cameras(sc)
	if err != nil {
		return err
	}
	logger.Noticef("cameras\n%s", cameraTable(cameras))

	sun, err := reader.Sun(sc)
	if err != nil {
		return err
	}
	if sun != nil {
		logger.Noticef("%s: direction %s", sun.Name, fmtVec3(sun.Direction))
	}
	return nil
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f", v[0], v[1], v[2])
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	return table
}

func objectTable(objects []reader.ObjectInfo) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"Name", "Type", "Parent", "Origin", "Instanced", "Materials", "Vertices", "Triangles", "UV channels", "Color ID", "Hidden"})
	for _, o := range objects {
		table.Append([]string{
			o.Name,
			fmt.Sprint(o.Type),
			o.Parent,
			fmtVec3(o.Base.Origin),
			o.Instanced,
			strings.Join(o.Materials, ", "),
			fmt.Sprintf("%d", o.NumVertices),
			fmt.Sprintf("%d", o.NumTriangles),
			fmt.Sprintf("%d", o.NumUVChannels),
			o.ColorID,
			o.Hidden,
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "", "TOTAL", fmt.Sprintf("%d", len(objects))})
	table.Render()
	return buf.String()
}

func cameraTable(cameras []reader.CameraInfo) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"Name", "Active", "Focal length", "F-stop", "Shutter", "Film", "Sensor fit", "Resolution", "Z clip"})
	for _, c := range cameras {
		zclip := "off"
		if c.ZClip {
			zclip = fmt.Sprintf("%g - %g", c.ZClipNear, c.ZClipFar)
		}
		table.Append([]string{
			c.Name,
			fmt.Sprintf("%t", c.Active),
			fmt.Sprintf("%.1f mm", c.FocalLength),
			fmt.Sprintf("%.1f", c.FStop),
			fmt.Sprintf("%g s", c.Shutter),
			fmt.Sprintf("%g x %g mm", c.FilmWidth, c.FilmHeight),
			c.SensorFit,
			fmt.Sprintf("%d x %d", c.XResolution, c.YResolution),
			zclip,
		})
	}
	table.Render()
	return buf.String()
}

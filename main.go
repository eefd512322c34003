package main

import (
	"fmt"
	"os"

	"github.com/oomer/blendmaxwell/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "blendmaxwell"
	app.Usage = "export host scene descriptions to renderer scene and material files"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from this YAML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "write-material",
			Usage: "write a material file from a serialized material description",
			Description: `
Read a JSON material description and write it to a .mxm material file.

Progress is appended to log_file. When anything fails the error and its stack
trace are appended to log_file and the command exits with status 1.`,
			ArgsUsage: "sdk_path log_file data_path result_path",
			Action:    cmd.WriteMaterial,
		},
		{
			Name:  "write-scene",
			Usage: "compile scene descriptions into scene files",
			Description: `
Compile JSON scene descriptions or wavefront obj files into .mxs scene files.
Each output is written next to its input unless --out is given.`,
			ArgsUsage: "scene1.json scene2.obj ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "append, a",
					Usage: "compile into the existing output scene",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "scene filename for a single input",
				},
			},
			Action: cmd.WriteScene,
		},
		{
			Name:      "info",
			Usage:     "print scene statistics",
			ArgsUsage: "scene.mxs",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:      "read-scene",
			Usage:     "list the objects, cameras and sun of a scene",
			ArgsUsage: "scene.mxs",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "emitters, e",
					Usage: "only list emitting objects, placed by their world transform",
				},
			},
			Action: cmd.ReadScene,
		},
		{
			Name:      "check-emitter",
			Usage:     "report whether a material is an emitter",
			ArgsUsage: "material.mxm",
			Action:    cmd.CheckEmitter,
		},
		{
			Name:      "preview",
			Usage:     "render a material swatch",
			ArgsUsage: "material.mxm out.webp",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "size, s",
					Usage: "swatch size in pixels; defaults to the configured size",
				},
			},
			Action: cmd.Preview,
		},
		{
			Name:      "channels",
			Usage:     "print render channel output filenames",
			ArgsUsage: "base_path tag [tag...]",
			Action:    cmd.Channels,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

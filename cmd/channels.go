package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/urfave/cli"
)

// Print the output filename of every render channel. Tags are matched to
// channels in order; channels past the last tag reuse it.
func Channels(ctx *cli.Context) error {
	_, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() < 2 {
		return errors.New("expected arguments: base_path tag [tag...]")
	}

	logger.Noticef("render channels\n%s", channelTable(ctx.Args().First(), ctx.Args().Tail()))
	return nil
}

func channelTable(basePath string, tags []string) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"Channel", "Tag", "Path", "Depth", "Toggle"})
	for idx, ch := range scene.Channels {
		tag := tags[len(tags)-1]
		if idx < len(tags) {
			tag = tags[idx]
		}
		path, depth := scene.ChannelPath(basePath, ch, tag)
		table.Append([]string{ch.Key, tag, path, fmt.Sprintf("%d", depth), ch.Toggle})
	}
	table.Render()
	return buf.String()
}

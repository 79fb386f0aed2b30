// Command xmlrfc2md converts a published RFC from xml2rfc v3 XML to
// kramdown-rfc Markdown.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/yaronf/xmlrfc2md/convert"
	"github.com/yaronf/xmlrfc2md/rfcdoc"
)

// process is the main entry point of the program
func process(c *cli.Context) error {

	fill := c.Bool("fill")
	debug := c.Bool("debug")

	var z *zap.Logger
	var err error

	// Setup the logging system. Diagnostics go to stderr, never into the
	// converted document.
	if debug {
		z, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		z, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	// Exactly one input file and one output file
	if c.NArg() != 2 {
		return cli.Exit("usage: xmlrfc2md [options] INPUT_FILE OUTPUT_FILE", 2)
	}
	inputFileName := c.Args().Get(0)
	outputFileName := c.Args().Get(1)

	src, err := os.ReadFile(inputFileName)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	root, err := rfcdoc.ParseFromBytes(src)
	if err != nil {
		return cli.Exit(fmt.Sprintf("exception while parsing input file: %v", err), 1)
	}

	conv := convert.New(sugar, fill)
	markdown, err := conv.Convert(root)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if debug {
		sugar.Debugw("conversion finished",
			"anchors", len(conv.Anchors()), "throttled", conv.MessageCounts())
	}

	err = os.WriteFile(outputFileName, []byte(markdown), 0664)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

func main() {

	app := &cli.App{
		Name:      "xmlrfc2md",
		Version:   "v0.3",
		Compiled:  time.Now(),
		Usage:     "convert a published RFC from XML to Markdown",
		UsageText: "xmlrfc2md [options] INPUT_FILE OUTPUT_FILE",
		Action:    process,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "fill",
				Aliases: []string{"f"},
				Usage:   "fill paragraphs (might break some markdown)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

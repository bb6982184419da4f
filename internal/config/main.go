package config

import (
	"git.lost.host/meutraa/chunichart/internal/catalog"
	"git.lost.host/meutraa/chunichart/internal/parser"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("chunichart", "Decode C2S, SUS and UGC charts").Version("0.3.0")

	scanCmd      = app.Command("scan", "Decode every chart of one format under a directory").Default()
	Directory    = scanCmd.Arg("directory", "Chart directory").Required().ExistingDir()
	Format       = scanCmd.Flag("format", "Chart format").Short('f').Required().Enum(parser.Formats()...)
	Database     = scanCmd.Flag("db", "Catalog database").Default(catalog.DefaultPath).String()
	Pick         = scanCmd.Flag("pick", "Choose a chart to inspect after the scan").Short('p').Bool()
	Verbose      = scanCmd.Flag("verbose", "Log dropped and unknown lines").Short('v').Bool()
	SkipChildren = scanCmd.Flag("skip-children", "Count UGC child records instead of failing").Bool()
	WrapDepth    = scanCmd.Flag("wrap-depth", "C2S wrapper chain limit").Default("2").Int()

	serveCmd = app.Command("serve", "Decode charts posted over HTTP")
	Listen   = serveCmd.Flag("listen", "Listen address").Default(":8080").String()
	ServeDB  = serveCmd.Flag("db", "Catalog database, empty to disable").Default("").String()
	// the serve command shares the decoder flags
	ServeSkipChildren = serveCmd.Flag("skip-children", "Count UGC child records instead of failing").Bool()
	ServeWrapDepth    = serveCmd.Flag("wrap-depth", "C2S wrapper chain limit").Default("2").Int()
)

type Command string

const (
	Scan  Command = "scan"
	Serve Command = "serve"
)

// Parse reads args (usually os.Args[1:]) into the flag variables.
func Parse(args []string) (Command, error) {
	cmd, err := app.Parse(args)
	if nil != err {
		return "", err
	}
	return Command(cmd), nil
}

// Options returns the decoder options of the selected command.
func Options(cmd Command) parser.Options {
	if cmd == Serve {
		return parser.Options{MaxWrapDepth: *ServeWrapDepth, SkipChildren: *ServeSkipChildren}
	}
	return parser.Options{MaxWrapDepth: *WrapDepth, SkipChildren: *SkipChildren}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"

	"git.lost.host/meutraa/chunichart/internal/catalog"
	"git.lost.host/meutraa/chunichart/internal/config"
	"git.lost.host/meutraa/chunichart/internal/parser"
	"git.lost.host/meutraa/chunichart/internal/render"
	"git.lost.host/meutraa/chunichart/internal/server"
	"git.lost.host/meutraa/chunichart/internal/theme"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	cmd, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	if cmd == config.Serve {
		return serve()
	}

	format, err := parser.ParseFormat(*config.Format)
	if nil != err {
		return err
	}
	// Ensure our Default implementations are used as interfaces
	psr, err := parser.New(format, config.Options(cmd))
	if nil != err {
		return err
	}
	var cat catalog.Catalog = &catalog.DefaultCatalog{}
	if err := cat.Init(*config.Database); nil != err {
		return err
	}
	defer cat.Deinit()

	var th theme.Theme = &theme.PlainTheme{}
	width := 0
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		th = &theme.DefaultTheme{}
		if columns, _, err := term.GetSize(fd); nil == err {
			width = columns
		}
	}
	var r render.Renderer = &render.DefaultRenderer{Out: os.Stdout, Theme: th, Width: width}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &Program{
		Parser:   psr,
		Catalog:  cat,
		Renderer: r,
		Verbose:  *config.Verbose,
	}
	results, err := p.Scan(ctx, *config.Directory, format)
	if nil != err {
		return err
	}

	if *config.Pick {
		return p.Pick(results, os.Stdout)
	}
	return nil
}

func serve() error {
	s := &server.Server{Options: config.Options(config.Serve)}
	if *config.ServeDB != "" {
		cat := &catalog.DefaultCatalog{}
		if err := cat.Init(*config.ServeDB); nil != err {
			return err
		}
		defer cat.Deinit()
		s.Catalog = cat
	}

	log.Printf("listening on %v\n", *config.Listen)
	return errors.Wrap(http.ListenAndServe(*config.Listen, s.Handler()), "server stopped")
}

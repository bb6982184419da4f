package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/catalog"
	"git.lost.host/meutraa/chunichart/internal/parser"
	"git.lost.host/meutraa/chunichart/internal/render"
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

type Program struct {
	Parser   parser.Parser
	Catalog  catalog.Catalog
	Renderer render.Renderer
	Verbose  bool
}

// findCharts lists the files under dir with the format's extension, in
// lexical order.
func findCharts(dir string, format parser.Format) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if nil != err {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), format.Extension()) {
			paths = append(paths, p)
		}
		return nil
	})
	if nil != err {
		return nil, errors.Wrap(err, "unable to walk chart directory")
	}
	return paths, nil
}

// Scan decodes every chart of format under dir, records the decoded ones
// in the catalog under a fresh scan id and renders one entry per file.
func (p *Program) Scan(ctx context.Context, dir string, format parser.Format) ([]parser.Result, error) {
	paths, err := findCharts(dir, format)
	if nil != err {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no %v charts in %v", format.Extension(), dir)
	}

	results, err := parser.DecodeFiles(ctx, p.Parser, paths...)
	if nil != err {
		return nil, errors.Wrap(err, "scan interrupted")
	}

	scan := p.Catalog.NewScan()
	failed := 0
	for i, res := range results {
		p.Renderer.RenderResult(i, res)
		if nil != res.Err {
			failed++
			continue
		}
		if p.Verbose {
			p.Renderer.RenderWarnings(res.Summary)
			for _, w := range res.Summary.Warnings {
				log.Printf("%v: %v\n", res.Path, w)
			}
		}
		if err := p.Catalog.Save(scan, res.Summary); nil != err {
			return nil, err
		}
	}
	p.Renderer.RenderTotals(len(results)-failed, failed)
	return results, p.Renderer.Flush()
}

// Pick reads a chart number from the keyboard, digits then enter, and
// writes that chart as indented JSON.
func (p *Program) Pick(results []parser.Result, w io.Writer) error {
	if err := keyboard.Open(); nil != err {
		return errors.Wrap(err, "unable to open keyboard")
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	fmt.Fprint(w, "chart: ")
	var digits strings.Builder
	for {
		char, key, err := keyboard.GetKey()
		if nil != err {
			return errors.Wrap(err, "unable to read key")
		}
		if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
			fmt.Fprintln(w)
			return nil
		}
		if key == keyboard.KeyEnter {
			break
		}
		if char >= '0' && char <= '9' {
			digits.WriteRune(char)
			fmt.Fprint(w, string(char))
		}
	}
	fmt.Fprintln(w)

	return p.show(results, digits.String(), w)
}

func (p *Program) show(results []parser.Result, choice string, w io.Writer) error {
	index, err := strconv.Atoi(choice)
	if nil != err || index < 0 || index >= len(results) {
		return errors.Errorf("no chart %q", choice)
	}
	res := results[index]
	if nil != res.Err {
		return res.Err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrapf(enc.Encode(res.Summary.Chart), "unable to encode %v", res.Path)
}

// Package includes checks module and package documentation files before
// they are handed to the generator.
package includes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

// HeadingKind is the kind of a top-level include heading.
type HeadingKind string

const (
	HeadingModule  HeadingKind = "Module"
	HeadingPackage HeadingKind = "Package"
)

// Heading is a level-1 "Module <name>" or "Package <name>" heading.
type Heading struct {
	Kind HeadingKind
	Name string
}

// Checker implements docgen.Preflight for include files.
type Checker struct{}

// Check reports include files that the generator would not attribute to a
// module or package. Every finding is a warning.
func (Checker) Check(in docgen.Inputs, log docgen.Logger) {
	for _, path := range in.IncludeDirs {
		files, err := markdownFiles(path)
		if err != nil {
			log.Warn(fmt.Sprintf("include path %s: %v", path, err))
			continue
		}
		for _, f := range files {
			checkFile(f, in.ModuleName, log)
		}
	}
}

func checkFile(path, moduleName string, log docgen.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(fmt.Sprintf("include file %s: %v", path, err))
		return
	}
	headings := Headings(data)
	if len(headings) == 0 {
		log.Warn(fmt.Sprintf("include file %s has no Module or Package heading", path))
		return
	}
	for _, h := range headings {
		if h.Kind == HeadingModule && moduleName != "" && h.Name != moduleName {
			log.Warn(fmt.Sprintf("include file %s documents module %q but the configured module is %q", path, h.Name, moduleName))
		}
	}
}

// Headings returns the Module and Package headings of a Markdown document.
func Headings(src []byte) []Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	var out []Heading
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		kind, name, found := strings.Cut(strings.TrimSpace(headingText(h, src)), " ")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}
		switch HeadingKind(kind) {
		case HeadingModule, HeadingPackage:
			out = append(out, Heading{Kind: HeadingKind(kind), Name: name})
		}
	}
	return out
}

func headingText(h *gmast.Heading, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(h, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := n.(*gmast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

func markdownFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".md") {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

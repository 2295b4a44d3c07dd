package publish

import (
	"path/filepath"

	"git.home.luguber.info/inful/bookbuilder/internal/config"
)

// Fixed source locations, relative to the source root.
const (
	SrcAssets        = "docs/assets"
	SrcLayouts       = "docs/_layouts"
	SrcIncludes      = "docs/_includes"
	SrcGeneratorConf = "docs/_config.yml"
	SrcGemfile       = "docs/Gemfile"
	SrcNoJekyll      = "docs/.nojekyll"
	SrcIndex         = "src/index.md"
	SrcContentRoot   = "src"
	SrcNavigation    = "docs/_data"
)

// Categories are the content subtrees under src/, in publish order.
var Categories = []string{"introduction", "chapters", "appendices"}

// mapping pairs a source path (relative to the source root) with its
// destination (relative to the output directory).
type mapping struct {
	Src string
	Dst string
}

var (
	optionalDirs = []mapping{
		{SrcAssets, "assets"},
		{SrcLayouts, "_layouts"},
		{SrcIncludes, "_includes"},
	}
	generatorFiles = []mapping{
		{SrcGeneratorConf, "_config.yml"},
		{SrcGemfile, "Gemfile"},
		{SrcNoJekyll, ".nojekyll"},
	}
	indexFile     = mapping{SrcIndex, "index.md"}
	navigationDir = mapping{SrcNavigation, "_data"}
)

// Layout locates the source root and the output directory of a run.
type Layout struct {
	Root   string `json:"root"`
	Output string `json:"output"`
}

// NewLayout derives the layout from a loaded configuration. outputOverride
// replaces output.directory when non-empty.
func NewLayout(cfg *config.Config, outputOverride string) Layout {
	return Layout{
		Root:   cfg.Source.Root,
		Output: config.ResolveOutputDir(cfg, outputOverride),
	}
}

// Source returns the absolute-or-root-relative path of a source location.
func (l Layout) Source(rel string) string { return filepath.Join(l.Root, filepath.FromSlash(rel)) }

// Dest returns the path of an output location.
func (l Layout) Dest(rel string) string { return filepath.Join(l.Output, filepath.FromSlash(rel)) }

// WatchRoots are the source directories whose changes affect the output.
func (l Layout) WatchRoots() []string {
	return []string{l.Source("docs"), l.Source(SrcContentRoot)}
}

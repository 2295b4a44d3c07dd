package publish

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// PathStatus reports whether a fixed source location is present.
type PathStatus struct {
	Source   string `json:"source"`
	Dest     string `json:"dest"`
	Required bool   `json:"required"`
	Present  bool   `json:"present"`
}

// PlannedPage is a Markdown page a build would publish.
type PlannedPage struct {
	Source string `json:"source"` // relative to the source root, slash separated
	Dest   string `json:"dest"`   // relative to the output directory
	Title  string `json:"title"`
}

// PlannedCategory is one content category of the plan.
type PlannedCategory struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name"`
	Present     bool          `json:"present"`
	Pages       []PlannedPage `json:"pages"`
	Ignored     []string      `json:"ignored,omitempty"`
}

// Plan describes what a publish run would copy, without writing anything.
type Plan struct {
	Layout     Layout            `json:"layout"`
	Paths      []PathStatus      `json:"paths"`
	Index      *PlannedPage      `json:"index,omitempty"`
	Categories []PlannedCategory `json:"categories"`
}

// Missing lists the required source paths that are absent.
func (p *Plan) Missing() []string {
	var out []string
	for _, ps := range p.Paths {
		if ps.Required && !ps.Present {
			out = append(out, ps.Source)
		}
	}
	for _, c := range p.Categories {
		if !c.Present {
			out = append(out, path.Join(SrcContentRoot, c.Name))
		}
	}
	return out
}

// PageCount is the number of pages a build would publish, index included.
func (p *Plan) PageCount() int {
	n := 0
	if p.Index != nil {
		n++
	}
	for _, c := range p.Categories {
		n += len(c.Pages)
	}
	return n
}

// Discover inspects the source tree under layout and returns the plan.
// Missing sources are reported in the plan, not as errors.
func Discover(layout Layout) (*Plan, error) {
	plan := &Plan{Layout: layout}

	statuses := make([]mapping, 0, 8)
	statuses = append(statuses, optionalDirs...)
	for _, m := range statuses {
		ok, err := exists(layout.Source(m.Src))
		if err != nil {
			return nil, err
		}
		plan.Paths = append(plan.Paths, PathStatus{Source: m.Src, Dest: m.Dst, Present: ok})
	}
	required := append(append([]mapping{}, generatorFiles...), indexFile, navigationDir)
	for _, m := range required {
		ok, err := exists(layout.Source(m.Src))
		if err != nil {
			return nil, err
		}
		plan.Paths = append(plan.Paths, PathStatus{Source: m.Src, Dest: m.Dst, Required: true, Present: ok})
		if m == indexFile && ok {
			plan.Index = &PlannedPage{Source: m.Src, Dest: m.Dst, Title: pageTitle(layout.Source(m.Src), "Home")}
		}
	}

	caser := cases.Title(language.English)
	for _, category := range Categories {
		pc, err := discoverCategory(layout, category)
		if err != nil {
			return nil, err
		}
		pc.DisplayName = caser.String(category)
		plan.Categories = append(plan.Categories, pc)
	}
	return plan, nil
}

func discoverCategory(layout Layout, category string) (PlannedCategory, error) {
	rel := path.Join(SrcContentRoot, category)
	pc := PlannedCategory{Name: category}

	entries, err := os.ReadDir(layout.Source(rel))
	if os.IsNotExist(err) {
		return pc, nil
	}
	if err != nil {
		return pc, fsError(err, "read category directory", layout.Source(rel))
	}
	pc.Present = true

	for _, entry := range entries {
		name := entry.Name()
		src := filepath.Join(layout.Source(rel), name)
		info, err := os.Stat(src)
		if err != nil {
			return pc, fsError(err, "stat content entry", src)
		}
		switch {
		case info.IsDir():
			index := filepath.Join(src, "index.md")
			if fi, err := os.Stat(index); err == nil && !fi.IsDir() {
				pc.Pages = append(pc.Pages, PlannedPage{
					Source: path.Join(rel, name, "index.md"),
					Dest:   path.Join(category, name, "index.md"),
					Title:  pageTitle(index, titleFromName(name)),
				})
			}
		case strings.HasSuffix(name, ".md"):
			pc.Pages = append(pc.Pages, PlannedPage{
				Source: path.Join(rel, name),
				Dest:   path.Join(category, name),
				Title:  pageTitle(src, titleFromName(strings.TrimSuffix(name, ".md"))),
			})
		default:
			pc.Ignored = append(pc.Ignored, name)
		}
	}
	return pc, nil
}

// pageTitle returns the front matter title, else the first level-1 heading,
// else fallback.
func pageTitle(file, fallback string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		return fallback
	}
	body, fm := splitFrontMatter(data)
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t
	}
	if t := firstHeading(body); t != "" {
		return t
	}
	return fallback
}

type frontMatter struct {
	Title string `yaml:"title"`
}

// splitFrontMatter separates a leading "---" YAML block from the Markdown body.
func splitFrontMatter(data []byte) ([]byte, frontMatter) {
	var fm frontMatter
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return data, fm
	}
	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return data, fm
	}
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return data, frontMatter{}
	}
	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return body, fm
}

func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(inlineText(h, body))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

// inlineText concatenates the text segments below n.
func inlineText(n gmast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}

// titleFromName turns a file or directory name into a display title.
func titleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

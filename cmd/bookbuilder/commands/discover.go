package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"git.home.luguber.info/inful/bookbuilder/internal/config"
	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bookbuilder/internal/publish"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Output string `short:"o" help:"Output directory, overriding output.directory"`
	JSON   bool   `name:"json" help:"Print the plan as JSON"`
	Strict bool   `help:"Fail when a required source path is missing"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	return RunDiscover(g, cfg, d.Output, d.JSON, d.Strict)
}

func RunDiscover(g *Global, cfg *config.Config, output string, asJSON, strict bool) error {
	plan, err := publish.Discover(publish.NewLayout(cfg, output))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "encode plan").Build()
		}
	} else {
		printBook(g.out(), cfg.Book)
		printPlan(g.out(), plan)
	}

	if missing := plan.Missing(); strict && len(missing) > 0 {
		return errors.NotFoundError("required source paths are missing").
			WithContext("paths", missing).Build()
	}
	return nil
}

func printBook(w io.Writer, b config.BookConfig) {
	if b.Title == "" {
		return
	}
	fmt.Fprintf(w, "Book: %s", b.Title)
	if b.Author != "" {
		fmt.Fprintf(w, " by %s", b.Author)
	}
	fmt.Fprintln(w)
	if b.Description != "" {
		fmt.Fprintln(w, b.Description)
	}
}

func printPlan(w io.Writer, plan *publish.Plan) {
	fmt.Fprintf(w, "Source: %s\n", plan.Layout.Root)
	fmt.Fprintf(w, "Output: %s\n\n", plan.Layout.Output)

	for _, ps := range plan.Paths {
		state := "ok"
		switch {
		case !ps.Present && ps.Required:
			state = "MISSING"
		case !ps.Present:
			state = "absent"
		}
		fmt.Fprintf(w, "  %-8s %s -> %s\n", state, ps.Source, ps.Dest)
	}

	if plan.Index != nil {
		fmt.Fprintf(w, "\nIndex: %s (%s)\n", plan.Index.Source, plan.Index.Title)
	}
	for _, c := range plan.Categories {
		if !c.Present {
			fmt.Fprintf(w, "\n%s: MISSING\n", c.DisplayName)
			continue
		}
		fmt.Fprintf(w, "\n%s: %d pages\n", c.DisplayName, len(c.Pages))
		for _, p := range c.Pages {
			fmt.Fprintf(w, "  - %s (%s)\n", p.Dest, p.Title)
		}
		if len(c.Ignored) > 0 {
			fmt.Fprintf(w, "  ignored: %d non-Markdown files\n", len(c.Ignored))
		}
	}

	fmt.Fprintf(w, "\n%d pages", plan.PageCount())
	if missing := plan.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, ", %d missing required paths", len(missing))
	}
	fmt.Fprintln(w)
}

package report

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"rbg/state"
	"rbg/template"
	"rbg/utils/debug"
)

// DumpTemplate is the action of the dump subcommand: print the parsed
// template as an indented tree, which is a lot easier to review than the raw
// JSON when chasing layout problems.
func DumpTemplate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no report template specified")
	}
	src := cmd.Args().Get(0)
	fname := cmd.Args().Get(1)

	tpl, err := template.LoadFile(src)
	if err != nil {
		return err
	}

	tw := debug.NewTreeWriter()
	writeTemplateTree(tw, tpl, src)

	out := os.Stdout
	if fname != "" {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	} else {
		fname = "STDOUT"
	}
	env.Log.Info("Dumping template", zap.String("template", src), zap.String("file", fname))

	if _, err := tw.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write dump: %w", err)
	}
	return nil
}

func writeTemplateTree(tw *debug.TreeWriter, tpl *template.Template, src string) {
	tw.TextBlock(0, "template", src)

	p := &tpl.DocumentProperties
	geom, err := p.Geometry()
	if err != nil {
		tw.Line(1, "page: invalid geometry (%v)", err)
	} else {
		tw.Line(1, "page: %gx%gpt, content height %gpt", geom.PageWidth, geom.PageHeight, geom.ContentHeight)
	}
	if p.Header {
		tw.Line(1, "header: %gpt", geom.HeaderSize)
	}
	if p.Footer {
		tw.Line(1, "footer: %gpt", geom.FooterSize)
	}

	if len(tpl.Parameters) > 0 {
		tw.Line(1, "parameters:")
		for _, param := range tpl.Parameters {
			if param.Expression != "" {
				tw.Line(2, "%s (%s) = %s", param.Name, param.Type, param.Expression)
			} else {
				tw.Line(2, "%s (%s)", param.Name, param.Type)
			}
		}
	}
	if len(tpl.Styles) > 0 {
		tw.Line(1, "styles:")
		for _, st := range tpl.Styles {
			tw.Line(2, "#%d %s", st.ID, st.Name)
		}
	}

	tw.Line(1, "elements:")
	writeElementTree(tw, tpl.DocElements, 2)
}

func writeElementTree(tw *debug.TreeWriter, elems []template.DocElement, depth int) {
	for i := range elems {
		e := &elems[i]
		tw.Line(depth, "%s #%d at (%g, %g) %gx%g band=%s", e.Type, e.ID, e.X, e.Y, e.Width, e.Height, bandName(e))
		if e.Content != "" {
			tw.TextBlock(depth+1, "content", e.Content)
		}
		if e.PrintIf != "" {
			tw.TextBlock(depth+1, "print if", e.PrintIf)
		}
		if e.Source != "" {
			tw.TextBlock(depth+1, "source", e.Source)
		}
		if len(e.Elements) > 0 {
			writeElementTree(tw, e.Elements, depth+1)
		}
	}
}

func bandName(e *template.DocElement) string {
	if e.Band == "" {
		return "content"
	}
	return e.Band
}

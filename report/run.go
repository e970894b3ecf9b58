package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"rbg/common"
	"rbg/render"
	"rbg/state"
	"rbg/template"
	"rbg/xlsx"
)

// Run is the action of the render subcommand: load template and data, build
// the report and write it in the requested format.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	env.Overwrite = cmd.Bool("overwrite")
	env.VerifyOnly = cmd.Bool("verify")

	if cmd.Args().Len() == 0 {
		return errors.New("no report template specified")
	}
	src := cmd.Args().Get(0)
	dst := cmd.Args().Get(1)
	if dst == "" {
		dst = "."
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("bad output format: %w", err)
	}

	tpl, err := template.LoadFile(src)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.Store(filepath.Join("input", filepath.Base(src)), src)
	}

	data, err := loadData(cmd.String("data"))
	if err != nil {
		return err
	}
	if dataFile := cmd.String("data"); dataFile != "" && env.Rpt != nil {
		env.Rpt.Store(filepath.Join("input", filepath.Base(dataFile)), dataFile)
	}

	r, err := NewReport(tpl, data, &env.Cfg.Document, log)
	if err != nil {
		return err
	}
	defer r.Cleanup()

	if env.VerifyOnly {
		if err := r.Verify(); err != nil {
			return err
		}
		log.Info("Template verified", zap.String("template", src))
		return nil
	}

	start := time.Now()
	out := r.OutputPath(dst, format)
	if err := checkDestination(out, format, env.Overwrite); err != nil {
		return err
	}

	switch format {
	case common.OutputFmtXlsx:
		wb := xlsx.NewWorkbook(env.Cfg.Document.Xlsx.SheetName, log)
		if err := r.RenderSpreadsheet(wb); err != nil {
			return err
		}
		if err := wb.Save(out); err != nil {
			return err
		}
	default:
		pw, err := render.NewPageWriter(r.Geometry(), env.Cfg.Document.Render.DPI,
			env.Cfg.Document.Render.FontPath, log)
		if err != nil {
			return err
		}
		if err := r.RenderPages(pw); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		if err := pw.SavePages(out); err != nil {
			return err
		}
	}

	log.Info("Report written",
		zap.String("template", src),
		zap.String("output", out),
		zap.Stringer("format", format),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read data file: %w", err)
	}
	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unable to decode data file %s: %w", path, err)
	}
	return data, nil
}

func checkDestination(out string, format common.OutputFmt, overwrite bool) error {
	if overwrite {
		return nil
	}
	name := out
	if format == common.OutputFmtPages {
		name = fmt.Sprintf(out, 1)
	}
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("destination %s already exists", name)
	}
	return nil
}

package report

import (
	"bytes"
	"path/filepath"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"rbg/common"
	"rbg/config"
)

// Values holds the variables available to output_name_template expansion.
type Values struct {
	ReportID string
	Format   string
	Date     string
}

// OutputPath builds the output file path under dst for the given format,
// using either the default naming scheme or the user template. For page
// output the name carries a %d verb receiving the 1-based page number.
func (r *Report) OutputPath(dst string, format common.OutputFmt) string {
	name := r.expandOutputName(format)
	if name == "" {
		// fallback to default name if template expansion failed
		name = "report-" + r.id[:8]
	}
	if r.cfg.FileNameSlug {
		name = slug.Make(name)
	}
	name = config.CleanFileName(name)
	if format == common.OutputFmtPages {
		name += "-page-%d"
	}
	return filepath.Join(dst, name+format.Ext())
}

func (r *Report) expandOutputName(format common.OutputFmt) string {
	if r.cfg.OutputNameTemplate == "" {
		return ""
	}
	tmpl, err := template.New("output_name_template").Funcs(sprig.FuncMap()).Parse(r.cfg.OutputNameTemplate)
	if err != nil {
		r.log.Warn("Unable to parse output name template", zap.Error(err))
		return ""
	}
	values := Values{
		ReportID: r.id,
		Format:   format.String(),
		Date:     time.Now().Format("2006-01-02"),
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		r.log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	name := filepath.FromSlash(buf.String())
	if name == "" {
		return ""
	}
	// templates must not escape the output directory
	return filepath.Base(name)
}

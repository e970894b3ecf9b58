// Package report drives a whole render: it builds the band containers from a
// parsed template, evaluates parameters, runs the page loop and routes the
// result into the document or spreadsheet sink.
package report

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rbg/common"
	"rbg/config"
	"rbg/element"
	"rbg/eval"
	"rbg/layout"
	"rbg/template"
)

// maxPages caps the page loop; a report hitting it is considered runaway.
const maxPages = 10000

// PageDoc is the document sink plus page management the render loop needs.
type PageDoc interface {
	layout.DocWriter
	AddPage()
}

// Report is one render of a template against a data set.
type Report struct {
	id   string
	tpl  *template.Template
	geom layout.PageGeometry
	cfg  *config.DocumentConfig
	ctx  *eval.Context
	log  *zap.Logger

	header  *layout.Container
	content *layout.Container
	footer  *layout.Container
}

// NewReport parses parameters, resolves page geometry and distributes the
// template's elements over the page bands.
func NewReport(tpl *template.Template, data map[string]any, cfg *config.DocumentConfig, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	geom, err := tpl.DocumentProperties.Geometry()
	if err != nil {
		return nil, fmt.Errorf("unable to resolve page geometry: %w", err)
	}

	ctx, err := eval.NewContext(data, log)
	if err != nil {
		return nil, err
	}
	// computed parameters see the data and every parameter declared before them
	for _, p := range tpl.Parameters {
		if p.Expression == "" {
			continue
		}
		v, err := ctx.Eval(p.Expression)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		if err := ctx.SetParameter(p.Name, v); err != nil {
			return nil, err
		}
	}

	r := &Report{
		id:      uuid.New().String(),
		tpl:     tpl,
		geom:    geom,
		cfg:     cfg,
		ctx:     ctx,
		log:     log.Named("report"),
		header:  layout.NewBand(common.BandTypeHeader, "header", geom, log),
		content: layout.NewBand(common.BandTypeContent, "content", geom, log),
		footer:  layout.NewBand(common.BandTypeFooter, "footer", geom, log),
	}

	opts := element.Options{
		FontSize:       cfg.Render.FontSize,
		LineHeight:     cfg.Render.LineHeight,
		ImageFit:       cfg.Images.Fit,
		UseBrokenImage: cfg.Images.UseBroken,
		Log:            log,
	}
	for i := range tpl.DocElements {
		def := tpl.DocElements[i]
		if cfg.Xlsx.IncludeHidden {
			def.SpreadsheetHide = false
		}
		band, err := def.BandType()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", def.ID, err)
		}
		elem, err := element.New(&def, tpl, opts, i)
		if err != nil {
			return nil, err
		}
		r.band(band).Add(elem)
	}
	return r, nil
}

func (r *Report) ID() string { return r.id }

// Geometry is the resolved page box, in points.
func (r *Report) Geometry() layout.PageGeometry { return r.geom }

func (r *Report) band(b common.BandType) *layout.Container {
	switch b {
	case common.BandTypeHeader:
		return r.header
	case common.BandTypeFooter:
		return r.footer
	}
	return r.content
}

// RenderPages runs the page loop until the content band is drained. Repeating
// bands are re-prepared on every page so per-page parameters like page_number
// take effect.
func (r *Report) RenderPages(doc PageDoc) error {
	// content is prepared once and may already reference page_number
	if err := r.ctx.SetParameter("page_number", 1); err != nil {
		return err
	}
	if err := r.content.Prepare(r.ctx, doc, false); err != nil {
		return err
	}

	contentTop := r.geom.MarginTop + r.geom.HeaderSize
	footerTop := r.geom.PageHeight - r.geom.MarginBottom - r.geom.FooterSize

	for page := 1; ; page++ {
		if page > maxPages {
			return fmt.Errorf("report %s: page limit of %d exceeded", r.id, maxPages)
		}
		doc.AddPage()
		if err := r.ctx.SetParameter("page_number", page); err != nil {
			return err
		}

		if err := r.renderRepeatingBand(r.header, r.geom.HeaderSize, r.geom.MarginTop, doc); err != nil {
			return err
		}

		done, err := r.content.CreateRenderElements(r.geom.ContentHeight, r.ctx, doc)
		if err != nil {
			return err
		}
		if err := r.content.RenderDocument(r.geom.MarginLeft, contentTop, doc, true); err != nil {
			return err
		}

		if err := r.renderRepeatingBand(r.footer, r.geom.FooterSize, footerTop, doc); err != nil {
			return err
		}

		if done && r.content.Finished() {
			r.log.Info("Report rendered", zap.String("id", r.id), zap.Int("pages", page))
			return nil
		}
	}
}

func (r *Report) renderRepeatingBand(band *layout.Container, height, top float64, doc PageDoc) error {
	if !band.Visible() {
		return nil
	}
	if err := band.Prepare(r.ctx, doc, false); err != nil {
		return err
	}
	if _, err := band.CreateRenderElements(height, r.ctx, doc); err != nil {
		return err
	}
	return band.RenderDocument(r.geom.MarginLeft, top, doc, false)
}

// RenderSpreadsheet emits the report as rows: header band first, then
// content, then footer, clustering elements that share a top coordinate.
func (r *Report) RenderSpreadsheet(sheet layout.SheetWriter) error {
	row := 0
	for _, band := range []*layout.Container{r.header, r.content, r.footer} {
		if !band.Visible() {
			continue
		}
		if err := band.Prepare(r.ctx, nil, false); err != nil {
			return err
		}
		var err error
		row, _, err = band.RenderSpreadsheet(row, 0, r.ctx, sheet)
		if err != nil {
			return err
		}
	}
	return nil
}

// Verify prepares every band without producing output, surfacing template
// errors - bad expressions, unreadable images - before a real run.
func (r *Report) Verify() error {
	for _, band := range []*layout.Container{r.header, r.content, r.footer} {
		if err := band.Prepare(r.ctx, nil, true); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) Cleanup() {
	r.header.Cleanup()
	r.content.Cleanup()
	r.footer.Cleanup()
}

package config

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"rbg/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {

	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	actual string
	stamp  time.Time
	data   []byte
}

// Report accumulates information necessary to prepare full debug report:
// processed configuration, parsed template dump, rendered pages and logs.
// NOTE: presently not to be used concurrently!
type Report struct {
	// entries is a map of archive names to files or data blobs to be put in
	// the final archive later.
	entries map[string]entry
	file    *os.File
}

// Store schedules the file at path to be archived under name. Safe to call on
// a nil receiver - no report has been requested then.
func (r *Report) Store(name, path string) {
	if r == nil || len(name) == 0 {
		return
	}
	r.entries[name] = entry{actual: path, stamp: time.Now()}
}

// StoreData schedules the data blob to be archived under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil || len(name) == 0 {
		return
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Close finalizes debug report.
func (r *Report) Close() error {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This
		// means no report has been requested.
		return nil
	}
	if r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

func (r *Report) finalize() error {

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(r.file)
	defer zw.Close()

	for _, name := range names {
		e := r.entries[name]
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: e.stamp})
		if err != nil {
			return fmt.Errorf("unable to create report entry %q: %w", name, err)
		}
		if len(e.actual) != 0 {
			f, err := os.Open(e.actual)
			if err != nil {
				// source may be gone by now - keep the rest of the report
				continue
			}
			_, err = io.Copy(w, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("unable to store report entry %q: %w", name, err)
			}
			continue
		}
		if _, err := w.Write(e.data); err != nil {
			return fmt.Errorf("unable to store report entry %q: %w", name, err)
		}
	}
	return nil
}

package report

import (
	"fmt"
	"sort"
)

// SectionType is the closed set of section variants the engine can render.
type SectionType string

const (
	SectionInfo         SectionType = "info"
	SectionMeasurements SectionType = "measurements"
	SectionDefects      SectionType = "defects"
	SectionChecklist    SectionType = "checklist"
	SectionResult       SectionType = "result"
	SectionNotes        SectionType = "notes"
)

func (t SectionType) valid() bool {
	switch t {
	case SectionInfo, SectionMeasurements, SectionDefects, SectionChecklist, SectionResult, SectionNotes:
		return true
	}
	return false
}

// Field binds a form-data key to a display label. Used by info sections
// (label/value grid) and checklist sections (item/status rows).
type Field struct {
	Key   string
	Label string
}

// Column describes one column of a measurements table. Width is nominal;
// the engine rescales all widths proportionally to the page content width.
type Column struct {
	Key   string
	Label string
	Width float64
}

// SectionSpec is one entry of a report config's section list. Which
// auxiliary fields are meaningful depends on Type: Fields for info and
// checklist, Columns for measurements, Items for notes, DataKey for
// defects. A DataKey that resolves to nothing renders as an empty
// section, never an error.
type SectionSpec struct {
	Type    SectionType
	Title   string
	DataKey string
	Fields  []Field
	Columns []Column
	Items   []string
}

// CalcFunc is a report type's calculation strategy: pure, no I/O.
type CalcFunc func(formData map[string]any) CalculationResult

// ReportConfig is the static, data-only descriptor of a report type.
// Calculate is the single code slot, chosen from a fixed set of named
// strategies; everything else is declarative.
type ReportConfig struct {
	ReportType string
	Title      string
	Sections   []SectionSpec
	Calculate  CalcFunc
}

// Registry holds the report configs known to this deployment. It is
// populated at startup and read-only afterwards.
type Registry struct {
	configs map[string]ReportConfig
}

// NewRegistry returns a registry with the built-in report types loaded.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[string]ReportConfig)}
	for _, cfg := range []ReportConfig{etConfig(), mekanikConfig()} {
		if err := r.Register(cfg); err != nil {
			// Built-in configs are validated by tests; a failure here is
			// a programming error, not a runtime condition.
			panic(err)
		}
	}
	return r
}

// Register validates and adds a report config.
func (r *Registry) Register(cfg ReportConfig) error {
	if cfg.ReportType == "" {
		return fmt.Errorf("report config has empty reportType")
	}
	if cfg.Title == "" {
		return fmt.Errorf("report config %s has empty title", cfg.ReportType)
	}
	if len(cfg.Sections) == 0 {
		return fmt.Errorf("report config %s has no sections", cfg.ReportType)
	}
	for i, s := range cfg.Sections {
		if !s.Type.valid() {
			return fmt.Errorf("report config %s: section %d has unknown type %q", cfg.ReportType, i, s.Type)
		}
		if s.Type == SectionMeasurements && len(s.Columns) == 0 {
			return fmt.Errorf("report config %s: measurements section %d has no columns", cfg.ReportType, i)
		}
	}
	r.configs[cfg.ReportType] = cfg
	return nil
}

// Supported reports whether reportType has a registered config.
func (r *Registry) Supported(reportType string) bool {
	_, ok := r.configs[reportType]
	return ok
}

// Get returns the config for reportType.
func (r *Registry) Get(reportType string) (ReportConfig, error) {
	cfg, ok := r.configs[reportType]
	if !ok {
		return ReportConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, reportType)
	}
	return cfg, nil
}

// Types returns the registered report types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.configs))
	for t := range r.configs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

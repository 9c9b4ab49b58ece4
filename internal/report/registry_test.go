package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{TypeET, TypeMekanik}, r.Types())
	assert.True(t, r.Supported(TypeET))
	assert.True(t, r.Supported(TypeMekanik))
	assert.False(t, r.Supported("XYZ"))

	et, err := r.Get(TypeET)
	require.NoError(t, err)
	assert.NotNil(t, et.Calculate)

	mek, err := r.Get(TypeMekanik)
	require.NoError(t, err)
	assert.Nil(t, mek.Calculate)

	_, err = r.Get("XYZ")
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestRegistryValidation(t *testing.T) {
	r := NewRegistry()

	valid := ReportConfig{
		ReportType: "GAZ",
		Title:      "Gaz Tesisatı Raporu",
		Sections:   []SectionSpec{{Type: SectionResult}},
	}

	t.Run("accepts a well-formed config", func(t *testing.T) {
		require.NoError(t, r.Register(valid))
		assert.True(t, r.Supported("GAZ"))
	})

	t.Run("rejects empty report type", func(t *testing.T) {
		cfg := valid
		cfg.ReportType = ""
		assert.Error(t, r.Register(cfg))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		cfg := valid
		cfg.Title = ""
		assert.Error(t, r.Register(cfg))
	})

	t.Run("rejects empty section list", func(t *testing.T) {
		cfg := valid
		cfg.Sections = nil
		assert.Error(t, r.Register(cfg))
	})

	t.Run("rejects unknown section type", func(t *testing.T) {
		cfg := valid
		cfg.Sections = []SectionSpec{{Type: SectionType("chart")}}
		assert.Error(t, r.Register(cfg))
	})

	t.Run("rejects measurements section without columns", func(t *testing.T) {
		cfg := valid
		cfg.Sections = []SectionSpec{{Type: SectionMeasurements}}
		assert.Error(t, r.Register(cfg))
	})
}

func TestBuiltinConfigShapes(t *testing.T) {
	r := NewRegistry()

	et, err := r.Get(TypeET)
	require.NoError(t, err)
	var hasMeasurements, hasResult bool
	for _, s := range et.Sections {
		switch s.Type {
		case SectionMeasurements:
			hasMeasurements = true
			assert.Len(t, s.Columns, 11)
		case SectionResult:
			hasResult = true
		}
	}
	assert.True(t, hasMeasurements)
	assert.True(t, hasResult)

	mek, err := r.Get(TypeMekanik)
	require.NoError(t, err)
	var hasChecklist bool
	for _, s := range mek.Sections {
		if s.Type == SectionChecklist {
			hasChecklist = true
			assert.NotEmpty(t, s.Fields)
		}
		assert.NotEqual(t, SectionMeasurements, s.Type)
	}
	assert.True(t, hasChecklist)
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(overrides map[string]any) map[string]any {
	p := map[string]any{
		"noktaAdi":   "Pano 1",
		"sigortaIn":  float64(10),
		"egriTipi":   "C",
		"zx":         0.3,
		"sebekeTipi": "TT",
	}
	for k, v := range overrides {
		p[k] = v
	}
	return p
}

func formWith(points ...map[string]any) map[string]any {
	rows := make([]any, len(points))
	for i, p := range points {
		rows[i] = p
	}
	return map[string]any{"olcumNoktalari": rows}
}

func TestETCalculateLimits(t *testing.T) {
	t.Run("TT without RCD uses touch voltage over trip current", func(t *testing.T) {
		res := etCalculate(formWith(point(nil)))
		require.Len(t, res.Measurements, 1)

		p := res.Measurements[0]
		assert.Equal(t, 100.0, p.TripCurrent) // 10 A × C curve
		assert.Equal(t, 0.5, p.LimitImpedance)
		assert.Equal(t, VerdictCompliant, p.Result)
	})

	t.Run("TT measured above limit fails without RCD", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{"zx": 0.7})))
		assert.Equal(t, VerdictNonCompliant, res.Measurements[0].Result)
		assert.Equal(t, VerdictNonCompliant, res.OverallResult)
	})

	t.Run("sensitive RCD relaxes TT limit to 200 ohm", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{"rcdMa": float64(30), "zx": 150.0})))
		p := res.Measurements[0]
		assert.Equal(t, 200.0, p.LimitImpedance)
		assert.Equal(t, VerdictCompliant, p.Result)
	})

	t.Run("coarse RCD limit scales with rating", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{"rcdMa": float64(300), "zx": 100.0})))
		p := res.Measurements[0]
		assert.InDelta(t, 50.0/0.3, p.LimitImpedance, 1e-9)
		assert.Equal(t, VerdictCompliant, p.Result)
	})

	t.Run("TN uses phase voltage over trip current", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{
			"sebekeTipi": "TN", "sigortaIn": float64(16), "egriTipi": "B", "zx": 2.0,
		})))
		p := res.Measurements[0]
		assert.Equal(t, 80.0, p.TripCurrent)
		assert.Equal(t, 230.0/80.0, p.LimitImpedance)
		assert.Equal(t, VerdictCompliant, p.Result)
	})

	t.Run("unknown curve defaults to C", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{"egriTipi": "X"})))
		assert.Equal(t, 100.0, res.Measurements[0].TripCurrent)
	})

	t.Run("zero trip current yields zero limit and fails", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{"sigortaIn": float64(0), "zx": 0.1})))
		p := res.Measurements[0]
		assert.Equal(t, 0.0, p.LimitImpedance)
		assert.Equal(t, VerdictNonCompliant, p.Result)
	})
}

func TestETCalculatePointVerdict(t *testing.T) {
	t.Run("zero impedance fails even with a fast RCD", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{
			"zx": float64(0), "rcdMa": float64(30), "acmaSuresiMs": float64(20),
		})))
		p := res.Measurements[0]
		assert.Equal(t, VerdictNonCompliant, p.Result)
		assert.Equal(t, 0.0, p.ShortCircuitCurrent)
	})

	t.Run("fast RCD trip rescues an over-limit point", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{
			"rcdMa": float64(300), "acmaSuresiMs": float64(200), "zx": 180.0,
		})))
		assert.Equal(t, VerdictCompliant, res.Measurements[0].Result)
	})

	t.Run("slow RCD trip does not", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{
			"rcdMa": float64(300), "acmaSuresiMs": float64(201), "zx": 180.0,
		})))
		assert.Equal(t, VerdictNonCompliant, res.Measurements[0].Result)
	})

	t.Run("short circuit current is 230 over Zx", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{"zx": 0.46})))
		assert.InDelta(t, 500.0, res.Measurements[0].ShortCircuitCurrent, 1e-9)
	})
}

func TestETCalculateOverall(t *testing.T) {
	t.Run("all compliant points give compliant overall", func(t *testing.T) {
		res := etCalculate(formWith(
			point(map[string]any{"sigortaIn": float64(16), "egriTipi": "B", "zx": 0.4}),
		))
		p := res.Measurements[0]
		assert.Equal(t, 80.0, p.TripCurrent)
		assert.Equal(t, 0.625, p.LimitImpedance)
		assert.Equal(t, VerdictCompliant, res.OverallResult)
		assert.Equal(t, "1 noktadan 1 tanesi uygun", res.Explanation)
	})

	t.Run("one failing point fails the report", func(t *testing.T) {
		res := etCalculate(formWith(point(nil), point(map[string]any{"zx": 0.7})))
		assert.Equal(t, VerdictNonCompliant, res.OverallResult)
		assert.Equal(t, "2 noktadan 1 tanesi uygun", res.Explanation)
	})

	t.Run("explicit genelSonuc overrides the aggregation", func(t *testing.T) {
		form := formWith(point(map[string]any{"zx": 0.7}))
		form["genelSonuc"] = "uygundur"
		res := etCalculate(form)
		assert.Equal(t, VerdictCompliant, res.OverallResult)

		form = formWith(point(nil))
		form["genelSonuc"] = "uygun değil"
		res = etCalculate(form)
		assert.Equal(t, VerdictNonCompliant, res.OverallResult)
	})

	t.Run("no measurement points", func(t *testing.T) {
		res := etCalculate(map[string]any{})
		assert.Empty(t, res.Measurements)
		assert.Equal(t, VerdictCompliant, res.OverallResult)
		assert.Equal(t, "0 noktadan 0 tanesi uygun", res.Explanation)
	})

	t.Run("deterministic", func(t *testing.T) {
		form := formWith(point(nil), point(map[string]any{"zx": 0.7, "rcdMa": float64(30)}))
		assert.Equal(t, etCalculate(form), etCalculate(form))
	})
}

func TestETCalculateFormCoercion(t *testing.T) {
	t.Run("string numbers with comma decimals", func(t *testing.T) {
		res := etCalculate(formWith(point(map[string]any{
			"sigortaIn": "16", "egriTipi": "b", "zx": "0,4",
		})))
		p := res.Measurements[0]
		assert.Equal(t, 80.0, p.TripCurrent)
		assert.Equal(t, 0.4, p.MeasuredImpedance)
		assert.Equal(t, "B", p.CurveType)
		assert.Equal(t, VerdictCompliant, p.Result)
	})

	t.Run("malformed rows are tolerated", func(t *testing.T) {
		form := map[string]any{"olcumNoktalari": []any{"not a map", nil}}
		res := etCalculate(form)
		require.Len(t, res.Measurements, 2)
		for _, p := range res.Measurements {
			assert.Equal(t, VerdictNonCompliant, p.Result)
		}
	})
}

func TestVerdictParsing(t *testing.T) {
	compliant := []string{"uygun", "UYGUN", "Uygundur", "compliant", "evet", "ok", " uygun "}
	for _, s := range compliant {
		assert.True(t, IsCompliant(s), s)
		assert.Equal(t, VerdictCompliant, ParseVerdict(s), s)
	}

	nonCompliant := []string{"uygun değil", "hayır", "", "fail"}
	for _, s := range nonCompliant {
		assert.False(t, IsCompliant(s), s)
		assert.Equal(t, VerdictNonCompliant, ParseVerdict(s), s)
	}
}

package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Form keys read by the ET calculation. The saha form submits measurement
// points under olcumNoktalari; each point is a flat map.
const (
	keyMeasurementPoints = "olcumNoktalari"
	keyOverallVerdict    = "genelSonuc"

	keyPointName  = "noktaAdi"
	keyRatedIn    = "sigortaIn"
	keyCurveType  = "egriTipi"
	keyImpedance  = "zx"
	keyNetwork    = "sebekeTipi"
	keyRCDRating  = "rcdMa"
	keyTripTimeMs = "acmaSuresiMs"
)

// Touch-voltage and fault-loop constants (TS HD 60364-4-41).
const (
	phaseVoltage    = 230.0 // V, line to earth
	touchVoltage    = 50.0  // V, safe touch limit on TT networks
	rcdSensitiveZs  = 200.0 // ohm limit when a ≤30 mA RCD protects the circuit
	rcdSensitiveMax = 30.0  // mA
	tripTimeLimitMs = 200.0
)

func curveMultiplier(curve string) float64 {
	switch strings.ToUpper(strings.TrimSpace(curve)) {
	case "B":
		return 5
	case "C":
		return 10
	case "D":
		return 15
	}
	return 10
}

// etCalculate runs the grounding-protection analysis for an ET report.
// Pure and deterministic: same form data, same result.
func etCalculate(formData map[string]any) CalculationResult {
	rows := toSlice(formData[keyMeasurementPoints])

	result := CalculationResult{}
	compliant := 0

	for i, raw := range rows {
		row := toMap(raw)
		p := MeasurementPoint{
			Sequence:  i + 1,
			PointName: toString(row[keyPointName]),
			CurveType: strings.ToUpper(strings.TrimSpace(toString(row[keyCurveType]))),
		}
		p.RatedCurrent = toFloat(row[keyRatedIn])
		p.MeasuredImpedance = toFloat(row[keyImpedance])
		p.TripCurrent = p.RatedCurrent * curveMultiplier(p.CurveType)

		var rcd, trip *float64
		if v, ok := row[keyRCDRating]; ok && toString(v) != "" {
			f := toFloat(v)
			rcd = &f
		}
		if v, ok := row[keyTripTimeMs]; ok && toString(v) != "" {
			f := toFloat(v)
			trip = &f
		}
		p.RCDRating = rcd
		p.TripTime = trip

		network := strings.ToUpper(strings.TrimSpace(toString(row[keyNetwork])))
		p.LimitImpedance = limitImpedance(network, p.TripCurrent, rcd)

		if p.MeasuredImpedance > 0 {
			p.ShortCircuitCurrent = phaseVoltage / p.MeasuredImpedance
		}

		p.Result = pointVerdict(p)
		if p.Result == VerdictCompliant {
			compliant++
		}
		result.Measurements = append(result.Measurements, p)
	}

	if v := toString(formData[keyOverallVerdict]); v != "" {
		result.OverallResult = ParseVerdict(v)
	} else if compliant == len(result.Measurements) {
		result.OverallResult = VerdictCompliant
	} else {
		result.OverallResult = VerdictNonCompliant
	}

	result.Explanation = fmt.Sprintf("%d noktadan %d tanesi uygun", len(result.Measurements), compliant)
	return result
}

// limitImpedance returns the Zs limit for the given earthing scheme.
// On TT networks an RCD relaxes the limit; on TN the breaker trip
// current alone defines it.
func limitImpedance(network string, ia float64, rcdMa *float64) float64 {
	if network == "TT" {
		if rcdMa != nil {
			if *rcdMa <= rcdSensitiveMax {
				return rcdSensitiveZs
			}
			return touchVoltage / (*rcdMa / 1000.0)
		}
		if ia <= 0 {
			return 0
		}
		return touchVoltage / ia
	}
	if ia <= 0 {
		return 0
	}
	return phaseVoltage / ia
}

// pointVerdict applies the per-point compliance rule: a dead measurement
// fails outright; Zx within limit passes; otherwise a fast enough RCD
// trip still passes.
func pointVerdict(p MeasurementPoint) Verdict {
	if p.MeasuredImpedance <= 0 {
		return VerdictNonCompliant
	}
	if p.MeasuredImpedance <= p.LimitImpedance {
		return VerdictCompliant
	}
	if p.RCDRating != nil && p.TripTime != nil && *p.TripTime <= tripTimeLimitMs {
		return VerdictCompliant
	}
	return VerdictNonCompliant
}

// Form values arrive from JSON, so numbers may be float64, json.Number
// or strings typed into the saha form.

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", "."))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return fmt.Sprintf("%v", v)
}

func toSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func toMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

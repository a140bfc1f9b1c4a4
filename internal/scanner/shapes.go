package scanner

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/K0NGR3SS/colrisk/internal/catalog"
)

// Thresholds tune the value-shape detectors.
type Thresholds struct {
	// FreeTextMinLength is the rune length at which a value counts as free text.
	FreeTextMinLength int `yaml:"free_text_min_length"`
	// CoordinateMinDecimals is the fractional precision both halves of a
	// pair need before it counts as a GPS fix.
	CoordinateMinDecimals int `yaml:"coordinate_min_decimals"`
	// AxisMinDecimals, when positive, also treats a lone number with at least
	// this many decimals as a coordinate, for split latitude/longitude columns.
	AxisMinDecimals int     `yaml:"axis_min_decimals"`
	MaxLatitude     float64 `yaml:"max_latitude"`
	MaxLongitude    float64 `yaml:"max_longitude"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FreeTextMinLength:     50,
		CoordinateMinDecimals: 2,
		MaxLatitude:           90,
		MaxLongitude:          180,
	}
}

// "12.34,56.78", "[40.74, -73.99]", "(1.5 2.25)"
var coordinatePair = regexp.MustCompile(`^\s*[\[(]?\s*([-+]?\d{1,3}(?:\.\d+)?)\s*[,; ]\s*([-+]?\d{1,3}(?:\.\d+)?)\s*[\])]?\s*$`)

var coordinateAxis = regexp.MustCompile(`^\s*[-+]?\d{1,3}\.\d+\s*$`)

type shapeFunc func(sample []string, th Thresholds) bool

var shapes = map[catalog.Shape]shapeFunc{
	catalog.ShapeCoordinates: anyCoordinatePair,
	catalog.ShapeFreeText:    anyFreeText,
}

func anyCoordinatePair(sample []string, th Thresholds) bool {
	for _, v := range sample {
		if isCoordinatePair(v, th) || isCoordinateAxis(v, th) {
			return true
		}
	}
	return false
}

func isCoordinatePair(v string, th Thresholds) bool {
	m := coordinatePair.FindStringSubmatch(v)
	if m == nil {
		return false
	}
	if decimals(m[1]) < th.CoordinateMinDecimals || decimals(m[2]) < th.CoordinateMinDecimals {
		return false
	}

	a, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return false
	}
	// lat,lon or the GeoJSON/WKT lon,lat order
	return (abs(a) <= th.MaxLatitude && abs(b) <= th.MaxLongitude) ||
		(abs(a) <= th.MaxLongitude && abs(b) <= th.MaxLatitude)
}

func isCoordinateAxis(v string, th Thresholds) bool {
	if th.AxisMinDecimals <= 0 || !coordinateAxis.MatchString(v) {
		return false
	}
	v = strings.TrimSpace(v)
	if decimals(v) < th.AxisMinDecimals {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && abs(f) <= th.MaxLongitude
}

func decimals(num string) int {
	_, frac, ok := strings.Cut(num, ".")
	if !ok {
		return 0
	}
	return len(frac)
}

func anyFreeText(sample []string, th Thresholds) bool {
	if th.FreeTextMinLength <= 0 {
		return false
	}
	for _, v := range sample {
		if utf8.RuneCountInString(strings.TrimSpace(v)) >= th.FreeTextMinLength {
			return true
		}
	}
	return false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

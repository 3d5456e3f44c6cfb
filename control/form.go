package control

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/parameter"
)

// Field identifies one editable shot parameter
type Field int

const (
	FieldWind Field = iota
	FieldElevation
	FieldCaliber
	FieldBallisticCoefficient
	fieldCount
)

// fieldSpec holds per-field presentation and input limits
type fieldSpec struct {
	label  string
	unit   string
	format string
	step   float64
	min    float64
	max    float64
}

var fieldSpecs = [fieldCount]fieldSpec{
	FieldWind:                 {"Wind", "m/s", "%+.2f", parameter.WindInputStep, -parameter.WindMagnitudeMax, parameter.WindMagnitudeMax},
	FieldElevation:            {"Elevation", "deg", "%.0f", parameter.ElevationInputStep, parameter.ElevationMin, parameter.ElevationMax},
	FieldCaliber:              {"Caliber", "m", "%.5f", parameter.CaliberInputStep, parameter.CaliberMin, math.Inf(1)},
	FieldBallisticCoefficient: {"Ballistic coeff.", "", "%.2f", parameter.BallisticCoefficientInputStep, parameter.BallisticCoefficientUIMin, parameter.BallisticCoefficientUIMax},
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldSpecs[f].label
}

// Step returns the fine input step for the field
func (f Field) Step() float64 {
	if f < 0 || f >= fieldCount {
		return 0
	}
	return fieldSpecs[f].step
}

// Row is one rendered form line
type Row struct {
	Field   Field
	Label   string
	Value   string
	Focused bool
}

// Form holds the editable parameter values and the focused field
// Values are always within the UI limits; the session applies the stricter validation
type Form struct {
	values [fieldCount]float64
	focus  Field
}

// NewForm seeds the form from a parameter snapshot, clamping into UI limits
func NewForm(p engine.Parameters) *Form {
	f := &Form{}
	f.Load(p)
	return f
}

// Load replaces all values from p
func (f *Form) Load(p engine.Parameters) {
	f.Set(FieldWind, p.Wind.X)
	f.Set(FieldElevation, p.Elevation)
	f.Set(FieldCaliber, p.Caliber)
	f.Set(FieldBallisticCoefficient, p.BallisticCoefficient)
}

func (f *Form) Focus() Field { return f.focus }

// FocusNext moves focus down, wrapping
func (f *Form) FocusNext() {
	f.focus = (f.focus + 1) % fieldCount
}

// FocusPrev moves focus up, wrapping
func (f *Form) FocusPrev() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
}

func (f *Form) Value(field Field) float64 {
	if field < 0 || field >= fieldCount {
		return 0
	}
	return f.values[field]
}

// Set stores v clamped to the field limits and reports whether the value changed
// Non-finite input is ignored
func (f *Form) Set(field Field, v float64) bool {
	if field < 0 || field >= fieldCount || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	spec := fieldSpecs[field]
	v = math.Min(math.Max(v, spec.min), spec.max)

	if v == f.values[field] {
		return false
	}
	f.values[field] = v
	return true
}

// Adjust moves the focused field by steps increments
func (f *Form) Adjust(steps float64) bool {
	spec := fieldSpecs[f.focus]
	return f.Set(f.focus, f.values[f.focus]+steps*spec.step)
}

// Parameters overlays the form values onto base
// Wind edits the downrange component only; cross-wind and muzzle velocity come from base
func (f *Form) Parameters(base engine.Parameters) engine.Parameters {
	p := base
	p.Wind.X = f.values[FieldWind]
	p.Elevation = f.values[FieldElevation]
	p.Caliber = f.values[FieldCaliber]
	p.BallisticCoefficient = f.values[FieldBallisticCoefficient]
	return p
}

// Rows returns display lines in field order
func (f *Form) Rows() []Row {
	rows := make([]Row, 0, fieldCount)
	for i := Field(0); i < fieldCount; i++ {
		spec := fieldSpecs[i]
		value := fmt.Sprintf(spec.format, f.values[i])
		if spec.unit != "" {
			value += " " + spec.unit
		}
		rows = append(rows, Row{
			Field:   i,
			Label:   spec.label,
			Value:   value,
			Focused: i == f.focus,
		})
	}
	return rows
}

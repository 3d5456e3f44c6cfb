package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-ballistics/parameter"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

func TestDefaultParameters_Valid(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	assert.Equal(t, parameter.MuzzleVelocity, p.MuzzleVelocity)
	assert.Equal(t, parameter.DefaultCaliber, p.Caliber)
	assert.Equal(t, parameter.DefaultBallisticCoefficient, p.BallisticCoefficient)
}

func TestParameters_ValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Parameters)
		field string
	}{
		{"zero caliber", func(p *Parameters) { p.Caliber = 0 }, "caliber"},
		{"negative caliber", func(p *Parameters) { p.Caliber = -0.01 }, "caliber"},
		{"NaN caliber", func(p *Parameters) { p.Caliber = math.NaN() }, "caliber"},
		{"zero coefficient", func(p *Parameters) { p.BallisticCoefficient = 0 }, "ballisticCoefficient"},
		{"infinite coefficient", func(p *Parameters) { p.BallisticCoefficient = math.Inf(1) }, "ballisticCoefficient"},
		{"NaN wind", func(p *Parameters) { p.Wind.X = math.NaN() }, "wind.x"},
		{"infinite cross wind", func(p *Parameters) { p.Wind.Z = math.Inf(-1) }, "wind.z"},
		{"NaN elevation", func(p *Parameters) { p.Elevation = math.NaN() }, "elevation"},
		{"zero muzzle velocity", func(p *Parameters) { p.MuzzleVelocity = 0 }, "muzzleVelocity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mut(&p)

			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))

			var pe *ParameterError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestParameters_CoefficientAboveOneIsValid(t *testing.T) {
	p := DefaultParameters()
	p.BallisticCoefficient = 25
	assert.NoError(t, p.Validate(), "the [0,1] range is a form constraint, not a physical one")
}

func TestParameters_Environment(t *testing.T) {
	p := DefaultParameters()
	p.Wind = vmath.Vec3F{X: 2, Z: -1}

	env := p.Environment()
	assert.Equal(t, p.Wind, env.Wind)
	assert.Equal(t, p.Caliber, env.Caliber)
	assert.Equal(t, p.BallisticCoefficient, env.BallisticCoefficient)
}

func TestValidateStep(t *testing.T) {
	assert.NoError(t, ValidateStep(0.01))
	for _, dt := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
		err := ValidateStep(dt)
		assert.ErrorIs(t, err, ErrInvalidParameter, "dt=%v", dt)
	}
}

func TestParameterError_Message(t *testing.T) {
	err := invalid("caliber", 0, "must be finite and > 0")
	assert.Equal(t, "invalid parameter caliber=0: must be finite and > 0", err.Error())
}

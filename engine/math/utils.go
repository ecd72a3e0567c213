package math

import (
	"github.com/chewxy/math32"
)

const (
	Pi        = math32.Pi
	DegToRads = Pi / 180.0
	RadToDegs = 180.0 / Pi
)

func DegToRad(degrees float32) float32 {
	return degrees * DegToRads
}

func RadToDeg(radians float32) float32 {
	return radians * RadToDegs
}

func Clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RangeConvertFloat32 remaps value from [oldMin, oldMax] to [newMin, newMax].
func RangeConvertFloat32(value, oldMin, oldMax, newMin, newMax float32) float32 {
	return ((value-oldMin)/(oldMax-oldMin))*(newMax-newMin) + newMin
}

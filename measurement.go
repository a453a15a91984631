package pptlabs

import (
	"fmt"
	"math"
	"strconv"
)

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 cm = 360000 EMU.

const (
	emuPerInch       = 914400
	emuPerPoint      = 12700
	emuPerCentimeter = 360000
	emuPerMillimeter = 36000
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// Unit is a length unit used when displaying geometry.
type Unit string

const (
	UnitEMU        Unit = "emu"
	UnitPoint      Unit = "pt"
	UnitInch       Unit = "in"
	UnitCentimeter Unit = "cm"
	UnitMillimeter Unit = "mm"
)

// ParseUnit parses a unit abbreviation.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitEMU, UnitPoint, UnitInch, UnitCentimeter, UnitMillimeter:
		return u, nil
	}
	return "", fmt.Errorf("unknown unit %q (want emu, pt, in, cm or mm)", s)
}

// perUnit returns the number of EMU in one u.
func (u Unit) perUnit() float64 {
	switch u {
	case UnitPoint:
		return emuPerPoint
	case UnitInch:
		return emuPerInch
	case UnitCentimeter:
		return emuPerCentimeter
	case UnitMillimeter:
		return emuPerMillimeter
	default:
		return 1
	}
}

// FromEMU converts emu to u.
func (u Unit) FromEMU(emu int64) float64 {
	return float64(emu) / u.perUnit()
}

// ToEMU converts n in u to EMU. Clamps to safe range.
func (u Unit) ToEMU(n float64) int64 {
	return clampEMU(math.Round(n * u.perUnit()))
}

// Format renders emu in u with at most two decimals.
func (u Unit) Format(emu int64) string {
	if u == UnitEMU {
		return strconv.FormatInt(emu, 10)
	}
	return strconv.FormatFloat(math.Round(u.FromEMU(emu)*100)/100, 'f', -1, 64)
}

// Inch converts inches to EMU.
func Inch(n float64) int64 { return UnitInch.ToEMU(n) }

// Point converts points to EMU.
func Point(n float64) int64 { return UnitPoint.ToEMU(n) }

// Centimeter converts centimeters to EMU.
func Centimeter(n float64) int64 { return UnitCentimeter.ToEMU(n) }

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 { return UnitPoint.FromEMU(emu) }

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}

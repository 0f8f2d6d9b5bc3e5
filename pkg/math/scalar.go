package math

import "math"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the range [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Sqrt returns the square root of v.
func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Sin returns the sine of v (radians).
func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// Cos returns the cosine of v (radians).
func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

// Atan2 returns the arc tangent of y/x.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Acos returns the arc cosine of v, with the input clamped to [-1, 1]
// so accumulated float error cannot produce NaN.
func Acos(v float32) float32 {
	return float32(math.Acos(float64(Clamp(v, -1, 1))))
}

// Pi is π as a float32.
const Pi = float32(math.Pi)

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * (180.0 / Pi)
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (Pi / 180.0)
}

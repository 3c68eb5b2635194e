// SPDX-License-Identifier: EPL-2.0

package utils

// CatmullRom evaluates a Catmull-Rom spline through four consecutive
// samples at fractional position t in [0,1] between p1 and p2. It is the
// interpolation kernel the resampler uses: t=0 yields p1, t=1 yields p2,
// and for linear input the result is exactly linear.
func CatmullRom(p0, p1, p2, p3, t float32) float32 {
	c3 := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	c2 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c1 := 0.5 * (p2 - p0)

	return ((c3*t+c2)*t+c1)*t + p1
}

// Package lighting derives directional light parameters from the sun.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creeperworld/pkg/math"
)

// Direction converts longitude/latitude angles in degrees to a unit vector
// pointing towards the sun. Longitude rotates around Y starting at +Z,
// latitude is the elevation above the horizon.
func Direction(longitude, latitude float32) math.Vec3 {
	lon := math.Radians(longitude)
	lat := math.Radians(latitude)

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}

// FromSun returns the direction light travels from a sun at sunPos to
// target. It reports false when the sun is not lighting target: at or
// below its height, or farther than maxDistance away.
func FromSun(sunPos, target math.Vec3, maxDistance float32) (math.Vec3, bool) {
	if sunPos.Y <= target.Y {
		return math.Vec3{}, false
	}
	if sunPos.Distance(target) > maxDistance {
		return math.Vec3{}, false
	}
	return target.Sub(sunPos).Normalize(), true
}

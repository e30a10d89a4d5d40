package lighting

import "math"

// FillDirection converts azimuth/elevation angles in degrees to a unit
// vector pointing towards a directional fill light. Azimuth rotates around
// Y starting at +Z, elevation is measured from the horizon.
func FillDirection(azimuth, elevation float32) [3]float32 {
	lonRad := float64(azimuth) * math.Pi / 180.0
	latRad := float64(elevation) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}

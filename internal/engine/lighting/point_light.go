// Package lighting describes the lights uploaded to the board shader.
package lighting

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 4

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// BoardLight is the key light above and in front of the board, scaled to a
// board of the given side.
func BoardLight(size float32) PointLight {
	s := size / 5
	return PointLight{
		Position:  [3]float32{4 * s, 8 * s, 4 * s},
		Color:     [3]float32{1, 1, 1},
		Range:     20 * s,
		Intensity: 1.2,
	}
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Count returns the number of lights.
func (b *PointLightBuffer) Count() int {
	return len(b.Lights)
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	light.Color = clampColor(light.Color)
	if light.Range <= 0 {
		light.Range = 10
	}
	b.Lights = append(b.Lights, light)
	return true
}

func clampColor(c [3]float32) [3]float32 {
	for i := range c {
		c[i] = min(max(c[i], 0), 1)
	}
	return c
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Colors returns colors premultiplied by intensity, flat for GPU upload.
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		for c := 0; c < 3; c++ {
			result[i*3+c] = light.Color[c] * light.Intensity
		}
	}
	return result
}

// Ranges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

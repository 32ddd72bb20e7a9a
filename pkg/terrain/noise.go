package terrain

import opensimplex "github.com/ojrac/opensimplex-go"

// octave is one WithAmplitude<WithFrequency<Inner, f32>> layer from
// original_source/sandvox/src/util/noise.rs, specialized to a single
// opensimplex noise source sampled in the XZ plane.
type octave struct {
	noise     opensimplex.Noise
	frequency float64
	amplitude float64
}

// fractalNoise sums octaves of decreasing amplitude and increasing
// frequency, the Go equivalent of FractalNoise<PerlinNoise>.
type fractalNoise struct {
	octaves []octave
}

// newFractalNoise builds a fractalNoise with octaveCount layers, each
// seeded distinctly derived from seed so they decorrelate, matching the
// original's per-octave `inner: impl FnMut() -> Inner` closure.
func newFractalNoise(seed int64, octaveCount int, baseFrequency, lacunarity, persistence float64) fractalNoise {
	octaves := make([]octave, octaveCount)
	frequency := baseFrequency
	amplitude := 1.0
	for i := range octaves {
		octaves[i] = octave{
			noise:     opensimplex.New(seed + int64(i)*0x9e3779b1),
			frequency: frequency,
			amplitude: amplitude,
		}
		frequency *= lacunarity
		amplitude *= persistence
	}
	return fractalNoise{octaves: octaves}
}

// eval2 samples the fractal sum at (x, z), before any amplitude/bias
// scaling is applied by the caller.
func (f fractalNoise) eval2(x, z float64) float64 {
	var sum float64
	for _, o := range f.octaves {
		sum += o.amplitude * o.noise.Eval2(x*o.frequency, z*o.frequency)
	}
	return sum
}

// scaledNoise applies WithAmplitude then WithBias on top of a
// fractalNoise, matching surface_height/dirt_depth's construction in
// the original.
type scaledNoise struct {
	inner     fractalNoise
	amplitude float64
	bias      float64
}

func (s scaledNoise) eval2(x, z float64) float64 {
	return s.bias + s.amplitude*s.inner.eval2(x, z)
}

// Package astro derives physical and visual stellar attributes from the raw
// catalog fields: spectral type and absolute magnitude. All functions are pure
// and never fail; unknown or malformed input falls back to solar defaults.
package astro

import "github.com/chewxy/math32"

// Solar reference constants used throughout the attribute model.
const (
	SunTemperatureK = 5778     // effective temperature of the Sun, Kelvin
	SunLuminosityW  = 3.828e26 // nominal solar luminosity, Watts
	SunAbsoluteMag  = 4.83     // absolute visual magnitude of the Sun
	SunRadiusM      = 6.957e8  // nominal solar radius, meters

	stefanBoltzmann = 5.670374419e-8 // W m^-2 K^-4
)

const defaultSubtype = 5

// classTemps maps a primary spectral class to its effective temperature range
// in Kelvin. Subtype 0 is the hottest star of the class (max), subtype 9 the
// coolest (min).
var classTemps = map[byte]struct{ minK, maxK float32 }{
	'O': {30000, 60000},
	'B': {10000, 30000},
	'A': {7500, 10000},
	'F': {6000, 7500},
	'G': {5200, 6000},
	'K': {3700, 5200},
	'M': {2400, 3700},
	'D': {8000, 40000},   // white dwarfs
	'N': {2400, 3200},    // carbon stars, cool
	'C': {2400, 3200},    // carbon stars
	'R': {3500, 5400},    // carbon stars, warm
	'P': {30000, 200000}, // planetary nebula central stars
	'S': {2400, 3500},    // zirconium stars
	'W': {25000, 200000}, // Wolf-Rayet
}

// classColors maps a primary spectral class to its base display color.
var classColors = map[byte][3]float32{
	'O': hexColor(0x8bd1ff),
	'B': hexColor(0xa7caff),
	'A': hexColor(0xdae9ff),
	'F': hexColor(0xfff7e8),
	'G': hexColor(0xffe9b5),
	'K': hexColor(0xffcd89),
	'M': hexColor(0xffa77d),
	'D': hexColor(0xffffff),
	'N': hexColor(0xa52a2a),
	'C': hexColor(0x800000),
	'R': hexColor(0xcd5c5c),
	'P': hexColor(0x7fffd4),
	'S': hexColor(0xffd700),
	'W': hexColor(0xfd3db5),
}

var (
	white  = [3]float32{1, 1, 1}
	yellow = [3]float32{1, 1, 0}
)

func hexColor(rgb uint32) [3]float32 {
	return [3]float32{
		float32(rgb>>16&0xff) / 255,
		float32(rgb>>8&0xff) / 255,
		float32(rgb&0xff) / 255,
	}
}

// PrimaryClass returns the class letter of a spectral type normalized to
// uppercase, or 0 for an empty type. The catalog carries mixed-case types.
func PrimaryClass(spect string) byte {
	if spect == "" {
		return 0
	}
	c := spect[0]
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}

// subtype returns the 0-9 subtype digit of a spectral type string, or the
// default subtype 5 when the second character is missing or not a digit.
func subtype(spect string) float32 {
	if len(spect) >= 2 && spect[1] >= '0' && spect[1] <= '9' {
		return float32(spect[1] - '0')
	}
	return defaultSubtype
}

// Temperature returns the effective temperature in Kelvin for a spectral type
// such as "G2". The first character, case-insensitively, selects the class
// range, the subtype digit
// interpolates within it (0 = hottest, 9 = coolest). Empty or unknown types
// return the solar temperature.
func Temperature(spect string) float32 {
	if spect == "" {
		return SunTemperatureK
	}
	rng, ok := classTemps[PrimaryClass(spect)]
	if !ok {
		return SunTemperatureK
	}
	return rng.maxK - (rng.maxK-rng.minK)*subtype(spect)/9
}

// Luminosity returns the luminosity in Watts for an absolute magnitude,
// relative to the solar reference: L = Lsun * 10^((Msun - M)/2.5).
// Strictly decreasing in M; Luminosity(SunAbsoluteMag) == SunLuminosityW.
func Luminosity(absMag float32) float32 {
	return SunLuminosityW * math32.Pow(10, (SunAbsoluteMag-absMag)/2.5)
}

// Radius inverts the Stefan-Boltzmann law, returning the stellar radius in
// solar radii: R = sqrt(L / (4*pi*sigma*T^4)) / Rsun. A temperature of exactly
// zero returns 0; any other input passes through (NaN in, NaN out).
func Radius(luminosityW, temperatureK float32) float32 {
	if temperatureK == 0 {
		return 0
	}
	t4 := temperatureK * temperatureK * temperatureK * temperatureK
	return math32.Sqrt(luminosityW/(4*math32.Pi*stefanBoltzmann*t4)) / SunRadiusM
}

// ClassColor returns the display color in [0,1] RGB for a spectral type.
// The base color comes from the class palette; when a subtype digit is
// present the base is blended toward yellow (F, G, K, M classes) or white
// (everything else) by subtype/9. Empty or unknown types render white.
func ClassColor(spect string) [3]float32 {
	if spect == "" {
		return white
	}
	base, ok := classColors[PrimaryClass(spect)]
	if !ok {
		base = white
	}
	if len(spect) < 2 || spect[1] < '0' || spect[1] > '9' {
		return base
	}
	target := white
	switch PrimaryClass(spect) {
	case 'F', 'G', 'K', 'M':
		target = yellow
	}
	t := float32(spect[1]-'0') / 9
	return [3]float32{
		base[0] + (target[0]-base[0])*t,
		base[1] + (target[1]-base[1])*t,
		base[2] + (target[2]-base[2])*t,
	}
}

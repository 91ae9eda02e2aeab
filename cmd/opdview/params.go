package main

import json "github.com/KevinWang15/go-json5"

// Scene holds everything a parameter file can specify: the sampling grid,
// the error-source kind, and the kind-specific parameters.
type Scene struct {
	Title        string
	Kind         string
	NPix         int
	PixelScaleM  float64
	WavelengthNm float64
	SeedGiven    bool
	Seed         int64

	// zernike / parameterized
	CoefficientsNm []float64
	RadiusM        float64
	ApertureStop   bool

	// sine
	SpatialFreqCyclesPerM float64
	AmplitudeNm           float64
	PhaseOffsetCycles     float64

	// statistical psd
	PowerLawIndex float64
	RmsNm         float64

	// power spectrum
	PSDTerms         [][5]float64 // alpha, beta, outer scale m, inner scale m, roughness
	PSDTermsFile     string
	PSDWeights       []float64
	ApplyReflection  bool
	ScreenSize       int
	IncidentAngleDeg float64

	// kolmogorov
	R0M          float64
	Cn2          float64
	DzM          float64
	InnerScaleM  float64
	OuterScaleM  float64
	SpectrumKind string
}

func parsePSDTermTable(data []byte) ([][5]float64, error) {
	var terms [][5]float64
	err := json.Unmarshal(data, &terms)
	return terms, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func validateJsonFileAndFillScene(jsonTable map[string]interface{}, scene *Scene) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	title, ok := getLeafValue(jsonTable, "title")
	if ok {
		scene.Title, ok = title.(string)
		if !ok {
			msg = "title: is not a string"
			return msg, false
		}
	}

	kind, ok := getLeafValue(jsonTable, "error_source_kind")
	if !ok {
		msg = "error_source_kind: not found"
		return msg, false
	}
	scene.Kind, ok = kind.(string)
	if !ok {
		msg = "error_source_kind: is not a string"
		return msg, false
	}

	npix, ok := getLeafValue(jsonTable, "grid", "npix")
	if !ok {
		msg = "grid.npix: not found"
		return msg, false
	}
	npixValue, ok := npix.(float64)
	if !ok {
		msg = "grid.npix: is not a float64"
		return msg, false
	}
	scene.NPix = int(npixValue)

	pixScale, ok := getLeafValue(jsonTable, "grid", "pixel_scale_m")
	if !ok {
		msg = "grid.pixel_scale_m: not found"
		return msg, false
	}
	scene.PixelScaleM, ok = pixScale.(float64)
	if !ok {
		msg = "grid.pixel_scale_m: is not a float64"
		return msg, false
	}

	wavelength, ok := getLeafValue(jsonTable, "grid", "wavelength_nm")
	if !ok {
		scene.WavelengthNm = 550.0 // default to mid-visible
	} else {
		scene.WavelengthNm, ok = wavelength.(float64)
		if !ok {
			msg = "grid.wavelength_nm: is not a float64"
			return msg, false
		}
	}

	seed, ok := getLeafValue(jsonTable, "seed")
	if ok {
		seedValue, ok := seed.(float64)
		if !ok {
			msg = "seed: is not a float64"
			return msg, false
		}
		scene.SeedGiven = true
		scene.Seed = int64(seedValue)
	}

	radius, ok := getLeafValue(jsonTable, "radius_m")
	if ok {
		scene.RadiusM, ok = radius.(float64)
		if !ok {
			msg = "radius_m: is not a float64"
			return msg, false
		}
	}

	coeffs, ok := getLeafValue(jsonTable, "zernike", "coefficients_nm")
	if ok {
		list, ok := coeffs.([]interface{})
		if !ok {
			msg = "zernike.coefficients_nm: is not an array"
			return msg, false
		}
		for _, c := range list {
			v, ok := c.(float64)
			if !ok {
				msg = "zernike.coefficients_nm: entry is not a float64"
				return msg, false
			}
			scene.CoefficientsNm = append(scene.CoefficientsNm, v)
		}
	}

	stop, ok := getLeafValue(jsonTable, "zernike", "aperture_stop_bool")
	if ok {
		scene.ApertureStop, ok = stop.(bool)
		if !ok {
			msg = "zernike.aperture_stop_bool: is not a bool"
			return msg, false
		}
	}

	freq, ok := getLeafValue(jsonTable, "sine", "spatial_frequency_cycles_per_m")
	if ok {
		scene.SpatialFreqCyclesPerM, ok = freq.(float64)
		if !ok {
			msg = "sine.spatial_frequency_cycles_per_m: is not a float64"
			return msg, false
		}
	}

	amp, ok := getLeafValue(jsonTable, "sine", "amplitude_nm")
	if ok {
		scene.AmplitudeNm, ok = amp.(float64)
		if !ok {
			msg = "sine.amplitude_nm: is not a float64"
			return msg, false
		}
	}

	phase, ok := getLeafValue(jsonTable, "sine", "phase_offset_cycles")
	if ok {
		scene.PhaseOffsetCycles, ok = phase.(float64)
		if !ok {
			msg = "sine.phase_offset_cycles: is not a float64"
			return msg, false
		}
	}

	index, ok := getLeafValue(jsonTable, "statistical", "power_law_index")
	if !ok {
		scene.PowerLawIndex = 3.0 // Default value
	} else {
		scene.PowerLawIndex, ok = index.(float64)
		if !ok {
			msg = "statistical.power_law_index: is not a float64"
			return msg, false
		}
	}

	rms, ok := getLeafValue(jsonTable, "rms_nm")
	if ok {
		scene.RmsNm, ok = rms.(float64)
		if !ok {
			msg = "rms_nm: is not a float64"
			return msg, false
		}
	}

	// Check to see if a power_spectrum group is present.
	_, ok = getLeafValue(jsonTable, "power_spectrum")
	if ok {
		termsRequired := true
		termsFile, ok := getLeafValue(jsonTable, "power_spectrum", "psd_terms_file")
		if ok {
			scene.PSDTermsFile, ok = termsFile.(string)
			if !ok {
				msg = "power_spectrum.psd_terms_file: is not a string"
				return msg, false
			}
			termsRequired = false
		}

		terms, ok := getLeafValue(jsonTable, "power_spectrum", "psd_terms")
		if !ok {
			if termsRequired {
				msg = "power_spectrum.psd_terms: not found"
				return msg, false
			}
		} else {
			rows, ok := terms.([]interface{})
			if !ok {
				msg = "power_spectrum.psd_terms: is not an array"
				return msg, false
			}
			for _, r := range rows {
				entries, ok := r.([]interface{})
				if !ok || len(entries) != 5 {
					msg = "power_spectrum.psd_terms: each term must be [alpha, beta, outer_scale_m, inner_scale_m, roughness]"
					return msg, false
				}
				var term [5]float64
				for i, e := range entries {
					v, ok := e.(float64)
					if !ok {
						msg = "power_spectrum.psd_terms: entry is not a float64"
						return msg, false
					}
					term[i] = v
				}
				scene.PSDTerms = append(scene.PSDTerms, term)
			}
		}

		weights, ok := getLeafValue(jsonTable, "power_spectrum", "psd_weights")
		if ok {
			list, ok := weights.([]interface{})
			if !ok {
				msg = "power_spectrum.psd_weights: is not an array"
				return msg, false
			}
			for _, wv := range list {
				v, ok := wv.(float64)
				if !ok {
					msg = "power_spectrum.psd_weights: entry is not a float64"
					return msg, false
				}
				scene.PSDWeights = append(scene.PSDWeights, v)
			}
		}

		reflection, ok := getLeafValue(jsonTable, "power_spectrum", "apply_reflection_bool")
		if ok {
			scene.ApplyReflection, ok = reflection.(bool)
			if !ok {
				msg = "power_spectrum.apply_reflection_bool: is not a bool"
				return msg, false
			}
		}

		screenSize, ok := getLeafValue(jsonTable, "power_spectrum", "screen_size")
		if ok {
			v, ok := screenSize.(float64)
			if !ok {
				msg = "power_spectrum.screen_size: is not a float64"
				return msg, false
			}
			scene.ScreenSize = int(v)
		}

		angle, ok := getLeafValue(jsonTable, "power_spectrum", "incident_angle_degrees")
		if ok {
			scene.IncidentAngleDeg, ok = angle.(float64)
			if !ok {
				msg = "power_spectrum.incident_angle_degrees: is not a float64"
				return msg, false
			}
		}
	}

	// Check to see if a kolmogorov group is present.
	_, ok = getLeafValue(jsonTable, "kolmogorov")
	if ok {
		dz, ok := getLeafValue(jsonTable, "kolmogorov", "dz_m")
		if !ok {
			msg = "kolmogorov.dz_m: not found"
			return msg, false
		}
		scene.DzM, ok = dz.(float64)
		if !ok {
			msg = "kolmogorov.dz_m: is not a float64"
			return msg, false
		}

		r0, ok := getLeafValue(jsonTable, "kolmogorov", "r0_m")
		if ok {
			scene.R0M, ok = r0.(float64)
			if !ok {
				msg = "kolmogorov.r0_m: is not a float64"
				return msg, false
			}
		}

		cn2, ok := getLeafValue(jsonTable, "kolmogorov", "cn2")
		if ok {
			scene.Cn2, ok = cn2.(float64)
			if !ok {
				msg = "kolmogorov.cn2: is not a float64"
				return msg, false
			}
		}

		inner, ok := getLeafValue(jsonTable, "kolmogorov", "inner_scale_m")
		if ok {
			scene.InnerScaleM, ok = inner.(float64)
			if !ok {
				msg = "kolmogorov.inner_scale_m: is not a float64"
				return msg, false
			}
		}

		outer, ok := getLeafValue(jsonTable, "kolmogorov", "outer_scale_m")
		if ok {
			scene.OuterScaleM, ok = outer.(float64)
			if !ok {
				msg = "kolmogorov.outer_scale_m: is not a float64"
				return msg, false
			}
		}

		kindName, ok := getLeafValue(jsonTable, "kolmogorov", "spectrum_kind")
		if !ok {
			scene.SpectrumKind = "Kolmogorov" // Default value
		} else {
			scene.SpectrumKind, ok = kindName.(string)
			if !ok {
				msg = "kolmogorov.spectrum_kind: is not a string"
				return msg, false
			}
		}
	}

	return msg, true
}

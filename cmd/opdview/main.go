// Command opdview computes the OPD map of a configured wavefront-error
// source and displays it.
//
// Usage: opdview <parameter-file>
//
// The parameter file is json (or json5) describing the sampling grid and
// one error source; see params.go for the accepted fields.
package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	json "github.com/KevinWang15/go-json5"

	"opdscreen/render"
	"opdscreen/wfe"
)

const version = "1_0_0"

func main() {

	programStart := time.Now()

	myApp := app.NewWithID("io.github.opdscreen.opdview")
	w := myApp.NewWindow("opdview - wavefront error OPD maps")
	w.Resize(fyne.Size{Height: 800, Width: 900})

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: opdview <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w", path, err))
		os.Exit(3)
	}

	var scene Scene
	msg, ok := validateJsonFileAndFillScene(jsonTable, &scene)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// If a path to an external PSD term table was given, read it
	if scene.PSDTermsFile != "" {
		termData, err := os.ReadFile(scene.PSDTermsFile)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tAttempt to read file %q failed: %w", scene.PSDTermsFile, err))
			os.Exit(5)
		}
		terms, err := parsePSDTermTable(termData)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tError reading psd term file %q: %w", scene.PSDTermsFile, err))
			os.Exit(6)
		}
		if len(terms) < 1 {
			fmt.Println(fmt.Errorf("\n\tThe psd term file %q is empty", scene.PSDTermsFile))
			os.Exit(7)
		}
		scene.PSDTerms = append(scene.PSDTerms, terms...)
	}

	if scene.NPix < 10 {
		fmt.Println(fmt.Errorf("\n\tThe grid must be at least 10 pixels wide"))
		os.Exit(8)
	}

	fmt.Printf("\nVersion %s\n\n", version)

	grid := wfe.SamplingGrid{
		Npix:       scene.NPix,
		PixelScale: scene.PixelScaleM,
		Wavelength: scene.WavelengthNm * 1e-9,
	}
	fmt.Printf("Grid: %d x %d at %0.6f m/pixel\n", grid.Npix, grid.Npix, grid.PixelScale)

	source, err := buildSource(&scene)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not build the %q error source: %w", scene.Kind, err))
		os.Exit(9)
	}

	start := time.Now()
	opd, err := source.OPD(grid)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tOPD computation failed: %w", err))
		os.Exit(10)
	}
	fmt.Printf("OPD computation took %v\n", time.Since(start))

	var mask [][]float64
	if scene.RadiusM > 0 {
		mask = grid.CircularAperture(scene.RadiusM)
	}
	fmt.Printf("RMS wavefront error: %0.3f nm\n", wfe.RMS(opd, mask)*1e9)
	fmt.Printf("Peak-to-valley wavefront error: %0.3f nm\n", wfe.PeakToValley(opd, mask)*1e9)

	title := scene.Title
	if title == "" {
		title = fmt.Sprintf("OPD map (%s)", scene.Kind)
	}

	img, err := render.HeatMapImage(opd, grid.PixelScale, title, 800, 700)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not render the OPD map: %w", err))
		os.Exit(11)
	}
	if err := render.SaveHeatMapPNG("opd_map.png", opd, grid.PixelScale, title, 800, 700); err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not save opd_map.png: %w", err))
		os.Exit(12)
	}

	grayImg, err := render.OPDToGray16(opd)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not build the data image: %w", err))
		os.Exit(13)
	}
	if err := render.SaveGray16PNG("opd_data16bit.png", grayImg); err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not save opd_data16bit.png: %w", err))
		os.Exit(14)
	}
	fmt.Println("Saved opd_map.png and opd_data16bit.png")

	fmt.Printf("Total runtime %v\n", time.Since(programStart))

	display := canvas.NewImageFromImage(img)
	display.FillMode = canvas.ImageFillContain
	w.SetContent(container.NewStack(display))
	w.ShowAndRun()
}

// buildSource turns the validated scene into an error source. Lengths
// given in nanometers in the parameter file are converted to meters here;
// the core works in SI throughout.
func buildSource(scene *Scene) (wfe.ErrorSource, error) {
	var seed *int64
	if scene.SeedGiven {
		seed = &scene.Seed
	}

	switch scene.Kind {
	case "zernike":
		coefficients := make([]float64, len(scene.CoefficientsNm))
		for i, c := range scene.CoefficientsNm {
			coefficients[i] = c * 1e-9
		}
		return wfe.NewZernikeWFE(coefficients, scene.RadiusM, scene.ApertureStop)

	case "parameterized":
		coefficients := make([]float64, len(scene.CoefficientsNm))
		for i, c := range scene.CoefficientsNm {
			coefficients[i] = c * 1e-9
		}
		return wfe.NewParameterizedWFE(coefficients, scene.RadiusM, wfe.ZernikeBasis)

	case "sine":
		return wfe.NewSineWaveWFE(scene.SpatialFreqCyclesPerM, scene.AmplitudeNm*1e-9, scene.PhaseOffsetCycles)

	case "statistical":
		return wfe.NewStatisticalPSDWFE(scene.PowerLawIndex, scene.RmsNm*1e-9, scene.RadiusM, seed)

	case "power_spectrum":
		terms := make([]wfe.PSDTerm, len(scene.PSDTerms))
		for i, t := range scene.PSDTerms {
			// Surface heights in meters: the PSD carries m^4, so beta
			// carries m^(4-alpha) and the roughness floor m^4.
			terms[i] = wfe.PSDTerm{
				Alpha:         t[0],
				Beta:          wfe.Quantity{Value: t[1], Unit: wfe.Unit{Scale: 1, LengthExp: 4 - t[0]}},
				OuterScale:    t[2],
				InnerScale:    t[3],
				SurfRoughness: wfe.Quantity{Value: t[4], Unit: wfe.Unit{Scale: 1, LengthExp: 4}},
			}
		}
		return wfe.NewPowerSpectrumWFE(wfe.PowerSpectrumConfig{
			Terms:           terms,
			Weights:         scene.PSDWeights,
			Seed:            seed,
			ApplyReflection: scene.ApplyReflection,
			ScreenSize:      scene.ScreenSize,
			RMS:             scene.RmsNm * 1e-9,
			Radius:          scene.RadiusM,
			IncidentAngle:   scene.IncidentAngleDeg,
		})

	case "kolmogorov":
		var kind wfe.SpectrumKind
		switch scene.SpectrumKind {
		case "Kolmogorov", "":
			kind = wfe.Kolmogorov
		case "Tatarski":
			kind = wfe.Tatarski
		case "von Karman":
			kind = wfe.VonKarman
		case "Hill":
			kind = wfe.Hill
		default:
			return nil, fmt.Errorf("unrecognized spectrum kind %q", scene.SpectrumKind)
		}
		return wfe.NewKolmogorovWFE(wfe.KolmogorovConfig{
			R0:         scene.R0M,
			Cn2:        scene.Cn2,
			Dz:         scene.DzM,
			InnerScale: scene.InnerScaleM,
			OuterScale: scene.OuterScaleM,
			Kind:       kind,
			Seed:       seed,
		})
	}

	return nil, fmt.Errorf("unrecognized error source kind %q", scene.Kind)
}

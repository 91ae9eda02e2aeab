package wfe

// Hooks exposing internals to the external test package.
var (
	FFTFreq  = fftFreq
	FreqGrid = freqGrid
)

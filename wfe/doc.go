// Package wfe generates optical path difference (OPD) maps for physical
// sources of wavefront aberration: Zernike and parameterized basis
// expansions, sinusoidal ripples, statistical power-law polishing noise,
// multi-term von Karman power-spectral-density surface screens, and
// Kolmogorov-family atmospheric turbulence screens.
//
// Every error source is an immutable value constructed once and evaluated
// many times against a SamplingGrid. Evaluation is a pure function of
// (source, grid) except when a random seed is left unset, in which case
// stochastic sources draw a fresh screen on every call. All OPD values are
// in meters.
package wfe

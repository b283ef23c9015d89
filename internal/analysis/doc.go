// Package analysis finds periodic structure in recorded metric series.
//
// A stats run with the orbiting pointer drives the field periodically; the
// power spectrum of its link-count series shows that period:
//
//	s := analysis.NewSpectrum(series["links"])
//	period := s.DominantPeriod() // in frames
package analysis

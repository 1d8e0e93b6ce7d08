package cache

import "time"

// SolveKeyOpts are the solver settings that change a solve's result.
type SolveKeyOpts struct {
	Gap       float64       `json:"gap"`
	TimeLimit time.Duration `json:"time_limit"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SolveKey returns the key for the solution of the matrix with the
	// given content hash.
	SolveKey(matrixHash string, opts SolveKeyOpts) string
}

// DefaultKeyer produces keys of the form "solve:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SolveKey hashes the matrix hash with the solver settings.
func (DefaultKeyer) SolveKey(matrixHash string, opts SolveKeyOpts) string {
	return hashKey("solve", matrixHash, opts)
}

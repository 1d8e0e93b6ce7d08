package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePositive rejects values that are not finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative rejects values that are negative or not finite.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidateCount rejects integers below min.
func ValidateCount(name string, v, least int) error {
	if v < least {
		return New(ErrCodeInvalidConfig, "%s must be at least %d, got %d", name, least, v)
	}
	return nil
}

// ValidateFraction rejects values outside [0, 1).
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return New(ErrCodeInvalidConfig, "%s must be in [0, 1), got %g", name, v)
	}
	return nil
}

// ValidateOutputDir validates an artifact directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - No control characters or null bytes
//   - Cannot be the filesystem root
func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}
	for _, r := range dir {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid control characters")
		}
	}
	clean := filepath.Clean(dir)
	if clean == string(filepath.Separator) || filepath.VolumeName(clean)+string(filepath.Separator) == clean {
		return New(ErrCodeInvalidPath, "refusing to use filesystem root as output directory")
	}
	return nil
}

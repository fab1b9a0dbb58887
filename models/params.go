package models

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrInvalidParams = errors.New("invalid parameters")

// Param is one row of a parameter listing.
type Param struct {
	Name    string
	Value   float64
	Unit    string
	Derived bool
	// Signed inputs may be zero or negative.
	Signed bool
}

func (p Param) String() string {
	return fmt.Sprintf("%s = %g%s", p.Name, p.Value, p.Unit)
}

// ParamsHash fingerprints a parameter set so builds with identical inputs
// can be compared.
func ParamsHash(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8]), nil
}

func requirePositive(params []Param) error {
	var errs []error
	for _, p := range params {
		if p.Derived || p.Signed {
			continue
		}
		if p.Value <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, p.Name, p.Value))
		}
	}
	return errors.Join(errs...)
}

package sweep

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrZeroStep is returned for a range whose step would never reach stop.
	ErrZeroStep = errors.New("range step must not be zero")
	// ErrInvalidRange is returned when start, stop or step is not a finite number.
	ErrInvalidRange = errors.New("range bounds must be finite numbers")
	// ErrTooManyValues is returned when a range exceeds the caller's limit.
	ErrTooManyValues = errors.New("range produces too many values")
)

// Range is a half-open arithmetic sequence: Start, Start+Step, ... while < Stop.
// A negative Step walks downward while > Stop.
type Range struct {
	Start float64 `json:"start" yaml:"start" toml:"start"`
	Stop  float64 `json:"stop" yaml:"stop" toml:"stop"`
	Step  float64 `json:"step" yaml:"step" toml:"step"`
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g) step %g", r.Start, r.Stop, r.Step)
}

func (r Range) Validate() error {
	for _, v := range []float64{r.Start, r.Stop, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidRange, r)
		}
	}
	if r.Step == 0 {
		return fmt.Errorf("%w: %s", ErrZeroStep, r)
	}
	return nil
}

// Values returns every value of the range.
func (r Range) Values() ([]float64, error) {
	return r.ValuesLimit(0)
}

// ValuesLimit is Values with an upper bound on the number of values (0 = no bound).
//
// Values are produced by repeated addition, never by a closed-form count, so the
// accumulated floating point error decides whether a value close to Stop is
// emitted. (0.5, 0.96, 0.05) yields ten values ending at 0.9500000000000004.
func (r Range) ValuesLimit(max int) ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	var out []float64
	for v := r.Start; r.contains(v); v += r.Step {
		if max > 0 && len(out) >= max {
			return nil, fmt.Errorf("%w: %s exceeds %d", ErrTooManyValues, r, max)
		}
		// Step is below the resolution of v.
		if v+r.Step == v {
			return nil, fmt.Errorf("%w: %s stalls at %g", ErrZeroStep, r, v)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseRange reads "start:stop:step", the form used on the command line.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Range{}, fmt.Errorf("%w: %q is not start:stop:step", ErrInvalidRange, s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
		vals[i] = v
	}
	r := Range{Start: vals[0], Stop: vals[1], Step: vals[2]}
	return r, r.Validate()
}

func (r Range) contains(v float64) bool {
	if r.Step > 0 {
		return v < r.Stop
	}
	return v > r.Stop
}

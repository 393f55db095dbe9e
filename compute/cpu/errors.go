package cpu

import (
	"fmt"

	"github.com/voidcluster/dither/compute"
)

// errAllOneClass is returned when extrema is called on a pattern that is
// entirely one-valued or entirely zero-valued, a state callers must never
// reach (spec: "callers must never invoke the reducer in that state").
var errAllOneClass = fmt.Errorf("%w: pattern has no minority/majority split", compute.ErrBackendFailure)

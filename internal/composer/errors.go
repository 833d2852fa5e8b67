package composer

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/diagnostic"
)

// ValidationError is returned when a definition builds but fails validation.
type ValidationError struct {
	Target analyze.TypeID
	Log    *diagnostic.Log
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("composition of %s is invalid (%s)", e.Target.Short(), e.Log.Summary())
}

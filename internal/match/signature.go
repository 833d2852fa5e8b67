package match

import (
	"fmt"

	"mixin-composer/internal/analyze"
)

// SignatureResult explains a signature comparison.
type SignatureResult struct {
	Compatible bool
	Reason     string
}

func compatible() SignatureResult {
	return SignatureResult{Compatible: true, Reason: "signatures match"}
}

func incompatible(format string, args ...any) SignatureResult {
	return SignatureResult{Reason: fmt.Sprintf(format, args...)}
}

// SignatureChecker compares member shapes for override purposes. Parameter
// and result types are compared positionally and exactly; there is no
// variance. Names are not compared.
type SignatureChecker struct{}

// Methods compares two method signatures.
func (SignatureChecker) MethodsMatch(base, overrider *analyze.MethodInfo) SignatureResult {
	if base == nil || overrider == nil {
		return incompatible("missing method")
	}

	if len(base.Params) != len(overrider.Params) {
		return incompatible("parameter count differs: %d vs %d", len(base.Params), len(overrider.Params))
	}

	for i := range base.Params {
		if base.Params[i] != overrider.Params[i] {
			return incompatible("parameter %d differs: %s vs %s", i+1, base.Params[i], overrider.Params[i])
		}
	}

	if base.Result != overrider.Result {
		return incompatible("result differs: %s vs %s", resultString(base.Result), resultString(overrider.Result))
	}

	return compatible()
}

// Properties compares two properties by type and by their accessors. The
// overrider may implement a subset of the base accessors but not more.
func (c SignatureChecker) PropertiesMatch(base, overrider *analyze.PropertyInfo) SignatureResult {
	if base == nil || overrider == nil {
		return incompatible("missing property")
	}

	if base.Type != overrider.Type {
		return incompatible("property type differs: %s vs %s", base.Type, overrider.Type)
	}

	if r := c.accessor("get", base.Getter, overrider.Getter); !r.Compatible {
		return r
	}

	return c.accessor("set", base.Setter, overrider.Setter)
}

// Events compares two events by handler type and by their accessors.
func (c SignatureChecker) EventsMatch(base, overrider *analyze.EventInfo) SignatureResult {
	if base == nil || overrider == nil {
		return incompatible("missing event")
	}

	if base.Handler != overrider.Handler {
		return incompatible("event handler differs: %s vs %s", base.Handler, overrider.Handler)
	}

	if r := c.accessor("add", base.Adder, overrider.Adder); !r.Compatible {
		return r
	}

	return c.accessor("remove", base.Remover, overrider.Remover)
}

func (c SignatureChecker) accessor(name string, base, overrider *analyze.MethodInfo) SignatureResult {
	switch {
	case overrider == nil:
		return compatible()
	case base == nil:
		return incompatible("base has no %s accessor", name)
	}

	r := c.MethodsMatch(base, overrider)
	if !r.Compatible {
		r.Reason = name + " accessor: " + r.Reason
	}

	return r
}

func resultString(id analyze.TypeID) string {
	if id.IsZero() {
		return "<none>"
	}

	return id.String()
}

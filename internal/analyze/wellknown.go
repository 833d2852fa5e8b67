package analyze

// InfrastructurePkg is the package path of the attributes the engine itself
// interprets. Attributes from this package are never introduced.
const InfrastructurePkg = "mixins"

var (
	// AttrSuppressAttributes suppresses introduction of the attribute type named
	// by its first argument when contributed by another part of the composition.
	AttrSuppressAttributes = TypeID{PkgPath: InfrastructurePkg, Name: "SuppressAttributes"}
	// AttrNonIntroduced prevents a mixin from introducing the interface named by
	// its first argument.
	AttrNonIntroduced = TypeID{PkgPath: InfrastructurePkg, Name: "NonIntroduced"}
	// AttrAcceptsAlphabeticOrdering lets a mixin be ordered by name when
	// dependencies do not decide its position.
	AttrAcceptsAlphabeticOrdering = TypeID{PkgPath: InfrastructurePkg, Name: "AcceptsAlphabeticOrdering"}
)

// IsInfrastructure returns true for types the engine interprets itself.
func IsInfrastructure(id TypeID) bool {
	return id.PkgPath == InfrastructurePkg
}

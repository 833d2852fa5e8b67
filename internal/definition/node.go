package definition

//go:generate go tool stringer -type=NodeKind -linecomment -output=nodekind_string.go

// NodeKind identifies the concrete type of a Node.
type NodeKind int

const (
	KindUnknown                         NodeKind = iota // unknown
	KindTargetClass                                     // target class
	KindMixin                                           // mixin
	KindMethod                                          // method
	KindProperty                                        // property
	KindEvent                                           // event
	KindAttribute                                       // attribute
	KindRequiredTargetCallType                          // required target call type
	KindRequiredNextCallType                            // required next call type
	KindRequiredMixinType                               // required mixin type
	KindRequiredMethod                                  // required method
	KindThisDependency                                  // this dependency
	KindBaseDependency                                  // base dependency
	KindMixinDependency                                 // mixin dependency
	KindInterfaceIntroduction                           // interface introduction
	KindNonInterfaceIntroduction                        // non-introduced interface
	KindAttributeIntroduction                           // attribute introduction
	KindNonAttributeIntroduction                        // non-introduced attribute
	KindSuppressedAttributeIntroduction                 // suppressed attribute
)

// Node is any element of a definition graph. The set of implementations is
// closed.
type Node interface {
	// Kind returns the concrete node kind.
	Kind() NodeKind
	// Parent returns the owning node; nil for the target class.
	Parent() Node
	// FullName returns a readable path of the node within the composition.
	FullName() string

	accept(v Visitor) error
}

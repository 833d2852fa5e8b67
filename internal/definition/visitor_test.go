package definition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
)

// recorder implements every Visitor method and records the node kinds seen.
type recorder struct {
	kinds []NodeKind
}

func (r *recorder) rec(n Node) error {
	r.kinds = append(r.kinds, n.Kind())
	return nil
}

func (r *recorder) VisitTargetClass(t *TargetClassDefinition) error { return r.rec(t) }
func (r *recorder) VisitMixin(m *MixinDefinition) error             { return r.rec(m) }
func (r *recorder) VisitMethod(m *MethodDefinition) error           { return r.rec(m) }
func (r *recorder) VisitProperty(p *PropertyDefinition) error       { return r.rec(p) }
func (r *recorder) VisitEvent(e *EventDefinition) error             { return r.rec(e) }
func (r *recorder) VisitAttribute(a *AttributeDefinition) error     { return r.rec(a) }
func (r *recorder) VisitRequiredMethod(m *RequiredMethod) error     { return r.rec(m) }
func (r *recorder) VisitThisDependency(d *ThisDependency) error     { return r.rec(d) }
func (r *recorder) VisitBaseDependency(d *BaseDependency) error     { return r.rec(d) }
func (r *recorder) VisitMixinDependency(d *MixinDependency) error   { return r.rec(d) }
func (r *recorder) VisitInterfaceIntroduction(i *InterfaceIntroduction) error {
	return r.rec(i)
}

func (r *recorder) VisitRequiredTargetCallType(q *RequiredTargetCallType) error { return r.rec(q) }
func (r *recorder) VisitRequiredNextCallType(q *RequiredNextCallType) error     { return r.rec(q) }
func (r *recorder) VisitRequiredMixinType(q *RequiredMixinType) error           { return r.rec(q) }

func (r *recorder) VisitNonInterfaceIntroduction(i *NonInterfaceIntroduction) error {
	return r.rec(i)
}

func (r *recorder) VisitAttributeIntroduction(i *AttributeIntroduction) error {
	return r.rec(i)
}

func (r *recorder) VisitNonAttributeIntroduction(i *NonAttributeIntroduction) error {
	return r.rec(i)
}

func (r *recorder) VisitSuppressedAttributeIntroduction(i *SuppressedAttributeIntroduction) error {
	return r.rec(i)
}

func walkFixture(t *testing.T) *TargetClassDefinition {
	t.Helper()

	f := newFixture()
	f.attrType("X", analyze.AttributeUsage{})
	withMethods(f.iface("INotify"), method("Notify", none))
	f.iface("IBase")
	withMethods(f.class("Target"), method("Save", none)).Attributes = []analyze.AttributeInfo{attr("X")}

	a := withMethods(f.class("A", "INotify"), method("Notify", none))
	a.Attributes = []analyze.AttributeInfo{attr("X")}
	a.Requires.Base = []analyze.TypeID{tid("IBase")}

	f.class("B").Requires.This = []analyze.TypeID{tid("INotify")}

	return mustBuild(t, f, classcontext.New(tid("Target"),
		useMixin(tid("A")),
		useMixin(tid("B"), dependsOn(tid("A"))),
	))
}

func TestWalk_Order(t *testing.T) {
	def := walkFixture(t)

	var r recorder
	require.NoError(t, Walk(def, &r))

	assert.Equal(t, []NodeKind{
		KindTargetClass,
		KindAttribute, // Target@X
		KindMethod,    // Target.Save
		KindMixin,     // A
		KindAttribute, // A@X
		KindMethod,    // A.Notify
		KindInterfaceIntroduction,
		KindNonAttributeIntroduction, // A's X loses to Target's X
		KindBaseDependency,
		KindMixin, // B
		KindThisDependency,
		KindMixinDependency,
		KindRequiredTargetCallType, // INotify
		KindRequiredMethod,
		KindRequiredNextCallType, // IBase
		KindRequiredMixinType,    // A
	}, r.kinds)
}

func TestWalkFunc_StopsOnError(t *testing.T) {
	def := walkFixture(t)
	stop := errors.New("stop")

	var seen []string

	err := WalkFunc(def, func(n Node) error {
		seen = append(seen, n.FullName())
		if len(seen) == 3 {
			return stop
		}

		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Len(t, seen, 3)
	assert.Equal(t, "shop.Target", seen[0])
}

func TestWalk_ParentChain(t *testing.T) {
	def := walkFixture(t)

	require.NoError(t, WalkFunc(def, func(n Node) error {
		// Every node reaches the target through Parent.
		cur := n
		for cur.Parent() != nil {
			cur = cur.Parent()
		}

		assert.Same(t, def, cur, n.FullName())
		assert.NotEqual(t, "unknown", n.Kind().String())

		return nil
	}))
}

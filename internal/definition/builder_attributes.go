package definition

import (
	"mixin-composer/internal/analyze"
)

// suppression is a mixins.SuppressAttributes attribute and the attribute
// type it suppresses.
type suppression struct {
	attribute  *AttributeDefinition
	suppressed analyze.TypeID
}

// contribution is a mixin or mixin member contributing attributes.
type contribution struct {
	attributes *MultiCollection[analyze.TypeID, *AttributeDefinition]
	introducer *attributeIntroducer
}

// introduceAttributes decides the fate of every contributed attribute: onto
// the target class from mixins, and onto overridden target members from the
// overriding mixin members. Contributions are processed by MixinIndex.
func (b *builder) introduceAttributes() error {
	t := b.target
	suppressions := b.suppressions()

	classContributions := make([]contribution, 0, t.mixins.Len())
	for m := range t.mixins.All() {
		classContributions = append(classContributions, contribution{m.attributes, &m.attributeIntroducer})
	}

	err := introduceOnto(t, t.attributes, t.introducedAttributes, classContributions, suppressions)
	if err != nil {
		return err
	}

	for tm := range t.Members() {
		tb := tm.memberBase()

		var contribs []contribution

		for o := range tb.overrides.All() {
			if _, ok := o.DeclaringClass().(*MixinDefinition); !ok {
				continue
			}

			ob := o.memberBase()
			contribs = append(contribs, contribution{ob.attributes, &ob.attributeIntroducer})
		}

		if err := introduceOnto(tm, tb.attributes, tb.introduced, contribs, suppressions); err != nil {
			return err
		}
	}

	return nil
}

// suppressions collects the suppression attributes of the target and of all
// mixins.
func (b *builder) suppressions() []suppression {
	var result []suppression

	classes := []ClassDefinition{b.target}
	for m := range b.target.mixins.All() {
		classes = append(classes, m)
	}

	for _, c := range classes {
		for _, ad := range c.Attributes().Get(analyze.AttrSuppressAttributes) {
			result = append(result, suppression{
				attribute:  ad,
				suppressed: analyze.ResolveTypeRef(c.Type().PkgPath, ad.info.Arg(0)),
			})
		}
	}

	return result
}

// suppressorFor returns the suppression blocking ad. A class never
// suppresses its own attributes.
func suppressorFor(ad *AttributeDefinition, suppressions []suppression) *AttributeDefinition {
	for _, s := range suppressions {
		if s.suppressed == ad.Type() && s.attribute.DeclaringClass() != ad.DeclaringClass() {
			return s.attribute
		}
	}

	return nil
}

func introduceOnto(receiver Node, own *MultiCollection[analyze.TypeID, *AttributeDefinition],
	received *MultiCollection[analyze.TypeID, *AttributeIntroduction], contribs []contribution,
	suppressions []suppression) error {
	claimed := make(map[analyze.TypeID]*AttributeDefinition)

	for ad := range own.All() {
		if _, ok := claimed[ad.Type()]; !ok {
			claimed[ad.Type()] = ad
		}
	}

	for _, c := range contribs {
		for ad := range c.attributes.All() {
			if !ad.IsIntroducible() {
				continue
			}

			id := ad.Type()

			var err error

			if s := suppressorFor(ad, suppressions); s != nil {
				err = c.introducer.suppressedIntroductions.Add(id, &SuppressedAttributeIntroduction{
					attribute: ad, target: receiver, suppressor: s,
				})
			} else if first, ok := claimed[id]; ok && !ad.usage.AllowMultiple {
				err = c.introducer.nonAttributeIntroductions.Add(id, &NonAttributeIntroduction{
					attribute: ad, target: receiver, shadowedBy: first,
				})
			} else {
				intro := &AttributeIntroduction{attribute: ad, target: receiver}
				if err = c.introducer.attributeIntroductions.Add(id, intro); err == nil {
					err = received.Add(id, intro)
				}

				if !ok {
					claimed[id] = ad
				}
			}

			if err != nil {
				return authoring("introduce attribute", ad.FullName(), err)
			}
		}
	}

	return nil
}

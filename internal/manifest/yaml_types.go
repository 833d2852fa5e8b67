package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"mixin-composer/internal/common"
)

// File is the root of a manifest.
type File struct {
	Version      string        `yaml:"version"`
	Package      string        `yaml:"package,omitempty"`
	Types        []TypeDecl    `yaml:"types,omitempty"`
	Compositions []Composition `yaml:"compositions,omitempty"`
}

// TypeDecl declares a class or an interface.
type TypeDecl struct {
	Name string `yaml:"name"`
	// Package overrides File.Package for this type.
	Package    string          `yaml:"package,omitempty"`
	Kind       string          `yaml:"kind,omitempty"`
	Base       string          `yaml:"base,omitempty"`
	Implements StringOrArray   `yaml:"implements,omitempty"`
	Sealed     bool            `yaml:"sealed,omitempty"`
	Usage      StringOrArray   `yaml:"usage,omitempty"`
	Requires   RequiresDecl    `yaml:"requires,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty"`
	Methods    []MethodDecl    `yaml:"methods,omitempty"`
	Properties []PropertyDecl  `yaml:"properties,omitempty"`
	Events     []EventDecl     `yaml:"events,omitempty"`
}

// RequiresDecl lists the requirement types of a mixin.
type RequiresDecl struct {
	This StringOrArray `yaml:"this,omitempty"`
	Base StringOrArray `yaml:"base,omitempty"`
}

// AttributeDecl applies an attribute.
type AttributeDecl struct {
	Type string   `yaml:"type"`
	Args []string `yaml:"args,omitempty"`
}

// MethodDecl declares a method.
type MethodDecl struct {
	Name       string          `yaml:"name"`
	Params     []string        `yaml:"params,omitempty"`
	Result     string          `yaml:"result,omitempty"`
	Override   string          `yaml:"override,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty"`
}

// PropertyDecl declares a property. With neither Get nor Set, both
// accessors are declared.
type PropertyDecl struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Get        bool            `yaml:"get,omitempty"`
	Set        bool            `yaml:"set,omitempty"`
	Override   string          `yaml:"override,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty"`
}

// EventDecl declares an event with add and remove accessors.
type EventDecl struct {
	Name       string          `yaml:"name"`
	Handler    string          `yaml:"handler"`
	Override   string          `yaml:"override,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty"`
}

// Composition is one class context to resolve.
type Composition struct {
	Target             string        `yaml:"target"`
	ComposedInterfaces StringOrArray `yaml:"composed_interfaces,omitempty"`
	Mixins             []MixinDecl   `yaml:"mixins,omitempty"`
}

// MixinDecl is one mixin of a composition. Order is significant.
type MixinDecl struct {
	Type       string        `yaml:"type"`
	Kind       string        `yaml:"kind,omitempty"`
	DependsOn  StringOrArray `yaml:"depends_on,omitempty"`
	Alphabetic bool          `yaml:"alphabetic,omitempty"`
}

// Kind names used in manifests.
const (
	KindClass       = "class"
	KindInterface   = "interface"
	MixinExtending  = "extending"
	MixinUsed       = "used"
	OverrideTarget  = "target"
	OverrideMixin   = "mixin"
	UsageMultiple   = "multiple"
	UsageNonInherit = "noninheritable"
)

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise a list.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

package analyze

import (
	"fmt"
	"go/ast"
	"strings"

	"mixin-composer/internal/common"
)

const directivePrefix = "//mixin:"

// directive is one //mixin:<verb> <args...> comment line.
type directive struct {
	Verb string
	Args []string
}

// parseDirectives extracts //mixin: lines from a comment group.
// CommentGroup.Text drops directive comments, so the raw list is scanned.
func parseDirectives(doc *ast.CommentGroup) []directive {
	if doc == nil {
		return nil
	}

	var result []directive

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}

		fields := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(fields) == 0 {
			continue
		}

		result = append(result, directive{Verb: fields[0], Args: fields[1:]})
	}

	return result
}

// ResolveTypeRef resolves a type reference written in pkgPath, as found in
// directives and attribute arguments. A bare name refers to the current
// package, a name qualified by the current package alias too; anything else
// is a full "import/path.Name".
func ResolveTypeRef(pkgPath, ref string) TypeID {
	if !strings.Contains(ref, ".") {
		return TypeID{PkgPath: pkgPath, Name: ref}
	}

	id := ParseTypeID(ref)
	if id.PkgPath == common.PkgAlias(pkgPath) {
		id.PkgPath = pkgPath
	}

	return id
}

// applyTypeDirectives applies type-level directives:
//
//	//mixin:attr <Type> [args...]
//	//mixin:this <Type>
//	//mixin:base <Type>
//	//mixin:implements <Type>
//	//mixin:sealed
//	//mixin:usage multiple|noninheritable
func (a *Analyzer) applyTypeDirectives(info *TypeInfo) error {
	pkgPath := info.ID.PkgPath

	for _, d := range a.typeDirectives[info.ID] {
		switch d.Verb {
		case "attr":
			attr, err := attributeFromDirective(pkgPath, d)
			if err != nil {
				return err
			}

			info.Attributes = append(info.Attributes, attr)

		case "this", "base", "implements":
			if len(d.Args) != 1 {
				return fmt.Errorf("//mixin:%s takes exactly one type", d.Verb)
			}

			id := ResolveTypeRef(pkgPath, d.Args[0])

			switch d.Verb {
			case "this":
				info.Requires.This = append(info.Requires.This, id)
			case "base":
				info.Requires.Base = append(info.Requires.Base, id)
			default:
				info.Interfaces = append(info.Interfaces, id)
			}

		case "sealed":
			info.Sealed = true

		case "usage":
			for _, arg := range d.Args {
				switch arg {
				case "multiple":
					info.Usage.AllowMultiple = true
				case "noninheritable":
					info.Usage.NonInheritable = true
				default:
					return fmt.Errorf("unknown usage flag %q", arg)
				}
			}

		default:
			return fmt.Errorf("unknown directive //mixin:%s", d.Verb)
		}
	}

	return nil
}

// applyMethodDirectives applies method-level directives:
//
//	//mixin:override target|mixin
//	//mixin:attr <Type> [args...]
func (a *Analyzer) applyMethodDirectives(owner TypeID, m *MethodInfo) error {
	for _, d := range a.methodDirectives[owner][m.Name] {
		switch d.Verb {
		case "override":
			if len(d.Args) != 1 {
				return fmt.Errorf("//mixin:override takes target or mixin")
			}

			switch d.Args[0] {
			case "target":
				m.Override = OverrideTarget
			case "mixin":
				m.Override = OverrideMixin
			default:
				return fmt.Errorf("unknown override kind %q", d.Args[0])
			}

		case "attr":
			attr, err := attributeFromDirective(owner.PkgPath, d)
			if err != nil {
				return err
			}

			m.Attributes = append(m.Attributes, attr)

		default:
			return fmt.Errorf("unknown directive //mixin:%s", d.Verb)
		}
	}

	return nil
}

func attributeFromDirective(pkgPath string, d directive) (AttributeInfo, error) {
	if len(d.Args) == 0 {
		return AttributeInfo{}, fmt.Errorf("//mixin:attr needs an attribute type")
	}

	return AttributeInfo{
		Type: ResolveTypeRef(pkgPath, d.Args[0]),
		Args: append([]string(nil), d.Args[1:]...),
	}, nil
}

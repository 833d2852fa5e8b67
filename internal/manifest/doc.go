// Package manifest reads composition manifests: YAML files that declare types
// for hosts without Go sources, and the class contexts to resolve.
//
// # Schema Overview
//
//	version: "1"
//	package: example.com/shop      # default package for bare type names
//	types:
//	  - name: INotify
//	    kind: interface
//	    methods:
//	      - name: Notify
//	        params: [string]
//	  - name: Target
//	    sealed: true
//	  - name: M1
//	    implements: INotify
//	    requires:
//	      base: ITargetBase
//	    attributes:
//	      - type: mixins.NonIntroduced
//	        args: [INotify]
//	    methods:
//	      - name: Notify
//	        params: [string]
//	        override: target
//	compositions:
//	  - target: Target
//	    composed_interfaces: [INotify]
//	    mixins:
//	      - type: M2
//	        depends_on: M1
//	      - type: M1
//	        kind: used
//	        alphabetic: true
//
// # Type references
//
// A bare name refers to the manifest package (or the declaring type's own
// package), "alias.Name" to the same package by its last path element, and
// "import/path.Name" to any other package. Predeclared Go types such as
// string or error are taken as-is. Attribute arguments are kept verbatim and
// resolved by the engine relative to the declaring type.
//
// Kind defaults to class, mixin kind to extending.
package manifest

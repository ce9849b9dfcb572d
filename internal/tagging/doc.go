// Package tagging implements the tag expression language: parsing user
// input into canonical tag strings, splitting them into parts, rendering
// tags back into editable input, resolving references into predicates for
// a store, length validation and tag cloud font sizes.
//
// Everything here is pure. Configuration such as default namespaces,
// wildcards and limits is passed in by the caller.
package tagging

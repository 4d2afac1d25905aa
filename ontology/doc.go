// Package ontology defines the dialogue messages as owned Go values.
//
// Optional scalars and texts are pointers, optional sequences are slices
// where nil means absent and an empty slice means present but empty, and
// sum types are sealed interfaces. All types load from YAML, which is how
// fixtures are written.
package ontology

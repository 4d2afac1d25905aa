// Package nlu holds the boundary codecs of intent classification results
// and slots.
//
// A slot value is a tagged union {value ptr, value_type u32}. Text-shaped
// kinds point straight at the text, numeric kinds at a boxed 8-byte
// scalar, and the structured kinds at their own records.
package nlu

// Package dialogue holds the boundary codecs of the dialogue messages.
//
// Each message is a flat record of pointers and scalars. Optional texts
// and lists are null when absent; the session init and termination
// unions are embedded by value as a u32 discriminant followed by a
// payload pointer.
package dialogue

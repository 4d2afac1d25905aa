// Package abi provides internal utilities shared by the boundary codecs:
// alignment arithmetic, overflow-checked size computation and the safety
// limits applied while scanning foreign memory.
//
// This package is internal to hermes-abi.
package abi

// Package util provides generic helpers shared across envguard packages.
//
// It includes slice and map operations, human-readable size parsing,
// secret masking and env value sanitizing.
package util

// Package wren reorders C type declarations recovered from decompiled headers
// so that any requested type can be re-declared standalone.
package wren

// Version is the current wren release.
const Version = "0.1.0"

// Package syntax wraps the tree-sitter C++ grammar behind a small Node
// interface and a closed set of node kinds.
//
// Code that walks declarations switches on Kind instead of grammar strings.
// MemNode builds trees by hand for tests.
package syntax

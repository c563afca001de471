// Package repository holds the sentinel errors every storage backend returns.
// The repository interfaces themselves are declared next to their consumers
// in the domain packages; mocks for them live in repository/mocks.
package repository

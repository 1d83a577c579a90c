// Package tcgaexpr holds the I/O helpers shared by the expression tools under
// cmd/: opening local or gs:// inputs, sniffing compression and delimiters,
// and reading identifier lists.
package tcgaexpr

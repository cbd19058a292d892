// Package txtfile wraps a plain text file: whole-file reads and writes, a
// buffered body that can be written back in a fixed number of chunks, and
// charset and MIME probes.
package txtfile

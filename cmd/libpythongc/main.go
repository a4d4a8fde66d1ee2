// Package main builds the c-shared library carrying the py_gc_* ABI.
// Every export is a thin conversion over api/cabi; no logic lives
// here.
package main

func main() {}

package main

/*
#include "abi.h"

static void pygc_invoke_finalizer_hook(gc_finalizer_hook_t fn, void* addr) {
	fn(addr);
}
*/
import "C"

import "unsafe"

// invokeFinalizerHook calls the host's function pointer through the C
// trampoline above; Go cannot call C function pointers directly.
func invokeFinalizerHook(fn C.gc_finalizer_hook_t, addr uintptr) {
	C.pygc_invoke_finalizer_hook(fn, unsafe.Pointer(addr))
}

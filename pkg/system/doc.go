// Package system is the platform layer of the wireline IPC library.
//
// Every OS-touching operation the protocol engine needs (sleep, pipes,
// descriptor I/O, descriptor-passing messages, process spawn and reap,
// socket primitives) goes through a Context. The Context dispatches each
// call either to a caller-installed hook table or to the built-in default
// implementation for the platform. Default-path calls are surrounded by a
// process-wide pre/post-syscall bracket so that an embedding scheduler can
// observe when a thread is about to block.
//
// Architecture Overview:
//
// Platform implementations:
// - Linux/Darwin: raw syscalls through golang.org/x/sys/unix
// - Others (Windows, etc.): stubs that return ErrUnsupported
//
// Design:
// 1. Hooks: versioned table of optional operation overrides, split into
//    capability components (BaseHooks, SocketHooks)
// 2. MergeHooks: pure merge of a caller table over a base table,
//    version-gated per component
// 3. Build-constrained default implementations selected at compile time
//
// A Context is not safe for concurrent use; confine it to one logical
// flow of control or serialize externally. Separate Contexts are fully
// independent.
package system

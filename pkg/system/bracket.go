package system

import "sync/atomic"

// The syscall bracket is the single concurrency integration seam of this
// layer. An embedding scheduler registers a pre/post pair; the pre
// function runs immediately before every default-path blocking call and
// the post function immediately after it returns, error paths included.
// Calls dispatched to installed hooks are not bracketed; a hook owns its
// own blocking semantics.

type syscallBracket struct {
	pre  func()
	post func()
}

var bracket atomic.Pointer[syscallBracket]

// SetSyscallBracket registers the notification pair. Either function may
// be nil. Passing nil for both removes the bracket.
func SetSyscallBracket(pre, post func()) {
	if pre == nil && post == nil {
		bracket.Store(nil)
		return
	}
	bracket.Store(&syscallBracket{pre: pre, post: post})
}

// beginSyscall snapshots the registered pair and fires pre. The returned
// value must be handed to endSyscall so the post notification matches the
// pre even when the bracket is swapped mid-call.
func beginSyscall() *syscallBracket {
	b := bracket.Load()
	if b != nil && b.pre != nil {
		b.pre()
	}
	return b
}

func endSyscall(b *syscallBracket) {
	if b != nil && b.post != nil {
		b.post()
	}
}

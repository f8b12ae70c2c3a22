package system

// AtForkFunc runs in the child's context between process creation and the
// exec of the target image, when the platform exposes such a window. The
// Go runtime performs fork and exec as one primitive, so on the built-in
// implementation the callback is a documented no-op; it is carried for
// hook implementations that do have a post-fork window.
type AtForkFunc func(opaque any)

// SpawnFlags adjust child creation.
type SpawnFlags uint

const (
	// SpawnDetached starts the child in its own session so it outlives
	// the parent's controlling terminal.
	SpawnDetached SpawnFlags = 1 << iota
)

// SpawnOptions describes a child process.
//
// Stdin and Stdout are positioned as the child's standard input and
// output; InvalidFd substitutes the null device. InheritFds are not
// remapped: each listed descriptor appears to the child at the same
// identity, and the caller must have marked it inheritable beforehand.
// The parent still owns its copies of the listed descriptors and must
// close them after a successful spawn.
//
// When Name is empty, Argv[0] is used both as the exec image and for
// identification; callers should normally supply Name.
type SpawnOptions struct {
	Name        string
	Argv        []string
	Stdin       Fd
	Stdout      Fd
	InheritFds  []Fd
	AtFork      AtForkFunc
	AtForkValue any
	Flags       SpawnFlags
}

func (o *SpawnOptions) execName() string {
	if o.Name != "" {
		return o.Name
	}
	if len(o.Argv) > 0 {
		return o.Argv[0]
	}
	return ""
}

// ReapMode selects the wait behavior of WaitPID.
type ReapMode int

const (
	// ReapBlock waits until the child terminates.
	ReapBlock ReapMode = iota
	// ReapPoll returns ErrStillRunning when the child has not
	// terminated yet.
	ReapPoll
	// ReapDetach records that the child's status was already consumed
	// elsewhere; no wait is performed.
	ReapDetach
)

// WaitStatus is a terminated child's status.
type WaitStatus struct {
	ExitCode int
	Signaled bool
	Signal   int
}

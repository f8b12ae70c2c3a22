package system

// Fd is a platform-opaque handle to an open I/O resource: a pipe end, a
// socket, or a descriptor tracked for child inheritance. The creator owns
// it until it is closed through this layer. Descriptors placed in a spawn
// inheritance list are copied into the child at spawn time; the parent's
// handle must still be closed by the parent afterwards.
type Fd int

// InvalidFd marks an absent descriptor, e.g. an unused stdio slot in
// SpawnOptions.
const InvalidFd Fd = -1

// Pid identifies a spawned child process from a successful Spawn until a
// successful blocking reap. Reaping the same handle twice is caller error.
type Pid int

package system

import "sync"

// Hook table versions. Version 0 means no hooks are installed and every
// operation takes the bracketed default path. Version 1 introduced the
// base operation set, version 2 added the socket component.
const (
	HooksVersion       = 2
	hooksVersionBase   = 1
	hooksVersionSocket = 2
)

// BaseHooks are the version-1 operation slots. A nil slot in an installed
// table falls through to the default implementation.
type BaseHooks struct {
	USleep     func(c *Context, usec uint)
	Pipe       func(c *Context, inheritIdx int) ([2]Fd, error)
	Close      func(c *Context, fd Fd) error
	Read       func(c *Context, fd Fd, p []byte) (int, error)
	Write      func(c *Context, fd Fd, p []byte) (int, error)
	Sendmsg    func(c *Context, fd Fd, msg *Msghdr, flags int) (int, error)
	Recvmsg    func(c *Context, fd Fd, msg *Msghdr, flags int) (int, error)
	Spawn      func(c *Context, opts *SpawnOptions) (Pid, error)
	WaitPID    func(c *Context, pid Pid, mode ReapMode, options int) (WaitStatus, error)
	Socketpair func(c *Context, domain, typ, proto int) ([2]Fd, error)
}

// SocketHooks are the version-2 operation slots.
type SocketHooks struct {
	Socket  func(c *Context, domain, typ, proto int) (Fd, error)
	Connect func(c *Context, fd Fd, addr Addr) error
}

// Hooks is a versioned table of optional operation overrides. Slots are
// grouped into capability components so that tables built against a newer
// library revision degrade to "unknown component ignored" rather than a
// corrupted copy.
type Hooks struct {
	Version int
	Base    BaseHooks
	Socket  SocketHooks
}

var defaultHooksOnce = sync.OnceValue(func() *Hooks {
	return &Hooks{
		Version: HooksVersion,
		Base: BaseHooks{
			USleep:     func(c *Context, usec uint) { sysUsleep(usec) },
			Pipe:       func(c *Context, inheritIdx int) ([2]Fd, error) { return sysPipe(inheritIdx) },
			Close:      func(c *Context, fd Fd) error { return sysClose(fd) },
			Read:       func(c *Context, fd Fd, p []byte) (int, error) { return sysRead(fd, p) },
			Write:      func(c *Context, fd Fd, p []byte) (int, error) { return sysWrite(fd, p) },
			Sendmsg:    func(c *Context, fd Fd, msg *Msghdr, flags int) (int, error) { return sysSendmsg(fd, msg, flags) },
			Recvmsg:    func(c *Context, fd Fd, msg *Msghdr, flags int) (int, error) { return sysRecvmsg(fd, msg, flags) },
			Spawn:      func(c *Context, opts *SpawnOptions) (Pid, error) { return sysSpawn(opts) },
			WaitPID:    func(c *Context, pid Pid, mode ReapMode, options int) (WaitStatus, error) { return sysWaitPID(pid, mode, options) },
			Socketpair: func(c *Context, domain, typ, proto int) ([2]Fd, error) { return sysSocketpair(domain, typ, proto) },
		},
		Socket: SocketHooks{
			Socket:  func(c *Context, domain, typ, proto int) (Fd, error) { return sysSocket(domain, typ, proto) },
			Connect: func(c *Context, fd Fd, addr Addr) error { return sysConnect(fd, addr) },
		},
	}
})

// DefaultHooks returns the process-wide default table: a fully populated
// table at the current version whose slots invoke the built-in platform
// implementation. It is constructed once and must never be mutated or
// used as a merge destination; MergeHooks always returns a fresh table.
func DefaultHooks() *Hooks {
	return defaultHooksOnce()
}

// MergeHooks merges override into a copy of base and returns the result.
// base is usually DefaultHooks(). A nil override returns an unchanged
// copy of base. Otherwise the merged table reports HooksVersion, the base
// component is taken from override when it declares version >= 1, and the
// socket component when it declares version >= 2. Components beyond this
// library's known set, implied by a version above HooksVersion, are
// ignored.
func MergeHooks(base, override *Hooks) *Hooks {
	merged := *base
	if override == nil {
		return &merged
	}
	merged.Version = HooksVersion
	if override.Version >= hooksVersionBase {
		merged.Base = override.Base
	}
	if override.Version >= hooksVersionSocket {
		merged.Socket = override.Socket
	}
	return &merged
}

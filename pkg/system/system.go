package system

import (
	"go.uber.org/zap"
)

// Dispatch rules: a context whose table reports version 0 has no hooks
// installed, and every call runs the built-in implementation inside the
// syscall bracket. Once a table is installed the merged slots are called
// directly and unbracketed, including slots the merge filled from the
// default table. A nil slot in an installed table falls back to the
// bracketed default path.

func (c *Context) hooked() bool {
	return c.hooks.Version != 0
}

func (c *Context) socketHooked() bool {
	return c.hooks.Version >= hooksVersionSocket
}

// USleep yields for the given number of microseconds.
func (c *Context) USleep(usec uint) {
	c.trace.Debug("usleep", zap.Uint("usec", usec))
	if c.hooked() && c.hooks.Base.USleep != nil {
		c.hooks.Base.USleep(c, usec)
		return
	}
	b := beginSyscall()
	sysUsleep(usec)
	endSyscall(b)
}

// Pipe creates a pipe and returns its read and write ends. Exactly one
// end, selected by inheritIdx (0 for the read end, 1 for the write end),
// is left inheritable by a subsequently spawned child; the other end
// never leaks across a spawn.
func (c *Context) Pipe(inheritIdx int) ([2]Fd, error) {
	var (
		fds [2]Fd
		err error
	)
	if c.hooked() && c.hooks.Base.Pipe != nil {
		fds, err = c.hooks.Base.Pipe(c, inheritIdx)
	} else {
		b := beginSyscall()
		fds, err = sysPipe(inheritIdx)
		endSyscall(b)
	}
	if err != nil {
		c.trace.Debug("pipe failed", zap.Int("inheritIdx", inheritIdx), zap.Error(err))
		return fds, err
	}
	c.trace.Debug("pipe",
		zap.Int("inheritIdx", inheritIdx),
		zap.Int("read", int(fds[0])),
		zap.Int("write", int(fds[1])))
	return fds, nil
}

// Close releases a descriptor obtained from Pipe, Socketpair or Socket.
// Closing a descriptor twice is caller error.
func (c *Context) Close(fd Fd) error {
	c.trace.Debug("close", zap.Int("fd", int(fd)))
	if c.hooked() && c.hooks.Base.Close != nil {
		return c.hooks.Base.Close(c, fd)
	}
	b := beginSyscall()
	err := sysClose(fd)
	endSyscall(b)
	return err
}

// CloseInheritable is Close for the inheritable end of a pipe. The
// parent calls it after a spawn; the child's inherited copy is not
// affected.
func (c *Context) CloseInheritable(fd Fd) error {
	c.trace.Debug("close inheritable", zap.Int("fd", int(fd)))
	if c.hooked() && c.hooks.Base.Close != nil {
		return c.hooks.Base.Close(c, fd)
	}
	b := beginSyscall()
	err := sysClose(fd)
	endSyscall(b)
	return err
}

// Read performs at most one transfer attempt and returns the byte count.
// Callers loop on partial reads.
func (c *Context) Read(fd Fd, p []byte) (int, error) {
	if c.hooked() && c.hooks.Base.Read != nil {
		return c.hooks.Base.Read(c, fd, p)
	}
	b := beginSyscall()
	n, err := sysRead(fd, p)
	endSyscall(b)
	return n, err
}

// Write performs at most one transfer attempt and returns the byte
// count. Callers loop on partial writes.
func (c *Context) Write(fd Fd, p []byte) (int, error) {
	if c.hooked() && c.hooks.Base.Write != nil {
		return c.hooks.Base.Write(c, fd, p)
	}
	b := beginSyscall()
	n, err := sysWrite(fd, p)
	endSyscall(b)
	return n, err
}

// Sendmsg transmits msg's data and control payload as one atomic unit.
func (c *Context) Sendmsg(fd Fd, msg *Msghdr, flags int) (int, error) {
	c.trace.Debug("sendmsg",
		zap.Int("fd", int(fd)),
		zap.Int("data", len(msg.Data)),
		zap.Int("control", len(msg.Control)),
		zap.Int("flags", flags))
	if c.hooked() && c.hooks.Base.Sendmsg != nil {
		return c.hooks.Base.Sendmsg(c, fd, msg, flags)
	}
	b := beginSyscall()
	n, err := sysSendmsg(fd, msg, flags)
	endSyscall(b)
	return n, err
}

// Recvmsg receives one message into msg. A clean peer close is reported
// as ErrChannelClosed, distinct from transfer failures.
func (c *Context) Recvmsg(fd Fd, msg *Msghdr, flags int) (int, error) {
	var (
		n   int
		err error
	)
	if c.hooked() && c.hooks.Base.Recvmsg != nil {
		n, err = c.hooks.Base.Recvmsg(c, fd, msg, flags)
	} else {
		b := beginSyscall()
		n, err = sysRecvmsg(fd, msg, flags)
		endSyscall(b)
	}
	if err != nil {
		return n, err
	}
	if n == 0 && len(msg.Control) == 0 {
		return 0, ErrChannelClosed
	}
	if fds, info, derr := msg.Rights(); derr == nil && info.Len > 0 {
		c.trace.Debug("recvmsg control",
			zap.Int("fd", int(fd)),
			zap.Int("cmsgLen", info.Len),
			zap.Int("cmsgLevel", info.Level),
			zap.Int("cmsgType", info.Type),
			zap.Int("rights", len(fds)))
	}
	return n, nil
}

// Spawn creates a child process running opts.Name with opts.Argv, its
// standard input and output positioned on opts.Stdin and opts.Stdout and
// the descriptors in opts.InheritFds visible at unchanged identity. On
// failure no partial child is left running.
func (c *Context) Spawn(opts *SpawnOptions) (Pid, error) {
	c.trace.Debug("spawn",
		zap.String("name", opts.execName()),
		zap.Strings("argv", opts.Argv),
		zap.Int("stdin", int(opts.Stdin)),
		zap.Int("stdout", int(opts.Stdout)),
		zap.Ints("inherit", fdInts(opts.InheritFds)),
		zap.Uint("flags", uint(opts.Flags)))
	var (
		pid Pid
		err error
	)
	if c.hooked() && c.hooks.Base.Spawn != nil {
		pid, err = c.hooks.Base.Spawn(c, opts)
	} else {
		b := beginSyscall()
		pid, err = sysSpawn(opts)
		endSyscall(b)
	}
	if err != nil {
		return pid, err
	}
	c.trace.Debug("spawned", zap.String("name", opts.execName()), zap.Int("pid", int(pid)))
	return pid, nil
}

// WaitPID retrieves a child's termination status according to mode.
// Under ReapPoll a still-running child yields ErrStillRunning. Reaping a
// handle twice is caller error.
func (c *Context) WaitPID(pid Pid, mode ReapMode, options int) (WaitStatus, error) {
	c.trace.Debug("waitpid", zap.Int("pid", int(pid)), zap.Int("mode", int(mode)))
	if c.hooked() && c.hooks.Base.WaitPID != nil {
		return c.hooks.Base.WaitPID(c, pid, mode, options)
	}
	b := beginSyscall()
	st, err := sysWaitPID(pid, mode, options)
	endSyscall(b)
	return st, err
}

// Socketpair creates a connected pair of local sockets.
func (c *Context) Socketpair(domain, typ, proto int) ([2]Fd, error) {
	var (
		fds [2]Fd
		err error
	)
	if c.hooked() && c.hooks.Base.Socketpair != nil {
		fds, err = c.hooks.Base.Socketpair(c, domain, typ, proto)
	} else {
		b := beginSyscall()
		fds, err = sysSocketpair(domain, typ, proto)
		endSyscall(b)
	}
	if err != nil {
		return fds, err
	}
	c.trace.Debug("socketpair", zap.Int("fd0", int(fds[0])), zap.Int("fd1", int(fds[1])))
	return fds, nil
}

// Socket creates a socket. The hook slot is honored only for tables that
// declare the socket component (version >= 2).
func (c *Context) Socket(domain, typ, proto int) (Fd, error) {
	c.trace.Debug("socket",
		zap.Int("domain", domain), zap.Int("type", typ), zap.Int("proto", proto))
	if c.socketHooked() && c.hooks.Socket.Socket != nil {
		return c.hooks.Socket.Socket(c, domain, typ, proto)
	}
	b := beginSyscall()
	fd, err := sysSocket(domain, typ, proto)
	endSyscall(b)
	return fd, err
}

// Connect connects a socket to addr. The hook slot is honored only for
// tables that declare the socket component (version >= 2).
func (c *Context) Connect(fd Fd, addr Addr) error {
	c.trace.Debug("connect", zap.Int("fd", int(fd)), zap.String("addr", addrString(addr)))
	if c.socketHooked() && c.hooks.Socket.Connect != nil {
		return c.hooks.Socket.Connect(c, fd, addr)
	}
	b := beginSyscall()
	err := sysConnect(fd, addr)
	endSyscall(b)
	return err
}

func addrString(addr Addr) string {
	if addr == nil {
		return ""
	}
	return addr.Network() + "!" + addr.String()
}

func fdInts(fds []Fd) []int {
	out := make([]int, len(fds))
	for i, fd := range fds {
		out[i] = int(fd)
	}
	return out
}

//go:build linux || darwin

package system

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Built-in POSIX implementation. These functions are reached either
// through the bracketed default path of the dispatch layer or through
// the slots of the process-wide default table.

func sysPipe(inheritIdx int) ([2]Fd, error) {
	none := [2]Fd{InvalidFd, InvalidFd}
	if inheritIdx != 0 {
		inheritIdx = 1
	}
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return none, sysErr("pipe", err)
	}
	// Only the selected end may survive an exec.
	unix.CloseOnExec(p[1-inheritIdx])
	return [2]Fd{Fd(p[0]), Fd(p[1])}, nil
}

func sysClose(fd Fd) error {
	if err := unix.Close(int(fd)); err != nil {
		return sysErr("close", err)
	}
	return nil
}

func sysRead(fd Fd, p []byte) (int, error) {
	n, err := unix.Read(int(fd), p)
	if err != nil {
		return 0, sysErr("read", err)
	}
	return n, nil
}

func sysWrite(fd Fd, p []byte) (int, error) {
	n, err := unix.Write(int(fd), p)
	if err != nil {
		return 0, sysErr("write", err)
	}
	return n, nil
}

func sysSendmsg(fd Fd, msg *Msghdr, flags int) (int, error) {
	n, err := unix.SendmsgN(int(fd), msg.Data, msg.Control, nil, flags)
	if err != nil {
		return 0, sysErr("sendmsg", err)
	}
	return n, nil
}

func sysRecvmsg(fd Fd, msg *Msghdr, flags int) (int, error) {
	n, oobn, recvflags, _, err := unix.Recvmsg(int(fd), msg.Data, msg.Control, flags)
	if err != nil {
		return 0, sysErr("recvmsg", err)
	}
	msg.Control = msg.Control[:oobn]
	msg.RecvFlags = recvflags
	return n, nil
}

func sysSpawn(o *SpawnOptions) (Pid, error) {
	name := o.execName()
	if name == "" {
		return -1, &SpawnError{Err: errors.New("no program name")}
	}
	argv := o.Argv
	if len(argv) == 0 {
		argv = []string{name}
	}

	// InvalidFd stdio slots read from / write to the null device.
	var opened []int
	stdin := int(o.Stdin)
	if o.Stdin == InvalidFd {
		fd, err := unix.Open(os.DevNull, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			return -1, &SpawnError{Name: name, Err: err}
		}
		opened = append(opened, fd)
		stdin = fd
	}
	stdout := int(o.Stdout)
	if o.Stdout == InvalidFd {
		fd, err := unix.Open(os.DevNull, unix.O_WRONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			for _, f := range opened {
				unix.Close(f)
			}
			return -1, &SpawnError{Name: name, Err: err}
		}
		opened = append(opened, fd)
		stdout = fd
	}

	// o.AtFork is not invoked: the Go runtime exposes no window between
	// fork and exec. Descriptors in o.InheritFds need no handling here;
	// the caller marked them inheritable and the exec drops only
	// close-on-exec descriptors, so they reach the child at unchanged
	// identity.
	attr := &syscall.ProcAttr{
		Env:   syscall.Environ(),
		Files: []uintptr{uintptr(stdin), uintptr(stdout), 2},
		Sys:   &syscall.SysProcAttr{},
	}
	if o.Flags&SpawnDetached != 0 {
		attr.Sys.Setsid = true
	}

	pid, _, err := syscall.StartProcess(name, argv, attr)
	for _, f := range opened {
		unix.Close(f)
	}
	if err != nil {
		return -1, &SpawnError{Name: name, Err: err}
	}
	return Pid(pid), nil
}

func sysWaitPID(pid Pid, mode ReapMode, options int) (WaitStatus, error) {
	switch mode {
	case ReapDetach:
		// Status was consumed elsewhere; bookkeeping only.
		return WaitStatus{}, nil
	case ReapPoll:
		options |= unix.WNOHANG
	}
	var ws unix.WaitStatus
	got, err := unix.Wait4(int(pid), &ws, options, nil)
	if err != nil {
		return WaitStatus{}, sysErr("waitpid", err)
	}
	if got == 0 {
		return WaitStatus{}, ErrStillRunning
	}
	st := WaitStatus{}
	if ws.Exited() {
		st.ExitCode = ws.ExitStatus()
	}
	if ws.Signaled() {
		st.Signaled = true
		st.Signal = int(ws.Signal())
	}
	return st, nil
}

func sysSocketpair(domain, typ, proto int) ([2]Fd, error) {
	p, err := unix.Socketpair(domain, typ, proto)
	if err != nil {
		return [2]Fd{InvalidFd, InvalidFd}, sysErr("socketpair", err)
	}
	return [2]Fd{Fd(p[0]), Fd(p[1])}, nil
}

func sysSocket(domain, typ, proto int) (Fd, error) {
	fd, err := unix.Socket(domain, typ, proto)
	if err != nil {
		return InvalidFd, sysErr("socket", err)
	}
	return Fd(fd), nil
}

func sysConnect(fd Fd, addr Addr) error {
	sa, err := unixSockaddr(addr)
	if err != nil {
		return err
	}
	if err := unix.Connect(int(fd), sa); err != nil {
		return sysErr("connect", err)
	}
	return nil
}

func unixSockaddr(addr Addr) (unix.Sockaddr, error) {
	switch a := addr.(type) {
	case *UnixAddr:
		return &unix.SockaddrUnix{Name: a.Name}, nil
	case *Inet4Addr:
		return &unix.SockaddrInet4{Port: a.Port, Addr: a.Addr}, nil
	default:
		return nil, sysErr("connect", errors.New("unknown address type"))
	}
}

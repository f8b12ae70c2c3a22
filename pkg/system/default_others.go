//go:build !linux && !darwin

package system

// Stub implementation for platforms without a built-in backend. Every
// operation reports ErrUnsupported; an embedding application supplies
// its platform behavior through InstallHooks.

func sysPipe(int) ([2]Fd, error) {
	return [2]Fd{InvalidFd, InvalidFd}, ErrUnsupported
}

func sysClose(Fd) error {
	return ErrUnsupported
}

func sysRead(Fd, []byte) (int, error) {
	return 0, ErrUnsupported
}

func sysWrite(Fd, []byte) (int, error) {
	return 0, ErrUnsupported
}

func sysSendmsg(Fd, *Msghdr, int) (int, error) {
	return 0, ErrUnsupported
}

func sysRecvmsg(Fd, *Msghdr, int) (int, error) {
	return 0, ErrUnsupported
}

func sysSpawn(*SpawnOptions) (Pid, error) {
	return -1, &SpawnError{Err: ErrUnsupported}
}

func sysWaitPID(Pid, ReapMode, int) (WaitStatus, error) {
	return WaitStatus{}, ErrUnsupported
}

func sysSocketpair(int, int, int) ([2]Fd, error) {
	return [2]Fd{InvalidFd, InvalidFd}, ErrUnsupported
}

func sysSocket(int, int, int) (Fd, error) {
	return InvalidFd, ErrUnsupported
}

func sysConnect(Fd, Addr) error {
	return ErrUnsupported
}

// ControlBuffer has no meaningful size without a platform codec.
func ControlBuffer(int) []byte {
	return nil
}

func encodeRights([]Fd) []byte {
	return nil
}

func decodeRights([]byte) ([]Fd, ControlInfo, error) {
	return nil, ControlInfo{}, ErrUnsupported
}

//go:build linux || darwin

package system

import "golang.org/x/sys/unix"

// ControlBuffer returns a receive control buffer sized for a rights
// block carrying nfds descriptors. Pass it as Msghdr.Control before
// Recvmsg.
func ControlBuffer(nfds int) []byte {
	return make([]byte, unix.CmsgSpace(nfds*4))
}

func encodeRights(fds []Fd) []byte {
	ints := make([]int, len(fds))
	for i, fd := range fds {
		ints[i] = int(fd)
	}
	return unix.UnixRights(ints...)
}

func decodeRights(control []byte) ([]Fd, ControlInfo, error) {
	msgs, err := unix.ParseSocketControlMessage(control)
	if err != nil {
		return nil, ControlInfo{}, sysErr("cmsg", err)
	}
	if len(msgs) == 0 {
		return nil, ControlInfo{}, nil
	}
	// Only the first block is decoded; further blocks in the same
	// message are left to the caller's protocol.
	m := msgs[0]
	info := ControlInfo{
		Len:   int(m.Header.Len),
		Level: int(m.Header.Level),
		Type:  int(m.Header.Type),
	}
	if m.Header.Level != unix.SOL_SOCKET || m.Header.Type != unix.SCM_RIGHTS {
		return nil, info, nil
	}
	ints, err := unix.ParseUnixRights(&m)
	if err != nil {
		return nil, info, sysErr("cmsg", err)
	}
	fds := make([]Fd, len(ints))
	for i, fd := range ints {
		fds[i] = Fd(fd)
	}
	return fds, info, nil
}

package system

// Msghdr is an ancillary message: one data buffer plus an optional
// control payload that can carry descriptors. Data and control travel as
// one atomic unit; a send never delivers one without the other.
//
// On send, Data and Control hold the outgoing payload. On receive, Data
// is the caller's buffer (filled up to the returned count), Control is
// the caller's control buffer (resliced to the received length, see
// ControlBuffer) and RecvFlags reports the message flags the OS returned.
type Msghdr struct {
	Data      []byte
	Control   []byte
	RecvFlags int
}

// ControlInfo describes the first control block of a received message.
// Level and Type must be checked before trusting the payload: only a
// rights block (SOL_SOCKET/SCM_RIGHTS on the default implementation)
// carries descriptors.
type ControlInfo struct {
	Len   int
	Level int
	Type  int
}

// RightsMessage builds a Msghdr carrying data plus the given descriptors
// in a single rights control block.
func RightsMessage(data []byte, fds ...Fd) *Msghdr {
	m := &Msghdr{Data: data}
	if len(fds) > 0 {
		m.Control = encodeRights(fds)
	}
	return m
}

// Rights decodes the first control block of a received message and
// returns the descriptors it carries. Additional control blocks in the
// same message are not inspected; callers needing more than one block
// per message must split across messages. A message without a control
// payload yields no descriptors and a zero ControlInfo.
//
// The block's level and type tags are validated against the platform's
// rights tags before the payload is interpreted; a first block of any
// other type returns the tags with no descriptors.
func (m *Msghdr) Rights() ([]Fd, ControlInfo, error) {
	if len(m.Control) == 0 {
		return nil, ControlInfo{}, nil
	}
	return decodeRights(m.Control)
}

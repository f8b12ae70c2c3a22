package system

import "fmt"

// Addr names a socket endpoint for Connect. Concrete types are UnixAddr
// and Inet4Addr; hook implementations may accept their own types.
type Addr interface {
	Network() string
	String() string
}

// UnixAddr is a local (unix-domain) socket path.
type UnixAddr struct {
	Name string
}

func (a *UnixAddr) Network() string { return "unix" }
func (a *UnixAddr) String() string  { return a.Name }

// Inet4Addr is an IPv4 endpoint.
type Inet4Addr struct {
	Addr [4]byte
	Port int
}

func (a *Inet4Addr) Network() string { return "tcp4" }

func (a *Inet4Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", a.Addr[0], a.Addr[1], a.Addr[2], a.Addr[3], a.Port)
}

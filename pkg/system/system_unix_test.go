//go:build linux || darwin

package system

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestPipeReadWriteRoundTrip(t *testing.T) {
	c := New()
	fds, err := c.Pipe(1)
	require.NoError(t, err)

	payload := []byte("over the line")
	n, err := c.Write(fds[1], payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	buf := make([]byte, 64)
	n, err = c.Read(fds[0], buf)
	require.NoError(t, err)
	assert.Equal(t, string(payload), string(buf[:n]))

	require.NoError(t, c.Close(fds[0]))
	require.NoError(t, c.CloseInheritable(fds[1]))
}

func TestPipeInheritableEnd(t *testing.T) {
	c := New()
	tests := []struct {
		name       string
		inheritIdx int
	}{
		{"read end inheritable", 0},
		{"write end inheritable", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fds, err := c.Pipe(tt.inheritIdx)
			require.NoError(t, err)
			defer c.Close(fds[0])
			defer c.Close(fds[1])

			for idx := 0; idx < 2; idx++ {
				flags, err := unix.FcntlInt(uintptr(fds[idx]), unix.F_GETFD, 0)
				require.NoError(t, err)
				if idx == tt.inheritIdx {
					assert.Zero(t, flags&unix.FD_CLOEXEC, "inheritable end must survive exec")
				} else {
					assert.NotZero(t, flags&unix.FD_CLOEXEC, "other end must not leak across spawn")
				}
			}
		})
	}
}

func TestReadError(t *testing.T) {
	c := New()
	_, err := c.Read(InvalidFd, make([]byte, 1))
	var sysE *SysError
	require.ErrorAs(t, err, &sysE)
	assert.Equal(t, "read", sysE.Op)
}

func TestBracketPairsOnErrorPath(t *testing.T) {
	pre, post := 0, 0
	SetSyscallBracket(func() { pre++ }, func() { post++ })
	defer SetSyscallBracket(nil, nil)

	c := New()
	err := c.Close(InvalidFd)
	require.Error(t, err)
	assert.Equal(t, 1, pre)
	assert.Equal(t, 1, post)
}

func TestNilSlotFallsBackToDefault(t *testing.T) {
	pre, post := 0, 0
	SetSyscallBracket(func() { pre++ }, func() { post++ })
	defer SetSyscallBracket(nil, nil)

	// A partial v1 table: unset slots take the bracketed default path.
	c := New(WithHooks(&Hooks{
		Version: 1,
		Base: BaseHooks{
			USleep: func(c *Context, usec uint) {},
		},
	}))

	fds, err := c.Pipe(1)
	require.NoError(t, err)
	assert.Equal(t, 1, pre)
	assert.Equal(t, 1, post)
	c.Close(fds[0])
	c.Close(fds[1])
}

func TestSendmsgRecvmsgRights(t *testing.T) {
	c := New()
	sp, err := c.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer c.Close(sp[1])

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	payload := []byte("take this descriptor")
	sent := RightsMessage(payload, Fd(w.Fd()))
	n, err := c.Sendmsg(sp[0], sent, 0)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	recv := &Msghdr{Data: make([]byte, 64), Control: ControlBuffer(1)}
	n, err = c.Recvmsg(sp[1], recv, 0)
	require.NoError(t, err)
	assert.Equal(t, string(payload), string(recv.Data[:n]))

	fds, info, err := recv.Rights()
	require.NoError(t, err)
	require.Len(t, fds, 1)
	assert.Equal(t, unix.SOL_SOCKET, info.Level)
	assert.Equal(t, unix.SCM_RIGHTS, info.Type)

	// The received descriptor must refer to the same resource: bytes
	// written through it surface on the original pipe.
	_, err = c.Write(fds[0], []byte("via dup"))
	require.NoError(t, err)
	require.NoError(t, c.Close(fds[0]))

	buf := make([]byte, 16)
	m, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "via dup", string(buf[:m]))

	require.NoError(t, c.Close(sp[0]))
}

func TestRecvmsgChannelClosed(t *testing.T) {
	c := New()
	sp, err := c.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer c.Close(sp[1])

	require.NoError(t, c.Close(sp[0]))

	recv := &Msghdr{Data: make([]byte, 16)}
	_, err = c.Recvmsg(sp[1], recv, 0)
	assert.ErrorIs(t, err, ErrChannelClosed)
}

func TestRightsFirstBlockOnly(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	first := encodeRights([]Fd{Fd(r.Fd())})
	second := encodeRights([]Fd{Fd(w.Fd()), Fd(w.Fd())})
	m := &Msghdr{Control: append(append([]byte{}, first...), second...)}

	fds, info, err := m.Rights()
	require.NoError(t, err)
	require.Len(t, fds, 1, "only the first control block is decoded")
	assert.Equal(t, Fd(r.Fd()), fds[0])
	assert.Equal(t, unix.CmsgLen(4), info.Len)
}

func TestSpawnReapExitCode(t *testing.T) {
	c := New()
	pid, err := c.Spawn(&SpawnOptions{
		Name:   "/bin/sh",
		Argv:   []string{"sh", "-c", "exit 7"},
		Stdin:  InvalidFd,
		Stdout: InvalidFd,
	})
	require.NoError(t, err)

	st, err := c.WaitPID(pid, ReapBlock, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, st.ExitCode)
	assert.False(t, st.Signaled)
}

func TestSpawnMissingProgram(t *testing.T) {
	c := New()
	_, err := c.Spawn(&SpawnOptions{
		Name:   "/nonexistent/wireline-child",
		Argv:   []string{"wireline-child"},
		Stdin:  InvalidFd,
		Stdout: InvalidFd,
	})
	var spawnE *SpawnError
	require.ErrorAs(t, err, &spawnE)
}

func TestReapPollStillRunning(t *testing.T) {
	c := New()
	pid, err := c.Spawn(&SpawnOptions{
		Name:   "/bin/sh",
		Argv:   []string{"sh", "-c", "sleep 30"},
		Stdin:  InvalidFd,
		Stdout: InvalidFd,
	})
	require.NoError(t, err)

	_, err = c.WaitPID(pid, ReapPoll, 0)
	assert.ErrorIs(t, err, ErrStillRunning)

	require.NoError(t, unix.Kill(int(pid), unix.SIGKILL))
	st, err := c.WaitPID(pid, ReapBlock, 0)
	require.NoError(t, err)
	assert.True(t, st.Signaled)
	assert.Equal(t, int(unix.SIGKILL), st.Signal)
}

func TestReapDetach(t *testing.T) {
	c := New()
	_, err := c.WaitPID(Pid(1), ReapDetach, 0)
	assert.NoError(t, err, "detached reap is bookkeeping only")
}

func TestSpawnInheritedDescriptorIdentity(t *testing.T) {
	c := New()

	// Child reads from an inherited pipe end at its original identity
	// and echoes onto its remapped stdout.
	in, err := c.Pipe(0)
	require.NoError(t, err)
	out, err := c.Pipe(1)
	require.NoError(t, err)

	_, err = c.Write(in[1], []byte("ping"))
	require.NoError(t, err)
	require.NoError(t, c.Close(in[1]))

	pid, err := c.Spawn(&SpawnOptions{
		Name:       "/bin/sh",
		Argv:       []string{"sh", "-c", fmt.Sprintf("cat /dev/fd/%d", in[0])},
		Stdin:      InvalidFd,
		Stdout:     out[1],
		InheritFds: []Fd{in[0]},
	})
	require.NoError(t, err)

	require.NoError(t, c.CloseInheritable(in[0]))
	require.NoError(t, c.CloseInheritable(out[1]))

	var got []byte
	buf := make([]byte, 64)
	for {
		n, err := c.Read(out[0], buf)
		require.NoError(t, err)
		if n == 0 {
			break
		}
		got = append(got, buf[:n]...)
	}
	assert.Equal(t, "ping", string(got))

	st, err := c.WaitPID(pid, ReapBlock, 0)
	require.NoError(t, err)
	assert.Zero(t, st.ExitCode)
	require.NoError(t, c.Close(out[0]))
}

func TestSocketConnect(t *testing.T) {
	c := New()
	sock := filepath.Join(t.TempDir(), "wireline.sock")
	ln, err := net.Listen("unix", sock)
	require.NoError(t, err)
	defer ln.Close()

	fd, err := c.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)

	require.NoError(t, c.Connect(fd, &UnixAddr{Name: sock}))
	require.NoError(t, c.Close(fd))
}

func TestUSleepYields(t *testing.T) {
	c := New()
	start := time.Now()
	c.USleep(20_000)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

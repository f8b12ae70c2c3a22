package system

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fnptr(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func TestMergeHooksNilOverride(t *testing.T) {
	base := DefaultHooks()
	merged := MergeHooks(base, nil)

	require.NotSame(t, base, merged)
	assert.Equal(t, base.Version, merged.Version)
	assert.Equal(t, fnptr(base.Base.Read), fnptr(merged.Base.Read))
	assert.Equal(t, fnptr(base.Base.Spawn), fnptr(merged.Base.Spawn))
	assert.Equal(t, fnptr(base.Socket.Socket), fnptr(merged.Socket.Socket))
	assert.Equal(t, fnptr(base.Socket.Connect), fnptr(merged.Socket.Connect))
}

func TestMergeHooksVersion1(t *testing.T) {
	override := &Hooks{
		Version: 1,
		Base: BaseHooks{
			Read: func(c *Context, fd Fd, p []byte) (int, error) { return 0, nil },
			Write: func(c *Context, fd Fd, p []byte) (int, error) {
				return len(p), nil
			},
		},
		// A socket component on a v1 table must be ignored.
		Socket: SocketHooks{
			Socket: func(c *Context, domain, typ, proto int) (Fd, error) { return InvalidFd, nil },
		},
	}

	merged := MergeHooks(DefaultHooks(), override)

	assert.Equal(t, HooksVersion, merged.Version)
	assert.Equal(t, fnptr(override.Base.Read), fnptr(merged.Base.Read))
	assert.Equal(t, fnptr(override.Base.Write), fnptr(merged.Base.Write))
	// Unset v1 slots are taken verbatim from the override component.
	assert.Nil(t, merged.Base.Pipe)
	// The socket component stays at the defaults.
	assert.Equal(t, fnptr(DefaultHooks().Socket.Socket), fnptr(merged.Socket.Socket))
	assert.Equal(t, fnptr(DefaultHooks().Socket.Connect), fnptr(merged.Socket.Connect))
}

func TestMergeHooksVersion2(t *testing.T) {
	override := &Hooks{
		Version: 2,
		Socket: SocketHooks{
			Socket:  func(c *Context, domain, typ, proto int) (Fd, error) { return InvalidFd, nil },
			Connect: func(c *Context, fd Fd, addr Addr) error { return nil },
		},
	}

	merged := MergeHooks(DefaultHooks(), override)

	assert.Equal(t, HooksVersion, merged.Version)
	assert.Equal(t, fnptr(override.Socket.Socket), fnptr(merged.Socket.Socket))
	assert.Equal(t, fnptr(override.Socket.Connect), fnptr(merged.Socket.Connect))
}

func TestMergeHooksFutureVersion(t *testing.T) {
	// A table from a newer library revision: known components are
	// honored, anything beyond them is ignored without failing.
	override := &Hooks{
		Version: 99,
		Base: BaseHooks{
			USleep: func(c *Context, usec uint) {},
		},
	}

	var merged *Hooks
	require.NotPanics(t, func() {
		merged = MergeHooks(DefaultHooks(), override)
	})
	assert.Equal(t, HooksVersion, merged.Version)
	assert.Equal(t, fnptr(override.Base.USleep), fnptr(merged.Base.USleep))
}

func TestInstallHooks(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.Hooks().Version, "fresh context has no hooks")

	c.InstallHooks(nil)
	assert.Equal(t, 0, c.Hooks().Version, "installing nil leaves the context untouched")

	c.InstallHooks(&Hooks{Version: 1})
	assert.Equal(t, HooksVersion, c.Hooks().Version)
}

func TestHookDispatch(t *testing.T) {
	reads := 0
	c := New(WithHooks(&Hooks{
		Version: 1,
		Base: BaseHooks{
			Read: func(c *Context, fd Fd, p []byte) (int, error) {
				reads++
				return copy(p, "hooked"), nil
			},
		},
	}))

	buf := make([]byte, 16)
	n, err := c.Read(InvalidFd, buf)
	require.NoError(t, err)
	assert.Equal(t, "hooked", string(buf[:n]))
	assert.Equal(t, 1, reads)
}

func TestHookedCallNotBracketed(t *testing.T) {
	pre, post := 0, 0
	SetSyscallBracket(func() { pre++ }, func() { post++ })
	defer SetSyscallBracket(nil, nil)

	c := New(WithHooks(&Hooks{
		Version: 1,
		Base: BaseHooks{
			USleep: func(c *Context, usec uint) {},
		},
	}))
	c.USleep(10)

	assert.Zero(t, pre)
	assert.Zero(t, post)
}

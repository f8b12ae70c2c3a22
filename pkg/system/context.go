package system

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context is the unit of configuration and state for one IPC endpoint. It
// exclusively owns its allocator hooks, its hook table (a private copy,
// never a reference to the process-wide defaults) and its trace logger.
// A Context must be confined to one logical flow of control or
// serialized externally.
type Context struct {
	id     uuid.UUID
	logger *zap.Logger
	trace  *zap.Logger
	mem    MemHooks
	hooks  Hooks
	flags  uint
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithLogger sets the logger the context traces through. The default is
// zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithMemHooks replaces the context's allocator triple.
func WithMemHooks(mem MemHooks) Option {
	return func(c *Context) {
		if mem.Alloc != nil && mem.Realloc != nil && mem.Free != nil {
			c.mem = mem
		}
	}
}

// WithHooks installs a hook table during construction, equivalent to
// calling InstallHooks afterwards.
func WithHooks(h *Hooks) Option {
	return func(c *Context) {
		c.InstallHooks(h)
	}
}

// WithFlags sets the context flag word carried for the embedding engine.
func WithFlags(flags uint) Option {
	return func(c *Context) {
		c.flags = flags
	}
}

// New creates a Context with no hooks installed: every operation takes
// the bracketed default path until InstallHooks is called.
func New(opts ...Option) *Context {
	c := &Context{
		id:     uuid.New(),
		logger: zap.NewNop(),
		mem:    defaultMemHooks(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.trace = c.logger.Named("sysio").With(zap.String("ctx", c.id.String()))
	return c
}

// ID returns the context's trace identity.
func (c *Context) ID() string {
	return c.id.String()
}

// Flags returns the flag word set at construction.
func (c *Context) Flags() uint {
	return c.flags
}

// InstallHooks merges h over the process-wide default table and makes the
// result this context's private table. Installing nil leaves the context
// untouched. Must not be called concurrently with in-flight operations
// on the same context.
func (c *Context) InstallHooks(h *Hooks) {
	if h == nil {
		return
	}
	c.hooks = *MergeHooks(DefaultHooks(), h)
}

// Hooks returns a copy of the context's current hook table. A context
// that never had hooks installed reports version 0.
func (c *Context) Hooks() Hooks {
	return c.hooks
}

// Release retires the context and flushes its trace logger. The layer
// holds no OS resources of its own; descriptors handed out by Pipe,
// Socketpair or Socket remain the caller's to close.
func (c *Context) Release() error {
	return c.logger.Sync()
}

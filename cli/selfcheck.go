package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.wireline.io/wireline/config"
	"go.wireline.io/wireline/pkg/system"
	"go.wireline.io/wireline/utils"
	"golang.org/x/sync/errgroup"
)

func init() {
	Register("selfcheck", SelfCheck)
}

type checkResult struct {
	name string
	err  error
}

// SelfCheck exercises the platform layer end to end: pipes, descriptor
// passing, process lifecycle and the syscall bracket. Each probe runs on
// its own Context, so they are driven concurrently.
func SelfCheck(ctx context.Context, logger *zap.Logger, conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "verify the platform layer works on this machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks := []struct {
				name string
				run  func(*system.Context) error
			}{
				{"pipe", checkPipe},
				{"descriptor-passing", checkRights},
				{"spawn-reap", checkSpawn},
			}

			results := make([]checkResult, 0, len(checks)+1)
			concurrent := make([]checkResult, len(checks))
			g, gctx := errgroup.WithContext(ctx)
			for i, chk := range checks {
				i, chk := i, chk
				g.Go(func() error {
					defer utils.Recover(logger)
					if err := gctx.Err(); err != nil {
						return err
					}
					c := system.New(system.WithLogger(logger))
					defer c.Release()
					concurrent[i] = checkResult{name: chk.name, err: chk.run(c)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			results = append(results, concurrent...)

			// The bracket is process-wide state; probe it with no other
			// platform calls in flight.
			bc := system.New(system.WithLogger(logger))
			results = append(results, checkResult{name: "syscall-bracket", err: checkBracket(bc)})
			bc.Release()

			pass := color.New(color.FgGreen).SprintFunc()
			fail := color.New(color.FgRed).SprintFunc()
			failed := 0
			for _, res := range results {
				if res.err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", fail("FAIL"), res.name, res.err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pass("OK  "), res.name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}

func checkPipe(c *system.Context) error {
	fds, err := c.Pipe(1)
	if err != nil {
		return err
	}
	defer c.Close(fds[0])
	defer c.CloseInheritable(fds[1])

	if _, err := c.Write(fds[1], []byte("ping")); err != nil {
		return err
	}
	buf := make([]byte, 8)
	n, err := c.Read(fds[0], buf)
	if err != nil {
		return err
	}
	if string(buf[:n]) != "ping" {
		return fmt.Errorf("pipe returned %q", buf[:n])
	}
	return nil
}

func checkRights(c *system.Context) error {
	sp, err := c.Socketpair(localSocketDomain, localSocketType, 0)
	if err != nil {
		return err
	}
	defer c.Close(sp[0])
	defer c.Close(sp[1])

	pipe, err := c.Pipe(0)
	if err != nil {
		return err
	}
	defer c.Close(pipe[0])

	msg := system.RightsMessage([]byte("fd"), pipe[1])
	if _, err := c.Sendmsg(sp[0], msg, 0); err != nil {
		c.Close(pipe[1])
		return err
	}
	if err := c.Close(pipe[1]); err != nil {
		return err
	}

	recv := &system.Msghdr{Data: make([]byte, 8), Control: system.ControlBuffer(1)}
	if _, err := c.Recvmsg(sp[1], recv, 0); err != nil {
		return err
	}
	fds, _, err := recv.Rights()
	if err != nil {
		return err
	}
	if len(fds) != 1 {
		return fmt.Errorf("expected one descriptor, got %d", len(fds))
	}
	if _, err := c.Write(fds[0], []byte("x")); err != nil {
		return err
	}
	defer c.Close(fds[0])

	buf := make([]byte, 1)
	if _, err := c.Read(pipe[0], buf); err != nil {
		return err
	}
	if buf[0] != 'x' {
		return errors.New("received descriptor does not refer to the original resource")
	}
	return nil
}

func checkSpawn(c *system.Context) error {
	pid, err := c.Spawn(&system.SpawnOptions{
		Name:   shellPath,
		Argv:   []string{"sh", "-c", "exit 3"},
		Stdin:  system.InvalidFd,
		Stdout: system.InvalidFd,
	})
	if err != nil {
		return err
	}
	st, err := c.WaitPID(pid, system.ReapBlock, 0)
	if err != nil {
		return err
	}
	if st.ExitCode != 3 {
		return fmt.Errorf("child exited %d, want 3", st.ExitCode)
	}
	return nil
}

func checkBracket(c *system.Context) error {
	pre, post := 0, 0
	system.SetSyscallBracket(func() { pre++ }, func() { post++ })
	defer system.SetSyscallBracket(nil, nil)

	c.USleep(100)
	if pre != 1 || post != 1 {
		return fmt.Errorf("bracket fired pre=%d post=%d, want 1/1", pre, post)
	}
	return nil
}

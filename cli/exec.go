package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.wireline.io/wireline/config"
	"go.wireline.io/wireline/pkg/system"
	"go.wireline.io/wireline/utils"
)

func init() {
	Register("exec", Exec)
}

// Exec runs a program through the platform layer: the child's stdout is
// captured on a pipe created with an inheritable write end, streamed to
// the terminal, and the child is reaped on exit. It mirrors how a
// daemon embeds spawn, as a shell-invocable probe.
func Exec(ctx context.Context, logger *zap.Logger, conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <program> [args...]",
		Short: "spawn a program through the platform layer and stream its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			path, err := exec.LookPath(args[0])
			if err != nil {
				utils.LogError(logger, err, "program not found", zap.String("program", args[0]))
				return err
			}

			c := system.New(system.WithLogger(logger))
			defer c.Release()

			out, err := c.Pipe(1)
			if err != nil {
				utils.LogError(logger, err, "failed to create stdout pipe")
				return err
			}

			pid, err := c.Spawn(&system.SpawnOptions{
				Name:   path,
				Argv:   args,
				Stdin:  system.InvalidFd,
				Stdout: out[1],
			})
			if err != nil {
				c.Close(out[0])
				c.CloseInheritable(out[1])
				utils.LogError(logger, err, "failed to spawn", zap.String("program", path))
				return err
			}
			if err := c.CloseInheritable(out[1]); err != nil {
				utils.LogError(logger, err, "failed to close inherited pipe end")
			}

			buf := make([]byte, 4096)
			for {
				n, err := c.Read(out[0], buf)
				if err != nil {
					utils.LogError(logger, err, "failed reading child output")
					break
				}
				if n == 0 {
					break
				}
				if _, err := os.Stdout.Write(buf[:n]); err != nil {
					break
				}
			}
			if err := c.Close(out[0]); err != nil {
				utils.LogError(logger, err, "failed to close pipe")
			}

			st, err := c.WaitPID(pid, system.ReapBlock, 0)
			if err != nil {
				utils.LogError(logger, err, "failed to reap child", zap.Int("pid", int(pid)))
				return err
			}
			if st.Signaled {
				return fmt.Errorf("child killed by signal %d", st.Signal)
			}
			if st.ExitCode != 0 {
				return fmt.Errorf("child exited with status %d", st.ExitCode)
			}
			return nil
		},
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/activation"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the recipe list and refresh it when the database changes",
		Long: `Print the recipe list, then print it again every time another
process changes the database. Stops on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRecipes(opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", activation.DefaultDebounce, "quiet interval before refreshing")

	return cmd
}

func watchRecipes(opts *WatchOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("received signal, stopping watch", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	ctl := a.controller()
	w := activation.NewWatcher(a.opts.Config.DB, func(ctx context.Context) {
		ctl.Refresh(ctx)
		if ctl.Degraded() {
			a.out.Warn("stored recipes under %q could not be read; showing an empty list", a.store.Key())
		}
		view := ctl.View()
		if a.out.JSON() {
			_ = a.out.Success(view)
			return
		}
		fmt.Fprintln(a.out.Writer, "---")
		renderView(a.out.Writer, view)
	},
		activation.WithDebounce(opts.Debounce),
		activation.WithLogger(a.logger),
	)

	err = w.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return WrapExitError(ExitFailure, ErrCodeGeneric, "watch failed", err)
	}
	return nil
}

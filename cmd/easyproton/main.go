package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/easy-proton/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	opts := cli.Options{Verbose: isVerbose()}

	os.Exit(run(ctx, stop, opts))
}

func run(ctx context.Context, stop context.CancelFunc, opts cli.Options) int {
	defer stop()

	root, container, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if err := execute(ctx, root, container); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// execute runs root and always releases resources afterwards. cobra skips
// post-run hooks when a command fails, so closing cannot live there.
func execute(ctx context.Context, root *cobra.Command, resources io.Closer) error {
	return errors.Join(root.ExecuteContext(ctx), resources.Close())
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("EASYPROTON_DEBUG"), "1") || strings.EqualFold(os.Getenv("EASYPROTON_DEBUG"), "true")
}

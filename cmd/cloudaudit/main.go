package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cloudaudit/internal/audit"
	"cloudaudit/internal/audits"
	"cloudaudit/internal/config"
	"cloudaudit/internal/orchestrator"
	awsprovider "cloudaudit/internal/providers/aws"
)

// Exit codes
const (
	exitOK = iota
	exitAuthentication
	exitAuthorization
	exitNotFound
	exitInvalid
	exitFailure
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// newRootCommand builds the command tree
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "cloudaudit",
		Short:         "Audit AWS RDS instances, VPCs and S3 buckets and export the findings",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to an HCL configuration file (default ./"+config.DefaultFile+" when present)")
	flags.String(config.KeyProfile, "", "AWS shared config profile (default profile when empty)")
	flags.String(config.KeyRegion, "", "AWS region (profile region when empty)")
	flags.String(config.KeyOutputDir, "output", "Directory the report is written to")
	flags.String(config.KeyFormat, "csv", "Report format: csv or json")
	flags.String(config.KeySentinel, audit.DefaultSentinel, "Placeholder written for unavailable fields")
	flags.String(config.KeyLogLevel, "info", "Log level: debug, info, warn or error")
	flags.Bool(config.KeyJSONLogs, false, "Write logs as JSON lines")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	for _, def := range audits.All() {
		rootCmd.AddCommand(newAuditCommand(def, opts))
	}
	rootCmd.AddCommand(newProfilesCommand(), newVersionCommand())

	return rootCmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{err: fmt.Errorf("unknown command or argument %q for %q", args[0], cmd.CommandPath())}
	}
	return nil
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var (
		notFound  *audit.NotFoundError
		selection *audit.InvalidSelectionError
		cfgErr    *config.Error
		usage     usageError
	)

	switch {
	case errors.Is(err, audit.ErrAuthentication):
		return exitAuthentication
	case errors.Is(err, audit.ErrAuthorization):
		return exitAuthorization
	case errors.As(err, &notFound),
		awsprovider.IsErrorCategory(err, awsprovider.ErrResourceNotFound):
		return exitNotFound
	case errors.As(err, &selection),
		errors.As(err, &cfgErr),
		errors.As(err, &usage),
		errors.Is(err, orchestrator.ErrInvalidConfig),
		awsprovider.IsErrorCategory(err, awsprovider.ErrConfigurationError):
		return exitInvalid
	default:
		return exitFailure
	}
}

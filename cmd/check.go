package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/config"
	"github.com/mytaskly/taskly-mcp/internal/facade"
	"github.com/mytaskly/taskly-mcp/internal/logging"
	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

func newCheckCmd() *cobra.Command {
	var skipProbe bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the configuration and backend reachability",
		Long: `Check prints the effective configuration with secrets redacted,
validates it, and probes the backend health endpoint once. Use it to verify a
deployment before starting the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, skipProbe)
		},
	}

	cmd.Flags().BoolVar(&skipProbe, "skip-probe", false, "Skip the backend health probe")

	return cmd
}

func runCheck(cmd *cobra.Command, skipProbe bool) error {
	cfg := config.Load()
	cfg.ServerVersion = version

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server:            %s %s\n", cfg.ServerName, cfg.ServerVersion)
	fmt.Fprintf(out, "Backend URL:       %s\n", cfg.BackendBaseURL)
	fmt.Fprintf(out, "Backend API key:   %s\n", logging.SanitizeSecret(cfg.BackendAPIKey))
	fmt.Fprintf(out, "Signing secret:    %s\n", logging.SanitizeSecret(cfg.SigningSecret))
	fmt.Fprintf(out, "Token audience:    %s\n", cfg.Audience)
	fmt.Fprintf(out, "Service token TTL: %s\n", cfg.ServiceTokenTTL)
	fmt.Fprintf(out, "Data timeout:      %s\n", cfg.DataTimeout)
	fmt.Fprintf(out, "Health timeout:    %s\n", cfg.HealthTimeout)
	fmt.Fprintf(out, "Log level:         %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "Operations:        ")
	for i, op := range facade.Operations() {
		if i > 0 {
			fmt.Fprint(out, ", ")
		}
		fmt.Fprint(out, op.Name)
	}
	fmt.Fprintln(out)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Fprintln(out, "Configuration OK")

	if skipProbe {
		return nil
	}

	codec := auth.NewCodec(cfg.SigningSecret, cfg.Audience)
	client := taskly.NewClient(cfg, codec)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HealthTimeout+time.Second)
	defer cancel()

	status := client.Health(ctx)
	if status.Status != taskly.StatusHealthy {
		return fmt.Errorf("backend is %s: %s", status.Status, status.Error)
	}
	fmt.Fprintf(out, "Backend OK (%s)\n", cfg.BackendBaseURL)
	return nil
}

package main

import (
	"fmt"
	"time"

	"cat-registry/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

func newHealthcheckCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe a running instance (for container health checks)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := httpclient.New(baseURL, timeout)
			if err != nil {
				return err
			}
			if err := c.Ping(cmd.Context(), "/health"); err != nil {
				return fmt.Errorf("unhealthy: %w", err)
			}

			var items []struct {
				ID int64 `json:"id"`
			}
			if err := c.GetJSON(cmd.Context(), "/api/cats", &items); err != nil {
				return fmt.Errorf("api unavailable: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok (%d cats)\n", len(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the instance")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "request timeout")
	return cmd
}

// @title       cat-registry API
// @version     1.0
// @description JSON mirror of the cats CRUD. Mutations require an X-CSRF-Token from GET /api/csrf.
// @BasePath    /
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cats",
		Short:         "Cat registry: CRUD web app with forms, CSRF and flash messages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newHealthcheckCmd(),
	)
	return root
}

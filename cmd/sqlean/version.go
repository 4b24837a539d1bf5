package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/sqlean-go/internal/bundle"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bundle and CLI versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "sqlean %s\n", bundle.Version)
			fmt.Fprintf(a.out, "cli %s (commit %s)\n", version, commit)
		},
	}
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nerrad567/sqlean-go/internal/bundle"
	"github.com/nerrad567/sqlean-go/internal/driver"
)

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show which modules a new connection would activate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writePlan(a, driver.Plan())
		},
	}
}

func writePlan(a *app, plan bundle.Plan) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "mode\t%s\n", plan.Mode)
	fmt.Fprintf(w, "%s()\t%s\n", bundle.VersionFunc, state(plan.Introspection))
	for _, d := range plan.Decisions {
		fmt.Fprintf(w, "%s\t%s\n", d.Module.Name, state(d.Active))
	}
	for _, name := range bundle.Excluded() {
		fmt.Fprintf(w, "%s\texcluded\n", name)
	}

	return w.Flush()
}

func state(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

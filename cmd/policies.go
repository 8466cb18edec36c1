package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "Lists the named traversal policies",
		RunE:  runPoliciesCommand,
	}
}

func runPoliciesCommand(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSHORT\tFETCH\tFRESHNESS\tPROCESSING\tTRANSITIVITY")
	for _, name := range traversal.Names() {
		policy, _ := traversal.Lookup(name)
		form, err := policy.ShortForm()
		if err != nil {
			return fmt.Errorf("policy %q is malformed: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name, form,
			policy.Fetch, policy.Freshness, policy.Processing, policy.Transitivity)
	}
	return w.Flush()
}

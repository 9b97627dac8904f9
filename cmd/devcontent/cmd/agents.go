package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the agent serving each workflow",
	RunE:  runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, _ []string) error {
	dir := agentIDs(appConfig.Agent.IDs).Directory()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKFLOW\tAGENT\tNAME\tPURPOSE")
	for _, a := range dir.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Kind, a.ID, a.Name, a.Purpose)
	}
	return w.Flush()
}

package cmd

import (
	"fmt"
	"strings"

	"kb-admin/core/agent"
	"kb-admin/core/config"

	"github.com/spf13/cobra"
)

var rawAgentOutput bool

// agentCmd is the parent command for the remote agent.
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Talk to the remote ESG search agent",
}

// agentInvokeCmd runs the agent graph once.
var agentInvokeCmd = &cobra.Command{
	Use:   "invoke <message>",
	Short: "Send a message to the agent and print its reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client := agent.NewClient(cfg.Agent)
		state, err := client.Invoke(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if rawAgentOutput {
			return printJSON(state)
		}
		fmt.Println(agent.LastMessage(state))
		return nil
	},
}

func init() {
	agentInvokeCmd.Flags().BoolVar(&rawAgentOutput, "json", false, "Print the full graph state")
	agentCmd.AddCommand(agentInvokeCmd)
	RootCmd.AddCommand(agentCmd)
}

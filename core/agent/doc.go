// Package agent invokes a graph hosted on a remote LangGraph deployment.
//
// Runs are stateless: each call posts the input messages to "<url>/runs/wait" and
// blocks until the graph finishes, returning its final state as decoded JSON.
//
//	client := agent.NewClient(cfg.Agent)
//	state, err := client.Invoke(ctx, "3M India Ltd. 2023")
//	fmt.Println(agent.LastMessage(state))
package agent

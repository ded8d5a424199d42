// Package agent exposes the remote ESG search agent.
//
// # HTTP Endpoints
//
//   - POST /agent/invoke : Run the graph with {"message": "..."} or a full
//     {"messages": [...]} conversation and return the reply and final state.
package agent

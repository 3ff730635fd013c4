package services

import "testing"

// The HTTP client timeout is a backstop: it must sit above the invoker's
// per-invocation deadline so a slow model call fails through the flow
// timeout path, not the transport.
func TestClientTimeoutExceedsInvokerDeadline(t *testing.T) {
	client := NewClaudeClient()
	invoker := NewFlowInvoker(client)

	if client.httpClient.Timeout <= invoker.timeout {
		t.Fatalf("http client timeout %v must exceed invoker timeout %v",
			client.httpClient.Timeout, invoker.timeout)
	}
}

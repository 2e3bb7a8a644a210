// Package llm provides an OpenRouter chat-completions client for the remote
// generation stages.
//
// # Entry Points
//
// NewClient: construct a client from Config.
// Client.Complete: send one prompt, receive the generated text.
// Client.HealthCheck: verify API key and model availability.
//
// # Failure Mapping
//
// Every error returned by the client carries one of the services markers:
// non-2xx responses and network failures are ErrTransport (with the HTTP
// status exposed through StatusError), deadlines are ErrTimeout, cancellation
// is ErrCanceled, and a response with no usable content is ErrEmptyResult.
//
// # Retries
//
// The client never retries. Each Complete call is exactly one billed request;
// callers that want retries must decide that themselves.
package llm

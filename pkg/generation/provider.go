package generation

import "context"

// Message is one turn of conversation in provider-agnostic form.
type Message struct {
	Role string // "user" or "model"
	Text string
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Provider defines the contract for the hosted generation service.
// Implementations block until the network call resolves or errors; the
// caller decides what a failure degrades to.
type Provider interface {
	// Complete sends a chat history (priming turns included, last turn
	// from the user) and returns the model reply.
	Complete(ctx context.Context, history []Message) (string, error)

	// CompleteText sends a single standalone prompt.
	CompleteText(ctx context.Context, prompt string) (string, error)

	// CompleteWithAudio sends a prompt plus a raw audio payload to the
	// multimodal completion capability.
	CompleteWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)

	// Close releases the underlying client.
	Close() error
}

package speech

import "context"

// Transcriber converts recorded audio to text. An empty transcript means the
// user asked nothing; it is never an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Recorder captures a single utterance from an input device. Implementations
// live outside this core; the chat loop only consumes the bytes.
type Recorder interface {
	Record(ctx context.Context) ([]byte, error)
}

package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// EnsureStream creates the stream holding "<name>.*" subjects unless it already exists.
func EnsureStream(ctx context.Context, js jetstream.JetStream, name string) error {
	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     strings.ToUpper(name),
		Subjects: []string{fmt.Sprintf("%s.*", strings.ToLower(name))},
		Storage:  jetstream.FileStorage,
	})
	if err != nil && !errors.Is(err, jetstream.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("create %s stream: %w", strings.ToUpper(name), err)
	}
	return nil
}

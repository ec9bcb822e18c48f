package watcher

import "context"

// Watcher monitors a directory for new slide decks.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// DeckHandler converts one deck; it is invoked once per detected file.
type DeckHandler func(ctx context.Context, deckPath string) error

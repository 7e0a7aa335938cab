// Package store provides data persistence interfaces and implementations.
package store

import "context"

// WatchlistStore defines the interface for watchlist persistence.
type WatchlistStore interface {
	AddToWatchlist(ctx context.Context, symbol, listName string) error
	RemoveFromWatchlist(ctx context.Context, symbol, listName string) error
	GetWatchlist(ctx context.Context, listName string) ([]string, error)
	GetAllWatchlists(ctx context.Context) (map[string][]string, error)

	Close() error
}

// DefaultListName is used when a command does not name a watchlist.
const DefaultListName = "default"

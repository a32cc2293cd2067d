// Package persistence is the durable mirror of the map store: one JSON
// document, replaced atomically on every successful mutation, restored at
// startup. The in-memory store stays the authority; a failed write is
// surfaced, not rolled back.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"wayfindr-map/models"
	"wayfindr-map/store"
)

// Gateway persists map documents to a single file with atomic replace
// semantics and a bounded retry policy.
type Gateway struct {
	path       string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewGateway creates a gateway writing to path. maxRetries counts the
// attempts after the first one; values below zero are treated as zero.
func NewGateway(path string, maxRetries int, logger *slog.Logger) *Gateway {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Gateway{
		path:       path,
		maxRetries: maxRetries,
		retryDelay: 50 * time.Millisecond,
		logger:     logger.With("component", "persistence"),
	}
}

// Path returns the durable file location.
func (g *Gateway) Path() string {
	return g.path
}

// Save serializes the document and atomically replaces the durable copy:
// write to a temp file in the same directory, fsync, then rename over the
// target. A concurrent reader sees either the old document or the new one,
// never a partial write. Callers must not hold the store lock here.
func (g *Gateway) Save(doc *models.MapDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &store.PersistenceError{Operation: "marshal", Cause: err}
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(g.retryDelay)
			g.logger.Warn("Retrying map state write",
				"attempt", attempt+1, "path", g.path, slog.Any("error", lastErr))
		}
		if lastErr = g.writeAtomic(data); lastErr == nil {
			return nil
		}
	}

	return &store.PersistenceError{Operation: "save", Cause: lastErr}
}

func (g *Gateway) writeAtomic(data []byte) error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".map-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		return fmt.Errorf("replace map file: %w", err)
	}
	return nil
}

// Load reads the durable copy. A missing file is not an error: it returns
// (nil, nil) and the caller starts with an empty store. A document that
// fails the referential invariants is an error — corruption is reported,
// never silently repaired.
func (g *Gateway) Load() (*models.MapDocument, error) {
	data, err := os.ReadFile(g.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &store.PersistenceError{Operation: "load", Cause: err}
	}

	var doc models.MapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &store.PersistenceError{Operation: "decode", Cause: err}
	}
	if doc.Floors == nil {
		doc.Floors = make(map[string]*models.Floor)
	}

	if err := store.ValidateDocument(&doc); err != nil {
		return nil, &store.PersistenceError{Operation: "validate", Cause: err}
	}

	return &doc, nil
}

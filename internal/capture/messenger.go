package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/models"
)

// PageMessenger is the cross-context boundary to the page-resident locator.
// The locator may be transiently absent (page freshly navigated, helper just
// updated); Inject re-establishes it so a query can be retried.
type PageMessenger interface {
	QuerySelection(ctx context.Context) (string, error)
	QueryRelevantImage(ctx context.Context) (string, error)
	Inject(ctx context.Context) error
}

// Locator wraps a PageMessenger with the system's only retry policy:
// on a failed query, reinject the page locator once and retry, no backoff.
type Locator struct {
	messenger PageMessenger
}

func NewLocator(messenger PageMessenger) *Locator {
	return &Locator{messenger: messenger}
}

// Selection queries the current text selection, tolerating a transiently
// absent locator.
func (l *Locator) Selection(ctx context.Context) (string, error) {
	return l.query(ctx, l.messenger.QuerySelection)
}

// RelevantImage queries the most relevant image URL. An empty result with
// a nil error means no image was found, which is a normal outcome.
func (l *Locator) RelevantImage(ctx context.Context) (string, error) {
	return l.query(ctx, l.messenger.QueryRelevantImage)
}

func (l *Locator) query(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	out, err := fn(ctx)
	if err == nil {
		return out, nil
	}

	logger.Debug(ctx, "page locator unavailable, attempting reinjection", "error", err)

	if injErr := l.messenger.Inject(ctx); injErr != nil {
		return "", domainErrors.ErrLocatorUnavailable.WithError(injErr)
	}

	out, err = fn(ctx)
	if err != nil {
		return "", domainErrors.ErrLocatorUnavailable.WithError(err)
	}
	return out, nil
}

// SnapshotMessenger serves locator queries from a serialized page snapshot,
// the form in which the browser-side helper hands the page over to the CLI.
type SnapshotMessenger struct {
	snapshot *models.PageSnapshot
}

func NewSnapshotMessenger(snapshot *models.PageSnapshot) *SnapshotMessenger {
	return &SnapshotMessenger{snapshot: snapshot}
}

func (m *SnapshotMessenger) QuerySelection(_ context.Context) (string, error) {
	if m.snapshot == nil {
		return "", fmt.Errorf("no page snapshot loaded")
	}
	return CaptureSelection(m.snapshot), nil
}

func (m *SnapshotMessenger) QueryRelevantImage(_ context.Context) (string, error) {
	if m.snapshot == nil {
		return "", fmt.Errorf("no page snapshot loaded")
	}
	url, _ := FindRelevantImage(m.snapshot)
	return url, nil
}

// Inject is a no-op: a snapshot cannot be re-established after the fact.
func (m *SnapshotMessenger) Inject(_ context.Context) error {
	if m.snapshot == nil {
		return fmt.Errorf("no page snapshot loaded")
	}
	return nil
}

// LoadSnapshot decodes a page snapshot from the browser helper's JSON form.
func LoadSnapshot(r io.Reader) (*models.PageSnapshot, error) {
	var snap models.PageSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("error decoding page snapshot: %w", err)
	}
	return &snap, nil
}

package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Event names.
const (
	EventReindex         = "catalog.reindex"
	EventVariantsChanged = "product-variant.created"
)

// Notifier receives downstream notifications.
type Notifier interface {
	Reindex(ctx context.Context) error
	VariantsChanged(ctx context.Context, variantIDs []uint) error
}

// Log reports notifications through the logger.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging notifier.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Reindex(_ context.Context) error {
	l.logger.Info("Search reindex requested", zap.String("event", EventReindex))
	return nil
}

func (l *Log) VariantsChanged(_ context.Context, variantIDs []uint) error {
	l.logger.Info("Variants changed",
		zap.String("event", EventVariantsChanged),
		zap.Int("count", len(variantIDs)),
		zap.Uints("variant_ids", variantIDs),
	)
	return nil
}

// Multi fans out to every notifier, in order.
type Multi []Notifier

func (m Multi) Reindex(ctx context.Context) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.Reindex(ctx))
	}
	return errors.Join(errs...)
}

func (m Multi) VariantsChanged(ctx context.Context, variantIDs []uint) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.VariantsChanged(ctx, variantIDs))
	}
	return errors.Join(errs...)
}

// Close closes every notifier holding resources.
func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if c, ok := n.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// New returns the notifiers enabled by cfg. The log notifier is always included.
func New(cfg Config, logger *zap.Logger) Notifier {
	notifiers := Multi{NewLog(logger)}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, NewWebhook(cfg))
	}
	return notifiers
}

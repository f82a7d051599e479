// posthog_client.go wraps posthog.Client so handlers can send product events without caring whether
// analytics are configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const (
	posthogEndpoint = "https://eu.i.posthog.com"
	posthogSource   = "spendwise_bff"
)

// PosthogClientWrapper forwards product analytics events. A wrapper without a client drops every event.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient connects to PostHog. An empty apiKey, or a client that cannot be built,
// yields a wrapper that drops events.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Initializing posthog client")
	return NewPosthogClientWrapper(client, logger)
}

// NewPosthogClientWrapper wraps an existing client.
func NewPosthogClientWrapper(client posthog.Client, logger *slog.Logger) *PosthogClientWrapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

// Enqueue queues event for distinctID. Every event is tagged with the emitting service.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() || distinctID == "" {
		return
	}
	props := posthog.NewProperties().Set("source", posthogSource)
	for k, v := range properties {
		props.Set(k, v)
	}
	w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	}); err != nil {
		w.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes queued events.
func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.posthogClient.Close(); err != nil {
		w.logger.Warn("Failed to flush posthog events", slog.String("error", err.Error()))
	}
}

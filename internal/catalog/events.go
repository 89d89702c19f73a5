package catalog

import "github.com/rs/zerolog"

// Event is a catalog lifecycle notification (loaded, load_failed).
type Event struct {
	Name    string
	Version string
	Fields  map[string]any
}

const (
	EventLoaded     = "catalog_loaded"
	EventLoadFailed = "catalog_load_failed"
)

// EventPublisher receives store events. Publish must not block or panic.
type EventPublisher interface {
	Publish(Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// LogPublisher writes events to a zerolog logger at debug level.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "catalog_events").Logger()}
}

func (p *LogPublisher) Publish(e Event) {
	p.log.Debug().Str("event", e.Name).Str("version", e.Version).Fields(e.Fields).Msg("catalog event")
}

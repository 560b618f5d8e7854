package messaging

type ChangeTopic string

const (
	TrackingTopic ChangeTopic = "tracking"
)

// Publisher sends payloads to a topic exchange.
type Publisher interface {
	Publish(topic ChangeTopic, data any) error
	Close() error
}

package tracking

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/types"
)

const (
	sessionEvent uint16 = 0
	filterEvent  uint16 = 1
)

// RabbitTracking queues events and publishes them in the background, request
// handlers never wait for the broker.
type RabbitTracking struct {
	country   string
	publisher messaging.Publisher
	queue     *common.QueueHandler[any]
	log       *zap.Logger
}

func NewRabbitTracking(log *zap.Logger, url, country string) (*RabbitTracking, error) {
	publisher, err := messaging.NewRabbitPublisher(url, country, messaging.TrackingTopic)
	if err != nil {
		return nil, err
	}
	return NewTracking(log, publisher, country), nil
}

func NewTracking(log *zap.Logger, publisher messaging.Publisher, country string) *RabbitTracking {
	rt := &RabbitTracking{
		country:   country,
		publisher: publisher,
		log:       log,
	}
	rt.queue = common.NewQueueHandler(rt.publish, 50, 500*time.Millisecond)
	return rt
}

func (rt *RabbitTracking) publish(events []any) {
	for _, e := range events {
		if err := rt.publisher.Publish(messaging.TrackingTopic, e); err != nil {
			rt.log.Warn("failed to send tracking event", zap.Error(err))
		}
	}
}

// Close flushes queued events before closing the connection.
func (rt *RabbitTracking) Close() error {
	rt.queue.Close()
	return rt.publisher.Close()
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type FilterEventData struct {
	*BaseEvent
	State           types.FilterState `json:"state"`
	NumberOfResults int               `json:"noi"`
	Referer         string            `json:"referer,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	rt.queue.Add(&Session{
		BaseEvent:    &BaseEvent{Event: sessionEvent, SessionId: sessionId, Country: rt.country},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

func (rt *RabbitTracking) TrackFilter(sessionId string, state types.FilterState, resultLen int, r *http.Request) {
	rt.queue.Add(&FilterEventData{
		BaseEvent:       &BaseEvent{Event: filterEvent, SessionId: sessionId, Country: rt.country},
		State:           state,
		NumberOfResults: resultLen,
		Referer:         r.Header.Get("Referer"),
	})
}

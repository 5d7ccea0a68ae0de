package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	GameStarted   = "game:started"
	GameTurn      = "game:turn"
	GameFinished  = "game:finished"
	GameRestarted = "game:restarted"
)

const (
	writeTimeout = 5 * time.Second
	// a turn publishes at most three events
	batchTimeout = 10 * time.Millisecond
)

type Event struct {
	Type      string         `json:"event"`
	GameID    string         `json:"game_id"`
	Cell      *int           `json:"cell,omitempty"`
	Mark      entity.Mark    `json:"mark,omitempty"`
	Outcome   entity.Outcome `json:"outcome"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEvent describes game after an event of eventType.
func NewEvent(eventType string, game *entity.Game) Event {
	return Event{
		Type:      eventType,
		GameID:    game.ID,
		Outcome:   game.Outcome,
		Timestamp: time.Now().UTC(),
	}
}

// WithMove attaches the placement that caused the event.
func (that Event) WithMove(mark entity.Mark, cell int) Event {
	that.Mark = mark
	that.Cell = &cell
	return that
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes game events to Kafka. A nil Producer drops every event.
type Producer struct {
	logger *slog.Logger
	writer messageWriter
}

// NewProducer returns nil when brokers or topic are not configured.
func NewProducer(logger *slog.Logger, brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}

	return newProducer(logger, newKafkaWriter(brokers, topic))
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
	}
}

func newProducer(logger *slog.Logger, writer messageWriter) *Producer {
	return &Producer{
		logger: logger.With("component", "events"),
		writer: writer,
	}
}

// Publish sends events keyed by game id. Failures are logged and otherwise ignored.
func (that *Producer) Publish(ctx context.Context, events ...Event) {
	if that == nil || len(events) == 0 {
		return
	}

	log := that.logger.With("method", "Publish")

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		message, err := encode(event)
		if err != nil {
			log.Error("failed to encode event", "event", event.Type, "error", err)
			continue
		}
		messages = append(messages, message)
	}

	if len(messages) == 0 {
		return
	}

	if err := that.writer.WriteMessages(ctx, messages...); err != nil {
		log.Error("kafka publish failed", "count", len(messages), "error", err)
	}
}

func (that *Producer) Close() error {
	if that == nil {
		return nil
	}

	if err := that.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}

func encode(event Event) (kafka.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.GameID),
		Value: body,
		Time:  event.Timestamp,
	}, nil
}

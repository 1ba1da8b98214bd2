package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StartActivityConsumer connects to RabbitMQ, declares the durable
// place.completed queue and appends each event to logs/activity.log
// as a single line. It runs a reconnect loop with exponential backoff
// and never returns under normal operation; call it in a goroutine.
// Malformed messages are rejected without requeue so the queue cannot
// wedge on a poison message.
func StartActivityConsumer(log zerolog.Logger) {
	url := brokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("activity consumer: broker dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeActivity(conn, log); err != nil {
			log.Warn().Err(err).Msg("activity consumer: consume loop ended, reconnecting")
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeActivity(conn *amqp.Connection, log zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(placeCompletedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(placeCompletedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := appendActivity(d.Body); err != nil {
			log.Error().Err(err).Msg("activity consumer: record event failed")
			_ = d.Reject(false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// appendActivity writes one event as a line in logs/activity.log.
func appendActivity(body []byte) error {
	var ev PlaceCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "activity.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s user=%d list=%d place=%d %q cleaned on %s, next due %s (every %d days)\n",
		time.Now().UTC().Format(time.RFC3339),
		ev.UserID, ev.ListID, ev.PlaceID, ev.PlaceName,
		ev.CompletedOn, ev.NextDueDate, ev.IntervalDays)
	_, err = f.WriteString(line)
	return err
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/ariel-nathan/chirp/internal/domain"
)

const SubjectChirpCreated = "chirp.created"

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// ChirpCreatedEvent is the wire contract for downstream consumers
// (notification fan-out, search indexing).
type ChirpCreatedEvent struct {
	EventID   string    `json:"event_id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *NatsPublisher) PublishChirpCreated(ctx context.Context, post domain.Post) error {
	event := ChirpCreatedEvent{
		EventID:   uuid.New().String(),
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal chirp.created: %w", err)
	}

	return p.nc.Publish(SubjectChirpCreated, data)
}

// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/tomtom215/careerpath/internal/logging"
)

// ModelsUpdated is published on the reload subject after training.
type ModelsUpdated struct {
	Event     string    `json:"event"`
	Origin    string    `json:"origin,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventModelsUpdated is the Event value of ModelsUpdated.
const EventModelsUpdated = "models_updated"

// ConnectNATS dials the NATS server used for reload messages.
func ConnectNATS(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logging.Info().Str("url", c.ConnectedUrlRedacted()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// Publisher is the part of *nats.Conn the notifier uses.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// NATSNotifier tells other serve instances that new model artifacts exist.
// It implements service.Notifier.
type NATSNotifier struct {
	pub     Publisher
	subject string
	origin  string
	now     func() time.Time
}

// NewNATSNotifier creates a notifier publishing on subject.
func NewNATSNotifier(pub Publisher, subject, origin string) *NATSNotifier {
	return &NATSNotifier{pub: pub, subject: subject, origin: origin, now: time.Now}
}

// NotifyModelsUpdated publishes a ModelsUpdated message.
func (n *NATSNotifier) NotifyModelsUpdated(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ModelsUpdated{
		Event:     EventModelsUpdated,
		Origin:    n.origin,
		Timestamp: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode models updated: %w", err)
	}
	if err := n.pub.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", n.subject, err)
	}
	return nil
}

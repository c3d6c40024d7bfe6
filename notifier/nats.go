package notifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Supp140106/scribe/domain"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const DefaultSubject = "scribe.games.finished"

type publisher interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher announces finished games to other services.
type NatsPublisher struct {
	conn    publisher
	nc      *nats.Conn
	subject string
}

func NewNatsPublisher(url, subject string) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("scribe"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	if subject == "" {
		subject = DefaultSubject
	}
	return &NatsPublisher{conn: nc, nc: nc, subject: subject}, nil
}

func (p *NatsPublisher) PublishGameFinished(summary domain.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode game summary: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish game summary: %w", err)
	}
	return nil
}

func (p *NatsPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		log.Warn().Err(err).Msg("nats drain failed")
	}
}

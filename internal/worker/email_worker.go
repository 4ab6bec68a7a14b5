package worker

// email_worker.go
// Processes welcome-email jobs enqueued on registration.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aargibay-evolmind/excusator-3000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// WelcomeEmailPayload is the job envelope sent to QueueEmail.
type WelcomeEmailPayload struct {
	ToEmail string `json:"to_email"`
}

// EmailWorker sends welcome emails via SMTP. Failed sends go to the DLQ.
type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}
	if !w.mailer.Enabled() {
		log.Debug().Str("to", payload.ToEmail).Msg("email_worker: SMTP not configured — skipping")
		return
	}

	subject := "Bienvenido a Excusator 3000"
	body := fmt.Sprintf("Hola %s,\n\nTu cuenta ya está activa. Nunca más te faltará una excusa.\n", payload.ToEmail)
	if err := w.mailer.Send(payload.ToEmail, subject, body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: welcome email sent")
}

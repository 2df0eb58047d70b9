package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrBadJob marks a message that can never be delivered and should be dropped.
var ErrBadJob = errors.New("bad email job")

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Deliver decodes a queued job, renders it and sends it. Errors wrapping
// ErrBadJob are permanent; any other error is worth a retry.
func Deliver(ctx context.Context, body []byte, s Sender, timeout time.Duration) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	subject, text, html, err := Render(job)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}

	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Send(sendCtx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	return nil
}

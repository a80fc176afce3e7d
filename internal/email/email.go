package email

import (
	"context"
	"fmt"

	"github.com/styledecor/styledecor/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %d (status %s)\n", event.Email, event.Type, event.BookingID, event.Status)
	return nil
}

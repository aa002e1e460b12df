// services/booking_notifier.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"capster-board/models"
	"capster-board/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type NotificationLogStore interface {
	Create(ctx context.Context, entry *models.NotificationLog) error
}

// WhatsAppNotifier sends booking confirmations through Twilio's WhatsApp
// sender and records every attempt.
type WhatsAppNotifier struct {
	sender messageSender
	from   string
	logs   NotificationLogStore
	logger *slog.Logger
}

func NewWhatsAppNotifier(accountSid, authToken, fromNumber string, logs NotificationLogStore, logger *slog.Logger) *WhatsAppNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &WhatsAppNotifier{
		sender: client.Api,
		from:   fromNumber,
		logs:   logs,
		logger: logger,
	}
}

// NotifyVisit never fails the booking; delivery problems end up in the
// notification log.
func (n *WhatsAppNotifier) NotifyVisit(ctx context.Context, visit GroupedAppointment) {
	if visit.Customer == nil || visit.Customer.WhatsApp == "" {
		return
	}
	message := confirmationMessage(visit)
	to := "whatsapp:" + utils.ToE164(visit.Customer.WhatsApp)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom("whatsapp:" + utils.ToE164(n.from))
	params.SetBody(message)

	entry := models.NotificationLog{
		CustomerID: visit.Customer.ID,
		VisitDate:  visit.Date,
		Channel:    "whatsapp",
		Recipient:  to,
		Message:    message,
		Status:     "sent",
		SentAt:     time.Now(),
	}

	resp, err := n.sender.CreateMessage(params)
	switch {
	case err != nil:
		n.logger.Warn("booking confirmation failed", "customer_id", visit.Customer.ID, "error", err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	case resp != nil && resp.Sid != nil:
		entry.ProviderSID = *resp.Sid
	}

	if err := n.logs.Create(ctx, &entry); err != nil {
		n.logger.Warn("log booking confirmation", "customer_id", visit.Customer.ID, "error", err)
	}
}

func confirmationMessage(visit GroupedAppointment) string {
	return fmt.Sprintf(
		"Halo %s, booking Anda tanggal %s jam %s untuk %s bersama capster %s sudah tercatat. Terima kasih!",
		visit.CustomerName(),
		visit.Date,
		visit.Time.Short(),
		strings.Join(visit.Treatments, ", "),
		visit.CapsterName(),
	)
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/database/notifications"
	"github.com/antonbelau/folio/internal/entities"
)

const defaultTimeout = 30 * time.Second

var errChannelDisabled = errors.New("channel disabled")

type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("panic during send: %v", e.value)
}

// Dispatcher fans one event out to all notification channels. Settings are
// read fresh from the database before every dispatch; there is no caching.
type Dispatcher struct {
	repo *notifications.Repository
	env  config.Notify

	httpClient  *http.Client
	emailAPIURL string
	// telegramSend overrides the Telegram transport in tests.
	telegramSend func(ctx context.Context, token string, chatID int64, text string) error
}

func NewDispatcher(repo *notifications.Repository, env config.Notify) *Dispatcher {
	return &Dispatcher{
		repo:        repo,
		env:         env,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		emailAPIURL: resendAPIURL,
	}
}

// NotifyNewContact dispatches a contact-form submission to every channel.
// Best effort: never returns an error, all outcomes land in the log.
func (d *Dispatcher) NotifyNewContact(ctx context.Context, req *entities.ContactRequest) {
	d.dispatch(ctx, BuildContactPayload(req))
}

// SendTest dispatches the admin test event and returns the event id so the
// caller can fetch the per-channel outcomes from the log.
func (d *Dispatcher) SendTest(ctx context.Context) string {
	return d.dispatch(ctx, BuildTestPayload(time.Now()))
}

// dispatch runs all four channel attempts concurrently and waits for every
// one to settle. Each attempt is isolated: it resolves its own config,
// performs its call, writes exactly one log row, and a panic in one channel
// cannot reach the others.
func (d *Dispatcher) dispatch(ctx context.Context, p Payload) string {
	eventID := uuid.NewString()

	settings, err := d.repo.GetSettings()
	if err != nil {
		// Channels fall back to environment credentials.
		log.Printf("Failed to load notification settings: %v", err)
		settings = nil
	}
	cfgs := resolveChannels(settings, d.env)

	attempts := []struct {
		channel entities.NotificationChannel
		enabled bool
		send    func(context.Context) error
	}{
		{entities.ChannelEmail, cfgs.Email.Enabled, func(ctx context.Context) error {
			return d.sendEmail(ctx, cfgs.Email, p)
		}},
		{entities.ChannelTelegram, cfgs.Telegram.Enabled, func(ctx context.Context) error {
			return d.sendTelegram(ctx, cfgs.Telegram, p)
		}},
		{entities.ChannelSlack, cfgs.Slack.Enabled, func(ctx context.Context) error {
			return d.sendSlack(ctx, cfgs.Slack, p)
		}},
		{entities.ChannelDiscord, cfgs.Discord.Enabled, func(ctx context.Context) error {
			return d.sendDiscord(ctx, cfgs.Discord, p)
		}},
	}

	var wg sync.WaitGroup
	for _, attempt := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.runAttempt(ctx, eventID, p, attempt.channel, attempt.enabled, attempt.send)
		}()
	}
	wg.Wait()

	return eventID
}

func (d *Dispatcher) runAttempt(ctx context.Context, eventID string, p Payload, channel entities.NotificationChannel, enabled bool, send func(context.Context) error) {
	var sendErr error

	if !enabled {
		sendErr = errChannelDisabled
	} else {
		func() {
			defer func() {
				if r := recover(); r != nil {
					sendErr = panicError{value: r}
				}
			}()
			sendErr = send(ctx)
		}()
	}

	entry := &entities.NotificationLog{
		EventID: eventID,
		Event:   p.Event,
		Channel: channel,
		Status:  entities.NotificationStatusSent,
		Payload: p.JSON,
	}
	if sendErr != nil {
		entry.Status = entities.NotificationStatusError
		entry.Detail = sendErr.Error()
		log.Printf("Notification channel %s failed for event %s: %v", channel, eventID, sendErr)
	}

	if err := d.repo.AppendLog(entry); err != nil {
		log.Printf("Failed to record notification log for channel %s: %v", channel, err)
	}
}

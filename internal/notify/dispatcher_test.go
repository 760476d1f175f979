package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/database/notifications"
	"github.com/antonbelau/folio/internal/entities"
)

func setupDispatcher(t *testing.T, env config.Notify) (*Dispatcher, *notifications.Repository, func()) {
	dbPath := "./test_notify_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.NotificationSettings{}, &entities.NotificationLog{})
	require.NoError(t, err)

	repo := notifications.NewRepository(db)
	dispatcher := NewDispatcher(repo, env)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return dispatcher, repo, cleanup
}

func testContact() *entities.ContactRequest {
	return &entities.ContactRequest{
		PublicID: "11111111-1111-1111-1111-111111111111",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Company:  "Analytical Engines Ltd",
		Message:  "I would like to discuss a potential collaboration on a compiler project.",
	}
}

func logByChannel(t *testing.T, repo *notifications.Repository, eventID string) map[entities.NotificationChannel]entities.NotificationLog {
	t.Helper()
	rows, err := repo.LogByEvent(eventID)
	require.NoError(t, err)
	byChannel := make(map[entities.NotificationChannel]entities.NotificationLog, len(rows))
	for _, row := range rows {
		byChannel[row.Channel] = row
	}
	return byChannel
}

func TestDispatch_AllUnconfiguredWritesFourErrorRows(t *testing.T) {
	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{})
	defer cleanup()

	eventID := dispatcher.SendTest(context.Background())

	rows := logByChannel(t, repo, eventID)
	require.Len(t, rows, 4)
	for _, channel := range entities.AllNotificationChannels {
		row, ok := rows[channel]
		require.True(t, ok, "missing log row for channel %s", channel)
		assert.Equal(t, entities.NotificationStatusError, row.Status)
		assert.NotEmpty(t, row.Detail)
	}

	// Email is enabled by default, so its failure is a config error rather
	// than a disabled channel.
	assert.Contains(t, rows[entities.ChannelEmail].Detail, "missing")
	assert.Equal(t, errChannelDisabled.Error(), rows[entities.ChannelTelegram].Detail)
}

func TestDispatch_SlackSuccess(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{})
	defer cleanup()

	require.NoError(t, repo.SaveSettings(&entities.NotificationSettings{
		SlackEnabled:    "true",
		SlackWebhookURL: server.URL,
	}))

	dispatcher.NotifyNewContact(context.Background(), testContact())

	rows, err := repo.RecentLog(10)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byChannel := logByChannel(t, repo, rows[0].EventID)
	assert.Equal(t, entities.NotificationStatusSent, byChannel[entities.ChannelSlack].Status)
	assert.Contains(t, received, "Ada Lovelace")
	assert.Equal(t, "contact_request", byChannel[entities.ChannelSlack].Event)
}

func TestDispatch_NonOKResponseLoggedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("invalid webhook token"))
	}))
	defer server.Close()

	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{DiscordWebhook: server.URL})
	defer cleanup()

	require.NoError(t, repo.SaveSettings(&entities.NotificationSettings{DiscordEnabled: "true"}))

	eventID := dispatcher.SendTest(context.Background())

	rows := logByChannel(t, repo, eventID)
	discord := rows[entities.ChannelDiscord]
	assert.Equal(t, entities.NotificationStatusError, discord.Status)
	assert.Contains(t, discord.Detail, "403")
	assert.Contains(t, discord.Detail, "invalid webhook token")
}

func TestDispatch_EmailViaResendAPI(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email-id"}`))
	}))
	defer server.Close()

	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{
		EmailFrom:    "site@example.com",
		EmailTo:      "owner@example.com",
		ResendAPIKey: "re_test_key",
	})
	defer cleanup()
	dispatcher.emailAPIURL = server.URL

	eventID := dispatcher.SendTest(context.Background())

	rows := logByChannel(t, repo, eventID)
	assert.Equal(t, entities.NotificationStatusSent, rows[entities.ChannelEmail].Status)
	assert.Equal(t, "Bearer re_test_key", auth)
}

func TestDispatch_ExplicitlyDisabledEmail(t *testing.T) {
	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{
		EmailFrom:    "site@example.com",
		EmailTo:      "owner@example.com",
		ResendAPIKey: "re_test_key",
	})
	defer cleanup()

	require.NoError(t, repo.SaveSettings(&entities.NotificationSettings{EmailEnabled: "false"}))

	eventID := dispatcher.SendTest(context.Background())

	rows := logByChannel(t, repo, eventID)
	assert.Equal(t, entities.NotificationStatusError, rows[entities.ChannelEmail].Status)
	assert.Equal(t, errChannelDisabled.Error(), rows[entities.ChannelEmail].Detail)
}

func TestDispatch_PanicInOneChannelDoesNotSuppressOthers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{SlackWebhook: server.URL})
	defer cleanup()

	require.NoError(t, repo.SaveSettings(&entities.NotificationSettings{
		SlackEnabled:     "true",
		TelegramEnabled:  "true",
		TelegramBotToken: "token",
		TelegramChatID:   "42",
	}))

	dispatcher.telegramSend = func(context.Context, string, int64, string) error {
		panic("boom")
	}

	eventID := dispatcher.SendTest(context.Background())

	rows := logByChannel(t, repo, eventID)
	require.Len(t, rows, 4)
	assert.Equal(t, entities.NotificationStatusSent, rows[entities.ChannelSlack].Status)
	assert.Equal(t, entities.NotificationStatusError, rows[entities.ChannelTelegram].Status)
	assert.Contains(t, rows[entities.ChannelTelegram].Detail, "boom")
}

func TestDispatch_SettingsCredentialsWinOverEnvironment(t *testing.T) {
	var hits int
	settingsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer settingsServer.Close()

	dispatcher, repo, cleanup := setupDispatcher(t, config.Notify{SlackWebhook: "http://127.0.0.1:1/unreachable"})
	defer cleanup()

	require.NoError(t, repo.SaveSettings(&entities.NotificationSettings{
		SlackEnabled:    "true",
		SlackWebhookURL: settingsServer.URL,
	}))

	eventID := dispatcher.SendTest(context.Background())

	rows := logByChannel(t, repo, eventID)
	assert.Equal(t, entities.NotificationStatusSent, rows[entities.ChannelSlack].Status)
	assert.Equal(t, 1, hits)
}

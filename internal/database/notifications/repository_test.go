package notifications

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonbelau/folio/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_notifications_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.NotificationSettings{}, &entities.NotificationLog{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewRepository(db), cleanup
}

func TestRepository_GetSettings_UnsetReturnsNil(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	settings, err := repo.GetSettings()
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestRepository_SaveSettings_Singleton(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SaveSettings(&entities.NotificationSettings{
		EmailEnabled: "true",
		EmailTo:      "me@example.com",
	})
	require.NoError(t, err)

	// Second save overwrites the same row
	err = repo.SaveSettings(&entities.NotificationSettings{
		EmailEnabled: "false",
		SlackEnabled: "true",
	})
	require.NoError(t, err)

	settings, err := repo.GetSettings()
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, entities.SingletonID, settings.ID)
	assert.Equal(t, "false", settings.EmailEnabled)
	assert.Equal(t, "true", settings.SlackEnabled)
}

func TestRepository_AppendLog_And_RecentLog(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, ch := range entities.AllNotificationChannels {
		err := repo.AppendLog(&entities.NotificationLog{
			EventID: "evt-1",
			Event:   "test",
			Channel: ch,
			Status:  entities.NotificationStatusError,
			Detail:  "not configured",
		})
		require.NoError(t, err)
	}

	entries, err := repo.RecentLog(10)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	byEvent, err := repo.LogByEvent("evt-1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 4)
}

func TestRepository_DeleteOldEntries(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.NotificationLog{
		EventID:   "evt-old",
		Channel:   entities.ChannelEmail,
		Status:    entities.NotificationStatusSent,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &entities.NotificationLog{
		EventID: "evt-new",
		Channel: entities.ChannelEmail,
		Status:  entities.NotificationStatusSent,
	}
	require.NoError(t, repo.AppendLog(old))
	require.NoError(t, repo.AppendLog(recent))

	deleted, err := repo.DeleteOldEntries(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err := repo.RecentLog(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "evt-new", entries[0].EventID)
}

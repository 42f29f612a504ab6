package notification

import (
	"context"
	"testing"

	"care-app-go/internal/db/dbtest"
	"care-app-go/internal/domain/authz"
	notificationdomain "care-app-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationInboxOverSQLite(t *testing.T) {
	gormDB := dbtest.Open(t)
	recipient := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	other := dbtest.SeedProfile(t, gormDB, "v@example.com", authz.RoleUser)
	svc := notificationdomain.NewService(NewPostgres(gormDB))
	ctx := context.Background()

	first, err := svc.Notify(ctx, notificationdomain.NotifyInput{RecipientID: recipient.ID, Type: notificationdomain.TypeApplicationStatus, Title: "a", Message: "m", Link: "/dashboard"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, notificationdomain.NotifyInput{RecipientID: recipient.ID, Title: "b", Message: "m"})
	require.NoError(t, err)

	inbox, err := svc.List(ctx, recipient.Actor())
	require.NoError(t, err)
	assert.Len(t, inbox.Items, 2)
	assert.Equal(t, int64(2), inbox.UnreadCount)

	_, err = svc.SetRead(ctx, other.Actor(), first.ID, true)
	assert.ErrorIs(t, err, notificationdomain.ErrNotificationNotFound)
	_, err = svc.SetRead(ctx, recipient.Actor(), "abc", true)
	assert.ErrorIs(t, err, notificationdomain.ErrNotificationNotFound)

	read, err := svc.SetRead(ctx, recipient.Actor(), first.ID, true)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	changed, err := svc.MarkAllRead(ctx, recipient.Actor())
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	changed, err = svc.MarkAllRead(ctx, recipient.Actor())
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)
}

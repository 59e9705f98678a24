package notify_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/Astemirdum/library-circulation/circulation/internal/notify"
	mock_notify "github.com/Astemirdum/library-circulation/circulation/internal/notify/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleNotifier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		to      notify.Recipient
		subject string
		message string
		want    string
	}{
		{
			name:    "personal",
			to:      notify.Personal(model.NewUser("João Silva", 1)),
			subject: "Loan",
			message: "You borrowed: Clean Code",
			want:    "[NOTIFY] To: João Silva | Loan - You borrowed: Clean Code\n",
		},
		{
			name:    "broadcast",
			to:      notify.Broadcast(),
			subject: "New Book",
			message: "Clean Code registered in the library.",
			want:    "[NOTIFY] To: everyone | New Book - Clean Code registered in the library.\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			notify.NewConsoleNotifier(&buf).Notify(context.Background(), tt.to, tt.subject, tt.message)
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)
	n := notify.NewLogNotifier(zap.New(core))

	n.Notify(context.Background(), notify.Personal(model.NewUser("Ana", 5)), "Fine", "You have a fine of 3")
	n.Notify(context.Background(), notify.Broadcast(), "New Book", "x")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "notify", entries[0].LoggerName)
	require.Equal(t, int64(5), entries[0].ContextMap()["userID"])
	require.Equal(t, false, entries[0].ContextMap()["broadcast"])
	require.Equal(t, true, entries[1].ContextMap()["broadcast"])
	require.NotContains(t, entries[1].ContextMap(), "userID")
}

func TestFanout(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	first := mock_notify.NewMockNotifier(c)
	second := mock_notify.NewMockNotifier(c)
	ctx := context.Background()
	to := notify.Broadcast()

	gomock.InOrder(
		first.EXPECT().Notify(ctx, to, "s", "m"),
		second.EXPECT().Notify(ctx, to, "s", "m"),
	)
	notify.Fanout{first, second}.Notify(ctx, to, "s", "m")
}

func TestRecipient(t *testing.T) {
	t.Parallel()
	u := model.NewUser("João Silva", 1)

	to := notify.Personal(u)
	require.False(t, to.IsBroadcast())
	require.Same(t, u, to.User())
	require.Equal(t, "João Silva", to.Name())

	all := notify.Broadcast()
	require.True(t, all.IsBroadcast())
	require.Nil(t, all.User())
	require.Equal(t, "everyone", all.Name())
}

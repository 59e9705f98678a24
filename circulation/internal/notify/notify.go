package notify

import (
	"context"

	"github.com/Astemirdum/library-circulation/circulation/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=notify.go -destination=mocks/mock.go

type Notifier interface {
	Notify(ctx context.Context, to Recipient, subject, message string)
}

const broadcastName = "everyone"

// Recipient is either a single user or a library-wide broadcast.
type Recipient struct {
	user *model.User
	all  bool
}

func Personal(u *model.User) Recipient {
	return Recipient{user: u}
}

func Broadcast() Recipient {
	return Recipient{all: true}
}

func (r Recipient) IsBroadcast() bool {
	return r.all
}

func (r Recipient) User() *model.User {
	return r.user
}

func (r Recipient) Name() string {
	if r.IsBroadcast() {
		return broadcastName
	}
	return r.user.Name
}

// Fanout delivers every notification to each notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, to Recipient, subject, message string) {
	for _, n := range f {
		n.Notify(ctx, to, subject, message)
	}
}

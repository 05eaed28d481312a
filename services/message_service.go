package services

import (
	"context"
	"strings"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/events"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

// MessageService stores direct messages and pushes them to the receiver.
type MessageService struct {
	Repo     *repository.MessageRepository
	Users    *repository.UserRepository
	Notifier Notifier
	Events   *publisher
}

type SendMessageIn struct {
	Receiver string `json:"receiver" binding:"required"`
	Body     string `json:"body" binding:"required,max=2000"`
}

// List returns everything for admins and only p's own conversation otherwise.
func (s *MessageService) List(ctx context.Context, p Principal, page repository.Page) ([]entity.Message, error) {
	var (
		msgs []entity.Message
		err  error
	)
	if p.IsAdmin() {
		msgs, err = s.Repo.List(ctx, nil, page)
	} else {
		msgs, err = s.Repo.FindForUser(ctx, p.ID, page)
	}
	if err != nil {
		return nil, apperr.Internal(err, "list messages failed")
	}
	return msgs, nil
}

func (s *MessageService) Get(ctx context.Context, p Principal, id string) (*entity.Message, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No message with the id of %s", id)
	}
	if !p.IsAdmin() && p.ID != m.SenderID && p.ID != m.ReceiverID {
		return nil, apperr.Unauthorized("User %s is not authorized to read message %s", p.ID, id)
	}
	return m, nil
}

func (s *MessageService) Send(ctx context.Context, p Principal, in SendMessageIn) (*entity.Message, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, apperr.Validation("Please add a message body")
	}
	if _, err := s.Users.FindByID(ctx, in.Receiver); err != nil {
		return nil, lookupErr(err, "There is no user with an id of %s", in.Receiver)
	}

	m := &entity.Message{SenderID: p.ID, ReceiverID: in.Receiver, Body: body}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, persistErr(err)
	}
	if s.Notifier != nil {
		s.Notifier.Notify(m.ReceiverID, m)
	}
	s.Events.publish(ctx, events.MessageCreated, m.ReceiverID, m)
	return m, nil
}

package services

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

var ErrReminderNotFound = errors.New("reminder not found")

// ReminderStore is the keyed reminder storage the engine works against.
type ReminderStore interface {
	GetReminder(ctx context.Context, reminderID string) (*model.Reminder, error)
	ListUnsentByUser(ctx context.Context, userID string) ([]model.Reminder, error)
	HasKind(ctx context.Context, taskID string, kind model.ReminderKind) (bool, error)
	ReplaceForTask(ctx context.Context, taskID string, reminders []model.Reminder) error
	MarkSent(ctx context.Context, reminderID string, at time.Time) error
}

type FirestoreReminderStore struct {
	client *firestore.Client
}

func NewFirestoreReminderStore(client *firestore.Client) *FirestoreReminderStore {
	return &FirestoreReminderStore{client: client}
}

func (s *FirestoreReminderStore) GetReminder(ctx context.Context, reminderID string) (*model.Reminder, error) {
	doc, err := s.client.Collection("Reminders").Doc(reminderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	var reminder model.Reminder
	if err := doc.DataTo(&reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *FirestoreReminderStore) ListUnsentByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	iter := s.client.Collection("Reminders").
		Where("userid", "==", userID).
		Where("sent", "==", false).
		OrderBy("duedate", firestore.Asc).
		OrderBy("createdat", firestore.Asc).
		Documents(ctx)

	var reminders []model.Reminder
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var reminder model.Reminder
		if err := doc.DataTo(&reminder); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

func (s *FirestoreReminderStore) HasKind(ctx context.Context, taskID string, kind model.ReminderKind) (bool, error) {
	docs, err := s.client.Collection("Reminders").
		Where("taskid", "==", taskID).
		Where("kind", "==", string(kind)).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// ReplaceForTask swaps every reminder of a task for the given set in a single
// transaction, so two concurrent regenerations cannot interleave their
// delete-old/insert-new steps.
func (s *FirestoreReminderStore) ReplaceForTask(ctx context.Context, taskID string, reminders []model.Reminder) error {
	collection := s.client.Collection("Reminders")
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(collection.Where("taskid", "==", taskID)).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range existing {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}
		for _, reminder := range reminders {
			if err := tx.Set(collection.Doc(reminder.ReminderID), reminder); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *FirestoreReminderStore) MarkSent(ctx context.Context, reminderID string, at time.Time) error {
	_, err := s.client.Collection("Reminders").Doc(reminderID).Update(ctx, []firestore.Update{
		{Path: "sent", Value: true},
		{Path: "sentat", Value: at},
	})
	if err != nil && status.Code(err) == codes.NotFound {
		return ErrReminderNotFound
	}
	return err
}

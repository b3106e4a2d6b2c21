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

var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the slice of task storage the reminder engine depends on.
type TaskStore interface {
	GetTask(ctx context.Context, taskID string) (*model.Tasks, error)
	ListOverdueUnreminded(ctx context.Context, now time.Time) ([]model.Tasks, error)
	SetLastRemindedAt(ctx context.Context, taskID string, at time.Time) error
	DeleteTask(ctx context.Context, taskID string) error
}

type FirestoreTaskStore struct {
	client *firestore.Client
}

func NewFirestoreTaskStore(client *firestore.Client) *FirestoreTaskStore {
	return &FirestoreTaskStore{client: client}
}

func (s *FirestoreTaskStore) GetTask(ctx context.Context, taskID string) (*model.Tasks, error) {
	doc, err := s.client.Collection("Tasks").Doc(taskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	var task model.Tasks
	if err := doc.DataTo(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *FirestoreTaskStore) ListOverdueUnreminded(ctx context.Context, now time.Time) ([]model.Tasks, error) {
	iter := s.client.Collection("Tasks").
		Where("completed", "==", false).
		Where("duedate", "<", now).
		Documents(ctx)

	var tasks []model.Tasks
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var task model.Tasks
		if err := doc.DataTo(&task); err != nil {
			return nil, err
		}

		// Firestore cannot query for an absent field, so the
		// never-reminded filter happens here.
		if task.LastRemindedAt != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *FirestoreTaskStore) DeleteTask(ctx context.Context, taskID string) error {
	_, err := s.client.Collection("Tasks").Doc(taskID).Delete(ctx)
	return err
}

func (s *FirestoreTaskStore) SetLastRemindedAt(ctx context.Context, taskID string, at time.Time) error {
	_, err := s.client.Collection("Tasks").Doc(taskID).Update(ctx, []firestore.Update{
		{Path: "lastremindedat", Value: at},
	})
	if err != nil && status.Code(err) == codes.NotFound {
		return ErrTaskNotFound
	}
	return err
}

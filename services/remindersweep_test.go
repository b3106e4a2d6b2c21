package services

import (
	"context"
	"testing"
	"time"

	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

func TestSweepCreatesOverdueAndStamps(t *testing.T) {
	engine, tasks, reminders, _ := newTestEngine(testNow)
	tasks.put(datedTask("t1", "u1", testNow.AddDate(0, 0, -1)))

	created, err := engine.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d reminders, want 1", len(created))
	}
	if created[0].Kind != model.KindOverdue {
		t.Errorf("kind = %q, want %q", created[0].Kind, model.KindOverdue)
	}

	task, _ := tasks.GetTask(context.Background(), "t1")
	if task.LastRemindedAt == nil || !task.LastRemindedAt.Equal(testNow) {
		t.Errorf("lastremindedat = %v, want %v", task.LastRemindedAt, testNow)
	}

	if stored := reminders.byTask("t1"); len(stored) != 1 {
		t.Errorf("stored %d reminders, want 1", len(stored))
	}
}

func TestSweepSkipsAlreadyReminded(t *testing.T) {
	engine, tasks, _, _ := newTestEngine(testNow)
	task := datedTask("t1", "u1", testNow.AddDate(0, 0, -1))
	remindedAt := testNow.Add(-time.Hour)
	task.LastRemindedAt = &remindedAt
	tasks.put(task)

	created, err := engine.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d reminders, want 0", len(created))
	}
}

func TestSweepSkipsExistingOverdueReminder(t *testing.T) {
	engine, tasks, reminders, _ := newTestEngine(testNow)
	due := testNow.AddDate(0, 0, -1)
	tasks.put(datedTask("t1", "u1", due))
	reminders.put(model.Reminder{
		ReminderID: "r1", TaskID: "t1", UserID: "u1",
		Kind: model.KindOverdue, DueDate: due,
	})

	created, err := engine.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d reminders, want 0", len(created))
	}
	if stored := reminders.byTask("t1"); len(stored) != 1 || stored[0].ReminderID != "r1" {
		t.Errorf("existing overdue reminder was replaced: %+v", stored)
	}
}

func TestSweepIgnoresCompletedAndFutureTasks(t *testing.T) {
	engine, tasks, _, _ := newTestEngine(testNow)

	done := datedTask("done", "u1", testNow.AddDate(0, 0, -5))
	done.Completed = true
	tasks.put(done)
	tasks.put(datedTask("future", "u1", testNow.AddDate(0, 0, 5)))
	tasks.put(model.Tasks{TaskID: "undated", UserID: "u1", Title: "Tanpa tanggal"})

	created, err := engine.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d reminders, want 0", len(created))
	}
}

// TestSweepReplacesStaleReminder pins the single-authority behavior: a task
// whose stored reminder predates a missed due date ends up with just the
// overdue notice, not both.
func TestSweepReplacesStaleReminder(t *testing.T) {
	engine, tasks, reminders, _ := newTestEngine(testNow)
	due := testNow.AddDate(0, 0, -1)
	tasks.put(datedTask("t1", "u1", due))
	reminders.put(model.Reminder{
		ReminderID: "stale", TaskID: "t1", UserID: "u1",
		Kind: model.Kind7Days, DueDate: due.AddDate(0, 0, 7),
	})

	created, err := engine.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if len(created) != 1 || created[0].Kind != model.KindOverdue {
		t.Fatalf("created = %+v, want one overdue reminder", created)
	}

	stored := reminders.byTask("t1")
	if len(stored) != 1 || stored[0].Kind != model.KindOverdue {
		t.Errorf("stored = %+v, want only the overdue reminder", stored)
	}
}

// TestReadAsOfScenario walks the fixed-clock timeline: a week out, the day
// before, then past due with a sweep catching up.
func TestReadAsOfScenario(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	engine, tasks, reminders, clock := newTestEngine(start)

	due := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	tasks.put(datedTask("t1", "u1", due))

	ctx := context.Background()
	generated, err := engine.GenerateForTask(ctx, "t1")
	if err != nil {
		t.Fatalf("generate at %v: %v", clock.now, err)
	}
	if generated[0].Kind != model.Kind7Days {
		t.Fatalf("kind at 7 days out = %q, want %q", generated[0].Kind, model.Kind7Days)
	}

	clock.now = time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	generated, err = engine.GenerateForTask(ctx, "t1")
	if err != nil {
		t.Fatalf("generate at %v: %v", clock.now, err)
	}
	if generated[0].Kind != model.Kind1Day {
		t.Fatalf("kind the day before = %q, want %q", generated[0].Kind, model.Kind1Day)
	}

	// The due date slips past without another regeneration; the sweep is
	// what materializes the overdue notice.
	clock.now = time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC)
	created, err := engine.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("sweep at %v: %v", clock.now, err)
	}
	if len(created) != 1 || created[0].Kind != model.KindOverdue {
		t.Fatalf("sweep created %+v, want one overdue reminder", created)
	}
	if stored := reminders.byTask("t1"); len(stored) != 1 {
		t.Errorf("stored %d reminders after sweep, want 1", len(stored))
	}
}

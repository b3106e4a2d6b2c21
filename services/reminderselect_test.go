package services

import (
	"context"
	"testing"
	"time"

	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

func unsent(id, taskID string, kind model.ReminderKind, due, createdAt time.Time) model.Reminder {
	return model.Reminder{
		ReminderID: id,
		TaskID:     taskID,
		UserID:     "u1",
		Kind:       kind,
		Message:    "m",
		DueDate:    due,
		CreatedAt:  createdAt,
	}
}

func TestNearestTieBreakOverdueWins(t *testing.T) {
	engine, _, reminders, _ := newTestEngine(testNow)

	// A stale upcoming leftover next to a fresher overdue notice for the
	// same task.
	reminders.put(unsent("up", "t1", model.Kind30Days, testNow.AddDate(0, 0, 10), testNow.Add(-48*time.Hour)))
	reminders.put(unsent("over", "t1", model.KindOverdue, testNow.AddDate(0, 0, -1), testNow))

	dashboard, err := engine.NearestReminders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("NearestReminders: %v", err)
	}

	if dashboard.Counts.Total != 1 {
		t.Fatalf("total = %d, want 1", dashboard.Counts.Total)
	}
	if len(dashboard.Grouped.Overdue) != 1 || dashboard.Grouped.Overdue[0].ReminderID != "over" {
		t.Errorf("overdue bucket = %+v, want the overdue reminder only", dashboard.Grouped.Overdue)
	}
	if len(dashboard.Grouped.Upcoming) != 0 {
		t.Errorf("upcoming bucket = %+v, want empty", dashboard.Grouped.Upcoming)
	}
}

func TestBucketExclusivity(t *testing.T) {
	engine, _, reminders, _ := newTestEngine(testNow)

	reminders.put(unsent("r1", "t1", model.KindOverdue, testNow.AddDate(0, 0, -1), testNow))
	reminders.put(unsent("r2", "t2", model.KindDueToday, testNow.Add(3*time.Hour), testNow))
	reminders.put(unsent("r3", "t3", model.Kind7Days, testNow.AddDate(0, 0, 5), testNow))

	dashboard, err := engine.NearestReminders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("NearestReminders: %v", err)
	}

	counts := dashboard.Counts
	if counts.Total != 3 || counts.Overdue != 1 || counts.DueToday != 1 || counts.Upcoming != 1 {
		t.Fatalf("counts = %+v, want {3 1 1 1}", counts)
	}

	seen := make(map[string]int)
	for _, reminder := range dashboard.Grouped.Overdue {
		seen[reminder.TaskID]++
	}
	for _, reminder := range dashboard.Grouped.DueToday {
		seen[reminder.TaskID]++
	}
	for _, reminder := range dashboard.Grouped.Upcoming {
		seen[reminder.TaskID]++
	}
	for taskID, n := range seen {
		if n != 1 {
			t.Errorf("task %s appears in %d buckets", taskID, n)
		}
	}
}

func TestRecentFeedTopFive(t *testing.T) {
	engine, _, reminders, _ := newTestEngine(testNow)

	dues := []time.Time{
		testNow.AddDate(0, 0, -3),
		testNow.AddDate(0, 0, -1),
		testNow.Add(2 * time.Hour),
		testNow.AddDate(0, 0, 2),
		testNow.AddDate(0, 0, 6),
		testNow.AddDate(0, 0, 12),
		testNow.AddDate(0, 0, 25),
	}
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, due := range dues {
		reminders.put(unsent(ids[i], "task-"+ids[i], model.Kind7Days, due, testNow))
	}

	dashboard, err := engine.NearestReminders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("NearestReminders: %v", err)
	}

	if len(dashboard.Recent) != 5 {
		t.Fatalf("recent feed has %d entries, want 5", len(dashboard.Recent))
	}
	for i, entry := range dashboard.Recent {
		if entry.ReminderID != ids[i] {
			t.Errorf("recent[%d] = %s, want %s", i, entry.ReminderID, ids[i])
		}
	}

	// Oldest overdue first: due 3 days ago at the same time of day.
	if dashboard.Recent[0].DaysLeft != -3 {
		t.Errorf("daysLeft for 3 days past = %d, want -3", dashboard.Recent[0].DaysLeft)
	}
	// Due later today still counts as one day left by the ceiling rule.
	if dashboard.Recent[2].DaysLeft != 1 {
		t.Errorf("daysLeft for later today = %d, want 1", dashboard.Recent[2].DaysLeft)
	}
	wantLabel := dues[0].Format("02/01/2006")
	if dashboard.Recent[0].DueDateLabel != wantLabel {
		t.Errorf("duedateLabel = %q, want %q", dashboard.Recent[0].DueDateLabel, wantLabel)
	}
}

func TestNearestRemindersSkipsSentAndForeign(t *testing.T) {
	engine, _, reminders, _ := newTestEngine(testNow)

	sent := unsent("sent", "t1", model.Kind7Days, testNow.AddDate(0, 0, 3), testNow)
	sent.Sent = true
	reminders.put(sent)

	foreign := unsent("foreign", "t2", model.Kind7Days, testNow.AddDate(0, 0, 3), testNow)
	foreign.UserID = "u2"
	reminders.put(foreign)

	dashboard, err := engine.NearestReminders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("NearestReminders: %v", err)
	}
	if dashboard.Counts.Total != 0 {
		t.Errorf("total = %d, want 0", dashboard.Counts.Total)
	}
	if len(dashboard.Recent) != 0 {
		t.Errorf("recent = %+v, want empty", dashboard.Recent)
	}
}

func TestGroupTasksByDueUsesEngineClock(t *testing.T) {
	engine, _, _, _ := newTestEngine(testNow)

	startOfToday := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	dues := map[string]time.Time{
		"yesterday":   testNow.AddDate(0, 0, -1),
		"midnight":    startOfToday,
		"later-today": testNow.Add(3 * time.Hour),
		"tomorrow":    startOfToday.AddDate(0, 0, 1),
		"next-week":   testNow.AddDate(0, 0, 5),
	}

	var tasks []model.Tasks
	for id, due := range dues {
		tasks = append(tasks, datedTask(id, "u1", due))
	}
	tasks = append(tasks, model.Tasks{TaskID: "undated", UserID: "u1", Title: "Tanpa tanggal"})

	overdue, dueToday, upcoming := engine.GroupTasksByDue(tasks)

	got := map[string]int{}
	for _, task := range overdue {
		got[task.TaskID] = 0
	}
	for _, task := range dueToday {
		got[task.TaskID] = 1
	}
	for _, task := range upcoming {
		got[task.TaskID] = 2
	}

	want := map[string]int{
		"yesterday":   0,
		"midnight":    1,
		"later-today": 1,
		"tomorrow":    2,
		"next-week":   2,
	}
	if len(got) != len(want) {
		t.Fatalf("partitioned %d tasks, want %d (undated must be skipped)", len(got), len(want))
	}
	for id, bucket := range want {
		if got[id] != bucket {
			t.Errorf("task %s in bucket %d, want %d", id, got[id], bucket)
		}
	}
}

func TestNearestTieBreakSameBucketEarlierDueDate(t *testing.T) {
	engine, _, reminders, _ := newTestEngine(testNow)

	reminders.put(unsent("later", "t1", model.Kind30Days, testNow.AddDate(0, 0, 20), testNow))
	reminders.put(unsent("sooner", "t1", model.Kind7Days, testNow.AddDate(0, 0, 4), testNow))

	dashboard, err := engine.NearestReminders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("NearestReminders: %v", err)
	}
	if dashboard.Counts.Total != 1 {
		t.Fatalf("total = %d, want 1", dashboard.Counts.Total)
	}
	if dashboard.Grouped.Upcoming[0].ReminderID != "sooner" {
		t.Errorf("kept %s, want the earlier due date", dashboard.Grouped.Upcoming[0].ReminderID)
	}
}

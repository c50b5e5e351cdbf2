package services

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/diva1520/task-tracker/constants"
)

func newTimesheetEnv(t *testing.T) (*TimesheetService, *testEnv) {
	t.Helper()
	e := newTestEnv(t)
	svc := &TimesheetService{TaskSvc: e.svc, Clock: func() time.Time { return e.now }}
	return svc, e
}

func TestSaveWeeklyGoesThroughRecorder(t *testing.T) {
	svc, e := newTimesheetEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	first := e.addTask(t, worker, constants.StatusInProgress)
	second := e.addTask(t, worker, constants.StatusInProgress)

	msg, err := svc.SaveWeekly(worker.ID, WeeklyLogRequest{
		TaskLogs: []TaskLogEntry{
			{TaskID: first.ID, Entries: []DailyEntry{
				{Date: "2026-03-02", Hours: 2, Comment: "monday"},
				{Date: "2026-03-03", Hours: 1.5},
			}},
			// Same day and anchor as the first task's Monday cell, so the
			// recorder's overlap check drops it.
			{TaskID: second.ID, Entries: []DailyEntry{
				{Date: "2026-03-02", Hours: 1},
			}},
		},
	})
	if err != nil {
		t.Fatalf("SaveWeekly: %v", err)
	}
	if msg != "Successfully saved 2 entries." {
		t.Fatalf("unexpected summary %q", msg)
	}

	saved, _ := e.tasks.Get(first.ID)
	if saved.TotalWorkedMinutes != 210 {
		t.Fatalf("expected 210 minutes on first task, got %d", saved.TotalWorkedMinutes)
	}
	untouched, _ := e.tasks.Get(second.ID)
	if untouched.TotalWorkedMinutes != 0 {
		t.Fatalf("overlapping cell must not record, got %d minutes", untouched.TotalWorkedMinutes)
	}
}

func TestWeeklyGrid(t *testing.T) {
	svc, e := newTimesheetEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusInProgress)

	if _, err := svc.SaveWeekly(worker.ID, WeeklyLogRequest{
		TaskLogs: []TaskLogEntry{
			{TaskID: task.ID, Entries: []DailyEntry{
				{Date: "2026-03-03", Hours: 2.5, Comment: "tuesday work"},
			}},
		},
	}); err != nil {
		t.Fatalf("SaveWeekly: %v", err)
	}

	weekStart := day(2026, 3, 2)
	grid, err := svc.Weekly(worker.ID, weekStart)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if grid.WeekStartDate != "2026-03-02" {
		t.Fatalf("week start %q", grid.WeekStartDate)
	}
	if len(grid.TaskLogs) != 1 {
		t.Fatalf("expected 1 task row, got %d", len(grid.TaskLogs))
	}

	row := grid.TaskLogs[0]
	if len(row.Entries) != 7 {
		t.Fatalf("expected 7 day cells, got %d", len(row.Entries))
	}
	tuesday := row.Entries[1]
	if tuesday.Date != "2026-03-03" {
		t.Fatalf("cell date %q", tuesday.Date)
	}
	if tuesday.Hours == nil || *tuesday.Hours != 2.5 {
		t.Fatalf("expected 2.5 hours on tuesday, got %v", tuesday.Hours)
	}
	if tuesday.Comment == nil || *tuesday.Comment != "tuesday work" {
		t.Fatalf("expected comment on tuesday, got %v", tuesday.Comment)
	}
	if row.Entries[0].Hours != nil {
		t.Fatal("monday should be empty")
	}
}

func TestUploadTimesheet(t *testing.T) {
	svc, e := newTimesheetEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusInProgress)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Task ID", "Task Title", "Status", "Date (YYYY-MM-DD)", "Hours Worked", "Comment"},
		{task.ID, "task", "IN_PROGRESS", "2026-03-04", 3.0, "bulk entry"},
		{"not-a-number", "bad row", "", "2026-03-04", 1.0, ""},
		{task.ID, "task", "IN_PROGRESS", "2026-03-05", 0, "zero hours skipped"},
	}
	for r, values := range rows {
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	msg, err := svc.Upload(worker.ID, &buf)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(msg, "Processed: 1 entries created.") {
		t.Fatalf("unexpected summary %q", msg)
	}
	if !strings.Contains(msg, "Failed: 1") {
		t.Fatalf("bad row should be reported, got %q", msg)
	}

	logs, _ := e.logs.ByTask(task.ID)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].DurationMinutes != 180 {
		t.Fatalf("expected 180 minutes, got %d", logs[0].DurationMinutes)
	}
	if !strings.HasPrefix(logs[0].Comment, "[Bulk Upload] ") {
		t.Fatalf("uploaded log comment %q", logs[0].Comment)
	}
}

func TestTemplateListsActiveTasks(t *testing.T) {
	svc, e := newTimesheetEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	active := e.addTask(t, worker, constants.StatusInProgress)
	done := e.addTask(t, worker, constants.StatusCompleted)

	data, err := svc.Template(worker.ID)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(timesheetSheet)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one active task, got %d rows", len(rows))
	}
	if got := cellString(rows[1], 0); got != strconv.Itoa(int(active.ID)) {
		t.Fatalf("expected active task id %d in the template, got %q", active.ID, got)
	}
	for _, row := range rows[1:] {
		if cellString(row, 0) == strconv.Itoa(int(done.ID)) {
			t.Fatal("completed task must not appear in the template")
		}
	}
}

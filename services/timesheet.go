package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

const timesheetSheet = "Timesheet"

// weeklyAnchorHour is where interval-less timesheet hours start: uploaded
// rows land at midnight, weekly-grid entries at 9 AM.
const weeklyAnchorHour = 9

// TimesheetService turns spreadsheet and weekly-grid input into work logs.
// All log writes go through the recorder so the overlap and total-minutes
// invariants hold for bulk input too.
type TimesheetService struct {
	TaskSvc *TaskService
	Clock   Clock
}

// Template renders an xlsx sheet pre-filled with the user's active tasks.
func (t *TimesheetService) Template(userID uint) ([]byte, error) {
	tasks, err := t.TaskSvc.ListOwn(userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", timesheetSheet)

	headers := []string{"Task ID", "Task Title", "Status", "Date (YYYY-MM-DD)", "Hours Worked", "Comment"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(timesheetSheet, cell, h)
	}

	row := 2
	today := t.Clock().Format("2006-01-02")
	for i := range tasks {
		if tasks[i].Status == constants.StatusCompleted {
			continue
		}
		values := []any{tasks[i].ID, tasks[i].Title, string(tasks[i].Status), today, 0, ""}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(timesheetSheet, cell, v)
		}
		row++
	}
	f.SetColWidth(timesheetSheet, "A", "F", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Upload parses a filled template and records one work log per row with
// hours. Rows that fail validation are skipped and reported, not fatal.
func (t *TimesheetService) Upload(userID uint, r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", Validationf("could not read spreadsheet: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", err
	}

	created := 0
	failed := 0
	var errs strings.Builder

	for i, row := range rows {
		if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		rowNum := i + 1

		taskID, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 32)
		if err != nil {
			failed++
			fmt.Fprintf(&errs, "Row %d: invalid task id. ", rowNum)
			continue
		}

		hours := cellFloat(row, 4)
		if hours <= 0 {
			continue
		}

		date := t.Clock()
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(cellString(row, 3))); err == nil {
			date = d
		}
		start := startOfDay(date)
		minutes := int64(hours * 60)

		_, err = t.TaskSvc.LogWork(WorkLogRequest{
			TaskID:    uint(taskID),
			ActorID:   userID,
			StartTime: start,
			EndTime:   start.Add(time.Duration(minutes) * time.Minute),
			Comment:   "[Bulk Upload] " + cellString(row, 5),
		})
		if err != nil {
			failed++
			fmt.Fprintf(&errs, "Row %d: %s. ", rowNum, err)
			continue
		}
		created++
	}

	summary := fmt.Sprintf("Processed: %d entries created.", created)
	if failed > 0 {
		summary += fmt.Sprintf(" Failed: %d. Errors: %s", failed, errs.String())
	}
	return summary, nil
}

// WeeklyLogRequest is the weekly grid submitted by the UI: hours per task
// per day.
type WeeklyLogRequest struct {
	TaskLogs []TaskLogEntry `json:"task_logs"`
}

type TaskLogEntry struct {
	TaskID  uint         `json:"task_id"`
	Entries []DailyEntry `json:"entries"`
}

type DailyEntry struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Hours   float64 `json:"hours"`
	Comment string  `json:"comment"`
}

// SaveWeekly records a work log for every grid cell with hours, anchored
// at 9 AM. Cells for tasks the user does not own, or that collide with
// existing logs, are skipped.
func (t *TimesheetService) SaveWeekly(userID uint, req WeeklyLogRequest) (string, error) {
	saved := 0
	for _, taskLog := range req.TaskLogs {
		for _, entry := range taskLog.Entries {
			if entry.Hours <= 0 {
				continue
			}
			date, err := time.Parse("2006-01-02", entry.Date)
			if err != nil {
				continue
			}

			comment := entry.Comment
			if comment == "" {
				comment = "Timesheet Log"
			}
			start := startOfDay(date).Add(weeklyAnchorHour * time.Hour)
			minutes := int64(entry.Hours * 60)

			if _, err := t.TaskSvc.LogWork(WorkLogRequest{
				TaskID:    taskLog.TaskID,
				ActorID:   userID,
				StartTime: start,
				EndTime:   start.Add(time.Duration(minutes) * time.Minute),
				Comment:   comment,
			}); err != nil {
				continue
			}
			saved++
		}
	}
	return fmt.Sprintf("Successfully saved %d entries.", saved), nil
}

// WeeklyLogs builds the seven-day grid for one week: every non-completed
// task plus completed ones that still have activity that week.
type WeeklyLogs struct {
	WeekStartDate string         `json:"week_start_date"`
	TaskLogs      []WeeklyTaskRow `json:"task_logs"`
}

type WeeklyTaskRow struct {
	TaskID    uint        `json:"task_id"`
	TaskTitle string      `json:"task_title"`
	Status    string      `json:"status"`
	Entries   []WeeklyDay `json:"entries"`
}

type WeeklyDay struct {
	Date    string   `json:"date"`
	Hours   *float64 `json:"hours"`
	Comment *string  `json:"comment"`
}

func (t *TimesheetService) Weekly(userID uint, weekStart time.Time) (*WeeklyLogs, error) {
	tasks, err := t.TaskSvc.ListOwn(userID)
	if err != nil {
		return nil, err
	}

	from := startOfDay(weekStart)
	to := from.Add(7 * 24 * time.Hour)
	logs, err := t.TaskSvc.WorkLogs.ByUserBetween(userID, from, to)
	if err != nil {
		return nil, err
	}

	logsByTask := make(map[uint][]models.WorkLog)
	for i := range logs {
		logsByTask[logs[i].TaskID] = append(logsByTask[logs[i].TaskID], logs[i])
	}

	out := &WeeklyLogs{WeekStartDate: from.Format("2006-01-02")}
	for i := range tasks {
		task := &tasks[i]
		taskLogs := logsByTask[task.ID]
		if task.Status == constants.StatusCompleted && len(taskLogs) == 0 {
			continue
		}

		row := WeeklyTaskRow{
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Status:    string(task.Status),
		}
		for day := 0; day < 7; day++ {
			date := from.Add(time.Duration(day) * 24 * time.Hour)
			cell := WeeklyDay{Date: date.Format("2006-01-02")}

			var minutes int64
			var comments []string
			for j := range taskLogs {
				if startOfDay(taskLogs[j].StartTime).Equal(date) {
					minutes += taskLogs[j].DurationMinutes
					if taskLogs[j].Comment != "" {
						comments = append(comments, taskLogs[j].Comment)
					}
				}
			}
			if minutes > 0 {
				hours := float64(minutes) / 60.0
				cell.Hours = &hours
			}
			if len(comments) > 0 {
				joined := strings.Join(comments, "; ")
				cell.Comment = &joined
			}
			row.Entries = append(row.Entries, cell)
		}
		out.TaskLogs = append(out.TaskLogs, row)
	}
	return out, nil
}

func cellString(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func cellFloat(row []string, idx int) float64 {
	v, err := strconv.ParseFloat(cellString(row, idx), 64)
	if err != nil {
		return 0
	}
	return v
}

package services

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/diva1520/task-tracker/constants"
)

// ReportService renders per-user activity workbooks.
type ReportService struct {
	Users    UserStore
	Tasks    TaskStore
	WorkLogs WorkLogStore
	Audits   LoginAuditStore
}

// ActivityReport builds an xlsx workbook with a profile summary, the
// user's tasks, their work logs and their login sessions.
func (r *ReportService) ActivityReport(userID uint) ([]byte, error) {
	user, err := r.Users.Get(userID)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	// Summary sheet.
	const summary = "Summary"
	f.SetSheetName("Sheet1", summary)

	status := "Inactive"
	if user.Active {
		status = "Active"
	}
	tasks, err := r.Tasks.ByOwner(userID)
	if err != nil {
		return nil, err
	}
	completed := 0
	for i := range tasks {
		if tasks[i].Status == constants.StatusCompleted {
			completed++
		}
	}

	setRow(f, summary, 1, "User Profile")
	f.SetCellStyle(summary, "A1", "A1", headerStyle)
	setRow(f, summary, 2, "ID", fmt.Sprint(user.ID))
	setRow(f, summary, 3, "Username", user.Username)
	setRow(f, summary, 4, "Email", user.Email)
	setRow(f, summary, 5, "Role", string(user.Role))
	setRow(f, summary, 6, "Status", status)
	setRow(f, summary, 8, "Statistics")
	f.SetCellStyle(summary, "A8", "A8", headerStyle)
	setRow(f, summary, 9, "Total Tasks Assigned", fmt.Sprint(len(tasks)))
	setRow(f, summary, 10, "Tasks Completed", fmt.Sprint(completed))
	setRow(f, summary, 11, "Pending / In Progress", fmt.Sprint(len(tasks)-completed))
	f.SetColWidth(summary, "A", "B", 24)

	// Tasks sheet.
	const taskSheet = "Tasks"
	f.NewSheet(taskSheet)
	writeHeader(f, taskSheet, headerStyle,
		"ID", "Title", "Description", "Status", "Created At", "Due Date", "Total Hours")
	for i := range tasks {
		t := &tasks[i]
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		setRow(f, taskSheet, i+2,
			fmt.Sprint(t.ID), t.Title, t.Description, string(t.Status),
			t.CreatedAt.Format("2006-01-02"), due,
			fmt.Sprintf("%.1f", float64(t.TotalWorkedMinutes)/60.0))
	}
	f.SetColWidth(taskSheet, "A", "G", 20)

	// Work logs sheet.
	const logSheet = "WorkLogs"
	f.NewSheet(logSheet)
	writeHeader(f, logSheet, headerStyle,
		"Task ID", "Start", "End", "Minutes", "Comment")
	logs, err := r.WorkLogs.ByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		l := &logs[i]
		setRow(f, logSheet, i+2,
			fmt.Sprint(l.TaskID),
			l.StartTime.Format("2006-01-02 15:04"),
			l.EndTime.Format("2006-01-02 15:04"),
			fmt.Sprint(l.DurationMinutes), l.Comment)
	}
	f.SetColWidth(logSheet, "A", "E", 20)

	// Login sessions sheet.
	const loginSheet = "Logins"
	f.NewSheet(loginSheet)
	writeHeader(f, loginSheet, headerStyle,
		"Login", "Logout", "Minutes", "Status", "IP", "User Agent")
	sessions, err := r.Audits.ByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		a := &sessions[i]
		logout := ""
		if a.LogoutTime != nil {
			logout = a.LogoutTime.Format("2006-01-02 15:04")
		}
		setRow(f, loginSheet, i+2,
			a.LoginTime.Format("2006-01-02 15:04"), logout,
			fmt.Sprint(a.SessionDurationMinutes), a.Status, a.IPAddress, a.UserAgent)
	}
	f.SetColWidth(loginSheet, "A", "F", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers ...string) {
	setRow(f, sheet, 1, headers...)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values ...string) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

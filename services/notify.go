package services

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// Mailer delivers a single HTML mail. Delivery is a collaborator concern;
// the services only format and hand off.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg))
}

// Notifier formats and dispatches mails. Dispatch is fire-and-forget:
// failures are logged and never surfaced as an operation failure. A nil
// Notifier or nil Mailer disables mail entirely.
type Notifier struct {
	Mailer Mailer
	Logger *slog.Logger
	Clock  Clock
}

func (n *Notifier) send(to, subject, body string) {
	if n == nil || n.Mailer == nil || to == "" {
		return
	}
	go func() {
		if err := n.Mailer.Send(to, subject, body); err != nil {
			n.Logger.Warn("mail dispatch failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

func (n *Notifier) now() time.Time {
	if n != nil && n.Clock != nil {
		return n.Clock()
	}
	return time.Now()
}

// TaskChanged mails the assigner and the owner about a status transition.
// Tasks without an assigner produce no mail, matching the rule that only
// assigned work is watched.
func (n *Notifier) TaskChanged(task *models.Task, oldStatus, newStatus constants.Status, actorName string, owner, assigner *models.User) {
	if n == nil || assigner == nil {
		return
	}

	msg := "The task status has been updated."
	switch newStatus {
	case constants.StatusReassign:
		if owner != nil {
			msg = "The task has been reassigned to <strong>" + owner.Username + "</strong>."
		} else {
			msg = "The task has been reassigned."
		}
	case constants.StatusCompleted:
		msg = "The task has been successfully completed."
	case constants.StatusReview:
		msg = "The task has been submitted for review."
	case constants.StatusInProgress:
		msg = "Work has started on the task."
	}

	due := "-"
	if task.DueDate != nil {
		due = task.DueDate.Format("2006-01-02")
	}
	desc := task.Description
	if desc == "" {
		desc = "-"
	}
	comment := task.Comment
	if comment == "" {
		comment = "-"
	}

	var b strings.Builder
	b.WriteString("<html><body style='font-family: Arial; line-height:1.6;'>")
	b.WriteString("<h2 style='color:#E67E22;'>Task Update: " + task.Title + "</h2>")
	b.WriteString("<p>Hi,</p><p>" + msg + "</p>")
	b.WriteString("<table style='border-collapse: collapse; width:100%;'>")
	b.WriteString(htmlRow("Task Title", task.Title))
	b.WriteString(htmlRow("Description", desc))
	b.WriteString(htmlRow("Due Date", due))
	b.WriteString(htmlRow("Status Change", string(oldStatus)+" -> "+string(newStatus)))
	b.WriteString(htmlRow("Updated By", actorName))
	b.WriteString(htmlRow("Comment", comment))
	b.WriteString(htmlRow("Updated On", n.now().Format("02-01-2006 03:04 PM")))
	b.WriteString("</table>")
	b.WriteString("<p style='margin-top:20px;'>Please log in to the portal for more details.</p>")
	b.WriteString("<p>Thanks,<br/>Task Management Team</p></body></html>")

	subject := fmt.Sprintf("Task Alert: %s [%s]", task.Title, newStatus)
	body := b.String()
	n.send(assigner.Email, subject, body)
	if owner != nil {
		n.send(owner.Email, subject, body)
	}
}

// LeaveRequested mails every supervisor about a new pending request.
func (n *Notifier) LeaveRequested(user *models.User, leave *models.LeaveRequest, supervisors []models.User) {
	if n == nil {
		return
	}
	subject := "New Leave Request from " + user.Username
	body := "<h3>New Leave Request</h3>" +
		"<p><b>User:</b> " + user.Username + "</p>" +
		"<p><b>Reason:</b> " + leave.Reason + "</p>" +
		fmt.Sprintf("<p><b>Days:</b> %.1f</p>", leave.Days()) +
		"<p>Please log in to approve/reject.</p>"
	for i := range supervisors {
		n.send(supervisors[i].Email, subject, body)
	}
}

// LeaveDecided mails the requester the decision along with their balance.
func (n *Notifier) LeaveDecided(user *models.User, leave *models.LeaveRequest, balance LeaveBalance) {
	if n == nil {
		return
	}
	subject := "Leave Request " + leave.Status
	body := "<h3>Your Leave Request has been " + leave.Status + "</h3>" +
		"<p><b>Reason:</b> " + leave.Reason + "</p>" +
		fmt.Sprintf("<p><b>Days:</b> %.1f</p>", leave.Days()) +
		"<br/><h4>Leave Status:</h4><ul>" +
		fmt.Sprintf("<li><b>Total Allowed:</b> %.1f</li>", balance.Allowed) +
		fmt.Sprintf("<li><b>Taken (Approved):</b> %.1f</li>", balance.Taken) +
		fmt.Sprintf("<li><b>Remaining Balance:</b> %.1f</li>", balance.Balance) +
		fmt.Sprintf("<li><b>Loss of Pay (LOP) Days:</b> %.1f</li>", balance.LOP) +
		"</ul>"
	n.send(user.Email, subject, body)
}

func htmlRow(key, value string) string {
	return "<tr><td style='border:1px solid #ddd;padding:8px;'><b>" + key + "</b></td>" +
		"<td style='border:1px solid #ddd;padding:8px;'>" + value + "</td></tr>"
}

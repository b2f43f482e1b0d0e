// internal/app/system/csvutil/csvutil.go
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
)

// SetDownloadHeaders marks the response as a CSV attachment.
func SetDownloadHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// WriteApplications writes membership applications as CSV, one row per
// application, header first. Column order matches the coordinators'
// spreadsheet so exports can be pasted side by side.
func WriteApplications(w io.Writer, apps []models.MembershipApplication) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Membership ID", "Name", "Email", "Roll Number", "Register Number",
		"Year", "Section", "Department", "Participation", "Status", "Submitted At",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, a := range apps {
		row := []string{
			a.MembershipID,
			a.Name,
			a.Email,
			a.RollNumber,
			a.RegisterNumber,
			a.Year,
			a.Section,
			a.Department,
			a.Participation,
			a.Status,
			a.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteContacts writes contact submissions as CSV.
func WriteContacts(w io.Writer, subs []models.ContactSubmission) error {
	cw := csv.NewWriter(w)

	header := []string{"Name", "Email", "Subject", "Message", "Status", "Submitted At"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range subs {
		row := []string{
			s.Name,
			s.Email,
			s.Subject,
			s.Message,
			s.Status,
			s.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

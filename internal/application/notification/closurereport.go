// Package notification sends the closure report of a completed distribution.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"text/template"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/infrastructure/email"
	"github.com/reliefops/cva/internal/shared/logger"
)

type Summarizer interface {
	Summarize(ctx context.Context, distributionID uint) (*reconciliation.Summary, error)
}

// HTMLRenderer turns the report Markdown into the HTML part of the e-mail.
type HTMLRenderer interface {
	Render(report string) (string, error)
}

type EmailSender interface {
	Send(msg email.Message) error
}

const reportTemplate = `# Distribution closed: {{ .Name }}

Distribution **#{{ .Summary.DistributionID }}** held on {{ .Date }} is now **{{ .Summary.DistributionStatus }}**.

| | Amount |
|---|---:|
| Planned | {{ .Summary.PlannedTotal.StringFixed 2 }} |
| Actual | {{ .Summary.ActualTotal.StringFixed 2 }} |
| Variance | {{ .Summary.Variance.StringFixed 2 }} |

## Records

| Status | Count |
|---|---:|
{{- range .Statuses }}
| {{ .Status }} | {{ .Count }} |
{{- end }}
| **total** | **{{ .Summary.RecordCount }}** |
{{ if gt .Summary.MissedConfirmations 0 }}
{{ .Summary.MissedConfirmations }} record(s) were never confirmed and stay pending.
{{ end }}`

type statusCount struct {
	Status distribution.RecordStatus
	Count  int64
}

type reportData struct {
	Name     string
	Date     string
	Summary  *reconciliation.Summary
	Statuses []statusCount
}

// ClosureReporter mails a Markdown summary, rendered to sanitized HTML, to the
// programme managers once a distribution is completed.
type ClosureReporter struct {
	distributions distribution.Repository
	summarizer    Summarizer
	renderer      HTMLRenderer
	sender        EmailSender
	recipients    []string
	tmpl          *template.Template
	logger        logger.Interface
}

func NewClosureReporter(
	distributions distribution.Repository,
	summarizer Summarizer,
	renderer HTMLRenderer,
	sender EmailSender,
	recipients []string,
	log logger.Interface,
) *ClosureReporter {
	return &ClosureReporter{
		distributions: distributions,
		summarizer:    summarizer,
		renderer:      renderer,
		sender:        sender,
		recipients:    recipients,
		tmpl:          template.Must(template.New("closure-report").Parse(reportTemplate)),
		logger:        log,
	}
}

func (r *ClosureReporter) NotifyCompleted(ctx context.Context, distributionID uint) error {
	d, err := r.distributions.GetByID(ctx, distributionID)
	if err != nil {
		return fmt.Errorf("failed to load distribution %d: %w", distributionID, err)
	}
	summary, err := r.summarizer.Summarize(ctx, distributionID)
	if err != nil {
		return fmt.Errorf("failed to summarize distribution %d: %w", distributionID, err)
	}

	body, err := r.Render(d, summary)
	if err != nil {
		return err
	}
	html, err := r.renderer.Render(body)
	if err != nil {
		return err
	}

	if err := r.sender.Send(email.Message{
		To:        r.recipients,
		Subject:   fmt.Sprintf("Distribution closed: %s", d.Name()),
		HTMLBody:  html,
		PlainBody: body,
	}); err != nil {
		return fmt.Errorf("failed to send closure report: %w", err)
	}

	r.logger.Infow("closure report sent",
		"distribution_id", distributionID,
		"recipients", len(r.recipients))
	return nil
}

// Render produces the Markdown body of the report.
func (r *ClosureReporter) Render(d *distribution.Distribution, s *reconciliation.Summary) (string, error) {
	statuses := make([]statusCount, 0, len(s.ByStatus))
	for status, count := range s.ByStatus {
		statuses = append(statuses, statusCount{Status: status, Count: count})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Status < statuses[j].Status })

	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, reportData{
		Name:     d.Name(),
		Date:     d.DistributionDate().Format("2 January 2006"),
		Summary:  s,
		Statuses: statuses,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render closure report: %w", err)
	}
	return buf.String(), nil
}

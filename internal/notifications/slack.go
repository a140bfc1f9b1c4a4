package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

const maxListed = 5

type SlackNotifier struct {
	WebhookURL string
	Channel    string
	HTTPClient *http.Client
}

type slackMessage struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text,omitempty"`
	Fields []slackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendFindings posts a per-level summary of scan and lists the Critical and
// High columns. Sample values are never sent.
func (s *SlackNotifier) SendFindings(scan models.Scan) error {
	findings := scan.Findings
	critical := models.FilterByRisk(findings, models.RiskCritical)
	high := models.FilterByRisk(findings, models.RiskHigh)
	medium := models.FilterByRisk(findings, models.RiskMedium)
	low := models.FilterByRisk(findings, models.RiskLow)

	if len(critical)+len(high) == 0 {
		return s.sendCleanReport(scan)
	}

	text := fmt.Sprintf("🚨 *Column Risk Scan Complete*\n`%s`: *%d* of %d columns need attention", scan.Source, len(critical)+len(high), len(findings))

	attachments := []slackAttachment{
		{
			Color: "danger",
			Title: fmt.Sprintf("Summary (%d columns, %d rows)", len(findings), scan.Rows),
			Fields: []slackField{
				{Title: "Critical", Value: fmt.Sprintf("%d", len(critical)), Short: true},
				{Title: "High", Value: fmt.Sprintf("%d", len(high)), Short: true},
				{Title: "Medium", Value: fmt.Sprintf("%d", len(medium)), Short: true},
				{Title: "Low", Value: fmt.Sprintf("%d", len(low)), Short: true},
			},
			Footer: "colrisk scan " + scan.ID,
		},
	}

	if len(critical) > 0 {
		attachments = append(attachments, slackAttachment{
			Color: "danger",
			Title: "🔴 Critical Columns",
			Text:  listColumns(critical),
		})
	}

	if len(high) > 0 {
		attachments = append(attachments, slackAttachment{
			Color: "warning",
			Title: "🟠 High Columns",
			Text:  listColumns(high),
		})
	}

	return s.sendMessage(slackMessage{
		Channel:     s.Channel,
		Username:    "colrisk",
		IconEmoji:   ":lock:",
		Text:        text,
		Attachments: attachments,
	})
}

func listColumns(findings []models.Finding) string {
	var b strings.Builder
	for i, f := range findings {
		if i >= maxListed {
			fmt.Fprintf(&b, "\n_...and %d more_", len(findings)-maxListed)
			break
		}
		fmt.Fprintf(&b, "• *%s* (%s) - %s\n", f.Column, f.Category, f.InformationType)
	}
	return b.String()
}

func (s *SlackNotifier) sendCleanReport(scan models.Scan) error {
	return s.sendMessage(slackMessage{
		Channel:   s.Channel,
		Username:  "colrisk",
		IconEmoji: ":white_check_mark:",
		Text:      fmt.Sprintf("✅ *Column Risk Scan Complete*\n`%s`: no High or Critical columns across %d columns.", scan.Source, len(scan.Findings)),
	})
}

func (s *SlackNotifier) sendMessage(msg slackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Post(s.WebhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned non-200 status: %d", resp.StatusCode)
	}

	return nil
}

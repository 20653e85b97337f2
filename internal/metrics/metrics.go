// internal/metrics/metrics.go
//
// Pure aggregate-metrics computation shared by the campaign detail view, the
// company and employee rollups and the monthly trend report. No I/O in here.
package metrics

import (
	"math"
	"time"

	"github.com/phishguard/phishsim-backend/internal/model"
)

// RiskLevel is the coarse classification derived from click rate.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskThresholds are the click-rate cutoffs for the medium and high bands.
// Different screens use different cutoffs, so the value is injected per call
// site instead of being hardcoded here.
type RiskThresholds struct {
	Medium int
	High   int
}

// Named threshold sets wired in cmd/server.
var (
	CampaignThresholds  = RiskThresholds{Medium: 15, High: 30}
	ExecutiveThresholds = RiskThresholds{Medium: 25, High: 50}
)

// Classify maps a click rate to a risk level. low is the fallback.
func (rt RiskThresholds) Classify(clickRate int) RiskLevel {
	switch {
	case clickRate >= rt.High:
		return RiskHigh
	case clickRate >= rt.Medium:
		return RiskMedium
	}
	return RiskLow
}

// Summary is the derived KPI block for a collection of targets.
type Summary struct {
	Total        int        `json:"total"`
	Sent         int        `json:"sent"`
	Opened       int        `json:"opened"`
	Clicked      int        `json:"clicked"`
	Reported     int        `json:"reported"`
	OpenRate     int        `json:"open_rate"`
	ClickRate    int        `json:"click_rate"`
	ReportRate   int        `json:"report_rate"`
	RiskLevel    RiskLevel  `json:"risk_level"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// Rate returns round(100*count/total) as an integer percentage, 0 when the
// collection is empty. Rounding happens once, on the final ratio.
func Rate(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

// Compute derives the summary for a target collection in a single pass.
// Predicates come from timestamp presence only, so a reported-but-never-clicked
// target counts toward the report rate and not the click rate.
func Compute(targets []model.Target, th RiskThresholds) Summary {
	s := Summary{Total: len(targets)}
	var latest *time.Time
	for i := range targets {
		t := &targets[i]
		if t.WasSent() {
			s.Sent++
		}
		if t.WasOpened() {
			s.Opened++
		}
		if t.DidClick() {
			s.Clicked++
		}
		if t.DidReport() {
			s.Reported++
		}
		if la := t.LastActivity(); la != nil {
			if latest == nil || la.After(*latest) {
				latest = la
			}
		}
	}
	s.OpenRate = Rate(s.Opened, s.Total)
	s.ClickRate = Rate(s.Clicked, s.Total)
	s.ReportRate = Rate(s.Reported, s.Total)
	s.RiskLevel = th.Classify(s.ClickRate)
	s.LastActivity = latest
	return s
}

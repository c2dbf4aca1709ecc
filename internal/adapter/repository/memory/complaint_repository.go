// Package memory holds the in-process implementations used when no external
// store is configured.
package memory

import (
	"context"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// ComplaintRepository serves a fixed demo dataset after an optional
// simulated network latency.
type ComplaintRepository struct {
	complaints []domain.Complaint
	latency    time.Duration
}

// NewComplaintRepository returns a repository serving DemoComplaints.
func NewComplaintRepository(latency time.Duration) *ComplaintRepository {
	return &ComplaintRepository{complaints: DemoComplaints(), latency: latency}
}

func (r *ComplaintRepository) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	out := make([]domain.Complaint, len(r.complaints))
	copy(out, r.complaints)
	return out, nil
}

func coord(v float64) *float64 { return &v }

// DemoComplaints returns the demo dataset.
func DemoComplaints() []domain.Complaint {
	return []domain.Complaint{
		{
			RouteNumber: "12",
			BusNumber:   "-1",
			Location:    "Байтерек",
			Category:    domain.CategoryDelay,
			Level:       domain.LevelHigh,
			Advice:      "Please report delays to the transport authority to improve service.",
			Text:        `Автобус маршрута 12 не пришел вовремя на остановку "Байтерек". Я ждал его 35 минут вместо положенных 15.`,
			Time:        "07:55",
		},
		{
			RouteNumber: "12",
			BusNumber:   "10051",
			Latitude:    coord(51.1309),
			Longitude:   coord(71.4552),
			Location:    "Нұрлы Жол",
			Category:    domain.CategorySafetyIssue,
			Level:       domain.LevelHigh,
			Advice:      "The situation has been addressed with the driver and dispatcher.",
			Text:        "Есіктер толық жабылмай, автобус қозғалды",
			Time:        "07:30",
		},
		{
			RouteNumber: "5",
			BusNumber:   "10023",
			Location:    "Центральный рынок",
			Category:    domain.CategoryCleanliness,
			Level:       domain.LevelMedium,
			Advice:      "We will increase cleaning frequency.",
			Text:        "Автобус очень грязный, сиденья в пятнах",
			Time:        "09:15",
		},
		{
			RouteNumber: "18",
			BusNumber:   "10067",
			Location:    "Кунаева",
			Category:    domain.CategoryDriverBehavior,
			Level:       domain.LevelHigh,
			Advice:      "Driver will receive additional training.",
			Text:        "Водитель грубо разговаривает с пассажирами",
			Time:        "10:30",
		},
		{
			RouteNumber: "5",
			BusNumber:   "10024",
			Location:    "Абай",
			Category:    domain.CategoryDelay,
			Level:       domain.LevelMedium,
			Advice:      "Please report delays to the transport authority.",
			Text:        "Опоздание на 20 минут",
			Time:        "11:00",
		},
		{
			RouteNumber: "12",
			BusNumber:   "10052",
			Location:    "Республика",
			Category:    domain.CategoryOvercrowding,
			Level:       domain.LevelMedium,
			Advice:      "We will add more buses during peak hours.",
			Text:        "Автобус переполнен, невозможно войти",
			Time:        "08:00",
		},
		{
			RouteNumber: "18",
			BusNumber:   "10068",
			Location:    "Сарыарка",
			Category:    domain.CategoryTechnicalIssue,
			Level:       domain.LevelHigh,
			Advice:      "Bus will undergo immediate maintenance.",
			Text:        "Кондиционер не работает, очень жарко",
			Time:        "14:00",
		},
		{
			RouteNumber: "5",
			BusNumber:   "10025",
			Location:    "Достык",
			Category:    domain.CategoryDelay,
			Level:       domain.LevelLow,
			Advice:      "Minor delays are being addressed.",
			Text:        "Небольшая задержка 5 минут",
			Time:        "15:30",
		},
	}
}

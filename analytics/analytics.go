// Package analytics holds the pure projections behind the analytics
// charts. Every function re-derives from the full collections on each
// call; nothing here touches the store or the substrate.
package analytics

import (
	"math"
	"time"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/utils"
)

type Overview struct {
	TotalPatients        int     `json:"totalPatients"`
	TotalIncidents       int     `json:"totalIncidents"`
	TotalRevenue         float64 `json:"totalRevenue"`
	CompletedIncidents   int     `json:"completedIncidents"`
	SuccessRate          int     `json:"successRate"`
	AvgRevenuePerPatient int     `json:"avgRevenuePerPatient"`
}

type StatusCount struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

type TreatmentRevenue struct {
	Treatment string  `json:"treatment"`
	Revenue   float64 `json:"revenue"`
	Count     int     `json:"count"`
}

type MonthBucket struct {
	Month        string  `json:"month"`
	Patients     int     `json:"patients"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

type AgeGroup struct {
	Age        string `json:"age"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type BloodGroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// Report bundles every chart series for the analytics page.
type Report struct {
	Totals      Overview           `json:"totals"`
	Statuses    []StatusCount      `json:"statusChartData"`
	Revenue     []TreatmentRevenue `json:"revenueChartData"`
	Monthly     []MonthBucket      `json:"monthlyData"`
	AgeGroups   []AgeGroup         `json:"ageChartData"`
	BloodGroups []BloodGroupCount  `json:"bloodGroupData"`
}

func BuildReport(patients []models.Patient, incidents []models.Incident, now time.Time) Report {
	return Report{
		Totals:      ComputeOverview(patients, incidents),
		Statuses:    StatusDistribution(incidents),
		Revenue:     RevenueByTreatment(incidents),
		Monthly:     MonthlyTrends(patients, incidents, now),
		AgeGroups:   AgeDistribution(patients, now),
		BloodGroups: BloodGroupDistribution(patients),
	}
}

// percentage guards the empty-collection case to 0 rather than NaN.
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

func ComputeOverview(patients []models.Patient, incidents []models.Incident) Overview {
	o := Overview{
		TotalPatients:  len(patients),
		TotalIncidents: len(incidents),
	}
	for _, inc := range incidents {
		if inc.Status == models.StatusCompleted {
			o.CompletedIncidents++
			o.TotalRevenue += inc.CostValue()
		}
	}
	o.SuccessRate = percentage(o.CompletedIncidents, o.TotalIncidents)
	if o.TotalPatients > 0 {
		o.AvgRevenuePerPatient = int(math.Round(o.TotalRevenue / float64(o.TotalPatients)))
	}
	return o
}

// StatusDistribution counts incidents per status, in first-seen order.
func StatusDistribution(incidents []models.Incident) []StatusCount {
	counts := map[string]int{}
	var order []string
	for _, inc := range incidents {
		name := string(inc.Status)
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}
	out := make([]StatusCount, 0, len(order))
	for _, name := range order {
		out = append(out, StatusCount{
			Name:       name,
			Value:      counts[name],
			Percentage: percentage(counts[name], len(incidents)),
		})
	}
	return out
}

// RevenueByTreatment groups cost and count by incident title, all
// statuses included.
func RevenueByTreatment(incidents []models.Incident) []TreatmentRevenue {
	revenue := map[string]float64{}
	counts := map[string]int{}
	var order []string
	for _, inc := range incidents {
		if _, seen := counts[inc.Title]; !seen {
			order = append(order, inc.Title)
		}
		revenue[inc.Title] += inc.CostValue()
		counts[inc.Title]++
	}
	out := make([]TreatmentRevenue, 0, len(order))
	for _, title := range order {
		out = append(out, TreatmentRevenue{
			Treatment: title,
			Revenue:   revenue[title],
			Count:     counts[title],
		})
	}
	return out
}

// MonthlyTrends builds the fixed Jan-Dec series for the current calendar
// year. Patients bucket by createdAt month, incidents by appointment
// month; revenue only counts completed incidents. Records from any other
// year contribute nothing.
func MonthlyTrends(patients []models.Patient, incidents []models.Incident, now time.Time) []MonthBucket {
	year := now.Year()
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, p := range patients {
		d := p.CreatedAt.Time
		if d.Year() == year {
			buckets[int(d.Month())-1].Patients++
		}
	}
	for _, inc := range incidents {
		d := inc.AppointmentDate.Time
		if d.Year() != year {
			continue
		}
		idx := int(d.Month()) - 1
		buckets[idx].Appointments++
		if inc.Status == models.StatusCompleted {
			buckets[idx].Revenue += inc.CostValue()
		}
	}
	return buckets
}

// AgeDistribution buckets patients by naive year subtraction. The chart
// deliberately uses YearsSince rather than the precise Age helper, so a
// patient turning 25 later this year already counts as 25.
func AgeDistribution(patients []models.Patient, now time.Time) []AgeGroup {
	counts := map[string]int{}
	var order []string
	for _, p := range patients {
		years := utils.YearsSince(p.DOB.Time, now)
		var group string
		switch {
		case years < 25:
			group = "18-25"
		case years < 35:
			group = "26-35"
		case years < 45:
			group = "36-45"
		default:
			group = "45+"
		}
		if _, seen := counts[group]; !seen {
			order = append(order, group)
		}
		counts[group]++
	}
	out := make([]AgeGroup, 0, len(order))
	for _, group := range order {
		out = append(out, AgeGroup{
			Age:        group,
			Count:      counts[group],
			Percentage: percentage(counts[group], len(patients)),
		})
	}
	return out
}

func BloodGroupDistribution(patients []models.Patient) []BloodGroupCount {
	counts := map[string]int{}
	var order []string
	for _, p := range patients {
		if _, seen := counts[p.BloodGroup]; !seen {
			order = append(order, p.BloodGroup)
		}
		counts[p.BloodGroup]++
	}
	out := make([]BloodGroupCount, 0, len(order))
	for _, group := range order {
		out = append(out, BloodGroupCount{Group: group, Count: counts[group]})
	}
	return out
}

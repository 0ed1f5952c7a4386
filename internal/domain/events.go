package domain

import "time"

type LookupCompletedEvent struct {
	LookupID       string    `json:"lookup_id"`
	MaterialNumber string    `json:"material_number"`
	ExplosionDate  string    `json:"explosion_date"`
	OxygenSensor   *string   `json:"oxygen_sensor"`
	WireHarness    *string   `json:"wire_harness"`
	Message        string    `json:"message"`
	Outcome        Outcome   `json:"outcome"`
	Timestamp      time.Time `json:"timestamp"`
}

// LookupRecord is the persisted form of a LookupCompletedEvent.
type LookupRecord struct {
	ID             string    `json:"id"`
	MaterialNumber string    `json:"material_number"`
	ExplosionDate  string    `json:"explosion_date"`
	OxygenSensor   *string   `json:"oxygen_sensor"`
	WireHarness    *string   `json:"wire_harness"`
	Message        string    `json:"message"`
	Outcome        Outcome   `json:"outcome"`
	CreatedAt      time.Time `json:"created_at"`
}

func (e LookupCompletedEvent) Record() LookupRecord {
	return LookupRecord{
		ID:             e.LookupID,
		MaterialNumber: e.MaterialNumber,
		ExplosionDate:  e.ExplosionDate,
		OxygenSensor:   e.OxygenSensor,
		WireHarness:    e.WireHarness,
		Message:        e.Message,
		Outcome:        e.Outcome,
		CreatedAt:      e.Timestamp,
	}
}

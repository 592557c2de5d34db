package usgreport

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
)

// USGReport is an ultrasound scan report. Responses carry the referenced
// patient and referring doctor as embedded objects; the raw foreign keys
// never leave the store layer. The referenced rows need not be live: a
// report stays readable after its patient or referrer is soft-deleted.
type USGReport struct {
	ID         int64            `db:"id" json:"id"`
	PatientID  int64            `db:"patient_id" json:"-"`
	ReferrerID int64            `db:"referrer_id" json:"-"`
	Patient    *patient.Patient `json:"patient"`
	Referrer   *doctor.Doctor   `json:"referrer"`
	PartOfScan string           `db:"part_of_scan" json:"partOfScan"`
	Findings   string           `db:"findings" json:"findings"`
	Date       time.Time        `db:"date" json:"date"`
	Deleted    bool             `db:"deleted" json:"-"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}

// Payload is the request body for create and update. patient and referrer
// are ids; date accepts an RFC 3339 timestamp or a plain yyyy-mm-dd date.
type Payload struct {
	Patient    int64  `json:"patient"`
	Referrer   int64  `json:"referrer"`
	PartOfScan string `json:"partOfScan"`
	Findings   string `json:"findings"`
	Date       string `json:"date"`
}

func (p Payload) values() map[string]interface{} {
	return map[string]interface{}{
		"patient":    p.Patient,
		"referrer":   p.Referrer,
		"partOfScan": p.PartOfScan,
		"findings":   p.Findings,
		"date":       p.Date,
	}
}

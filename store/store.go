package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/storage"
	"github.com/dentacare/dental-center-api/utils"
)

// Collection keys in the persistence substrate.
const (
	keyUsers     = "users"
	keyPatients  = "patients"
	keyIncidents = "incidents"
)

var (
	// ErrNotFound is returned when an update or delete references an id
	// that does not exist in the collection.
	ErrNotFound = errors.New("store: entity not found")
	// ErrPatientNotFound is returned when an incident references an
	// unknown patient.
	ErrPatientNotFound = errors.New("store: referenced patient not found")
	// ErrEmailExists is returned when a user is created with an email
	// already registered.
	ErrEmailExists = errors.New("store: email already registered")
)

// Store holds the three entity collections in memory and mirrors every
// mutation to the persistence substrate as whole-collection JSON blobs.
// Insertion order is display order; reads are linear scans, which is fine
// at single-clinic scale.
type Store struct {
	mu sync.RWMutex
	kv storage.KV

	users     []models.User
	patients  []models.Patient
	incidents []models.Incident
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load reads the three collections from the substrate. If any key is
// missing or does not parse, all three are re-seeded together from the
// built-in fixture; mixing seed and stored data is never allowed.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		users     []models.User
		patients  []models.Patient
		incidents []models.Incident
	)
	if err := s.read(ctx, keyUsers, &users); err != nil {
		return s.seedLocked(ctx, err)
	}
	if err := s.read(ctx, keyPatients, &patients); err != nil {
		return s.seedLocked(ctx, err)
	}
	if err := s.read(ctx, keyIncidents, &incidents); err != nil {
		return s.seedLocked(ctx, err)
	}

	s.users = users
	s.patients = patients
	s.incidents = incidents
	return nil
}

func (s *Store) read(ctx context.Context, key string, out any) error {
	blob, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) seedLocked(ctx context.Context, cause error) error {
	if errors.Is(cause, storage.ErrNoKey) {
		log.Println("No stored data found, seeding initial dataset")
	} else {
		log.Printf("Stored data unusable (%v), re-seeding all collections", cause)
	}
	s.users = seedUsers()
	s.patients = seedPatients()
	s.incidents = seedIncidents()

	if err := s.write(ctx, keyUsers, s.users); err != nil {
		return err
	}
	if err := s.write(ctx, keyPatients, s.patients); err != nil {
		return err
	}
	return s.write(ctx, keyIncidents, s.incidents)
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// persist mirrors a collection to the substrate after a mutation. Failures
// are logged and swallowed: the in-memory state stays authoritative for
// the rest of the session, the unpersisted change is lost on restart.
func (s *Store) persist(ctx context.Context, key string, v any) {
	if err := s.write(ctx, key, v); err != nil {
		log.Printf("Warning: failed to persist %s: %v", key, err)
	}
}

// Flush writes all three collections, for shutdown.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.write(ctx, keyUsers, s.users); err != nil {
		return err
	}
	if err := s.write(ctx, keyPatients, s.patients); err != nil {
		return err
	}
	return s.write(ctx, keyIncidents, s.incidents)
}

// ---- Users ----

func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.User{}, ErrEmailExists
		}
	}
	if u.ID == "" {
		u.ID = utils.NewID("u")
	}
	u.CreatedAt = models.NewTime(time.Now())
	s.users = append(s.users, u)
	s.persist(ctx, keyUsers, s.users)
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.users {
		if existing.ID == u.ID {
			if u.CreatedAt.IsZero() {
				u.CreatedAt = existing.CreatedAt
			}
			s.users[i] = u
			s.persist(ctx, keyUsers, s.users)
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) GetUserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// ---- Patients ----

func (s *Store) CreatePatient(ctx context.Context, p models.Patient) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = utils.NewID("p")
	}
	p.CreatedAt = models.NewTime(time.Now())
	s.patients = append(s.patients, p)
	s.persist(ctx, keyPatients, s.patients)
	return p, nil
}

func (s *Store) UpdatePatient(ctx context.Context, p models.Patient) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.patients {
		if existing.ID == p.ID {
			if p.CreatedAt.IsZero() {
				p.CreatedAt = existing.CreatedAt
			}
			s.patients[i] = p
			s.persist(ctx, keyPatients, s.patients)
			return p, nil
		}
	}
	return models.Patient{}, ErrNotFound
}

// DeletePatient removes the patient and every incident referencing it.
// Both collections mutate under one lock; incidents are persisted before
// patients so a failed second write can never leave orphaned incidents
// in the substrate.
func (s *Store) DeletePatient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, p := range s.patients {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.patients = append(s.patients[:idx], s.patients[idx+1:]...)

	kept := s.incidents[:0]
	for _, inc := range s.incidents {
		if inc.PatientID != id {
			kept = append(kept, inc)
		}
	}
	s.incidents = kept

	s.persist(ctx, keyIncidents, s.incidents)
	s.persist(ctx, keyPatients, s.patients)
	return nil
}

func (s *Store) GetPatientByID(id string) (models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Patient{}, ErrNotFound
}

func (s *Store) GetPatientByUserID(userID string) (models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return models.Patient{}, ErrNotFound
}

func (s *Store) Patients() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// ---- Incidents ----

func (s *Store) CreateIncident(ctx context.Context, inc models.Incident) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := inc.Validate(); err != nil {
		return models.Incident{}, err
	}
	if !s.patientExistsLocked(inc.PatientID) {
		return models.Incident{}, ErrPatientNotFound
	}
	if inc.ID == "" {
		inc.ID = utils.NewID("i")
	}
	if inc.Status == "" {
		inc.Status = models.StatusScheduled
	}
	if inc.Files == nil {
		inc.Files = []models.FileAttachment{}
	}
	inc.CreatedAt = models.NewTime(time.Now())
	s.incidents = append(s.incidents, inc)
	s.persist(ctx, keyIncidents, s.incidents)
	return inc, nil
}

func (s *Store) UpdateIncident(ctx context.Context, inc models.Incident) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := inc.Validate(); err != nil {
		return models.Incident{}, err
	}
	if !s.patientExistsLocked(inc.PatientID) {
		return models.Incident{}, ErrPatientNotFound
	}
	for i, existing := range s.incidents {
		if existing.ID == inc.ID {
			if inc.CreatedAt.IsZero() {
				inc.CreatedAt = existing.CreatedAt
			}
			if inc.Files == nil {
				inc.Files = existing.Files
			}
			inc.UpdatedAt = models.NewTime(time.Now())
			s.incidents[i] = inc
			s.persist(ctx, keyIncidents, s.incidents)
			return inc, nil
		}
	}
	return models.Incident{}, ErrNotFound
}

func (s *Store) DeleteIncident(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, inc := range s.incidents {
		if inc.ID == id {
			s.incidents = append(s.incidents[:i], s.incidents[i+1:]...)
			s.persist(ctx, keyIncidents, s.incidents)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) GetIncidentByID(id string) (models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inc := range s.incidents {
		if inc.ID == id {
			return inc, nil
		}
	}
	return models.Incident{}, ErrNotFound
}

func (s *Store) GetIncidentsByPatient(patientID string) []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Incident
	for _, inc := range s.incidents {
		if inc.PatientID == patientID {
			out = append(out, inc)
		}
	}
	return out
}

func (s *Store) Incidents() []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Incident, len(s.incidents))
	copy(out, s.incidents)
	return out
}

// IncidentsOn returns incidents whose appointment falls on day's calendar
// date, independent of time-of-day.
func (s *Store) IncidentsOn(day time.Time) []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Incident
	for _, inc := range s.incidents {
		if utils.SameDay(inc.AppointmentDate.Time, day) {
			out = append(out, inc)
		}
	}
	return out
}

// IncidentsInMonth returns incidents with an appointment in the given
// calendar month, for the month calendar view.
func (s *Store) IncidentsInMonth(year int, month time.Month) []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Incident
	for _, inc := range s.incidents {
		d := inc.AppointmentDate.Time
		if d.Year() == year && d.Month() == month {
			out = append(out, inc)
		}
	}
	return out
}

func (s *Store) patientExistsLocked(id string) bool {
	for _, p := range s.patients {
		if p.ID == id {
			return true
		}
	}
	return false
}

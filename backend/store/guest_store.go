package store

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"eurolens/backend/gamification"
	"eurolens/backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Document kinds stored per guest
const (
	kindProfile   = "profile"
	kindPositions = "positions"
)

// schemaVersion is the current guest document version. Older documents are
// upgraded through the ordered chain in migrate before use.
const schemaVersion = 2

// GuestDocument is one JSON document row, keyed by guest id and kind
type GuestDocument struct {
	GuestID   string `gorm:"primaryKey"`
	Kind      string `gorm:"primaryKey"`
	Body      string
	UpdatedAt time.Time
}

type profileDocument struct {
	SchemaVersion int            `json:"schemaVersion"`
	Profile       models.Profile `json:"profile"`
}

type positionsDocument struct {
	SchemaVersion int               `json:"schemaVersion"`
	Positions     []models.Position `json:"positions"`
}

// GuestStore keeps anonymous progress in an embedded sqlite database, one
// profile document and one positions document per guest id. Persistence is
// best-effort: write failures are logged and reported, never fatal, and reads
// fall back to a transient default when the store is unavailable.
type GuestStore struct {
	db     *gorm.DB
	logger *log.Logger
	now    func() time.Time
}

// NewGuestStore opens (or creates) the sqlite database at path
func NewGuestStore(path string, appLogger *log.Logger) (*GuestStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&GuestDocument{}); err != nil {
		return nil, err
	}

	return &GuestStore{db: db, logger: appLogger, now: time.Now}, nil
}

// NewGuestStoreWithClock opens a guest store with an injected time source
func NewGuestStoreWithClock(path string, appLogger *log.Logger, now func() time.Time) (*GuestStore, error) {
	s, err := NewGuestStore(path, appLogger)
	if err != nil {
		return nil, err
	}
	s.now = now
	return s, nil
}

func (s *GuestStore) defaultProfile(guestID string) models.Profile {
	return models.Profile{
		ID:             guestID,
		Username:       "EU Citizen",
		XP:             0,
		Level:          1,
		Streak:         0,
		LastActiveDate: gamification.DateOnly(s.now()),
		Achievements:   []string{},
		Stats:          models.UserStats{},
		CreatedAt:      s.now(),
	}
}

// migrate upgrades a profile document through the ordered version chain.
// Returns true when anything changed and the document should be rewritten.
func migrate(doc *profileDocument) bool {
	changed := false

	// v1 (and unversioned) documents predate the stats expansion and may
	// carry a level that no longer matches the threshold table. Missing
	// counters unmarshal to zero; nil sets get concrete empty values.
	if doc.SchemaVersion < 2 {
		doc.Profile.Level = gamification.GetLevel(doc.Profile.XP)
		if doc.Profile.Achievements == nil {
			doc.Profile.Achievements = []string{}
		}
		doc.SchemaVersion = 2
		changed = true
	}

	return changed
}

func (s *GuestStore) load(guestID, kind string, out interface{}) (bool, error) {
	if s.db == nil {
		return false, errors.New("guest store unavailable")
	}

	var doc GuestDocument
	err := s.db.Where("guest_id = ? AND kind = ?", guestID, kind).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(doc.Body), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *GuestStore) save(guestID, kind string, doc interface{}) error {
	if s.db == nil {
		return errors.New("guest store unavailable")
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	record := GuestDocument{
		GuestID:   guestID,
		Kind:      kind,
		Body:      string(body),
		UpdatedAt: s.now(),
	}
	return s.db.Save(&record).Error
}

// GetProfile returns the guest's profile, creating and persisting a default
// one on first access. Every read runs the streak side-effect and the
// migrate-on-read upgrade; changed documents are persisted once. An empty
// guest id or an unavailable store yields a transient in-memory default.
func (s *GuestStore) GetProfile(guestID string) models.Profile {
	if guestID == "" {
		return s.defaultProfile("")
	}

	var doc profileDocument
	found, err := s.load(guestID, kindProfile, &doc)
	if err != nil {
		s.logger.Printf("guest profile read failed for %s: %v", guestID, err)
		return s.defaultProfile(guestID)
	}

	if !found {
		profile := s.defaultProfile(guestID)
		if err := s.SaveProfile(guestID, profile); err != nil {
			s.logger.Printf("guest profile create failed for %s: %v", guestID, err)
		}
		return profile
	}

	changed := migrate(&doc)

	today := gamification.DateOnly(s.now())
	if doc.Profile.LastActiveDate != today {
		doc.Profile.Streak = gamification.NextStreak(doc.Profile.LastActiveDate, doc.Profile.Streak, s.now())
		doc.Profile.LastActiveDate = today
		changed = true
	}

	if changed {
		if err := s.SaveProfile(guestID, doc.Profile); err != nil {
			s.logger.Printf("guest profile update failed for %s: %v", guestID, err)
		}
	}

	return doc.Profile
}

// SaveProfile persists the full profile document. The error return lets
// callers decide to ignore persistence failures.
func (s *GuestStore) SaveProfile(guestID string, profile models.Profile) error {
	if guestID == "" {
		return nil
	}
	return s.save(guestID, kindProfile, profileDocument{
		SchemaVersion: schemaVersion,
		Profile:       profile,
	})
}

// GetPositions returns all stances the guest has recorded
func (s *GuestStore) GetPositions(guestID string) []models.Position {
	if guestID == "" {
		return []models.Position{}
	}

	var doc positionsDocument
	found, err := s.load(guestID, kindPositions, &doc)
	if err != nil {
		s.logger.Printf("guest positions read failed for %s: %v", guestID, err)
		return []models.Position{}
	}
	if !found || doc.Positions == nil {
		return []models.Position{}
	}
	return doc.Positions
}

// SavePositions persists the guest's full stance list
func (s *GuestStore) SavePositions(guestID string, positions []models.Position) error {
	if guestID == "" {
		return nil
	}
	return s.save(guestID, kindPositions, positionsDocument{
		SchemaVersion: schemaVersion,
		Positions:     positions,
	})
}

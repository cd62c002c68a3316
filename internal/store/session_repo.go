package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abhisek/intervue/internal/interview"
)

// ErrVersionConflict is returned when a save loses the optimistic version
// check: some other mutation advanced the document since it was loaded.
var ErrVersionConflict = errors.New("session version conflict")

// Doc is a loaded session document plus the version it was read at. Save
// succeeds only when the stored version still matches.
type Doc struct {
	Session *interview.Session
	Version int64
}

// ListFilter narrows and orders the interviewer-facing session listing.
type ListFilter struct {
	// Search matches candidate name, email or phone, case-insensitive.
	Search string
	// Sort is "score" or "recent". Default: score descending, then recency.
	Sort string
	// Order is "asc" or "desc".
	Order string
}

// SessionRepo is the session document store.
type SessionRepo interface {
	Create(ctx context.Context, s *interview.Session) error
	GetByToken(ctx context.Context, token string) (*Doc, error)
	GetByID(ctx context.Context, id string) (*Doc, error)
	// Save persists the document if and only if the stored version equals
	// doc.Version; on success the doc's version is advanced in place.
	Save(ctx context.Context, doc *Doc) error
	List(ctx context.Context, filter ListFilter) ([]*interview.Session, error)
}

// sessionRecord is the row shape. Identity, status, candidate contact fields
// and the final score are broken out for lookup and listing; everything else
// lives in the serialized document.
type sessionRecord struct {
	ID             string `gorm:"primaryKey"`
	InviteToken    string `gorm:"uniqueIndex;not null"`
	Status         string `gorm:"index"`
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	FinalScore     *float64
	Version        int64  `gorm:"not null"`
	Document       []byte `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (sessionRecord) TableName() string { return "sessions" }

type sessionRepo struct {
	db *gorm.DB
}

func recordFrom(s *interview.Session, version int64) (*sessionRecord, error) {
	doc, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session document: %w", err)
	}
	return &sessionRecord{
		ID:             s.ID,
		InviteToken:    s.InviteToken,
		Status:         string(s.Status),
		CandidateName:  s.Candidate.Name,
		CandidateEmail: s.Candidate.Email,
		CandidatePhone: s.Candidate.Phone,
		FinalScore:     s.FinalScore,
		Version:        version,
		Document:       doc,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}, nil
}

func (r *sessionRecord) session() (*interview.Session, error) {
	var s interview.Session
	if err := json.Unmarshal(r.Document, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session document: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) Create(ctx context.Context, s *interview.Session) error {
	rec, err := recordFrom(s, 1)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*Doc, error) {
	return r.get(ctx, "invite_token = ?", token)
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*Doc, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *sessionRepo) get(ctx context.Context, query string, arg any) (*Doc, error) {
	var rec sessionRecord
	err := r.db.WithContext(ctx).First(&rec, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, interview.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s, err := rec.session()
	if err != nil {
		return nil, err
	}
	return &Doc{Session: s, Version: rec.Version}, nil
}

func (r *sessionRepo) Save(ctx context.Context, doc *Doc) error {
	doc.Session.UpdatedAt = time.Now().UTC()

	rec, err := recordFrom(doc.Session, doc.Version+1)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&sessionRecord{}).
		Where("id = ? AND version = ?", rec.ID, doc.Version).
		Updates(map[string]any{
			"status":          rec.Status,
			"candidate_name":  rec.CandidateName,
			"candidate_email": rec.CandidateEmail,
			"candidate_phone": rec.CandidatePhone,
			"final_score":     rec.FinalScore,
			"version":         rec.Version,
			"document":        rec.Document,
			"updated_at":      rec.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("save session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", rec.ID, ErrVersionConflict)
	}

	doc.Version = rec.Version
	return nil
}

func (r *sessionRepo) List(ctx context.Context, filter ListFilter) ([]*interview.Session, error) {
	q := r.db.WithContext(ctx).Model(&sessionRecord{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"candidate_name LIKE ? OR candidate_email LIKE ? OR candidate_phone LIKE ?",
			like, like, like,
		)
	}

	dir := "DESC"
	if filter.Order == "asc" {
		dir = "ASC"
	}
	switch filter.Sort {
	case "recent":
		q = q.Order("created_at " + dir)
	case "score":
		q = q.Order("final_score " + dir).Order("created_at DESC")
	default:
		q = q.Order("final_score DESC").Order("created_at DESC")
	}

	var records []sessionRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]*interview.Session, 0, len(records))
	for i := range records {
		s, err := records[i].session()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

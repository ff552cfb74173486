package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

const legacyTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// storedSubject pairs a decoded subject with the exact element it was read from.
// Elements read from the store are written back verbatim; unusable ones are kept but never listed.
type storedSubject struct {
	subject models.StudySubject
	raw     json.RawMessage
	usable  bool
}

// SubjectRepository persists the subject collection as one JSON array under a fixed key.
type SubjectRepository struct {
	store  KeyValueStore
	key    string
	logger *zap.Logger

	mu sync.Mutex
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(store KeyValueStore, key string, logger *zap.Logger) *SubjectRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectRepository{store: store, key: key, logger: logger}
}

// LoadAll returns every usable stored subject in insertion order. Missing or
// corrupted content reads as an empty collection.
func (r *SubjectRepository) LoadAll(ctx context.Context) ([]models.StudySubject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	subjects := make([]models.StudySubject, 0, len(entries))
	for _, entry := range entries {
		if entry.usable {
			subjects = append(subjects, entry.subject)
		}
	}
	return subjects, nil
}

// Append adds subject at the end of the collection.
func (r *SubjectRepository) Append(ctx context.Context, subject models.StudySubject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(entries, storedSubject{subject: subject, usable: true}))
}

// Remove deletes every subject with the given id. It reports whether anything was removed;
// the collection is only rewritten when it changed.
func (r *SubjectRepository) Remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]storedSubject, 0, len(entries))
	for _, entry := range entries {
		if !entry.usable || entry.subject.ID != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(entries) {
		return false, nil
	}
	if err := r.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SubjectRepository) load(ctx context.Context) ([]storedSubject, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, appErrors.ErrStoreKeyMiss) {
			return []storedSubject{}, nil
		}
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	return decodeSubjects(raw, r.logger), nil
}

func (r *SubjectRepository) save(ctx context.Context, entries []storedSubject) error {
	elements := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		if entry.raw != nil {
			elements = append(elements, entry.raw)
			continue
		}
		encoded, err := json.Marshal(entry.subject)
		if err != nil {
			return fmt.Errorf("encode subject %s: %w", entry.subject.ID, err)
		}
		elements = append(elements, encoded)
	}
	payload, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("encode subjects: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(payload)); err != nil {
		return fmt.Errorf("save subjects: %w", err)
	}
	return nil
}

func decodeSubjects(raw string, logger *zap.Logger) []storedSubject {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		logger.Warn("stored subjects unreadable, using empty collection", zap.Error(err))
		return []storedSubject{}
	}

	entries := make([]storedSubject, 0, len(elements))
	for idx, element := range elements {
		entry := storedSubject{raw: element}
		var fields map[string]json.RawMessage
		if !bytes.HasPrefix(bytes.TrimSpace(element), []byte("{")) || json.Unmarshal(element, &fields) != nil {
			logger.Warn("keeping unreadable stored subject out of the list", zap.Int("index", idx))
			entries = append(entries, entry)
			continue
		}
		entry.subject = models.StudySubject{
			ID:         scalarText(fields["id"]),
			Name:       scalarText(fields["name"]),
			ExamDate:   scalarText(fields["examDate"]),
			Difficulty: models.Difficulty(scalarText(fields["difficulty"])),
			CreatedAt:  createdAtText(fields["createdAt"]),
		}
		entry.usable = true
		entries = append(entries, entry)
	}
	return entries
}

// scalarText renders a JSON scalar as text. Strings are unquoted, numbers and
// booleans keep their literal form, anything else becomes empty.
func scalarText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(trimmed)
	}
}

// createdAtText accepts numeric epoch milliseconds besides textual timestamps.
func createdAtText(raw json.RawMessage) string {
	text := scalarText(raw)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return text
	}
	ms, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return time.UnixMilli(int64(ms)).UTC().Format(legacyTimestampLayout)
}

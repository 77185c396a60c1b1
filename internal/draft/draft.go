// Package draft auto-saves unsubmitted form input to a local key-value
// store and restores it when the form is opened again.
//
// Drafts are a convenience. Backend failures and unreadable records are
// logged and otherwise ignored, so a broken store behaves like an empty
// one.
package draft

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

// KeyPrefix is prepended to every form id to build the storage key.
const KeyPrefix = "formData_"

// Record maps field names to field values.
type Record map[string]string

// Field is one named form field in display order.
type Field struct {
	Name  string
	Value string
}

// KV is the storage backend drafts are written to.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// FormID identifies a form by its submission target, falling back to the
// path of the page it is shown on.
func FormID(action, pagePath string) string {
	if action != "" {
		return action
	}
	return pagePath
}

// Key returns the storage key for a form id.
func Key(formID string) string {
	return KeyPrefix + formID
}

// Snapshot collects every named field into a record. Later fields win
// when names repeat.
func Snapshot(fields []Field) Record {
	rec := make(Record, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		rec[f.Name] = f.Value
	}
	return rec
}

// Fill returns a copy of fields where empty values are taken from rec.
// A field that already has a value keeps it.
func Fill(fields []Field, rec Record) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	if len(rec) == 0 {
		return out
	}
	for i := range out {
		if out[i].Value != "" {
			continue
		}
		if v, ok := rec[out[i].Name]; ok {
			out[i].Value = v
		}
	}
	return out
}

// Store persists drafts in a KV backend.
type Store struct {
	kv     KV
	logger zerolog.Logger
}

// NewStore wraps kv. A nil kv yields a store that never saves anything.
func NewStore(kv KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("component", "draft").Logger(),
	}
}

// Save replaces the draft for formID with rec.
func (s *Store) Save(ctx context.Context, formID string, rec Record) {
	if s.kv == nil {
		return
	}
	if rec == nil {
		rec = Record{}
	}
	data, err := sonic.MarshalString(rec)
	if err != nil {
		s.logger.Warn().Err(err).Str("form", formID).Msg("encode draft")
		return
	}
	if err := s.kv.Set(ctx, Key(formID), data); err != nil {
		s.logger.Warn().Err(err).Str("form", formID).Msg("save draft")
	}
}

// Restore returns the last saved draft for formID, or nil when there is
// none or it cannot be read.
func (s *Store) Restore(ctx context.Context, formID string) Record {
	if s.kv == nil {
		return nil
	}
	raw, ok, err := s.kv.Get(ctx, Key(formID))
	if err != nil {
		s.logger.Warn().Err(err).Str("form", formID).Msg("load draft")
		return nil
	}
	if !ok {
		return nil
	}

	var rec Record
	if err := sonic.UnmarshalString(raw, &rec); err != nil {
		s.logger.Warn().Err(err).Str("form", formID).Msg("failed to restore form data")
		return nil
	}
	return rec
}

// Clear drops the draft for formID.
func (s *Store) Clear(ctx context.Context, formID string) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Remove(ctx, Key(formID)); err != nil {
		s.logger.Warn().Err(err).Str("form", formID).Msg("clear draft")
	}
}

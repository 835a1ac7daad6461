// Package convert runs document conversions: load, validate, map, write
// and record. It is shared by the CLI, the HTTP API and the MCP server.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/sdfwot/pkg/db"
	"github.com/urmzd/sdfwot/pkg/document"
	"github.com/urmzd/sdfwot/pkg/mapping"
	"github.com/urmzd/sdfwot/pkg/sdf"
)

// HistoryStore records finished conversions. db.ConversionStore satisfies it.
type HistoryStore interface {
	Create(ctx context.Context, c *db.Conversion) error
}

// Observer is notified after every conversion attempt.
type Observer func(from, to document.Kind, status string, elapsed time.Duration)

// Request describes one conversion.
type Request struct {
	From   document.Kind
	To     document.Kind
	Input  []byte
	Source string // optional label stored with the history record
}

// Result is the outcome of a successful conversion.
type Result struct {
	ID       string
	From     document.Kind
	To       document.Kind
	Output   []byte
	Duration time.Duration
}

// Service converts documents between SDF and WoT. It is safe for
// concurrent use.
type Service struct {
	loader    *document.Loader
	history   HistoryStore
	profileID *int64
	observers []Observer
	events    *Broadcaster
	indent    string
	sdfTarget document.Kind
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records every conversion in store. profileID may be nil.
func WithHistory(store HistoryStore, profileID *int64) Option {
	return func(s *Service) {
		s.history = store
		s.profileID = profileID
	}
}

// WithIndent sets the indentation of written documents.
func WithIndent(indent string) Option {
	return func(s *Service) {
		s.indent = indent
	}
}

// WithObserver registers a callback run after every conversion.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observers = append(s.observers, o)
	}
}

// WithSDFTarget sets the kind SDF converts to when a request names none.
func WithSDFTarget(k document.Kind) Option {
	return func(s *Service) {
		s.sdfTarget = k
	}
}

// NewService creates a conversion service.
func NewService(loader *document.Loader, opts ...Option) *Service {
	s := &Service{
		loader:    loader,
		indent:    document.DefaultIndent,
		sdfTarget: document.KindTM,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loader returns the loader used to read documents.
func (s *Service) Loader() *document.Loader {
	return s.loader
}

// Target returns the kind a document of kind from converts to by default.
func (s *Service) Target(from document.Kind) document.Kind {
	if from == document.KindSDF {
		return s.sdfTarget
	}
	return document.KindSDF
}

// Supported reports whether a mapping from one kind to another exists.
// Same-kind requests are handled as a reformat and are not listed here.
func Supported(from, to document.Kind) bool {
	switch {
	case from == document.KindSDF && (to == document.KindTM || to == document.KindTD):
		return true
	case from == document.KindTM && to == document.KindSDF:
		return true
	}
	return false
}

// Convert converts req.Input. An empty req.To selects the default target.
// Failures wrap document.ErrParse, document.ErrWrite,
// document.ErrUnknownKind or document.ErrUnsupportedConversion.
func (s *Service) Convert(ctx context.Context, req Request) (*Result, error) {
	if req.To == "" {
		req.To = s.Target(req.From)
	}

	start := time.Now()
	out, err := s.convert(req)
	elapsed := time.Since(start)

	id := uuid.NewString()
	status := db.StatusSucceeded
	if err != nil {
		status = db.StatusFailed
	}
	s.record(ctx, id, req, len(out), status, err, elapsed)
	for _, o := range s.observers {
		o(req.From, req.To, status, elapsed)
	}
	if s.events != nil {
		evt := Event{
			ID:        id,
			From:      req.From,
			To:        req.To,
			Status:    status,
			Source:    req.Source,
			Timestamp: time.Now(),
		}
		if err != nil {
			evt.Error = err.Error()
		}
		s.events.Publish(evt)
	}

	if err != nil {
		logEvent := log.Error()
		if IsClientError(err) {
			logEvent = log.Debug()
		}
		logEvent.Err(err).
			Str("from", string(req.From)).
			Str("to", string(req.To)).
			Str("source", req.Source).
			Msg("Conversion failed")
		return nil, err
	}

	log.Debug().
		Str("id", id).
		Str("from", string(req.From)).
		Str("to", string(req.To)).
		Int("input_size", len(req.Input)).
		Int("output_size", len(out)).
		Dur("duration", elapsed).
		Msg("Converted document")

	return &Result{ID: id, From: req.From, To: req.To, Output: out, Duration: elapsed}, nil
}

func (s *Service) convert(req Request) ([]byte, error) {
	if !req.From.Valid() {
		return nil, fmt.Errorf("%w: %q", document.ErrUnknownKind, req.From)
	}
	if !req.To.Valid() {
		return nil, fmt.Errorf("%w: %q", document.ErrUnknownKind, req.To)
	}
	if req.From == req.To {
		return s.loader.Reformat(req.From, req.Input, s.indent)
	}
	if !Supported(req.From, req.To) {
		return nil, fmt.Errorf("%w: %s to %s", document.ErrUnsupportedConversion, req.From, req.To)
	}

	var out any
	switch req.From {
	case document.KindSDF:
		model, err := s.loader.SDF(req.Input)
		if err != nil {
			return nil, err
		}
		out = fromSDF(model, req.To)
	case document.KindTM:
		tm, err := s.loader.ThingModel(req.Input)
		if err != nil {
			return nil, err
		}
		out = mapping.FromThingModel(tm)
	}
	return document.Write(out, s.indent)
}

func fromSDF(m *sdf.Model, to document.Kind) any {
	if to == document.KindTD {
		return mapping.ToThingDescription(m)
	}
	return mapping.ToThingModel(m)
}

func (s *Service) record(ctx context.Context, id string, req Request, outSize int, status string, convErr error, elapsed time.Duration) {
	if s.history == nil {
		return
	}
	c := &db.Conversion{
		ID:         id,
		ProfileID:  s.profileID,
		SourceKind: string(req.From),
		TargetKind: string(req.To),
		Source:     req.Source,
		InputSize:  len(req.Input),
		OutputSize: outSize,
		Status:     status,
		Duration:   elapsed,
	}
	if convErr != nil {
		c.Error = convErr.Error()
	}
	if err := s.history.Create(ctx, c); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to record conversion")
	}
}

// Validate checks data against the schema of kind without converting it.
func (s *Service) Validate(kind document.Kind, data []byte) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", document.ErrUnknownKind, kind)
	}
	return s.loader.Validate(kind, data)
}

// Print loads data as kind and writes it back in normalized form.
func (s *Service) Print(kind document.Kind, data []byte) ([]byte, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", document.ErrUnknownKind, kind)
	}
	return s.loader.Reformat(kind, data, s.indent)
}

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	return errors.Is(err, document.ErrParse) ||
		errors.Is(err, document.ErrUnknownKind) ||
		errors.Is(err, document.ErrUnsupportedConversion)
}

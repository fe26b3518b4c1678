package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"reserve-assistant/models"
	"reserve-assistant/models/apperr"
)

// SessionStore persists search sessions between a new search and its next pages.
type SessionStore interface {
	SaveSession(s *models.SearchSession) error
	GetSession(id string) (*models.SearchSession, error)
}

// StartPolicy decides the directory offset a new search begins at.
type StartPolicy struct {
	Random bool
	Max    int
}

// SearchService drives a whole search: accumulate, enrich, rank, store.
type SearchService struct {
	loop      *AccumulationLoop
	enricher  *RatingEnricher
	store     SessionStore
	start     StartPolicy
	configErr error
	logger    arbor.ILogger

	now   func() time.Time
	intn  func(n int) int
	newID func() string
}

// NewSearchService builds the service. A non-nil configErr is returned from
// every search until the process is reconfigured.
func NewSearchService(loop *AccumulationLoop, enricher *RatingEnricher, store SessionStore, start StartPolicy, configErr error, logger arbor.ILogger) *SearchService {
	return &SearchService{
		loop:      loop,
		enricher:  enricher,
		store:     store,
		start:     start,
		configErr: configErr,
		logger:    logger,
		now:       time.Now,
		intn:      rand.Intn,
		newID:     uuid.NewString,
	}
}

// NewSearch validates req, creates a fresh session and runs the first page.
func (ss *SearchService) NewSearch(ctx context.Context, req models.SearchRequest) (*models.SearchSession, error) {
	if ss.configErr != nil {
		return nil, ss.configErr
	}

	req = req.WithDefaults(ss.now())
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRequest, err)
	}

	now := ss.now()
	session := &models.SearchSession{
		ID:        ss.newID(),
		Request:   req,
		Start:     ss.initialStart(req),
		CreatedAt: now,
	}
	ss.logger.Info().Str("session_id", session.ID).Str("keyword", req.Keyword()).Int("start", session.Start).Msg("[SearchService] New search")

	return ss.run(ctx, session)
}

// NextPage continues a stored session from its persisted offset.
func (ss *SearchService) NextPage(ctx context.Context, sessionID string) (*models.SearchSession, error) {
	if ss.configErr != nil {
		return nil, ss.configErr
	}

	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	ss.logger.Info().Str("session_id", session.ID).Int("start", session.Start).Msg("[SearchService] Next page")

	return ss.run(ctx, session)
}

// GetSession returns the stored session with its last results.
func (ss *SearchService) GetSession(sessionID string) (*models.SearchSession, error) {
	return ss.store.GetSession(sessionID)
}

// run works on a copy of the session; the stored one only changes when the
// whole search succeeds.
func (ss *SearchService) run(ctx context.Context, stored *models.SearchSession) (result *models.SearchSession, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", apperr.ErrUnexpected, r)
			ss.logger.Error().Err(err).Str("session_id", stored.ID).Msg("[SearchService] Search aborted")
			result = nil
		}
	}()

	session := stored.Clone()
	target, err := session.Request.Target()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnexpected, err)
	}

	began := time.Now()
	collected := ss.loop.Collect(ctx, session, target)

	if len(collected) == 0 {
		session.Outcome = models.OutcomeNoResults
		session.Results = nil
	} else {
		enriched := ss.enricher.EnrichAll(ctx, collected)
		session.Outcome = models.OutcomeOK
		session.Results = Rank(enriched, target.Weekday())
	}
	session.UpdatedAt = ss.now()

	if err := ss.store.SaveSession(session); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnexpected, err)
	}

	ss.logger.Info().
		Str("session_id", session.ID).
		Str("outcome", session.Outcome).
		Int("venues", len(session.Results)).
		Int("pages", session.PagesFetched).
		Int("next_start", session.Start).
		Dur("elapsed", time.Since(began)).
		Msg("[SearchService] Search finished")
	return session, nil
}

func (ss *SearchService) initialStart(req models.SearchRequest) int {
	random := ss.start.Random
	if req.RandomStart != nil {
		random = *req.RandomStart
	}
	if !random || ss.start.Max <= 1 {
		return 1
	}
	return ss.intn(ss.start.Max) + 1
}

// IsNoResults reports whether a session finished without qualifying venues.
func IsNoResults(s *models.SearchSession) bool {
	return s != nil && s.Outcome == models.OutcomeNoResults
}

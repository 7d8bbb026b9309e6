package credential

import (
	"context"
	"log/slog"
	"time"

	"github.com/credvault/credvault/internal/metrics"
)

// Service orchestrates credential registration and lookup.
type Service struct {
	store   Store
	hasher  Hasher
	cache   ViewCache
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new Service.
// cache may be nil to disable view caching.
func NewService(store Store, hasher Hasher, cache ViewCache, recorder metrics.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		hasher:  hasher,
		cache:   cache,
		metrics: recorder,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Register validates, normalizes, hashes and stores a new credential.
// Every failure is returned as *Error.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*View, error) {
	view, err := s.register(ctx, req)
	if err != nil {
		s.metrics.IncRegistrationRejected(err.Kind.String())
		return nil, err
	}
	s.metrics.IncCredentialRegistered()
	return view, nil
}

func (s *Service) register(ctx context.Context, req RegistrationRequest) (*View, *Error) {
	if err := ValidateEmail(req.Email); err != nil {
		return nil, Classify(err)
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, Classify(err)
	}

	email := NormalizeEmail(req.Email)

	start := time.Now()
	secretHash, err := s.hasher.Hash(req.Password)
	s.metrics.ObserveHashDuration(time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "credential_hashing_error", slog.String("error", err.Error()))
		return nil, HashingFailure(err)
	}

	cred, err := s.store.Insert(ctx, email, secretHash, s.now())
	if err != nil {
		cerr := classifyStoreError(err)
		if cerr.Kind == KindDatabase {
			s.logger.ErrorContext(ctx, "credential_store_error",
				slog.String("op", "insert"),
				slog.String("error", err.Error()),
			)
		}
		return nil, cerr
	}

	// A positive entry replaces any "not registered" marker and wins over one
	// written later by a lookup that read the store before this insert.
	view := newView(cred.Email)
	s.cacheRegistered(ctx, view)

	s.logger.InfoContext(ctx, "credential_registered", slog.String("credential_id", cred.ID))

	return view, nil
}

// Lookup returns the redacted view of the credential registered under email.
// Every failure is returned as *Error.
func (s *Service) Lookup(ctx context.Context, email string) (*View, error) {
	view, err := s.lookup(ctx, email)
	if err != nil {
		result := "error"
		if err.Kind == KindNotFound {
			result = "not_found"
		}
		s.metrics.IncLookup(result)
		return nil, err
	}
	s.metrics.IncLookup("found")
	return view, nil
}

func (s *Service) lookup(ctx context.Context, raw string) (*View, *Error) {
	if err := ValidateEmail(raw); err != nil {
		return nil, Classify(err)
	}

	email := NormalizeEmail(raw)

	if view, missing, ok := s.cachedView(ctx, email); ok {
		if missing {
			return nil, NotFound(Resource)
		}
		return view, nil
	}

	cred, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "credential_store_error",
			slog.String("op", "find_by_email"),
			slog.String("error", err.Error()),
		)
		return nil, DatabaseError(err)
	}

	if cred == nil {
		s.cacheMissing(ctx, email)
		return nil, NotFound(Resource)
	}

	view := newView(cred.Email)
	s.cacheView(ctx, view)

	return view, nil
}

// cachedView consults the cache. ok is false on a miss or a cache fault,
// in which case the store is authoritative.
func (s *Service) cachedView(ctx context.Context, email string) (view *View, missing bool, ok bool) {
	if s.cache == nil {
		return nil, false, false
	}

	view, missing, err := s.cache.Get(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "view_cache_error", slog.String("op", "get"), slog.String("error", err.Error()))
		s.metrics.IncViewCacheMiss()
		return nil, false, false
	}

	if view == nil && !missing {
		s.metrics.IncViewCacheMiss()
		return nil, false, false
	}

	s.metrics.IncViewCacheHit()
	if missing {
		return nil, true, true
	}
	// Cached entries only hold the email; the secret is always re-redacted.
	return newView(view.Email), false, true
}

func (s *Service) cacheView(ctx context.Context, view *View) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, view); err != nil {
		s.logger.WarnContext(ctx, "view_cache_error", slog.String("op", "set"), slog.String("error", err.Error()))
	}
}

// cacheRegistered caches a freshly inserted view. If that fails it still
// tries to drop a stale "not registered" marker.
func (s *Service) cacheRegistered(ctx context.Context, view *View) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, view)
	if err == nil {
		return
	}
	s.logger.WarnContext(ctx, "view_cache_error", slog.String("op", "set"), slog.String("error", err.Error()))
	if err := s.cache.Forget(ctx, view.Email); err != nil {
		s.logger.WarnContext(ctx, "view_cache_error", slog.String("op", "forget"), slog.String("error", err.Error()))
	}
}

func (s *Service) cacheMissing(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetMissing(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "view_cache_error", slog.String("op", "set_missing"), slog.String("error", err.Error()))
	}
}

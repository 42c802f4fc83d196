package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/enrich"
	"github.com/talentio/profilehub/internal/logger"
	"github.com/talentio/profilehub/internal/source"
)

// ProfileStore persists merged profiles. Upsert must be atomic per
// identity; the pipeline delegates all contention handling to it.
type ProfileStore interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.ProfileSummary, error)
}

// BuildConfig holds per-call timeouts for the pipeline stages.
type BuildConfig struct {
	FetchTimeout  time.Duration
	EnrichTimeout time.Duration
}

// PipelineRun binds one build request to everything it produced. It exists
// only for the duration of the request and is never persisted.
type PipelineRun struct {
	BuildID  string
	Identity string
	Refs     []domain.SourceReference
	Records  []domain.SourceRecord
	Results  []domain.EnrichmentResult
	Profile  *domain.Profile
}

// BuilderService orchestrates profile builds: concurrent source fetches,
// concurrent enrichment, deterministic merge, idempotent persistence.
// Per-source and per-enrichment failures degrade the result; only invalid
// requests, all-sources-failed, and store errors surface to the caller.
type BuilderService struct {
	registry      *source.Registry
	enricher      enrich.Enricher
	store         ProfileStore
	merger        *Merger
	fetchTimeout  time.Duration
	enrichTimeout time.Duration
}

// NewBuilderService creates a new builder service. Logging follows the
// request context via logger.FromContext.
// Parameters:
//   - registry: source adapter lookup table.
//   - enricher: AI enrichment backend.
//   - store: profile persistence.
//   - cfg: stage timeouts; zero values get defaults.
// Returns:
//   - *BuilderService: initialized service.
func NewBuilderService(
	registry *source.Registry,
	enricher enrich.Enricher,
	store ProfileStore,
	cfg *BuildConfig,
) *BuilderService {
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	enrichTimeout := cfg.EnrichTimeout
	if enrichTimeout <= 0 {
		enrichTimeout = 30 * time.Second
	}
	return &BuilderService{
		registry:      registry,
		enricher:      enricher,
		store:         store,
		merger:        NewMerger(),
		fetchTimeout:  fetchTimeout,
		enrichTimeout: enrichTimeout,
	}
}

// Build runs the full pipeline for one identity.
// Parameters:
//   - ctx: request context.
//   - identity: profile identity; empty generates a new one.
//   - refs: source references to aggregate, at least one required.
// Returns:
//   - *domain.Profile: persisted merged profile.
//   - error: ErrInvalidRequest, ErrNoUsableData, or a store error.
func (s *BuilderService) Build(ctx context.Context, identity string, refs []domain.SourceReference) (*domain.Profile, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no source references", ErrInvalidRequest)
	}
	for _, ref := range refs {
		if !ref.Kind.IsValid() {
			return nil, fmt.Errorf("%w: unknown source kind %q", ErrInvalidRequest, ref.Kind)
		}
		if ref.Locator == "" {
			return nil, fmt.Errorf("%w: empty locator for %s source", ErrInvalidRequest, ref.Kind)
		}
	}

	if identity == "" {
		identity = uuid.New().String()
	}

	run := &PipelineRun{
		BuildID:  uuid.New().String(),
		Identity: identity,
		Refs:     refs,
	}
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldBuildID:   run.BuildID,
		logger.FieldProfileID: identity,
	})

	start := time.Now()
	logger.FromContext(ctx).WithField(logger.FieldCount, len(refs)).Info("Starting profile build")

	run.Records = s.fetchAll(ctx, refs)

	usable := 0
	for _, rec := range run.Records {
		if rec.Usable() {
			usable++
		}
	}
	if usable == 0 {
		logger.FromContext(ctx).Warn("All sources failed, nothing to merge")
		return nil, fmt.Errorf("%w: %d sources attempted", ErrNoUsableData, len(refs))
	}

	run.Results = s.enrichAll(ctx, run.Records)

	run.Profile = s.merger.Merge(identity, run.Records, run.Results)

	if err := s.store.Upsert(ctx, run.Profile); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}

	logger.FromContext(ctx).WithFields(logger.Fields{
		"sources_usable":       usable,
		"sources_total":        len(refs),
		"enrichments":          len(run.Results),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info("Profile build completed")

	return run.Profile, nil
}

// fetchAll dispatches one fetch per reference concurrently and joins the
// stage once every fetch has completed or individually timed out. No
// reference blocks another.
func (s *BuilderService) fetchAll(ctx context.Context, refs []domain.SourceReference) []domain.SourceRecord {
	records := make([]domain.SourceRecord, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref domain.SourceReference) {
			defer wg.Done()
			records[i] = s.fetchOne(ctx, ref)
		}(i, ref)
	}
	wg.Wait()
	return records
}

// fetchOne runs a single adapter fetch under its own timeout. A deadline
// cancels only this call; a stuck adapter is abandoned to its context.
func (s *BuilderService) fetchOne(ctx context.Context, ref domain.SourceReference) domain.SourceRecord {
	adapter, ok := s.registry.Lookup(ref.Kind)
	if !ok {
		return domain.FailedRecord(ref, domain.ReasonUnsupported)
	}

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	done := make(chan domain.SourceRecord, 1)
	go func() {
		done <- adapter.Fetch(fctx, ref)
	}()

	select {
	case rec := <-done:
		if rec.Status == domain.FetchFailed {
			logger.FromContext(ctx).WithFields(logger.Fields{
				logger.FieldSource: string(ref.Kind),
				"reason":           rec.Reason,
			}).Warn("Source fetch failed")
		}
		return rec
	case <-fctx.Done():
		logger.FromContext(ctx).WithField(logger.FieldSource, string(ref.Kind)).Warn("Source fetch timed out")
		return domain.FailedRecord(ref, domain.ReasonTimeout)
	}
}

// enrichAll dispatches skill extraction per text-bearing record, image
// analysis per unique media reference, and one bio generation, all
// concurrently. Failed calls are recorded with a reason and never abort
// the stage.
func (s *BuilderService) enrichAll(ctx context.Context, records []domain.SourceRecord) []domain.EnrichmentResult {
	resultsChan := make(chan domain.EnrichmentResult)
	var wg sync.WaitGroup

	seenMedia := map[string]bool{}
	for _, rec := range records {
		if !rec.Usable() {
			continue
		}

		if fragments := rec.TextFragments(); len(fragments) > 0 {
			wg.Add(1)
			go func(rec domain.SourceRecord, fragments []string) {
				defer wg.Done()
				resultsChan <- s.enrichSkills(ctx, rec, fragments)
			}(rec, fragments)
		}

		for _, media := range rec.Media {
			if media.URL == "" || seenMedia[media.URL] {
				continue
			}
			seenMedia[media.URL] = true
			wg.Add(1)
			go func(rec domain.SourceRecord, media domain.MediaRef) {
				defer wg.Done()
				resultsChan <- s.enrichImage(ctx, rec, media)
			}(rec, media)
		}
	}

	if req, kind, ok := bioRequest(records); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resultsChan <- s.enrichBio(ctx, kind, req)
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var results []domain.EnrichmentResult
	for res := range resultsChan {
		results = append(results, res)
	}
	return results
}

func (s *BuilderService) enrichSkills(ctx context.Context, rec domain.SourceRecord, fragments []string) domain.EnrichmentResult {
	res := domain.EnrichmentResult{
		Kind:       domain.EnrichSkills,
		SourceKind: rec.Kind,
		Locator:    rec.Locator,
		Status:     domain.EnrichOK,
	}
	err := s.withRetry(ctx, func(cctx context.Context) error {
		skills, err := s.enricher.ExtractSkills(cctx, fragments)
		if err == nil {
			res.Skills = skills
		}
		return err
	})
	if err != nil {
		logger.FromContext(ctx).WithField(logger.FieldSource, string(rec.Kind)).WithError(err).Warn("Skill extraction failed")
		res.Status = domain.EnrichFailed
		res.Reason = err.Error()
	}
	return res
}

func (s *BuilderService) enrichImage(ctx context.Context, rec domain.SourceRecord, media domain.MediaRef) domain.EnrichmentResult {
	res := domain.EnrichmentResult{
		Kind:       domain.EnrichImageTags,
		SourceKind: rec.Kind,
		Locator:    rec.Locator,
		MediaURL:   media.URL,
		Status:     domain.EnrichOK,
	}
	err := s.withRetry(ctx, func(cctx context.Context) error {
		tags, err := s.enricher.AnalyzeImage(cctx, media.URL)
		if err == nil {
			res.Tags = tags
		}
		return err
	})
	if err != nil {
		logger.FromContext(ctx).WithField("media_url", media.URL).WithError(err).Warn("Image analysis failed")
		res.Status = domain.EnrichFailed
		res.Reason = err.Error()
	}
	return res
}

func (s *BuilderService) enrichBio(ctx context.Context, kind domain.SourceKind, req enrich.BioRequest) domain.EnrichmentResult {
	res := domain.EnrichmentResult{
		Kind:       domain.EnrichBio,
		SourceKind: kind,
		Status:     domain.EnrichOK,
	}
	err := s.withRetry(ctx, func(cctx context.Context) error {
		bio, err := s.enricher.GenerateBio(cctx, req)
		if err == nil {
			res.Bio = bio
		}
		return err
	})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Bio generation failed, merge will fall back")
		res.Status = domain.EnrichFailed
		res.Reason = err.Error()
	}
	return res
}

// withRetry runs one enrichment call under its own timeout, retrying once
// when the failure is transient (rate limit, upstream outage, network).
func (s *BuilderService) withRetry(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		cctx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
		err := fn(cctx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !enrich.IsTransient(err) {
			break
		}
	}
	return lastErr
}

// bioRequest gathers the union of personal details and experience across
// usable records, scanned in fixed kind priority order.
func bioRequest(records []domain.SourceRecord) (enrich.BioRequest, domain.SourceKind, bool) {
	sorted := sortRecords(records)

	var req enrich.BioRequest
	kind := domain.SourceKind("")
	found := false
	for _, rec := range sorted {
		if !rec.Usable() {
			continue
		}
		if req.Name == "" {
			req.Name = rec.Name
		}
		if req.Profession == "" {
			req.Profession = rec.Profession
			kind = rec.Kind
		}
		req.Skills = append(req.Skills, rec.Skills...)
		req.Experience = append(req.Experience, rec.Experience...)
		found = true
	}
	if !found || (req.Profession == "" && len(req.Experience) == 0) {
		return enrich.BioRequest{}, "", false
	}
	if kind == "" {
		kind = sorted[0].Kind
	}
	return req, kind, true
}

// GetProfile retrieves a profile by identity.
// Parameters:
//   - ctx: request context.
//   - id: profile identity.
// Returns:
//   - *domain.Profile: profile if found.
//   - error: store lookup error, gorm.ErrRecordNotFound when absent.
func (s *BuilderService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return s.store.GetByID(ctx, id)
}

// ListProfiles returns summaries of all stored profiles.
// Parameters:
//   - ctx: request context.
// Returns:
//   - []domain.ProfileSummary: summaries, most recently updated first.
//   - error: store query error.
func (s *BuilderService) ListProfiles(ctx context.Context) ([]domain.ProfileSummary, error) {
	return s.store.List(ctx)
}

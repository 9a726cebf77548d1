package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/domain/document"
	"docvault-api/pkg/saga"
)

const defaultStepTimeout = 10 * time.Second

var errUnexpectedRowCount = errors.New("unexpected number of affected rows")

// UploadCoordinator writes the images of one upload request to the object store
// and its file reference to the document repository. It holds no per-request
// state and may be shared by concurrent requests.
type UploadCoordinator struct {
	store        ports.ObjectStore
	repo         document.Repository
	logger       *zap.Logger
	stepTimeout  time.Duration
	outcomes     *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	newKey       func(ext string) string
}

type CoordinatorOption func(*UploadCoordinator)

func WithStepTimeout(d time.Duration) CoordinatorOption {
	return func(c *UploadCoordinator) {
		if d > 0 {
			c.stepTimeout = d
		}
	}
}

func WithOutcomeCounter(cv *prometheus.CounterVec) CoordinatorOption {
	return func(c *UploadCoordinator) { c.outcomes = cv }
}

func WithStepHistogram(hv *prometheus.HistogramVec) CoordinatorOption {
	return func(c *UploadCoordinator) { c.stepDuration = hv }
}

// WithKeyGenerator replaces the "<uuid>.<ext>" key scheme.
func WithKeyGenerator(fn func(ext string) string) CoordinatorOption {
	return func(c *UploadCoordinator) { c.newKey = fn }
}

func NewUploadCoordinator(
	store ports.ObjectStore,
	repo document.Repository,
	logger *zap.Logger,
	opts ...CoordinatorOption,
) *UploadCoordinator {
	c := &UploadCoordinator{
		store:       store,
		repo:        repo,
		logger:      logger,
		stepTimeout: defaultStepTimeout,
		newKey: func(ext string) string {
			return uuid.NewString() + "." + ext
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// uploadRun is the mutable state of a single Run.
type uploadRun struct {
	req      document.UploadRequest
	ref      document.FileReference
	existing *document.Document
	saved    *document.Document
}

// Run drives an already validated request to exactly one terminal outcome.
func (c *UploadCoordinator) Run(ctx context.Context, req document.UploadRequest) *document.UploadResult {
	run := &uploadRun{req: req}
	if err := c.assignKeys(run); err != nil {
		return c.finish(&document.UploadResult{
			Outcome: document.OutcomeValidationFailed,
			Err:     err,
		}, req)
	}

	res := saga.New(c.steps(run),
		saga.WithStepTimeout(c.stepTimeout),
		saga.WithObserver(c.observe),
	).Run(ctx)

	if res.Failed() {
		return c.finish(c.failure(run, res), req)
	}

	out := &document.UploadResult{Outcome: document.OutcomeCompleted, Document: run.saved}
	if run.existing != nil {
		stale, err := c.retire(ctx, run.existing.FileReference.Keys())
		if err != nil {
			out.Outcome = document.OutcomeCompletedWithStaleAssets
			out.FailedStep = document.StepRetireOldAssets
			out.Err = err
			out.StaleKeys = stale
		}
	}

	return c.finish(out, req)
}

func (c *UploadCoordinator) assignKeys(run *uploadRun) error {
	for _, fa := range []*document.FileAsset{run.req.Front, run.req.Back} {
		if fa == nil {
			continue
		}
		ext, ok := document.ExtensionFor(fa.ContentType)
		if !ok {
			return &document.ValidationError{Field: string(fa.Side), Reason: "invalid file type"}
		}
		fa.Key = c.newKey(ext)
		key := fa.Key
		switch fa.Side {
		case document.SideBack:
			run.ref.Back = &key
		default:
			run.ref.Front = &key
		}
	}
	return nil
}

func (c *UploadCoordinator) steps(run *uploadRun) []saga.Step {
	front := run.req.Front
	steps := []saga.Step{{
		Name: document.StepUploadFront,
		Action: func(ctx context.Context) error {
			return c.store.Put(ctx, front.Key, front.Data, front.ContentType)
		},
		Compensate: func(ctx context.Context) error {
			return c.discard(ctx, front.Key)
		},
	}}

	if back := run.req.Back; back != nil {
		steps = append(steps, saga.Step{
			Name: document.StepUploadBack,
			Action: func(ctx context.Context) error {
				return c.store.Put(ctx, back.Key, back.Data, back.ContentType)
			},
			Compensate: func(ctx context.Context) error {
				return c.discard(ctx, back.Key)
			},
		})
	}

	return append(steps,
		saga.Step{
			Name: document.StepLookupExisting,
			Action: func(ctx context.Context) error {
				existing, err := c.repo.FetchByUserAndCategory(ctx, run.req.UserID, run.req.Category)
				if err != nil {
					return err
				}
				run.existing = existing
				return nil
			},
		},
		saga.Step{
			Name: document.StepPersistWrite,
			Action: func(ctx context.Context) error {
				return c.persist(ctx, run)
			},
		},
	)
}

// persist updates the existing record or inserts a new one. An insert that
// loses the race to a concurrent first upload of the same (user, category)
// falls back to the update path against the winner's record.
func (c *UploadCoordinator) persist(ctx context.Context, run *uploadRun) error {
	if run.existing != nil {
		return c.update(ctx, run)
	}

	created, err := c.repo.CreateDocument(ctx, &document.Document{
		UserID:        run.req.UserID,
		Category:      run.req.Category,
		FileReference: run.ref,
	})
	if err == nil {
		run.saved = created
		return nil
	}
	if !errors.Is(err, document.ErrDocumentExists) {
		return err
	}

	existing, err := c.repo.FetchByUserAndCategory(ctx, run.req.UserID, run.req.Category)
	if err != nil {
		return fmt.Errorf("re-reading document after conflict: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("re-reading document after conflict: %w", document.ErrDocumentNotFound)
	}
	run.existing = existing

	return c.update(ctx, run)
}

func (c *UploadCoordinator) update(ctx context.Context, run *uploadRun) error {
	n, err := c.repo.UpdateFileReference(ctx, run.existing.ID, run.ref)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("%w: updating document %d affected %d rows", errUnexpectedRowCount, run.existing.ID, n)
	}

	saved := *run.existing
	saved.FileReference = run.ref
	now := time.Now().UTC()
	saved.UpdatedAt = &now
	run.saved = &saved

	return nil
}

// discard removes an object written by this request. An object that is
// already gone counts as removed.
func (c *UploadCoordinator) discard(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil && !errors.Is(err, ports.ErrObjectNotFound) {
		return err
	}
	return nil
}

// retire deletes the keys of the replaced file reference after the new one is
// committed. It returns the keys that could not be deleted.
func (c *UploadCoordinator) retire(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.stepTimeout)
	defer cancel()

	var (
		mu    sync.Mutex
		stale []string
		errs  []error
		g     errgroup.Group
	)
	start := time.Now()
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := c.discard(ctx, key); err != nil {
				mu.Lock()
				stale = append(stale, key)
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	c.observe(document.StepRetireOldAssets, time.Since(start), err)

	return stale, err
}

func (c *UploadCoordinator) failure(run *uploadRun, res saga.Result) *document.UploadResult {
	out := &document.UploadResult{
		FailedStep:      res.FailedStep,
		Err:             res.Err,
		CompensationErr: res.CompensationErr(),
	}

	compensated := res.FullyCompensated()
	switch res.FailedStep {
	case document.StepUploadFront, document.StepUploadBack:
		out.Outcome = pick(compensated, document.OutcomeStoreWriteFailed, document.OutcomeStoreWriteFailedUncompensated)
	case document.StepLookupExisting:
		out.Outcome = pick(compensated, document.OutcomePersistenceReadFailed, document.OutcomePersistenceReadFailedUncompensated)
	default:
		out.Outcome = pick(compensated, document.OutcomePersistenceWriteFailed, document.OutcomePersistenceWriteFailedUncompensated)
	}

	for _, f := range res.Failures {
		switch f.Step {
		case document.StepUploadFront:
			out.OrphanedKeys = append(out.OrphanedKeys, run.req.Front.Key)
		case document.StepUploadBack:
			out.OrphanedKeys = append(out.OrphanedKeys, run.req.Back.Key)
		}
	}

	return out
}

func pick(compensated bool, ok, orphaned document.Outcome) document.Outcome {
	if compensated {
		return ok
	}
	return orphaned
}

func (c *UploadCoordinator) finish(out *document.UploadResult, req document.UploadRequest) *document.UploadResult {
	fields := []zap.Field{
		zap.Uint64("user_id", uint64(req.UserID)),
		zap.String("document_type", req.Category.String()),
		zap.String("outcome", string(out.Outcome)),
	}

	switch {
	case out.Outcome.Uncompensated():
		c.logger.Error("upload failed, uploaded files left behind",
			append(fields,
				zap.String("step", out.FailedStep),
				zap.Error(out.Err),
				zap.NamedError("compensation_error", out.CompensationErr),
				zap.Strings("orphaned_keys", out.OrphanedKeys),
			)...)
	case out.Outcome == document.OutcomeCompletedWithStaleAssets:
		c.logger.Warn("upload completed, previous files left behind",
			append(fields, zap.Error(out.Err), zap.Strings("stale_keys", out.StaleKeys))...)
	case !out.Outcome.Succeeded():
		c.logger.Warn("upload failed", append(fields, zap.String("step", out.FailedStep), zap.Error(out.Err))...)
	default:
		c.logger.Info("upload completed", fields...)
	}

	if c.outcomes != nil {
		c.outcomes.WithLabelValues(string(out.Outcome)).Inc()
	}

	return out
}

func (c *UploadCoordinator) observe(step string, took time.Duration, err error) {
	if c.stepDuration == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.stepDuration.WithLabelValues(step, result).Observe(took.Seconds())
}

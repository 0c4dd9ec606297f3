package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"

	"taskdesk/app/store"
)

// Schema describes how the generic CRUD service builds, merges and searches
// records of one entity type.
type Schema[T, P any] struct {
	Entity   string
	NotFound error
	ID       func(T) int64
	Clone    func(T) T
	// Build creates a new record from a patch, applying defaults.
	Build func(id int64, p P, now time.Time) T
	// Merge applies a patch over an existing record.
	Merge func(cur T, p P, now time.Time) T
	// Check optionally validates an update against the whole collection.
	Check func(cur T, p P, all []T) error
	// Related optionally lists records deleted together with id.
	Related func(id int64, all []T) []int64
	// Fields returns the texts matched by Search.
	Fields func(T) []string
}

// Options carries the ambient dependencies shared by every service.
type Options struct {
	Latency Latency
	Log     *slog.Logger
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Log == nil {
		o.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// CRUD implements create, read, update, delete and search over a Store.
type CRUD[T, P any] struct {
	store   *store.Store[T]
	schema  Schema[T, P]
	latency Latency
	log     *slog.Logger
	now     func() time.Time
}

// NewCRUD creates a service seeded with a copy of seed.
func NewCRUD[T, P any](schema Schema[T, P], seed []T, opts Options) *CRUD[T, P] {
	opts = opts.withDefaults()
	return &CRUD[T, P]{
		store:   store.New(schema.ID, schema.Clone, seed),
		schema:  schema,
		latency: opts.Latency,
		log:     opts.Log.With("entity", schema.Entity),
		now:     opts.Now,
	}
}

// GetAll returns every record in insertion order.
func (c *CRUD[T, P]) GetAll(ctx context.Context) (iter.Seq[T], error) {
	if err := c.latency.Wait(ctx, OpGetAll); err != nil {
		return nil, err
	}
	return c.store.All(), nil
}

// List is GetAll collected into a slice.
func (c *CRUD[T, P]) List(ctx context.Context) ([]T, error) {
	if err := c.latency.Wait(ctx, OpGetAll); err != nil {
		return nil, err
	}
	return c.store.Snapshot(), nil
}

// GetByID returns the record with the given id.
func (c *CRUD[T, P]) GetByID(ctx context.Context, id int64) (T, error) {
	if err := c.latency.Wait(ctx, OpGetByID); err != nil {
		var zero T
		return zero, err
	}
	item, ok := c.store.Get(id)
	if !ok {
		c.log.Debug("record not found", "id", id)
		return item, c.schema.NotFound
	}
	return item, nil
}

// Create stores a new record built from p.
func (c *CRUD[T, P]) Create(ctx context.Context, p P) (T, error) {
	var zero T
	if err := c.latency.Wait(ctx, OpCreate); err != nil {
		return zero, err
	}
	out, err := c.insert(func(current []T) ([]T, error) {
		return []T{c.schema.Build(c.store.NextID(), p, c.now())}, nil
	})
	if err != nil {
		return zero, err
	}
	return out[0], nil
}

// Update merges p over the record with the given id.
func (c *CRUD[T, P]) Update(ctx context.Context, id int64, p P) (T, error) {
	var zero T
	if err := c.latency.Wait(ctx, OpUpdate); err != nil {
		return zero, err
	}
	return c.update(id, func(cur T, all []T) (T, error) {
		if c.schema.Check != nil {
			if err := c.schema.Check(cur, p, all); err != nil {
				return cur, err
			}
		}
		return c.schema.Merge(cur, p, c.now()), nil
	})
}

// Delete removes the record with the given id and any related records.
func (c *CRUD[T, P]) Delete(ctx context.Context, id int64) error {
	if err := c.latency.Wait(ctx, OpDelete); err != nil {
		return err
	}
	var related func([]T) []int64
	if c.schema.Related != nil {
		related = func(all []T) []int64 { return c.schema.Related(id, all) }
	}
	removed, err := c.store.Delete(id, related)
	if err != nil {
		return c.wrap("delete", err)
	}
	if removed == 0 {
		c.log.Debug("record not found", "id", id)
		return c.schema.NotFound
	}
	c.log.Debug("record deleted", "id", id, "removed", removed)
	return nil
}

// Search returns records whose search fields contain q, ignoring case.
// A blank query returns everything.
func (c *CRUD[T, P]) Search(ctx context.Context, q string) ([]T, error) {
	if err := c.latency.Wait(ctx, OpSearch); err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return c.store.Snapshot(), nil
	}
	return c.store.Filter(func(item T) bool {
		return ContainsFold(c.schema.Fields(item), term)
	}), nil
}

// Where returns the records matching pred.
func (c *CRUD[T, P]) Where(ctx context.Context, pred func(T) bool) ([]T, error) {
	if err := c.latency.Wait(ctx, OpLookup); err != nil {
		return nil, err
	}
	return c.store.Filter(pred), nil
}

func (c *CRUD[T, P]) insert(build func(current []T) ([]T, error)) ([]T, error) {
	out, err := c.store.Insert(build)
	if err != nil {
		return nil, c.wrap("create", err)
	}
	for _, item := range out {
		c.log.Debug("record created", "id", c.schema.ID(item))
	}
	return out, nil
}

func (c *CRUD[T, P]) update(id int64, fn func(cur T, all []T) (T, error)) (T, error) {
	out, found, err := c.store.Update(id, fn)
	if err != nil {
		return out, c.wrap("update", err)
	}
	if !found {
		c.log.Debug("record not found", "id", id)
		return out, c.schema.NotFound
	}
	c.log.Debug("record updated", "id", id)
	return out, nil
}

func (c *CRUD[T, P]) wrap(op string, err error) error {
	var pe *store.PanicError
	if errors.As(err, &pe) {
		c.log.Error("store mutation failed", "op", op, "error", err)
		return fmt.Errorf("%s %s: %w: %w", op, c.schema.Entity, ErrInternal, err)
	}
	return fmt.Errorf("%s %s: %w", op, c.schema.Entity, err)
}

// ContainsFold reports whether any field contains the lower-cased term.
func ContainsFold(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

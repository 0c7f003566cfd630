package collection

import (
	"context"
	"encoding/json"

	"jobmatch/internal/common"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

// codec reads and writes one named collection as JSON. A blob that does not
// decode is reported as absent so callers fall back to an empty collection.
type codec[T any] struct {
	store  storage.Store
	name   string
	logger *observability.Logger
}

func newCodec[T any](store storage.Store, name string, logger *observability.Logger) codec[T] {
	if logger == nil {
		logger = observability.NewNop()
	}
	return codec[T]{store: store, name: name, logger: logger}
}

func (c codec[T]) load(ctx context.Context) (T, bool, error) {
	var value T
	blob, found, err := c.store.Load(ctx, c.name)
	if err != nil {
		return value, false, err
	}
	if !found || len(blob) == 0 {
		return value, false, nil
	}
	if err := json.Unmarshal(blob, &value); err != nil {
		c.logger.Warn("malformed collection treated as empty", "collection", c.name, "err", err)
		var empty T
		return empty, false, nil
	}
	return value, true, nil
}

func (c codec[T]) save(ctx context.Context, value T) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode collection "+c.name, err)
	}
	return c.store.Save(ctx, c.name, blob)
}

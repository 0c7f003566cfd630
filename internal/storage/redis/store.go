package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"jobmatch/internal/common"
	"jobmatch/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps each collection under its own key with no expiry.
type Store struct {
	client *goredis.Client
	prefix string
}

func NewStore(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, bool, error) {
	blob, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, common.NewError(common.CodeInternal, "failed to load collection "+name, err)
	}
	return blob, true, nil
}

func (s *Store) Save(ctx context.Context, name string, blob []byte) error {
	if err := s.client.Set(ctx, s.key(name), blob, 0).Err(); err != nil {
		return common.NewError(common.CodeInternal, "failed to save collection "+name, err)
	}
	return nil
}

func (s *Store) key(name string) string {
	return collectionKey(s.prefix, name)
}

func collectionKey(prefix, name string) string {
	if prefix == "" {
		return "collection:" + name
	}
	return prefix + ":collection:" + name
}

package kvstore

import (
	"errors"
	"os"
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// NewMemStorage returns a go-cache backed store. Entries never expire. When
// persistFile is not empty the cache is loaded from it on start and saved to
// it after every change.
func NewMemStorage(persistFile string, logger l.Wrapper) Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	impl := &memStorageImpl{
		logger:      logger.WithFields(l.StringField(l.ClsKey, "memStorageImpl")),
		persistFile: persistFile,
		entries:     cache.New(cache.NoExpiration, 0),
	}

	impl.init()

	return impl
}

type memStorageImpl struct {
	logger      l.Wrapper
	persistFile string

	saveLock sync.Mutex
	entries  *cache.Cache
}

func (impl *memStorageImpl) init() {
	if impl.persistFile == "" {
		return
	}

	err := impl.entries.LoadFile(impl.persistFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("file", impl.persistFile)).Error("load cache file failed")
	}
}

func (impl *memStorageImpl) save() error {
	if impl.persistFile == "" {
		return nil
	}

	impl.saveLock.Lock()
	defer impl.saveLock.Unlock()

	return impl.entries.SaveFile(impl.persistFile)
}

func (impl *memStorageImpl) Get(key string) (value string, ok bool, err error) {
	i, ok := impl.entries.Get(key)
	if !ok {
		return
	}

	value, err = cast.ToStringE(i)
	if err != nil {
		ok = false
	}

	return
}

func (impl *memStorageImpl) Set(key, value string) error {
	impl.entries.Set(key, value, cache.NoExpiration)

	return impl.save()
}

func (impl *memStorageImpl) Remove(key string) error {
	impl.entries.Delete(key)

	return impl.save()
}

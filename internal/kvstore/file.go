package kvstore

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
)

const (
	namespaceFileName = "kvstore"
)

type Namespace struct {
	Entries map[string]string `json:"entries"`
}

func validNamespace(ns *Namespace) *Namespace {
	if ns == nil {
		ns = &Namespace{}
	}

	if ns.Entries == nil {
		ns.Entries = make(map[string]string)
	}

	return ns
}

// NewFileStorage keeps the namespace in memory and mirrors every change to a
// single JSON file under dataRoot. An existing file that cannot be decoded is
// an error; it is never replaced by an empty namespace.
func NewFileStorage(dataRoot string, debug bool, logger l.Wrapper) (Storage, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if err := pathutils.MustDirExists(dataRoot); err != nil {
		logger.WithFields(l.ErrorField(err), l.StringField("dataRoot", dataRoot)).Error("prepare data root failed")

		return nil, err
	}

	fs := rawfs.NewFSStorage(dataRoot)
	serial := &mwf.JSONSerial{
		MarshalIndent: debug,
	}

	if err := checkNamespaceFile(fs, serial); err != nil {
		logger.WithFields(l.ErrorField(err), l.StringField("dataRoot", dataRoot)).Error("load namespace failed")

		return nil, err
	}

	return &fileStorageImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "fileStorageImpl")),
		namespace: mwf.NewMemWithFile[*Namespace, mwf.Serial, mwf.Lock](
			&Namespace{}, serial, &sync.RWMutex{}, namespaceFileName, fs),
	}, nil
}

func checkNamespaceFile(fs interface {
	ReadFile(fileName string) ([]byte, error)
}, serial mwf.Serial) error {
	d, err := fs.ReadFile(namespaceFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read namespace file: %w", err)
	}

	if len(d) == 0 {
		return nil
	}

	var ns Namespace

	if err = serial.Unmarshal(d, &ns); err != nil {
		return fmt.Errorf("decode namespace file: %w", err)
	}

	return nil
}

type fileStorageImpl struct {
	logger    l.Wrapper
	namespace *mwf.MemWithFile[*Namespace, mwf.Serial, mwf.Lock]

	// serialises change+rollback pairs
	writeLock sync.Mutex
}

func (impl *fileStorageImpl) Get(key string) (value string, ok bool, err error) {
	impl.namespace.Read(func(ns *Namespace) {
		if ns == nil {
			return
		}

		value, ok = ns.Entries[key]
	})

	return
}

func (impl *fileStorageImpl) Set(key, value string) error {
	return impl.change(key, func(ns *Namespace) {
		ns.Entries[key] = value
	})
}

func (impl *fileStorageImpl) Remove(key string) error {
	return impl.change(key, func(ns *Namespace) {
		delete(ns.Entries, key)
	})
}

// change applies fn to the namespace and saves it. The in-memory copy is
// updated before the save, so a failed save puts the previous entry of key
// back and reports the save error.
func (impl *fileStorageImpl) change(key string, fn func(ns *Namespace)) error {
	impl.writeLock.Lock()
	defer impl.writeLock.Unlock()

	var (
		oldValue  string
		oldExists bool
	)

	err := impl.namespace.Change(func(ns *Namespace) (newNs *Namespace, err error) {
		newNs = validNamespace(ns)

		oldValue, oldExists = newNs.Entries[key]

		fn(newNs)

		return
	})
	if err == nil {
		return nil
	}

	_ = impl.namespace.Change(func(ns *Namespace) (newNs *Namespace, err error) {
		newNs = validNamespace(ns)

		if oldExists {
			newNs.Entries[key] = oldValue
		} else {
			delete(newNs.Entries, key)
		}

		return
	})

	impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("save namespace failed")

	return err
}

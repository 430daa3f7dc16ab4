// Package valuestore keeps named primconv values in a Bolt database.
//
// Each value lives under its name in a single bucket, encoded with the
// primconv binary encoding and followed by an xxhash64 checksum. Whole stores
// can be exported to and imported from a MessagePack map.
package valuestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"

	"github.com/andreyvit/primconv"
)

var ErrEmptyName = errors.New("empty value name")

const valuesBucket = "values"

type Options struct {
	Logger    *slog.Logger
	Timeout   time.Duration // waiting for the file lock; defaults to 10s
	IsTesting bool
}

type Store struct {
	st     storage
	logger *slog.Logger
	name   string
}

func Open(path string, opt Options) (*Store, error) {
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = opt.Timeout
	if bopt.Timeout == 0 {
		bopt.Timeout = 10 * time.Second
	}
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
	}

	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("valuestore: %w", err)
	}
	s, err := newStore(newBoltStorage(bdb), path, opt)
	if err != nil {
		bdb.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory returns a store that lives in memory and is lost on Close.
func OpenMemory(opt Options) *Store {
	s, err := newStore(newMemStorage(), ":memory:", opt)
	if err != nil {
		panic(err)
	}
	return s
}

func newStore(st storage, name string, opt Options) (*Store, error) {
	s := &Store{st: st, logger: opt.Logger, name: name}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	tx, err := st.BeginTx(true)
	if err != nil {
		return nil, fmt.Errorf("valuestore: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.CreateBucket(valuesBucket); err != nil {
		return nil, fmt.Errorf("valuestore: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("valuestore: %w", err)
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "valuestore: opened", slog.String("store", name))
	return s, nil
}

func (s *Store) Close() error {
	return s.st.Close()
}

func (s *Store) read(f func(b storageBucket) error) error {
	tx, err := s.st.BeginTx(false)
	if err != nil {
		return fmt.Errorf("valuestore: %w", err)
	}
	defer tx.Rollback()
	return f(tx.Bucket(valuesBucket))
}

func (s *Store) write(f func(b storageBucket) error) error {
	tx, err := s.st.BeginTx(true)
	if err != nil {
		return fmt.Errorf("valuestore: %w", err)
	}
	defer tx.Rollback()
	if err := f(tx.Bucket(valuesBucket)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("valuestore: commit: %w", err)
	}
	return nil
}

func (s *Store) Put(name string, v primconv.Value) error {
	if name == "" {
		return ErrEmptyName
	}
	if !v.IsValid() {
		return fmt.Errorf("valuestore: %s: %w", name, primconv.ErrInvalidKind)
	}
	return s.write(func(b storageBucket) error {
		return b.Put([]byte(name), encodeRecord(nil, v))
	})
}

// PutText parses text as kind using conv (primconv.Default if nil) and stores
// the result.
func (s *Store) PutText(name, text string, kind primconv.Kind, conv *primconv.Converter) (primconv.Value, error) {
	if conv == nil {
		conv = primconv.Default
	}
	v, err := conv.ParseText(text, kind)
	if err != nil {
		return primconv.Value{}, err
	}
	if err := s.Put(name, v); err != nil {
		return primconv.Value{}, err
	}
	return v, nil
}

func (s *Store) Get(name string) (primconv.Value, bool, error) {
	var v primconv.Value
	var found bool
	err := s.read(func(b storageBucket) error {
		raw := b.Get([]byte(name))
		if raw == nil {
			return nil
		}
		var err error
		v, err = decodeRecord(raw)
		if err != nil {
			s.logger.LogAttrs(context.Background(), slog.LevelWarn, "valuestore: bad record", slog.String("store", s.name), slog.String("name", name), slog.Any("err", err))
			return fmt.Errorf("valuestore: %s: %w", name, err)
		}
		found = true
		return nil
	})
	return v, found, err
}

func (s *Store) Delete(name string) (bool, error) {
	var found bool
	err := s.write(func(b storageBucket) error {
		key := []byte(name)
		if b.Get(key) == nil {
			return nil
		}
		found = true
		return b.Delete(key)
	})
	return found, err
}

func (s *Store) Len() (int, error) {
	var n int
	err := s.read(func(b storageBucket) error {
		n = b.KeyCount()
		return nil
	})
	return n, err
}

// Names returns all value names in byte order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.read(func(b storageBucket) error {
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	return names, err
}

func (s *Store) All() (map[string]primconv.Value, error) {
	result := make(map[string]primconv.Value)
	err := s.read(func(b storageBucket) error {
		c := b.Cursor()
		for k, raw := c.First(); k != nil; k, raw = c.Next() {
			v, err := decodeRecord(raw)
			if err != nil {
				return fmt.Errorf("valuestore: %s: %w", k, err)
			}
			result[string(k)] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

package valuestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/andreyvit/primconv"
)

// Export writes every value as a single MessagePack map from name to value,
// with keys sorted.
func (s *Store) Export(w io.Writer) error {
	all, err := s.All()
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(all); err != nil {
		return fmt.Errorf("valuestore: export: %w", err)
	}
	return nil
}

// Import reads a map written by Export and stores all of its values in one
// transaction. Existing values with the same names are replaced.
func (s *Store) Import(r io.Reader) (int, error) {
	var all map[string]primconv.Value
	if err := msgpack.NewDecoder(r).Decode(&all); err != nil {
		return 0, fmt.Errorf("valuestore: import: %w", err)
	}
	for name := range all {
		if name == "" {
			return 0, ErrEmptyName
		}
	}

	err := s.write(func(b storageBucket) error {
		for name, v := range all {
			// Bolt keeps references to keys and values until commit
			if err := b.Put([]byte(name), encodeRecord(nil, v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, "valuestore: imported", slog.String("store", s.name), slog.Int("count", len(all)))
	return len(all), nil
}

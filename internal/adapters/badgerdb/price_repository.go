package badgerdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"coindesk/internal/domain"

	"github.com/dgraph-io/badger/v3"
)

var (
	pricePrefix = []byte("price:")
	sequenceKey = []byte("seq:price")
)

// PriceRepository keeps prices as JSON values keyed by big-endian id, so
// prefix iteration returns them in insertion order.
type PriceRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewPriceRepository(db *badger.DB) (*PriceRepository, error) {
	seq, err := db.GetSequence(sequenceKey, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to open price id sequence: %w", err)
	}
	return &PriceRepository{db: db, seq: seq}, nil
}

// Open opens a badger database at dir. An empty dir opens an in-memory database.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", dir, err)
	}
	return db, nil
}

func (r *PriceRepository) Create(ctx context.Context, price domain.Price) (domain.Price, error) {
	created, err := r.CreateBatch(ctx, []domain.Price{price})
	if err != nil {
		return domain.Price{}, err
	}
	return created[0], nil
}

func (r *PriceRepository) CreateBatch(_ context.Context, prices []domain.Price) ([]domain.Price, error) {
	if len(prices) == 0 {
		return nil, nil
	}

	created := make([]domain.Price, 0, len(prices))
	for _, price := range prices {
		id, err := r.nextID()
		if err != nil {
			return nil, err
		}
		price.ID = id
		created = append(created, price)
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		for _, price := range created {
			if err := setPrice(txn, price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store prices: %w", err)
	}
	return created, nil
}

func (r *PriceRepository) GetByID(_ context.Context, id int64) (domain.Price, error) {
	var price domain.Price
	err := r.db.View(func(txn *badger.Txn) error {
		var getErr error
		price, getErr = getPrice(txn, id)
		return getErr
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Price{}, domain.ErrPriceNotFound
		}
		return domain.Price{}, fmt.Errorf("failed to retrieve price %d: %w", id, err)
	}
	return price, nil
}

func (r *PriceRepository) Update(_ context.Context, price domain.Price) (domain.Price, error) {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(priceKey(price.ID)); err != nil {
			return err
		}
		return setPrice(txn, price)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Price{}, domain.ErrPriceNotFound
		}
		return domain.Price{}, fmt.Errorf("failed to update price %d: %w", price.ID, err)
	}
	return price, nil
}

func (r *PriceRepository) Delete(_ context.Context, id int64) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(priceKey(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete price %d: %w", id, err)
	}
	return nil
}

func (r *PriceRepository) List(_ context.Context) ([]domain.Price, error) {
	prices := make([]domain.Price, 0, 16)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(pricePrefix); it.ValidForPrefix(pricePrefix); it.Next() {
			var price domain.Price
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &price)
			}); err != nil {
				return err
			}
			prices = append(prices, price)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return prices, nil
}

// Close releases the unused part of the leased id range.
func (r *PriceRepository) Close() error {
	return r.seq.Release()
}

// nextID starts at 1 so that the zero id never names a stored record.
func (r *PriceRepository) nextID() (int64, error) {
	n, err := r.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate price id: %w", err)
	}
	return int64(n) + 1, nil
}

func priceKey(id int64) []byte {
	key := make([]byte, len(pricePrefix)+8)
	copy(key, pricePrefix)
	binary.BigEndian.PutUint64(key[len(pricePrefix):], uint64(id))
	return key
}

func getPrice(txn *badger.Txn, id int64) (domain.Price, error) {
	var price domain.Price
	item, err := txn.Get(priceKey(id))
	if err != nil {
		return domain.Price{}, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &price)
	})
	return price, err
}

func setPrice(txn *badger.Txn, price domain.Price) error {
	data, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("failed to marshal price: %w", err)
	}
	return txn.Set(priceKey(price.ID), data)
}

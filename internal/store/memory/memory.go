// Package memory is an in-process store.Store used by tests and by the
// CLI when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"homebudget/internal/models"
	"homebudget/internal/store"
)

type state struct {
	persons      map[uint]models.Person
	categories   map[uint]models.Category
	transactions map[uint]models.Transaction

	nextPersonID      uint
	nextCategoryID    uint
	nextTransactionID uint
}

func (s *state) clone() *state {
	c := &state{
		persons:           make(map[uint]models.Person, len(s.persons)),
		categories:        make(map[uint]models.Category, len(s.categories)),
		transactions:      make(map[uint]models.Transaction, len(s.transactions)),
		nextPersonID:      s.nextPersonID,
		nextCategoryID:    s.nextCategoryID,
		nextTransactionID: s.nextTransactionID,
	}
	for k, v := range s.persons {
		c.persons[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

// Store keeps all rows in maps guarded by one mutex. A Store handed to an
// Atomic callback already holds the lock and must not be used after the
// callback returns.
type Store struct {
	mu   *sync.Mutex
	data *state
	inTx bool
}

func New() *Store {
	return &Store{
		mu: &sync.Mutex{},
		data: &state{
			persons:      map[uint]models.Person{},
			categories:   map[uint]models.Category{},
			transactions: map[uint]models.Transaction{},
		},
	}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Persons() store.PersonRepo {
	return personRepo{s}
}

func (s *Store) Categories() store.CategoryRepo {
	return categoryRepo{s}
}

func (s *Store) Transactions() store.TransactionRepo {
	return transactionRepo{s}
}

// Atomic holds the lock for the whole callback and rolls every map back
// when fn fails.
func (s *Store) Atomic(ctx context.Context, fn func(store.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	view := &Store{mu: s.mu, data: s.data, inTx: true}
	if err := fn(view); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type personRepo struct{ s *Store }

func (r personRepo) Create(_ context.Context, p *models.Person) error {
	defer r.s.lock()()
	d := r.s.data
	d.nextPersonID++
	p.ID = d.nextPersonID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	d.persons[p.ID] = *p
	return nil
}

func (r personRepo) Get(_ context.Context, id uint) (*models.Person, error) {
	defer r.s.lock()()
	p, ok := r.s.data.persons[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return &p, nil
}

func (r personRepo) List(_ context.Context) ([]models.Person, error) {
	defer r.s.lock()()
	out := make([]models.Person, 0, len(r.s.data.persons))
	for _, id := range sortedKeys(r.s.data.persons) {
		out = append(out, r.s.data.persons[id])
	}
	return out, nil
}

func (r personRepo) FindByName(_ context.Context, name string) (*models.Person, error) {
	defer r.s.lock()()
	for _, id := range sortedKeys(r.s.data.persons) {
		p := r.s.data.persons[id]
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

func (r personRepo) Update(_ context.Context, p *models.Person) error {
	defer r.s.lock()()
	cur, ok := r.s.data.persons[p.ID]
	if !ok {
		return store.ErrRecordNotFound
	}
	cur.Name = p.Name
	cur.Age = p.Age
	cur.UpdatedAt = time.Now()
	r.s.data.persons[p.ID] = cur
	return nil
}

func (r personRepo) Delete(_ context.Context, id uint) error {
	defer r.s.lock()()
	if _, ok := r.s.data.persons[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(r.s.data.persons, id)
	return nil
}

func (r personRepo) Exists(_ context.Context, id uint) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.data.persons[id]
	return ok, nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, c *models.Category) error {
	defer r.s.lock()()
	d := r.s.data
	d.nextCategoryID++
	c.ID = d.nextCategoryID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	d.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) Get(_ context.Context, id uint) (*models.Category, error) {
	defer r.s.lock()()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return &c, nil
}

func (r categoryRepo) List(_ context.Context) ([]models.Category, error) {
	defer r.s.lock()()
	out := make([]models.Category, 0, len(r.s.data.categories))
	for _, id := range sortedKeys(r.s.data.categories) {
		out = append(out, r.s.data.categories[id])
	}
	return out, nil
}

func (r categoryRepo) Update(_ context.Context, c *models.Category) error {
	defer r.s.lock()()
	cur, ok := r.s.data.categories[c.ID]
	if !ok {
		return store.ErrRecordNotFound
	}
	cur.Description = c.Description
	cur.Purpose = c.Purpose
	cur.UpdatedAt = time.Now()
	r.s.data.categories[c.ID] = cur
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id uint) error {
	defer r.s.lock()()
	if _, ok := r.s.data.categories[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(r.s.data.categories, id)
	return nil
}

func (r categoryRepo) Exists(_ context.Context, id uint) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.data.categories[id]
	return ok, nil
}

type transactionRepo struct{ s *Store }

func match(t models.Transaction, f store.TransactionFilter) bool {
	if f.PersonID != 0 && t.PersonID != f.PersonID {
		return false
	}
	if f.CategoryID != 0 && t.CategoryID != f.CategoryID {
		return false
	}
	return true
}

// hydrate attaches copies of the referenced rows, mirroring a preload.
func (r transactionRepo) hydrate(t models.Transaction) models.Transaction {
	t.Person, t.Category = nil, nil
	if p, ok := r.s.data.persons[t.PersonID]; ok {
		t.Person = &p
	}
	if c, ok := r.s.data.categories[t.CategoryID]; ok {
		t.Category = &c
	}
	return t
}

func (r transactionRepo) Create(_ context.Context, t *models.Transaction) error {
	defer r.s.lock()()
	d := r.s.data
	d.nextTransactionID++
	t.ID = d.nextTransactionID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	row := *t
	row.Person, row.Category = nil, nil
	d.transactions[t.ID] = row
	return nil
}

func (r transactionRepo) Get(_ context.Context, id uint) (*models.Transaction, error) {
	defer r.s.lock()()
	t, ok := r.s.data.transactions[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	t = r.hydrate(t)
	return &t, nil
}

func (r transactionRepo) List(_ context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	defer r.s.lock()()
	out := make([]models.Transaction, 0)
	for _, id := range sortedKeys(r.s.data.transactions) {
		t := r.s.data.transactions[id]
		if match(t, f) {
			out = append(out, r.hydrate(t))
		}
	}
	return out, nil
}

func (r transactionRepo) Count(_ context.Context, f store.TransactionFilter) (int64, error) {
	defer r.s.lock()()
	var n int64
	for _, t := range r.s.data.transactions {
		if match(t, f) {
			n++
		}
	}
	return n, nil
}

func (r transactionRepo) Update(_ context.Context, t *models.Transaction) error {
	defer r.s.lock()()
	cur, ok := r.s.data.transactions[t.ID]
	if !ok {
		return store.ErrRecordNotFound
	}
	cur.Description = t.Description
	cur.Value = t.Value
	cur.Type = t.Type
	cur.CategoryID = t.CategoryID
	cur.PersonID = t.PersonID
	cur.UpdatedAt = time.Now()
	r.s.data.transactions[t.ID] = cur
	return nil
}

func (r transactionRepo) Delete(_ context.Context, id uint) error {
	defer r.s.lock()()
	if _, ok := r.s.data.transactions[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(r.s.data.transactions, id)
	return nil
}

func (r transactionRepo) DeleteWhere(_ context.Context, f store.TransactionFilter) (int64, error) {
	if f == (store.TransactionFilter{}) {
		return 0, nil
	}
	defer r.s.lock()()
	var n int64
	for id, t := range r.s.data.transactions {
		if match(t, f) {
			delete(r.s.data.transactions, id)
			n++
		}
	}
	return n, nil
}

var _ store.Store = (*Store)(nil)

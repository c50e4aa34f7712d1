package memory

import (
	"fmt"
	"sync"
	"time"

	"pfas-demo/internal/model"
)

type UserRepository struct {
	t *table[uint, model.User]

	// createMu serializes the uniqueness check with the insert.
	createMu sync.Mutex
	nextID   uint
}

func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable[uint, model.User]()}
}

func (r *UserRepository) Create(user *model.User) error {
	r.createMu.Lock()
	defer r.createMu.Unlock()

	if existing, _ := r.GetByUsername(user.Username); existing != nil {
		return fmt.Errorf("create user failed: username %q taken", user.Username)
	}
	if existing, _ := r.GetByEmail(user.Email); existing != nil {
		return fmt.Errorf("create user failed: email %q taken", user.Email)
	}

	now := time.Now()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.t.put(user.ID, *user)
	return nil
}

func (r *UserRepository) CreateIfAbsent(user *model.User) error {
	if existing, _ := r.GetByUsername(user.Username); existing != nil {
		*user = *existing
		return nil
	}
	return r.Create(user)
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	u, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) findBy(match func(model.User) bool) (*model.User, error) {
	u, ok := r.t.find(match)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

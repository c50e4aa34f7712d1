package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pfas-demo/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

// CreateIfAbsent inserts user unless the username or email is already taken.
func (r *UserRepository) CreateIfAbsent(user *model.User) error {
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
		return fmt.Errorf("create user if absent failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	return r.first("username = ?", username)
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	return r.first("email = ?", email)
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	return r.first("id = ?", id)
}

func (r *UserRepository) first(query string, arg any) (*model.User, error) {
	var user model.User
	if err := r.db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user failed: %w", err)
	}
	return &user, nil
}

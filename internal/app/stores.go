package app

import "pfas-demo/internal/model"

// Lookups return (nil, nil) when the row does not exist.

type DocumentStore interface {
	Create(doc *model.Document) error
	List() ([]model.Document, error)
	GetByID(id string) (*model.Document, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}

type ChemicalStore interface {
	Create(record *model.ChemicalRecord) error
	List() ([]model.ChemicalRecord, error)
	GetByID(id string) (*model.ChemicalRecord, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}

type UserStore interface {
	Create(user *model.User) error
	CreateIfAbsent(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

type MessageStore interface {
	Create(message *model.Message) error
	ListBySessionID(sessionID string, limit int) ([]model.Message, error)
}

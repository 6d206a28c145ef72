package service

import (
	"context"
	"errors"
	"log"

	entity "leafloop/internal/domain"
	repo "leafloop/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrNotOwner         = errors.New("access denied: you are not the owner of this book")
	ErrInvalidCondition = errors.New("condition must be one of excellent, good, fair, poor")
)

// PhotoRemover deletes previously stored photos. Removal failures are
// tolerated on book deletion.
type PhotoRemover interface {
	Remove(urls []string) error
}

type BookService struct {
	bookRepo repo.BookRepository
	photos   PhotoRemover
}

func NewBookService(bookRepo repo.BookRepository, photos PhotoRemover) *BookService {
	return &BookService{bookRepo: bookRepo, photos: photos}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *BookService) Create(ctx context.Context, ownerID uuid.UUID, input entity.CreateBookInput, photoURLs []string) (*entity.Book, error) {
	if !entity.ValidCondition(input.Condition) {
		return nil, ErrInvalidCondition
	}

	book := &entity.Book{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          optional(input.ISBN),
		Genre:         optional(input.Genre),
		Description:   optional(input.Description),
		Condition:     input.Condition,
		PhotoURLs:     photoURLs,
		IsListed:      input.IsListed,
		ContactEmail:  optional(input.ContactEmail),
		ContactPhone:  optional(input.ContactPhone),
		ContactSocial: optional(input.ContactSocial),
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) MyBooks(ctx context.Context, ownerID uuid.UUID) ([]entity.Book, error) {
	return s.bookRepo.ListByOwner(ctx, ownerID)
}

func (s *BookService) owned(ctx context.Context, ownerID, bookID uuid.UUID) (*entity.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, ownerID, bookID uuid.UUID, input entity.UpdateBookInput) (*entity.Book, error) {
	if !entity.ValidCondition(input.Condition) {
		return nil, ErrInvalidCondition
	}
	book, err := s.owned(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.ISBN = optional(input.ISBN)
	book.Genre = optional(input.Genre)
	book.Description = optional(input.Description)
	book.Condition = input.Condition
	book.IsListed = input.IsListed
	book.ContactEmail = optional(input.ContactEmail)
	book.ContactPhone = optional(input.ContactPhone)
	book.ContactSocial = optional(input.ContactSocial)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes the book record. Stored photos are removed first,
// best-effort; a storage failure is logged and does not block deletion.
func (s *BookService) Delete(ctx context.Context, ownerID, bookID uuid.UUID) error {
	book, err := s.owned(ctx, ownerID, bookID)
	if err != nil {
		return err
	}

	if len(book.PhotoURLs) > 0 {
		if err := s.photos.Remove(book.PhotoURLs); err != nil {
			log.Printf("Warning: failed to remove photos for book %s: %v", book.ID, err)
		}
	}

	return s.bookRepo.Delete(ctx, book.ID)
}

func (s *BookService) SetListing(ctx context.Context, ownerID, bookID uuid.UUID, listed bool) (*entity.Book, error) {
	book, err := s.owned(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.SetListed(ctx, book.ID, listed); err != nil {
		return nil, err
	}
	book.IsListed = listed
	return book, nil
}

// Browse serves the public marketplace: listed books from everyone but
// the viewer. Contact fields never leave this layer.
func (s *BookService) Browse(ctx context.Context, viewerID uuid.UUID, filter entity.BrowseFilter) ([]entity.BookWithOwner, error) {
	books, err := s.bookRepo.Browse(ctx, viewerID, filter)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Book = sanitizeBook(books[i].Book)
	}
	return books, nil
}

// MarketBook is the public book page: the listed book plus the owner's
// other listed books. Unlisted books are not found for anyone but the
// owner's own catalog endpoints.
func (s *BookService) MarketBook(ctx context.Context, bookID uuid.UUID) (*entity.Book, []entity.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}
	if book == nil || !book.IsListed {
		return nil, nil, ErrBookNotFound
	}

	others, err := s.bookRepo.ListListedByOwner(ctx, book.OwnerID, book.ID)
	if err != nil {
		return nil, nil, err
	}
	clean := sanitizeBook(*book)
	for i := range others {
		others[i] = sanitizeBook(others[i])
	}
	return &clean, others, nil
}

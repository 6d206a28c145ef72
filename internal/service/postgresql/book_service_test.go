package service

import (
	"context"
	"testing"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookService() (*BookService, *fakeBookRepo, *fakePhotoStore) {
	books := newFakeBookRepo()
	photos := &fakePhotoStore{}
	return NewBookService(books, photos), books, photos
}

func TestCreateBook(t *testing.T) {
	svc, books, _ := newBookService()
	owner := uuid.New()

	book, err := svc.Create(context.Background(), owner, entity.CreateBookInput{
		Title:     "Snow Crash",
		Author:    "Neal Stephenson",
		Condition: entity.ConditionGood,
		IsListed:  true,
	}, []string{"/uploads/books/a.jpg"})
	require.NoError(t, err)

	assert.Equal(t, owner, book.OwnerID)
	assert.True(t, book.IsListed)
	assert.Nil(t, book.ISBN, "empty optional fields stay null")
	assert.NotNil(t, books.books[book.ID])
}

func TestCreateBookInvalidCondition(t *testing.T) {
	svc, books, _ := newBookService()

	_, err := svc.Create(context.Background(), uuid.New(), entity.CreateBookInput{
		Title:     "Snow Crash",
		Author:    "Neal Stephenson",
		Condition: "mint",
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidCondition)
	assert.Empty(t, books.books)
}

func TestUpdateBookOwnership(t *testing.T) {
	svc, books, _ := newBookService()
	owner := uuid.New()
	book := books.add(entity.Book{ID: uuid.New(), OwnerID: owner, Title: "Old", Author: "A", Condition: entity.ConditionFair})

	input := entity.UpdateBookInput{Title: "New", Author: "A", Condition: entity.ConditionGood, ContactEmail: "me@example.com"}

	_, err := svc.Update(context.Background(), uuid.New(), book.ID, input)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(context.Background(), owner, book.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	require.NotNil(t, updated.ContactEmail)
	assert.Equal(t, "me@example.com", *updated.ContactEmail)
}

func TestUpdateBookNotFound(t *testing.T) {
	svc, _, _ := newBookService()

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), entity.UpdateBookInput{
		Title: "X", Author: "Y", Condition: entity.ConditionGood,
	})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBookRemovesPhotos(t *testing.T) {
	svc, books, photos := newBookService()
	owner := uuid.New()
	book := books.add(entity.Book{
		ID: uuid.New(), OwnerID: owner, Title: "T", Author: "A",
		Condition: entity.ConditionGood, PhotoURLs: []string{"/uploads/books/a.jpg", "/uploads/books/b.jpg"},
	})

	require.NoError(t, svc.Delete(context.Background(), owner, book.ID))
	assert.Len(t, photos.removed, 2)
	assert.Nil(t, books.books[book.ID])
}

func TestDeleteBookToleratesStorageFailure(t *testing.T) {
	svc, books, photos := newBookService()
	owner := uuid.New()
	photos.err = assert.AnError
	book := books.add(entity.Book{
		ID: uuid.New(), OwnerID: owner, Title: "T", Author: "A",
		Condition: entity.ConditionGood, PhotoURLs: []string{"/uploads/books/a.jpg"},
	})

	require.NoError(t, svc.Delete(context.Background(), owner, book.ID), "photo cleanup failure must not block deletion")
	assert.Nil(t, books.books[book.ID])
}

func TestSetListing(t *testing.T) {
	svc, books, _ := newBookService()
	owner := uuid.New()
	book := books.add(entity.Book{ID: uuid.New(), OwnerID: owner, Title: "T", Author: "A", Condition: entity.ConditionGood})

	_, err := svc.SetListing(context.Background(), uuid.New(), book.ID, true)
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.SetListing(context.Background(), owner, book.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsListed)
	assert.True(t, books.books[book.ID].IsListed)
}

func TestBrowseStripsContact(t *testing.T) {
	svc, books, _ := newBookService()
	viewer := uuid.New()
	books.add(entity.Book{
		ID: uuid.New(), OwnerID: uuid.New(), Title: "Listed", Author: "A",
		Condition: entity.ConditionGood, IsListed: true, ContactEmail: strptr("secret@example.com"),
	})

	rows, err := svc.Browse(context.Background(), viewer, entity.BrowseFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ContactEmail)
}

func TestBrowseExcludesViewerBooks(t *testing.T) {
	svc, books, _ := newBookService()
	viewer := uuid.New()
	books.add(entity.Book{ID: uuid.New(), OwnerID: viewer, Title: "Mine", Author: "A", Condition: entity.ConditionGood, IsListed: true})
	books.add(entity.Book{ID: uuid.New(), OwnerID: uuid.New(), Title: "Theirs", Author: "B", Condition: entity.ConditionGood, IsListed: true})

	rows, err := svc.Browse(context.Background(), viewer, entity.BrowseFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Theirs", rows[0].Title)
}

func TestMarketBook(t *testing.T) {
	svc, books, _ := newBookService()
	owner := uuid.New()
	listed := books.add(entity.Book{
		ID: uuid.New(), OwnerID: owner, Title: "Main", Author: "A",
		Condition: entity.ConditionGood, IsListed: true, ContactPhone: strptr("555"),
	})
	books.add(entity.Book{ID: uuid.New(), OwnerID: owner, Title: "Other", Author: "A", Condition: entity.ConditionFair, IsListed: true})
	books.add(entity.Book{ID: uuid.New(), OwnerID: owner, Title: "Hidden", Author: "A", Condition: entity.ConditionPoor, IsListed: false})

	book, others, err := svc.MarketBook(context.Background(), listed.ID)
	require.NoError(t, err)
	assert.Nil(t, book.ContactPhone)
	require.Len(t, others, 1)
	assert.Equal(t, "Other", others[0].Title)
}

func TestMarketBookUnlistedNotFound(t *testing.T) {
	svc, books, _ := newBookService()
	hidden := books.add(entity.Book{ID: uuid.New(), OwnerID: uuid.New(), Title: "Hidden", Author: "A", Condition: entity.ConditionGood})

	_, _, err := svc.MarketBook(context.Background(), hidden.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

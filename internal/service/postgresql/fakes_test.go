package service

import (
	"context"
	"strings"

	entity "leafloop/internal/domain"
	repo "leafloop/internal/repository/postgresql"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the guarded writes of the real
// implementations, including the compare-and-set status update, so the
// services exercise the same failure paths as against Postgres.

type fakeOfferRepo struct {
	offers    map[uuid.UUID]*entity.Offer
	exchanges map[uuid.UUID]*entity.Exchange
	books     *fakeBookRepo
	err       error
}

func newFakeOfferRepo(books *fakeBookRepo) *fakeOfferRepo {
	return &fakeOfferRepo{
		offers:    map[uuid.UUID]*entity.Offer{},
		exchanges: map[uuid.UUID]*entity.Exchange{},
		books:     books,
	}
}

func (f *fakeOfferRepo) Create(ctx context.Context, offer *entity.Offer) error {
	if f.err != nil {
		return f.err
	}
	cp := *offer
	f.offers[offer.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.offers[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfferRepo) ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]entity.OfferSummary, error) {
	var out []entity.OfferSummary
	for _, o := range f.offers {
		if b, ok := f.books.books[o.BookID]; ok && b.OwnerID == ownerID {
			out = append(out, entity.OfferSummary{Offer: *o, Book: b.Summary()})
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]entity.OfferSummary, error) {
	var out []entity.OfferSummary
	for _, o := range f.offers {
		if o.RequesterID == requesterID {
			s := entity.OfferSummary{Offer: *o}
			if b, ok := f.books.books[o.BookID]; ok {
				s.Book = b.Summary()
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OfferStatus) error {
	if f.err != nil {
		return f.err
	}
	o, ok := f.offers[id]
	if !ok || o.Status != from {
		return repo.ErrStaleState
	}
	o.Status = to
	return nil
}

func (f *fakeOfferRepo) SelectCandidate(ctx context.Context, id uuid.UUID, candidate uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	o, ok := f.offers[id]
	if !ok || o.Status != entity.OfferPending {
		return repo.ErrStaleState
	}
	o.Status = entity.OfferCandidatesSelected
	o.SelectedCandidates = []uuid.UUID{candidate}
	return nil
}

func (f *fakeOfferRepo) Complete(ctx context.Context, offer *entity.Offer, exchange *entity.Exchange) error {
	if f.err != nil {
		return f.err
	}
	o, ok := f.offers[offer.ID]
	if !ok || o.Status != entity.OfferContactRevealed {
		return repo.ErrStaleState
	}
	o.Status = entity.OfferCompleted
	cp := *exchange
	f.exchanges[offer.ID] = &cp
	for _, id := range []uuid.UUID{exchange.RequestedBookID, exchange.OfferedBookID} {
		if b, ok := f.books.books[id]; ok {
			b.IsListed = false
		}
	}
	return nil
}

type fakeBookRepo struct {
	books map[uuid.UUID]*entity.Book
	err   error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uuid.UUID]*entity.Book{}}
}

func (f *fakeBookRepo) add(b entity.Book) *entity.Book {
	cp := b
	f.books[b.ID] = &cp
	return &cp
}

func (f *fakeBookRepo) Create(ctx context.Context, book *entity.Book) error {
	if f.err != nil {
		return f.err
	}
	f.add(*book)
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Book, error) {
	var out []entity.Book
	for _, b := range f.books {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) ListListedByOwner(ctx context.Context, ownerID uuid.UUID, exclude uuid.UUID) ([]entity.Book, error) {
	var out []entity.Book
	for _, b := range f.books {
		if b.OwnerID == ownerID && b.IsListed && b.ID != exclude {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Book, error) {
	var out []entity.Book
	for _, id := range ids {
		if b, ok := f.books[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *entity.Book) error {
	if f.err != nil {
		return f.err
	}
	f.add(*book)
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) SetListed(ctx context.Context, id uuid.UUID, listed bool) error {
	if b, ok := f.books[id]; ok {
		b.IsListed = listed
	}
	return nil
}

func (f *fakeBookRepo) Browse(ctx context.Context, viewerID uuid.UUID, filter entity.BrowseFilter) ([]entity.BookWithOwner, error) {
	var out []entity.BookWithOwner
	for _, b := range f.books {
		if !b.IsListed || b.OwnerID == viewerID {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, entity.BookWithOwner{Book: *b})
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*entity.Profile{}}
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *entity.Profile) error {
	cp := *profile
	f.profiles[profile.ID] = &cp
	return nil
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeMessageRepo struct {
	messages []entity.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *entity.Message) error {
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]entity.MessageView, error) {
	var out []entity.MessageView
	for _, m := range f.messages {
		if m.OfferID == offerID {
			out = append(out, entity.MessageView{Message: m})
		}
	}
	return out, nil
}

type fakeLogRepo struct {
	history       []entity.StatusHistory
	notifications []entity.Notification
	err           error
}

func (f *fakeLogRepo) SaveHistoryStatus(doc *entity.StatusHistory) error {
	if f.err != nil {
		return f.err
	}
	f.history = append(f.history, *doc)
	return nil
}

func (f *fakeLogRepo) SaveNotification(doc *entity.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, *doc)
	return nil
}

func (f *fakeLogRepo) ListNotifications(userID string, limit int64) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakePhotoStore struct {
	removed []string
	err     error
}

func (f *fakePhotoStore) Remove(urls []string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, urls...)
	return nil
}

func strptr(s string) *string { return &s }

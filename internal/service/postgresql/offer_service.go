package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	entity "leafloop/internal/domain"
	mongorepo "leafloop/internal/repository/mongodb"
	repo "leafloop/internal/repository/postgresql"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrNotOfferParty       = errors.New("access denied: you are not a party to this offer")
	ErrNotBookOwner        = errors.New("access denied: only the book owner may perform this action")
	ErrNotRequester        = errors.New("access denied: only the requester may cancel an offer")
	ErrOfferState          = errors.New("offer is not in a state that allows this action")
	ErrNoCandidates        = errors.New("Please select at least one book to offer in exchange")
	ErrNoCandidateChosen   = errors.New("Please select a book to proceed")
	ErrCandidateNotOffered = errors.New("selected book is not among the offered candidates")
	ErrCandidateNotOwned   = errors.New("candidate books must be your own listed books")
	ErrBookNotTradable     = errors.New("book is not available for trade")
	ErrOwnBook             = errors.New("cannot make an offer on your own book")
)

// OfferService governs the trade workflow. Every transition is authorized
// here against the actor's role, not in the rendering layer, and each one
// returns the refreshed aggregate so clients never reload blindly.
type OfferService struct {
	offerRepo   repo.OfferRepository
	bookRepo    repo.BookRepository
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
	messageRepo repo.MessageRepository
	logRepo     mongorepo.LogRepository
}

func NewOfferService(
	offerRepo repo.OfferRepository,
	bookRepo repo.BookRepository,
	profileRepo repo.ProfileRepository,
	userRepo repo.UserRepository,
	messageRepo repo.MessageRepository,
	logRepo mongorepo.LogRepository,
) *OfferService {
	return &OfferService{
		offerRepo:   offerRepo,
		bookRepo:    bookRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		logRepo:     logRepo,
	}
}

// Create opens a trade: the requester targets someone else's listed book
// and stakes at least one of their own listed books as candidates.
func (s *OfferService) Create(ctx context.Context, requesterID uuid.UUID, input entity.CreateOfferInput) (*entity.Offer, error) {
	if len(input.CandidateIDs) == 0 {
		return nil, ErrNoCandidates
	}

	target, err := s.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.IsListed {
		return nil, ErrBookNotTradable
	}
	if target.OwnerID == requesterID {
		return nil, ErrOwnBook
	}

	candidates, err := s.bookRepo.ListByIDs(ctx, input.CandidateIDs)
	if err != nil {
		return nil, err
	}
	if len(candidates) != len(input.CandidateIDs) {
		return nil, ErrCandidateNotOwned
	}
	for _, c := range candidates {
		if c.OwnerID != requesterID || !c.IsListed {
			return nil, ErrCandidateNotOwned
		}
	}

	offer := &entity.Offer{
		ID:                 uuid.New(),
		RequesterID:        requesterID,
		BookID:             target.ID,
		Message:            input.Message,
		SelectedCandidates: input.CandidateIDs,
		Status:             entity.OfferPending,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.notify(target.OwnerID, "offer_created", "New Trade Offer",
		fmt.Sprintf("You received a trade offer for %q.", target.Title), offer.ID)

	return offer, nil
}

func (s *OfferService) Incoming(ctx context.Context, ownerID uuid.UUID) ([]entity.OfferSummary, error) {
	return s.offerRepo.ListIncoming(ctx, ownerID)
}

func (s *OfferService) Outgoing(ctx context.Context, requesterID uuid.UUID) ([]entity.OfferSummary, error) {
	return s.offerRepo.ListOutgoing(ctx, requesterID)
}

// Get returns the full aggregate for one offer. Non-parties get
// ErrOfferNotFound rather than a forbidden hint that the offer exists.
func (s *OfferService) Get(ctx context.Context, viewerID, offerID uuid.UUID) (*entity.OfferView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	role, err := s.roleOf(viewerID, offer, target)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, offer, target, role)
}

// SelectCandidate narrows the offered books to the one the owner wants:
// pending -> candidates_selected.
func (s *OfferService) SelectCandidate(ctx context.Context, actorID, offerID, candidateID uuid.UUID) (*entity.OfferView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID != actorID {
		return nil, ErrNotBookOwner
	}
	if offer.Status != entity.OfferPending {
		return nil, ErrOfferState
	}
	if candidateID == uuid.Nil {
		return nil, ErrNoCandidateChosen
	}
	offered := false
	for _, id := range offer.SelectedCandidates {
		if id == candidateID {
			offered = true
			break
		}
	}
	if !offered {
		return nil, ErrCandidateNotOffered
	}

	if err := s.offerRepo.SelectCandidate(ctx, offer.ID, candidateID); err != nil {
		return nil, err
	}

	s.audit(actorID, offer, entity.OfferCandidatesSelected)
	s.notify(offer.RequesterID, "offer_status", "Book Selected",
		fmt.Sprintf("The owner selected one of your books for the trade on %q.", target.Title), offer.ID)

	return s.refresh(ctx, offer.ID, target, s.mustRole(actorID, offer, target))
}

// Reveal exposes contact information to both parties:
// candidates_selected -> contact_revealed.
func (s *OfferService) Reveal(ctx context.Context, actorID, offerID uuid.UUID) (*entity.OfferView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID != actorID {
		return nil, ErrNotBookOwner
	}
	if offer.Status != entity.OfferCandidatesSelected {
		return nil, ErrOfferState
	}

	if err := s.offerRepo.UpdateStatus(ctx, offer.ID, offer.Status, entity.OfferContactRevealed); err != nil {
		return nil, err
	}

	s.audit(actorID, offer, entity.OfferContactRevealed)
	s.notify(offer.RequesterID, "offer_status", "Contact Revealed",
		fmt.Sprintf("Contact information is now available for the trade on %q.", target.Title), offer.ID)

	return s.refresh(ctx, offer.ID, target, s.mustRole(actorID, offer, target))
}

// Reject ends the trade from the owner's side. Allowed while the offer is
// still in a pre-reveal state.
func (s *OfferService) Reject(ctx context.Context, actorID, offerID uuid.UUID) (*entity.OfferView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID != actorID {
		return nil, ErrNotBookOwner
	}
	if !offer.Status.CanTransitionTo(entity.OfferRejected) {
		return nil, ErrOfferState
	}

	if err := s.offerRepo.UpdateStatus(ctx, offer.ID, offer.Status, entity.OfferRejected); err != nil {
		return nil, err
	}

	s.audit(actorID, offer, entity.OfferRejected)
	s.notify(offer.RequesterID, "offer_status", "Trade Rejected",
		fmt.Sprintf("Your trade offer for %q was rejected.", target.Title), offer.ID)

	return s.refresh(ctx, offer.ID, target, s.mustRole(actorID, offer, target))
}

// Cancel ends the trade from the requester's side, mirroring Reject.
func (s *OfferService) Cancel(ctx context.Context, actorID, offerID uuid.UUID) (*entity.OfferView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.RequesterID != actorID {
		return nil, ErrNotRequester
	}
	if !offer.Status.CanTransitionTo(entity.OfferCancelled) {
		return nil, ErrOfferState
	}

	if err := s.offerRepo.UpdateStatus(ctx, offer.ID, offer.Status, entity.OfferCancelled); err != nil {
		return nil, err
	}

	s.audit(actorID, offer, entity.OfferCancelled)
	s.notify(target.OwnerID, "offer_status", "Trade Cancelled",
		fmt.Sprintf("The trade offer for %q was cancelled by the requester.", target.Title), offer.ID)

	return s.refresh(ctx, offer.ID, target, s.mustRole(actorID, offer, target))
}

// Complete finalizes the trade once contact has been revealed. Either
// party may trigger it. The status change, the exchange ledger row, and
// the delisting of both books commit in one transaction.
func (s *OfferService) Complete(ctx context.Context, actorID, offerID uuid.UUID) (*entity.OfferView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	role, err := s.roleOf(actorID, offer, target)
	if err != nil {
		return nil, err
	}
	if offer.Status != entity.OfferContactRevealed {
		return nil, ErrOfferState
	}
	chosen, ok := offer.SelectedBookID()
	if !ok {
		return nil, ErrOfferState
	}

	exchange := &entity.Exchange{
		ID:                 ulid.Make().String(),
		OfferID:            offer.ID,
		RequesterID:        offer.RequesterID,
		OwnerID:            target.OwnerID,
		RequestedBookID:    target.ID,
		OfferedBookID:      chosen,
		RequesterConfirmed: true,
		OwnerConfirmed:     true,
		CompletedAt:        time.Now(),
	}
	if err := s.offerRepo.Complete(ctx, offer, exchange); err != nil {
		return nil, err
	}

	s.audit(actorID, offer, entity.OfferCompleted)
	other := offer.RequesterID
	if role == entity.RoleRequester {
		other = target.OwnerID
	}
	s.notify(other, "offer_status", "Exchange Completed",
		fmt.Sprintf("The trade for %q has been marked complete.", target.Title), offer.ID)

	return s.refresh(ctx, offer.ID, target, role)
}

// Messages returns the conversation attached to an offer, parties only.
func (s *OfferService) Messages(ctx context.Context, viewerID, offerID uuid.UUID) ([]entity.MessageView, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.roleOf(viewerID, offer, target); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByOffer(ctx, offerID)
}

// PostMessage appends a note to the offer conversation, parties only.
func (s *OfferService) PostMessage(ctx context.Context, senderID, offerID uuid.UUID, input entity.PostMessageInput) (*entity.Message, error) {
	offer, target, err := s.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	role, err := s.roleOf(senderID, offer, target)
	if err != nil {
		return nil, err
	}

	msg := &entity.Message{
		ID:        uuid.New(),
		OfferID:   offer.ID,
		SenderID:  senderID,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	other := offer.RequesterID
	if role == entity.RoleRequester {
		other = target.OwnerID
	}
	s.notify(other, "message", "New Message",
		fmt.Sprintf("You have a new message on the trade for %q.", target.Title), offer.ID)

	return msg, nil
}

// --- helpers ---

func (s *OfferService) load(ctx context.Context, offerID uuid.UUID) (*entity.Offer, *entity.Book, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, nil, err
	}
	if offer == nil {
		return nil, nil, ErrOfferNotFound
	}
	target, err := s.bookRepo.GetByID(ctx, offer.BookID)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, ErrOfferNotFound
	}
	return offer, target, nil
}

func (s *OfferService) roleOf(userID uuid.UUID, offer *entity.Offer, target *entity.Book) (entity.OfferRole, error) {
	switch userID {
	case target.OwnerID:
		return entity.RoleOwner, nil
	case offer.RequesterID:
		return entity.RoleRequester, nil
	}
	return "", ErrOfferNotFound
}

// mustRole is roleOf for callers that already passed an authorization
// check on the same offer.
func (s *OfferService) mustRole(userID uuid.UUID, offer *entity.Offer, target *entity.Book) entity.OfferRole {
	role, _ := s.roleOf(userID, offer, target)
	return role
}

func (s *OfferService) refresh(ctx context.Context, offerID uuid.UUID, target *entity.Book, role entity.OfferRole) (*entity.OfferView, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return s.buildView(ctx, offer, target, role)
}

// buildView assembles the aggregate and applies the visibility rule:
// book-level contact fields are stripped everywhere, and the counterparty
// contact card is attached only once the status allows it.
func (s *OfferService) buildView(ctx context.Context, offer *entity.Offer, target *entity.Book, role entity.OfferRole) (*entity.OfferView, error) {
	ownerProfile, err := s.publicProfile(ctx, target.OwnerID)
	if err != nil {
		return nil, err
	}
	requesterProfile, err := s.publicProfile(ctx, offer.RequesterID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.bookRepo.ListByIDs(ctx, offer.SelectedCandidates)
	if err != nil {
		return nil, err
	}

	var selected *entity.Book
	if id, ok := offer.SelectedBookID(); ok {
		for i := range candidates {
			if candidates[i].ID == id {
				selected = &candidates[i]
				break
			}
		}
	}

	var contact *entity.ContactCard
	if offer.Status.ContactVisible() {
		switch role {
		case entity.RoleRequester:
			contact = &entity.ContactCard{Person: *ownerProfile, Contact: target.Contact()}
		case entity.RoleOwner:
			card := entity.ContactCard{Person: *requesterProfile}
			if selected != nil {
				card.Contact = selected.Contact()
			}
			if card.Contact.Email == nil && card.Contact.Phone == nil && card.Contact.Social == nil {
				if p, err := s.profileRepo.GetByID(ctx, offer.RequesterID); err == nil && p != nil {
					card.Contact = p.Contact()
				}
			}
			contact = &card
		}
	}

	view := &entity.OfferView{
		Offer:     *offer,
		Role:      role,
		Book:      sanitizeBook(*target),
		Owner:     *ownerProfile,
		Requester: *requesterProfile,
	}
	for _, c := range candidates {
		view.CandidateBooks = append(view.CandidateBooks, sanitizeBook(c))
	}
	if selected != nil {
		clean := sanitizeBook(*selected)
		view.SelectedBook = &clean
	}
	view.Contact = contact
	return view, nil
}

// sanitizeBook drops per-book contact fields before a book crosses to the
// other party; contact data only travels through the ContactCard.
func sanitizeBook(b entity.Book) entity.Book {
	b.ContactEmail = nil
	b.ContactPhone = nil
	b.ContactSocial = nil
	return b
}

// publicProfile falls back to the auth record's username when the user
// has never saved a profile.
func (s *OfferService) publicProfile(ctx context.Context, userID uuid.UUID) (*entity.PublicProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		p := profile.Public()
		return &p, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrOfferNotFound
	}
	return &entity.PublicProfile{ID: user.ID, Username: user.Username}, nil
}

// audit and notify are best-effort; a Mongo outage must not fail the
// transition that already committed.
func (s *OfferService) audit(actorID uuid.UUID, offer *entity.Offer, newStatus entity.OfferStatus) {
	doc := &entity.StatusHistory{
		OfferID:   offer.ID.String(),
		OldStatus: string(offer.Status),
		NewStatus: string(newStatus),
		ChangedBy: actorID.String(),
		Timestamp: time.Now(),
	}
	if err := s.logRepo.SaveHistoryStatus(doc); err != nil {
		log.Printf("Warning: failed to save status history for offer %s: %v", offer.ID, err)
	}
}

func (s *OfferService) notify(userID uuid.UUID, notiType, title, message string, relatedID uuid.UUID) {
	noti := &entity.Notification{
		UserID:    userID.String(),
		Type:      notiType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID.String(),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := s.logRepo.SaveNotification(noti); err != nil {
		log.Printf("Warning: failed to save notification for user %s: %v", userID, err)
	}
}

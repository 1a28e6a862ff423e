package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
)

// OfferLink is the recipient-addressed invitation produced by Offer. Token is
// the signed credential; Link is the same token wrapped into a shareable URL.
type OfferLink struct {
	ItemID int64
	Token  string
	Link   string
}

// TransferService mediates the two-step ownership handoff: Offer produces a
// single-use link bound to one item and one recipient, Complete consumes it
// and reassigns the item. The previous owner loses access the moment the
// reassignment commits; no history is kept.
type TransferService interface {
	Offer(ctx context.Context, senderID, itemID int64, recipientUsername string) (*OfferLink, error)
	Complete(ctx context.Context, recipientID, itemID int64, link string) error
}

type transferService struct {
	items     repository.ItemRepository
	users     repository.UserRepository
	transfers repository.TransferRepository
	secret    []byte
	linkBase  string
}

func NewTransferService(
	items repository.ItemRepository,
	users repository.UserRepository,
	transfers repository.TransferRepository,
	secret string,
	linkBase string,
) TransferService {
	return &transferService{
		items:     items,
		users:     users,
		transfers: transfers,
		secret:    []byte(secret),
		linkBase:  strings.TrimRight(linkBase, "/"),
	}
}

// offerClaims binds an offer link to the transfer row, the item and the
// intended recipient. RegisteredClaims.ID carries the transfer id.
type offerClaims struct {
	ItemID      int64 `json:"item_id"`
	RecipientID int64 `json:"recipient_id"`
	jwt.RegisteredClaims
}

func (s *transferService) Offer(ctx context.Context, senderID, itemID int64, recipientUsername string) (*OfferLink, error) {
	recipientUsername = strings.TrimSpace(recipientUsername)
	if recipientUsername == "" || itemID <= 0 {
		return nil, fmt.Errorf("receiver and item id are required: %w", domain.ErrInvalidInput)
	}

	// Only the current owner may offer the item; a foreign item reads as
	// missing, the same predicate item reads use.
	if _, err := s.items.GetOwned(ctx, senderID, itemID); err != nil {
		return nil, err
	}

	recipient, err := s.users.GetByUsername(ctx, recipientUsername)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, fmt.Errorf("cannot transfer an item to its owner: %w", domain.ErrInvalidInput)
	}

	transfer := &domain.Transfer{
		TransferID:  uuid.NewString(),
		ItemID:      itemID,
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Status:      domain.TransferStatusOffered,
	}
	if _, err := s.transfers.Create(ctx, transfer); err != nil {
		return nil, err
	}

	claims := offerClaims{
		ItemID:      itemID,
		RecipientID: recipient.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       transfer.TransferID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign offer link: %w", err)
	}

	return &OfferLink{
		ItemID: itemID,
		Token:  token,
		Link:   s.linkBase + "/" + token,
	}, nil
}

func (s *transferService) Complete(ctx context.Context, recipientID, itemID int64, link string) error {
	token := linkToken(link)
	if token == "" || itemID <= 0 {
		return fmt.Errorf("item id and link are required: %w", domain.ErrInvalidInput)
	}

	claims, err := s.parseOffer(token)
	if err != nil {
		// A link that does not verify reads the same as a transfer that
		// never existed.
		return fmt.Errorf("offer link: %w", domain.ErrNotFound)
	}

	transfer, err := s.transfers.GetByTransferID(ctx, claims.ID)
	if err != nil {
		return err
	}

	if transfer.ItemID != itemID || claims.ItemID != itemID {
		return fmt.Errorf("transfer does not match item %d: %w", itemID, domain.ErrNotFound)
	}
	if transfer.RecipientID != recipientID || claims.RecipientID != recipientID {
		return fmt.Errorf("transfer is addressed to another user: %w", domain.ErrNotFound)
	}

	// Single use: the consume fails once the row has left the offered state.
	if err := s.transfers.Consume(ctx, transfer.TransferID, time.Now()); err != nil {
		return err
	}

	// One atomic update, last writer wins.
	return s.items.ReassignOwner(ctx, itemID, recipientID)
}

func (s *transferService) parseOffer(token string) (*offerClaims, error) {
	var claims offerClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("offer link has no transfer id")
	}
	return &claims, nil
}

// linkToken accepts either the bare offer token or the full shareable link
// and returns the token part.
func linkToken(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.LastIndex(link, "/"); i >= 0 {
		link = link[i+1:]
	}
	return link
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/vibast-solutions/ms-go-reader/app/entity"
	"github.com/vibast-solutions/ms-go-reader/app/repository"
)

const coverObjectKey = "cover.png"

type sessionReader interface {
	Exists(ctx context.Context, token string) (bool, error)
}

type objectGetter interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// AccessService is the gate in front of every protected read. A token's
// presence in the session store is the sole proof of entitlement.
type AccessService struct {
	sessions sessionReader
	objects  objectGetter
	book     entity.Book
}

func NewAccessService(sessions sessionReader, objects objectGetter, book entity.Book) *AccessService {
	return &AccessService{
		sessions: sessions,
		objects:  objects,
		book:     book,
	}
}

func (s *AccessService) Book() entity.Book {
	return s.book
}

// Authorize reports whether the token grants access. An empty token
// denies without a store round-trip.
func (s *AccessService) Authorize(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.sessions.Exists(ctx, token)
}

// FetchPage authorizes the token and streams the numbered page image.
// Authorization runs strictly before page-number validation, so an
// unauthenticated caller cannot probe the valid page range.
func (s *AccessService) FetchPage(ctx context.Context, token, rawNumber string) (io.ReadCloser, error) {
	ok, err := s.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	number, err := strconv.Atoi(rawNumber)
	if err != nil || number < 1 || number > s.book.PageCount {
		return nil, ErrNoSuchPage
	}

	obj, err := s.objects.Get(ctx, PageObjectKey(number))
	if errors.Is(err, repository.ErrObjectNotFound) {
		return nil, ErrContentMissing
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// FetchCover streams the cover image. The cover is public and gated by
// nothing.
func (s *AccessService) FetchCover(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.objects.Get(ctx, coverObjectKey)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return nil, ErrContentMissing
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// PageObjectKey maps a validated page number to its bucket key,
// zero-padded to four digits: page 7 -> pages/0007.png.
func PageObjectKey(number int) string {
	return fmt.Sprintf("pages/%04d.png", number)
}

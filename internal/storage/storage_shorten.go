package storage

import (
	"errors"
	"fmt"
	"time"
)

const shortlinksKey = "shortlinks"

// ErrCodeTaken reports an insert against an already used short code.
var ErrCodeTaken = errors.New("short code already taken")

// ShortLink is a stored redirect from a short code to the original URL.
type ShortLink struct {
	Code      string `json:"code"`
	Original  string `json:"original"`
	UserID    string `json:"user_id"`
	Clicks    int64  `json:"clicks"`
	CreatedMs int64  `json:"created_ms"`
}

// CreatedAt returns the time the link was created.
func (l ShortLink) CreatedAt() time.Time {
	return time.UnixMilli(l.CreatedMs)
}

func (s *Storage) shortLinks() (map[string]ShortLink, error) {
	data, exists := s.ds.Get(shortlinksKey)
	if !exists {
		return map[string]ShortLink{}, nil
	}

	links := map[string]ShortLink{}
	if err := decode(data, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// AddShortLink stores a new short link. Returns ErrCodeTaken if the code is
// already in use.
func (s *Storage) AddShortLink(link ShortLink) error {
	links, err := s.shortLinks()
	if err != nil {
		return err
	}

	if _, taken := links[link.Code]; taken {
		return fmt.Errorf("%w: '%s'", ErrCodeTaken, link.Code)
	}

	links[link.Code] = link
	s.ds.Add(shortlinksKey, links)
	return nil
}

// ShortLink returns the link for a code, or ErrNotFound.
func (s *Storage) ShortLink(code string) (*ShortLink, error) {
	links, err := s.shortLinks()
	if err != nil {
		return nil, err
	}

	link, ok := links[code]
	if !ok {
		return nil, fmt.Errorf("%w: short code '%s'", ErrNotFound, code)
	}
	return &link, nil
}

// FindByOriginal returns an existing link for the original URL, if one exists.
func (s *Storage) FindByOriginal(original string) (*ShortLink, bool, error) {
	links, err := s.shortLinks()
	if err != nil {
		return nil, false, err
	}

	for _, link := range links {
		if link.Original == original {
			return &link, true, nil
		}
	}
	return nil, false, nil
}

// IncrementClicks bumps the click counter for a code.
func (s *Storage) IncrementClicks(code string) error {
	links, err := s.shortLinks()
	if err != nil {
		return err
	}

	link, ok := links[code]
	if !ok {
		return fmt.Errorf("%w: short code '%s'", ErrNotFound, code)
	}

	link.Clicks++
	links[code] = link
	s.ds.Add(shortlinksKey, links)
	return nil
}

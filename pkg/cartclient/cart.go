package cartclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/daspi/bookshop/pkg/booksclient"
)

type serverLine struct {
	BookID   string  `json:"bookId"`
	BookName string  `json:"bookName"`
	Quantity uint    `json:"quantity"`
	Price    float64 `json:"price"`
}

type serverCart struct {
	UserID string       `json:"userId"`
	Items  []serverLine `json:"items"`
}

// Items returns a copy of the local cart mirror.
func (s *Session) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.items))
	copy(out, s.items)
	return out
}

// AddItem applies the mutation to the local mirror immediately, then
// syncs the server when logged in. Server failures are logged and
// swallowed; the optimistic update stands.
func (s *Session) AddItem(ctx context.Context, book booksclient.Volume, quantity uint) {
	if quantity == 0 {
		quantity = 1
	}
	price := book.UnitPrice()

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Book.ID == book.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, Line{Book: book, Quantity: quantity, Price: price})
	}
	authed := s.token != ""
	s.mu.Unlock()

	if !authed {
		return
	}

	body := map[string]interface{}{
		"bookId":   book.ID,
		"bookName": book.VolumeInfo.Title,
		"quantity": quantity,
		"price":    price,
	}
	var cart serverCart
	if err := s.do(ctx, http.MethodPost, "/api/cart", body, &cart); err != nil {
		s.log.Error("cart sync failed", "op", "add", "error", err)
		return
	}
	s.reconcile(ctx, cart.Items)
}

// UpdateQuantity overwrites a line's quantity; zero removes the line.
func (s *Session) UpdateQuantity(ctx context.Context, bookID string, quantity uint) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Book.ID == bookID {
			if quantity == 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			} else {
				s.items[i].Quantity = quantity
			}
			break
		}
	}
	authed := s.token != ""
	s.mu.Unlock()

	if !authed {
		return
	}

	body := map[string]interface{}{"quantity": quantity}
	var cart serverCart
	if err := s.do(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(bookID), body, &cart); err != nil {
		s.log.Error("cart sync failed", "op", "update", "error", err)
		return
	}
	s.reconcile(ctx, cart.Items)
}

func (s *Session) RemoveItem(ctx context.Context, bookID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Book.ID == bookID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	authed := s.token != ""
	s.mu.Unlock()

	if !authed {
		return
	}

	var cart serverCart
	if err := s.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(bookID), nil, &cart); err != nil {
		s.log.Error("cart sync failed", "op", "remove", "error", err)
		return
	}
	s.reconcile(ctx, cart.Items)
}

func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	authed := s.token != ""
	s.mu.Unlock()

	if !authed {
		return
	}

	if err := s.do(ctx, http.MethodDelete, "/api/cart", nil, nil); err != nil {
		s.log.Error("cart sync failed", "op", "clear", "error", err)
	}
}

// Refresh replaces the local mirror with the server's cart.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}

	var cart serverCart
	if err := s.do(ctx, http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return err
	}
	s.reconcile(ctx, cart.Items)
	return nil
}

// reconcile rebuilds the mirror from the server's lines, resolving
// each bare book id back into a full catalog record. A failed lookup
// degrades to a minimal stub so the line is never dropped.
func (s *Session) reconcile(ctx context.Context, lines []serverLine) {
	items := make([]Line, 0, len(lines))
	for _, ln := range lines {
		var book booksclient.Volume
		if s.books != nil {
			if vol, err := s.books.Volume(ctx, ln.BookID); err == nil {
				book = *vol
			} else {
				s.log.Warn("volume lookup failed, using stub", "book_id", ln.BookID, "error", err)
				book = stubVolume(ln)
			}
		} else {
			book = stubVolume(ln)
		}
		items = append(items, Line{Book: book, Quantity: ln.Quantity, Price: ln.Price})
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func stubVolume(ln serverLine) booksclient.Volume {
	return booksclient.Volume{
		ID:         ln.BookID,
		VolumeInfo: booksclient.VolumeInfo{Title: ln.BookName},
	}
}

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/daspi/bookshop/internal/logging"
	"github.com/daspi/bookshop/internal/search"
	"github.com/daspi/bookshop/internal/util"
	"github.com/daspi/bookshop/pkg/booksclient"
)

// BooksHTTP proxies the vendor catalog. ES is optional: when present
// it acts as a read-through cache in front of the vendor API.
type BooksHTTP struct {
	Books *booksclient.Client
	ES    *elasticsearch.Client
	Index string
}

func (h *BooksHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.search")

	q := c.QueryParam("q")
	if q == "" {
		return respondError(c, http.StatusBadRequest, "query parameter q is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	if h.ES != nil {
		total, cached, err := search.Query(ctx, h.ES, h.Index, q, from, size)
		if err != nil {
			l.Warn("index query failed, falling through to vendor", "error", err)
		} else if total > 0 {
			return respondData(c, http.StatusOK, echo.Map{"total": total, "items": cached})
		}
	}

	result, err := h.Books.Search(ctx, q, from, size)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	books := make([]booksclient.Summary, len(result.Items))
	for i := range result.Items {
		books[i] = result.Items[i].Summary()
	}

	h.index(c, books)

	return respondData(c, http.StatusOK, echo.Map{"total": result.TotalItems, "items": books})
}

func (h *BooksHTTP) Volume(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.volume")

	vol, err := h.Books.Volume(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, booksclient.ErrVolumeNotFound) {
			return respondError(c, http.StatusNotFound, "book not found")
		}
		return respondServiceError(c, l, err)
	}

	book := vol.Summary()
	h.index(c, []booksclient.Summary{book})

	return respondData(c, http.StatusOK, book)
}

// index caches vendor records best-effort; failures only get logged.
func (h *BooksHTTP) index(c echo.Context, books []booksclient.Summary) {
	if h.ES == nil || len(books) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.Index(ctx, h.ES, h.Index, books); err != nil {
		logging.FromContext(c.Request().Context()).Error("index error", "error", err)
	}
}

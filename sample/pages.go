package sample

import (
	"golang.org/x/xerrors"

	"github.com/tmr232/resumable/step"
)

// Page is one response of a paginated listing. Next is nil on the last page.
type Page struct {
	Next  *int
	Items []string
}

// PagedClient serves a fixed listing one page at a time.
type PagedClient struct {
	pages   []Page
	failAt  int
	Fetches int
}

// NewPagedClient splits items into pages of size perPage. Fetching page
// failAt fails; pass -1 to never fail.
func NewPagedClient(items []string, perPage, failAt int) *PagedClient {
	c := &PagedClient{failAt: failAt}
	perPage = max(perPage, 1)
	for start := 0; start < len(items) || start == 0; start += perPage {
		end := min(start+perPage, len(items))
		page := Page{Items: items[start:end]}
		if end < len(items) {
			next := len(c.pages) + 1
			page.Next = &next
		}
		c.pages = append(c.pages, page)
	}
	return c
}

// Get fetches the page at cursor. A nil cursor is the first page.
func (c *PagedClient) Get(cursor *int) (Page, error) {
	index := 0
	if cursor != nil {
		index = *cursor
	}
	c.Fetches++
	if index == c.failAt {
		return Page{}, xerrors.Errorf("page %d: %w", index, ErrFetch)
	}
	if index < 0 || index >= len(c.pages) {
		return Page{}, xerrors.Errorf("page %d out of range", index)
	}
	return c.pages[index], nil
}

// PageIterator walks every item of a listing, fetching pages as it goes.
type PageIterator struct {
	client *PagedClient
	page   *Page
	index  int
	value  string
	err    error
}

func NewPageIterator(client *PagedClient) *PageIterator {
	return &PageIterator{client: client}
}

func (it *PageIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.page == nil {
		if !it.fetch(nil) {
			return false
		}
	}
	for it.index >= len(it.page.Items) {
		if it.page.Next == nil || !it.fetch(it.page.Next) {
			return false
		}
	}
	it.value = it.page.Items[it.index]
	it.index++
	return true
}

func (it *PageIterator) fetch(cursor *int) bool {
	page, err := it.client.Get(cursor)
	if err != nil {
		it.err = err
		return false
	}
	it.page = &page
	it.index = 0
	return true
}

func (it *PageIterator) Value() string {
	return it.value
}

func (it *PageIterator) Error() error {
	return it.err
}

// Items is PageIterator written as a generator.
func Items(client *PagedClient) *step.Generator[string] {
	return step.NewGenerator(func(yield func(string) bool) error {
		var page Page
		for {
			var err error
			page, err = client.Get(page.Next)
			if err != nil {
				return err
			}
			for _, item := range page.Items {
				if !yield(item) {
					return nil
				}
			}
			if page.Next == nil {
				return nil
			}
		}
	})
}

package service

import (
	"fmt"

	"github.com/whisperwall/cli/pkg/formatter"
	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/output"
	"github.com/whisperwall/cli/pkg/prompter"
	"github.com/whisperwall/cli/pkg/queries"
)

// FeedView tracks the browsing position: the active filter and the
// zero-based page. Switching filter always resets the page to zero
// before the next fetch.
type FeedView struct {
	filter queries.Filter
	page   int
}

// NewFeedView starts a view on a filter at page zero
func NewFeedView(filter queries.Filter) *FeedView {
	return &FeedView{filter: filter}
}

// Filter returns the active filter
func (v *FeedView) Filter() queries.Filter { return v.filter }

// Page returns the current zero-based page
func (v *FeedView) Page() int { return v.page }

// SetFilter switches the active filter, resetting pagination when the
// filter actually changes
func (v *FeedView) SetFilter(filter queries.Filter) {
	if filter != v.filter {
		v.filter = filter
		v.page = 0
	}
}

// Advance moves to the next page
func (v *FeedView) Advance() { v.page++ }

// FeedService renders the secrets feed
type FeedService struct {
	store *queries.Store
}

// NewFeedService creates a feed service over a data-access store
func NewFeedService(store *queries.Store) *FeedService {
	return &FeedService{store: store}
}

// ViewPage displays one feed page
func (fs *FeedService) ViewPage(filter queries.Filter, page int) error {
	logger.Debug("Viewing feed", "filter", filter, "page", page)

	feedPage, err := fs.store.Feed(filter, page)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	fs.displayPage(feedPage)
	return nil
}

// Browse enters an interactive load-more loop on a filter. Pages
// already seen come straight from the cache; a full page offers to
// load the next one.
func (fs *FeedService) Browse(filter queries.Filter) error {
	view := NewFeedView(filter)

	for {
		feedPage, err := fs.store.Feed(view.Filter(), view.Page())
		if err != nil {
			return fmt.Errorf("failed to fetch feed: %w", err)
		}

		fs.displayPage(feedPage)

		if !feedPage.HasMore {
			fmt.Println("End of feed.")
			return nil
		}

		more, err := prompter.PromptConfirm("Load more?")
		if err != nil || !more {
			return nil
		}
		view.Advance()
	}
}

func (fs *FeedService) displayPage(page *queries.FeedPage) {
	if handled, _ := output.PrintObject(page.Secrets); handled {
		return
	}

	if len(page.Secrets) == 0 {
		if page.Page == 0 {
			fmt.Println("No secrets yet. Be the first to share one.")
		} else {
			fmt.Println("No more secrets.")
		}
		return
	}

	title := fmt.Sprintf("Secrets — %s (page %d)", page.Filter, page.Page+1)
	if page.FromCache {
		title += " ·"
	}
	fmt.Println(title)
	fmt.Println()

	for _, preview := range page.Secrets {
		var card string
		if meta, ok := fs.store.Meta().Get(preview.ID); ok {
			selected, _ := fs.store.Session().Selection(preview.ID)
			card = formatter.SecretCard(preview, &meta, selected)
		} else {
			selected, _ := fs.store.Session().Selection(preview.ID)
			card = formatter.SecretCard(preview, nil, selected)
		}
		fmt.Println(card)
	}
}

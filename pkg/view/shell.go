package view

import (
	"context"
	"log"
	"sync"

	"github.com/umputun/gamegraf/pkg/theme"
)

// Shell is the top level view state holder. It owns ViewState and mounts exactly
// one feed view for the active tab. Tab changes are synchronous, leaving a tab
// unmounts its view and a revisit mounts a new one which fetches again.
type Shell struct {
	source FeedSource
	opts   Options

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	state  ViewState
	active FeedView
	closed bool
}

// NewShell makes a shell in the default state (News, Light) with the news view mounted.
// Fetches run under ctx until the shell is closed.
func NewShell(ctx context.Context, source FeedSource, opts Options) *Shell {
	ctx, cancel := context.WithCancel(ctx)
	s := &Shell{
		source: source,
		opts:   opts.withDefaults(),
		ctx:    ctx,
		cancel: cancel,
		state:  ViewState{Tab: TabNews, Mode: theme.Light},
	}
	s.active = s.newView(TabNews)
	s.active.Mount(s.ctx)
	return s
}

// State returns the current view state
func (s *Shell) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active returns the mounted feed view
func (s *Shell) Active() FeedView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Snapshot returns the view state and the mounted view read under one lock,
// so the pair always belongs to the same tab
func (s *Shell) Snapshot() (ViewState, FeedView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.active
}

// Palette returns the palette used for color derivation
func (s *Shell) Palette() theme.Palette { return s.opts.Palette }

// SelectTab switches to tab. Selecting the active tab keeps the mounted view.
func (s *Shell) SelectTab(tab Tab) error {
	if _, err := ParseTab(int(tab)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state.Tab == tab {
		return nil
	}

	s.active.Unmount()
	s.state.Tab = tab
	s.active = s.newView(tab)
	s.active.Mount(s.ctx)
	log.Printf("[DEBUG] tab switched to %s", tab)
	return nil
}

// ToggleTheme flips the theme mode and returns the new one. Feed data is not touched.
func (s *Shell) ToggleTheme() theme.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = s.state.Mode.Toggle()
	return s.state.Mode
}

// Close unmounts the active view and stops all fetches
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.active.Unmount()
	s.cancel()
}

func (s *Shell) newView(tab Tab) FeedView {
	if tab == TabDeals {
		return NewDealsFeedView(s.source, s.opts)
	}
	return NewNewsFeedView(s.source, s.opts)
}

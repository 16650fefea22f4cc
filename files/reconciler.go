// Package files keeps the displayed file set reconciled against direct
// user actions and server-pushed events, with coalesced, at-most-one-in-
// flight refresh semantics.
package files

import (
	"context"
	"fmt"
	"sync"

	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// Filter narrows the listing. The zero Filter means a plain refresh.
type Filter struct {
	Query string
	Type  string
	Date  string
}

// Reconciler owns the rendered file list. Plain refreshes follow an
// at-most-one-in-flight discipline: triggers fired while a request is
// outstanding collapse into a single follow-up. A monotonic sequence
// number guards against a stale response overwriting a newer one.
type Reconciler struct {
	api      *API
	notifier *notify.Center

	mu       sync.Mutex
	seq      uint64 // latest issued refresh
	inFlight bool   // a plain refresh is outstanding
	pending  bool   // a coalesced follow-up is owed
	entries  []types.FileEntry
	render   func([]types.FileEntry)
}

func NewReconciler(api *API, notifier *notify.Center) *Reconciler {
	return &Reconciler{
		api:      api,
		notifier: notifier,
	}
}

// SetRenderFunc registers the hook invoked with the new listing after each
// completed, non-superseded refresh.
func (r *Reconciler) SetRenderFunc(fn func([]types.FileEntry)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.render = fn
}

// Files returns a copy of the currently rendered listing.
func (r *Reconciler) Files() []types.FileEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.FileEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Refresh triggers a plain listing refresh. While one is outstanding,
// additional triggers coalesce into exactly one follow-up.
func (r *Reconciler) Refresh() {
	r.mu.Lock()
	if r.inFlight {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.inFlight = true
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	go r.run(seq, Filter{}, true)
}

// Search issues a filtered refresh immediately, superseding any refresh in
// flight: the older response will fail the sequence check and be dropped.
func (r *Reconciler) Search(f Filter) {
	if f == (Filter{}) {
		r.Refresh()
		return
	}
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	go r.run(seq, f, false)
}

// OnFileEvent reacts to a server-pushed file event: surface the transient
// notification and refresh, so a change made by another device becomes
// visible here without user action.
func (r *Reconciler) OnFileEvent(event types.FileEvent) {
	switch event.Type {
	case types.FileEventUpload:
		r.notifier.Notify(types.NotifySuccess,
			fmt.Sprintf("File uploaded: %s (%s)", event.Data.Filename, event.Data.Size))
		r.Refresh()
	case types.FileEventDelete:
		r.notifier.Notify(types.NotifyWarning,
			fmt.Sprintf("File deleted: %s", event.Data.Filename))
		r.Refresh()
	default:
		tool.DefaultLogger.Debugf("Ignoring file event type %q", event.Type)
	}
}

// OnLocalMutation is invoked after a local upload/delete/cleanup completes.
// It shares the coalescing path with remote-triggered refreshes.
func (r *Reconciler) OnLocalMutation() {
	r.Refresh()
}

// Delete removes a file on the server, notifies, and refreshes.
func (r *Reconciler) Delete(ctx context.Context, filename string) error {
	if err := r.api.Delete(ctx, filename); err != nil {
		r.notifier.Notify(types.NotifyError, fmt.Sprintf("Error deleting %s", filename))
		return err
	}
	r.notifier.Notify(types.NotifySuccess, fmt.Sprintf("%s deleted successfully!", filename))
	r.OnLocalMutation()
	return nil
}

// Cleanup removes files older than hours on the server, notifies with the
// server's message, and refreshes.
func (r *Reconciler) Cleanup(ctx context.Context, hours int) error {
	result, err := r.api.Cleanup(ctx, hours)
	if err != nil {
		r.notifier.Notify(types.NotifyError, "Error cleaning up files")
		return err
	}
	r.notifier.Notify(types.NotifySuccess, result.Message)
	r.OnLocalMutation()
	return nil
}

// Download fetches one file into destDir. No refresh: the listing did not
// change.
func (r *Reconciler) Download(ctx context.Context, filename, destDir string) (string, error) {
	dest, err := r.api.Download(ctx, filename, destDir)
	if err != nil {
		r.notifier.Notify(types.NotifyError, fmt.Sprintf("Error downloading %s", filename))
		return "", err
	}
	r.notifier.Notify(types.NotifySuccess, fmt.Sprintf("%s downloaded successfully!", filename))
	return dest, nil
}

// DownloadZip fetches a zip of the selected files into destDir.
func (r *Reconciler) DownloadZip(ctx context.Context, filenames []string, destDir string) (string, error) {
	if len(filenames) == 0 {
		r.notifier.Notify(types.NotifyWarning, "Please select files to download")
		return "", fmt.Errorf("no files selected")
	}
	dest, err := r.api.DownloadZip(ctx, filenames, destDir)
	if err != nil {
		r.notifier.Notify(types.NotifyError, "Error downloading files")
		return "", err
	}
	r.notifier.Notify(types.NotifySuccess, "Files downloaded successfully!")
	return dest, nil
}

func (r *Reconciler) run(seq uint64, f Filter, plain bool) {
	ctx := context.Background()
	var entries []types.FileEntry
	var err error
	if plain {
		entries, err = r.api.List(ctx)
	} else {
		entries, err = r.api.Search(ctx, f)
	}
	r.complete(seq, plain, entries, err)
}

// complete applies a finished refresh. Responses whose sequence number is
// no longer the latest issued are discarded without touching the rendered
// list.
func (r *Reconciler) complete(seq uint64, plain bool, entries []types.FileEntry, err error) {
	r.mu.Lock()
	followUp := false
	if plain {
		r.inFlight = false
		if r.pending {
			r.pending = false
			followUp = true
		}
	}
	stale := seq != r.seq
	var render func([]types.FileEntry)
	var snapshot []types.FileEntry
	if !stale {
		if err != nil {
			r.entries = []types.FileEntry{}
		} else {
			r.entries = entries
		}
		render = r.render
		snapshot = make([]types.FileEntry, len(r.entries))
		copy(snapshot, r.entries)
	}
	r.mu.Unlock()

	if !stale && err != nil {
		r.notifier.Notify(types.NotifyError, "Error loading files")
	}
	if render != nil {
		render(snapshot)
	}
	if followUp {
		r.Refresh()
	}
}

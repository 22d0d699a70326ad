package ui

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync/atomic"

	"giffer/config"
	"giffer/deck"
	"giffer/httputil"
	"giffer/images"
	"giffer/models"
	"giffer/search"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ncruces/zenity"
)

// MainWindow represents the main application window
type MainWindow struct {
	app        fyne.App
	window     fyne.Window
	cfg        config.Config
	searchMgr  *search.Manager
	controller *deck.Controller
	images     *images.Manager

	queryEntry  *widget.Entry
	limitEntry  *widget.Entry
	status      *StatusLabel
	cardImage   *canvas.Image
	cardTitle   *widget.Label
	cardLink    *widget.Hyperlink
	countsLabel *widget.Label
	likeBtn     *widget.Button
	dislikeBtn  *widget.Button
	exportBtn   *widget.Button

	likedGallery    *fyne.Container
	dislikedGallery *fyne.Container

	cardGen uint64 // guards stale async card image loads
}

// NewMainWindow creates the main window and wires the deck controller to it.
func NewMainWindow(cfg config.Config, searchMgr *search.Manager) *MainWindow {
	myApp := app.New()
	myApp.SetIcon(theme.MediaPhotoIcon())

	window := myApp.NewWindow("Giffer")
	window.Resize(fyne.NewSize(900, 700))

	mw := &MainWindow{
		app:        myApp,
		window:     window,
		cfg:        cfg,
		searchMgr:  searchMgr,
		controller: deck.NewController(searchMgr),
		images:     images.NewManager(),
	}

	mw.setupUI()
	mw.controller.OnChange(mw.renderState)
	mw.window.SetOnClosed(func() {
		mw.controller.Close()
	})

	// Kick off the initial fetch with the default inputs.
	mw.refreshEndpoint()

	return mw
}

// ShowAndRun shows the window and runs the application
func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}

// setupUI sets up the user interface
func (mw *MainWindow) setupUI() {
	mw.queryEntry = widget.NewEntry()
	mw.queryEntry.SetPlaceHolder("Search GIFs...")
	mw.queryEntry.SetText("cats")
	mw.queryEntry.OnChanged = func(string) {
		mw.refreshEndpoint()
	}

	mw.limitEntry = widget.NewEntry()
	mw.limitEntry.SetText(fmt.Sprintf("%d", mw.cfg.Limit))
	mw.limitEntry.OnChanged = func(string) {
		mw.refreshEndpoint()
	}

	mw.status = NewStatusLabel()

	queryRow := container.NewBorder(nil, nil,
		widget.NewLabel("Query"),
		container.NewHBox(widget.NewLabel("Limit"), mw.limitEntry),
		mw.queryEntry,
	)
	top := container.NewVBox(queryRow, mw.status)

	mw.cardImage = canvas.NewImageFromResource(theme.MediaPhotoIcon())
	mw.cardImage.SetMinSize(fyne.NewSize(420, 320))
	mw.cardImage.FillMode = canvas.ImageFillContain

	mw.cardTitle = widget.NewLabel("")
	mw.cardTitle.TextStyle = fyne.TextStyle{Bold: true}
	mw.cardTitle.Alignment = fyne.TextAlignCenter
	mw.cardTitle.Wrapping = fyne.TextWrapWord

	mw.cardLink = widget.NewHyperlink("", nil)
	mw.cardLink.Alignment = fyne.TextAlignCenter

	mw.likeBtn = widget.NewButtonWithIcon("Like", theme.ConfirmIcon(), func() {
		mw.controller.Vote(deck.Like)
	})
	mw.dislikeBtn = widget.NewButtonWithIcon("Dislike", theme.CancelIcon(), func() {
		mw.controller.Vote(deck.Dislike)
	})
	mw.exportBtn = widget.NewButtonWithIcon("Save GIF", theme.DocumentSaveIcon(), func() {
		mw.exportCurrent()
	})

	voteRow := container.NewHBox(mw.dislikeBtn, mw.exportBtn, mw.likeBtn)

	mw.countsLabel = widget.NewLabel("")
	mw.countsLabel.Alignment = fyne.TextAlignCenter

	card := container.NewVBox(
		mw.cardImage,
		mw.cardTitle,
		mw.cardLink,
		container.NewCenter(voteRow),
		mw.countsLabel,
	)

	mw.likedGallery = container.NewGridWrap(fyne.NewSize(images.ThumbnailWidth, images.ThumbnailWidth))
	mw.dislikedGallery = container.NewGridWrap(fyne.NewSize(images.ThumbnailWidth, images.ThumbnailWidth))

	likedSection := container.NewBorder(
		widget.NewLabelWithStyle("Liked", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(mw.likedGallery),
	)
	dislikedSection := container.NewBorder(
		widget.NewLabelWithStyle("Disliked", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(mw.dislikedGallery),
	)

	buckets := container.NewGridWithColumns(2, likedSection, dislikedSection)

	split := container.NewVSplit(container.NewCenter(card), buckets)
	split.SetOffset(0.7)

	content := container.NewBorder(top, nil, nil, nil, split)
	mw.window.SetContent(content)
}

// refreshEndpoint recomputes the search endpoint from the current inputs and
// hands it to the controller. Runs on every edit; no debounce.
func (mw *MainWindow) refreshEndpoint() {
	limit := config.ParseLimit(mw.limitEntry.Text, mw.cfg.Limit)
	endpoint := mw.searchMgr.BuildEndpoint(mw.queryEntry.Text, limit)
	mw.controller.SetEndpoint(endpoint)
}

// renderState applies a controller snapshot to the widgets. It may run on a
// fetch goroutine, matching how background work updates this UI elsewhere.
func (mw *MainWindow) renderState(st deck.State) {
	switch {
	case st.Loading:
		mw.status.SetStatus(StatusLoading, "Loading GIFs...")
	case st.Err != "":
		mw.status.SetStatus(StatusError, st.Err)
	default:
		mw.status.SetStatus(StatusIdle, fmt.Sprintf("%d GIFs fetched", st.DeckLen))
	}
	mw.status.Refresh()

	mw.countsLabel.SetText(fmt.Sprintf("%d remaining · %d liked · %d disliked",
		st.Remaining, len(st.Liked), len(st.Disliked)))

	mw.renderCard(st)
	mw.rebuildGallery(mw.likedGallery, st.Liked)
	mw.rebuildGallery(mw.dislikedGallery, st.Disliked)
}

// renderCard updates the top-of-deck area: the current item, or the exhausted
// message when every item has been voted on.
func (mw *MainWindow) renderCard(st deck.State) {
	gen := atomic.AddUint64(&mw.cardGen, 1)

	if !st.HasCurrent {
		if st.DeckLen > 0 {
			mw.cardTitle.SetText("No more GIFs - change the search to deal a fresh deck")
		} else {
			mw.cardTitle.SetText("")
		}
		mw.cardLink.SetText("")
		mw.cardLink.SetURL(nil)
		mw.cardImage.Resource = theme.MediaPhotoIcon()
		mw.cardImage.Refresh()
		mw.likeBtn.Disable()
		mw.dislikeBtn.Disable()
		mw.exportBtn.Disable()
		return
	}

	mw.likeBtn.Enable()
	mw.dislikeBtn.Enable()
	mw.exportBtn.Enable()

	mw.cardTitle.SetText(st.Current.Title)
	if u, err := url.Parse(st.Current.Permalink); err == nil && st.Current.Permalink != "" {
		mw.cardLink.SetText(fmt.Sprintf("View on %s", st.Current.Source))
		mw.cardLink.SetURL(u)
	} else {
		mw.cardLink.SetText("")
		mw.cardLink.SetURL(nil)
	}
	mw.cardLink.Refresh()

	mw.loadCardImage(gen, st.Current.PreviewURL)
}

// loadCardImage fetches the preview asynchronously. A load that finishes after
// the card has moved on is dropped, same as stale fetch results.
func (mw *MainWindow) loadCardImage(gen uint64, previewURL string) {
	if previewURL == "" {
		mw.cardImage.Resource = theme.BrokenImageIcon()
		mw.cardImage.Refresh()
		return
	}

	go func() {
		res, err := mw.images.Resource(context.Background(), previewURL)
		if atomic.LoadUint64(&mw.cardGen) != gen {
			return
		}
		if err != nil {
			mw.cardImage.Resource = theme.BrokenImageIcon()
		} else {
			mw.cardImage.Resource = res
		}
		mw.cardImage.Refresh()
	}()
}

// rebuildGallery recreates a bucket gallery from its vote list.
func (mw *MainWindow) rebuildGallery(gallery *fyne.Container, gifs []models.Gif) {
	gallery.Objects = nil
	for _, gif := range gifs {
		thumb := canvas.NewImageFromResource(theme.MediaPhotoIcon())
		thumb.SetMinSize(fyne.NewSize(images.ThumbnailWidth, images.ThumbnailWidth))
		thumb.FillMode = canvas.ImageFillContain
		gallery.Add(thumb)

		go func(img *canvas.Image, previewURL string) {
			res, err := mw.images.Thumbnail(context.Background(), previewURL)
			if err != nil {
				img.Resource = theme.BrokenImageIcon()
			} else {
				img.Resource = res
			}
			img.Refresh()
		}(thumb, gif.PreviewURL)
	}
	gallery.Refresh()
}

// exportCurrent saves the current card's original GIF to a user-chosen path.
// Prefers the native zenity dialog, falls back to the Fyne one.
func (mw *MainWindow) exportCurrent() {
	st := mw.controller.Snapshot()
	if !st.HasCurrent {
		dialog.ShowInformation("No GIF", "There is no current GIF to save.", mw.window)
		return
	}

	gif := st.Current
	suggested := gif.ID + ".gif"

	if zenity.IsAvailable() {
		filename, err := zenity.SelectFileSave(
			zenity.Title("Save GIF"),
			zenity.Filename(suggested),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{
				{Name: "GIF files", Patterns: []string{"*.gif"}},
			},
		)
		if err != nil {
			if err != zenity.ErrCanceled {
				dialog.ShowError(err, mw.window)
			}
			return
		}
		if filename == "" {
			return
		}
		mw.saveGifTo(gif, filename)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if writer == nil {
			return // User cancelled
		}
		path := writer.URI().Path()
		_ = writer.Close()
		mw.saveGifTo(gif, path)
	}, mw.window)
	fileDialog.SetFileName(suggested)
	fileDialog.Show()
}

// saveGifTo downloads the original GIF and writes it to path in the background.
func (mw *MainWindow) saveGifTo(gif models.Gif, path string) {
	progress := dialog.NewProgressInfinite("Saving", "Downloading GIF...", mw.window)
	progress.Show()

	go func() {
		defer progress.Hide()

		data, err := httputil.GetBytes(context.Background(), gif.OriginalURL)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to download GIF: %w", err), mw.window)
			return
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			dialog.ShowError(fmt.Errorf("failed to write file: %w", err), mw.window)
			return
		}

		dialog.ShowInformation("Saved",
			fmt.Sprintf("Saved '%s' to:\n%s", gif.Title, path), mw.window)
	}()
}

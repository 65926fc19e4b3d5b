package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PhotoView is the full-screen viewer for a single submission.
func PhotoView(data PhotoViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		photo := *data.Photo
		contest := *data.Contest
		title := derefOr(photo.Title, "Untitled")
		writePage(ctx, w, title, data.VoterID, func(w io.Writer) {
			_, _ = io.WriteString(w, `
      <section class="viewer">
        <a class="close" href="`+browseURL(contest.ID)+`" aria-label="Back to gallery">&times;</a>
        <figure>
          <img src="`+esc(photo.ImageHostURL)+`" alt="`+esc(title)+`"/>
          <figcaption>
            <h2>`+esc(title)+`</h2>
            <p>`+esc(contest.Name)+` · `+esc(formatDate(photo.SubmittedAt))+`</p>
            `)
			writeVoteControls(w, photo, contest.ID, contest.IsClosed)
			_, _ = io.WriteString(w, `
          </figcaption>
        </figure>
        <nav class="viewer-nav">`)
			if data.PrevID != "" {
				_, _ = io.WriteString(w, `<a class="prev" href="`+photoURL(contest.ID, data.PrevID)+`">Newer</a>`)
			}
			if data.NextID != "" {
				_, _ = io.WriteString(w, `<a class="next" href="`+photoURL(contest.ID, data.NextID)+`">Older</a>`)
			}
			_, _ = io.WriteString(w, `</nav>
      </section>`)
		})
		return nil
	})
}

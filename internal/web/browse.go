package web

import (
	"context"
	"io"

	"prized-pic/internal/voting"

	"github.com/a-h/templ"
)

func Browse(data BrowseData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Browse"
		if data.Selected != nil {
			title = data.Selected.Name
		}
		writePage(ctx, w, title, data.VoterID, func(w io.Writer) {
			writeContestSelector(w, data.Contests, data.Selected)
			if data.Selected == nil {
				_, _ = io.WriteString(w, `
      <section class="panel"><p class="empty">Pick a contest to see its photos.</p></section>`)
				return
			}
			writeGallery(w, data)
		})
		return nil
	})
}

func writeContestSelector(w io.Writer, contests []voting.ContestView, selected *voting.ContestView) {
	_, _ = io.WriteString(w, `
      <section class="panel contest-selector">
        <form method="get" action="/browse">
          <label for="contest">Contest</label>
          <select id="contest" name="contest" onchange="this.form.submit()">
            <option value="">Choose a contest</option>
`)
	for _, contest := range contests {
		attrs := ""
		if selected != nil && selected.ID == contest.ID {
			attrs = " selected"
		}
		label := contest.Name
		if contest.IsClosed {
			label += " (closed)"
		}
		_, _ = io.WriteString(w, `            <option value="`+esc(contest.ID)+`"`+attrs+`>`+esc(label)+`</option>
`)
	}
	_, _ = io.WriteString(w, `          </select>
          <noscript><button type="submit" class="secondary">Show</button></noscript>
        </form>
      </section>`)
}

func writeGallery(w io.Writer, data BrowseData) {
	contest := *data.Selected
	_, _ = io.WriteString(w, `
      <section class="panel">
        <header class="gallery-header">
          <h2>`+esc(contest.Name)+`</h2>
          `)
	writeContestBadge(w, contest)
	_, _ = io.WriteString(w, `
        </header>
`)
	if contest.Description != nil {
		_, _ = io.WriteString(w, `        <p>`+esc(*contest.Description)+`</p>
`)
	}
	if len(data.Photos) == 0 {
		_, _ = io.WriteString(w, `        <p class="empty">No photos yet.`)
		if contest.SubmissionsOpen {
			_, _ = io.WriteString(w, ` <a href="/submit?contest=`+esc(contest.ID)+`">Be the first to submit one.</a>`)
		}
		_, _ = io.WriteString(w, `</p>
      </section>`)
		return
	}
	_, _ = io.WriteString(w, `        <div class="grid">
`)
	for _, photo := range data.Photos {
		writeImageCard(w, photo, contest)
	}
	_, _ = io.WriteString(w, `        </div>
`)
	writePagination(w, data.Pagination)
	_, _ = io.WriteString(w, `      </section>`)
}

func writeImageCard(w io.Writer, photo voting.PhotoAggregate, contest voting.ContestView) {
	title := derefOr(photo.Title, "Untitled")
	_, _ = io.WriteString(w, `          <article class="card">
            <a href="`+photoURL(contest.ID, photo.ID)+`"><img src="`+esc(photo.ImageHostURL)+`" alt="`+esc(title)+`" loading="lazy"/></a>
            <div class="card-body">
              <h3>`+esc(title)+`</h3>
              <time datetime="`+esc(photo.SubmittedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))+`">`+esc(formatDate(photo.SubmittedAt))+`</time>
              `)
	writeVoteControls(w, photo, contest.ID, contest.IsClosed)
	_, _ = io.WriteString(w, `
            </div>
          </article>
`)
}

func writePagination(w io.Writer, data PaginationData) {
	if data.TotalPages <= 1 {
		return
	}
	_, _ = io.WriteString(w, `        <nav class="pagination">`)
	if data.HasPrev {
		_, _ = io.WriteString(w, `<a href="`+esc(pageURL(data.BasePath, data.PrevPage, data.PerPage))+`">Previous</a>`)
	}
	_, _ = io.WriteString(w, `<span>Page `+itoa(data.Page)+` of `+itoa(data.TotalPages)+`</span>`)
	if data.HasNext {
		_, _ = io.WriteString(w, `<a href="`+esc(pageURL(data.BasePath, data.NextPage, data.PerPage))+`">Next</a>`)
	}
	_, _ = io.WriteString(w, `</nav>
`)
}

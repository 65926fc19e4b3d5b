package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePage(ctx, w, "", data.VoterID, func(w io.Writer) {
			_, _ = io.WriteString(w, `
      <header class="hero">
        <span class="tag">`+appName+`</span>
        <h1>Shoot. Share. Get the prize.</h1>
        <p>Enter a photo contest, browse the submissions and vote for your favourites in three categories.</p>
        <div class="actions">
          <a class="button primary" href="/submit">Submit a photo</a>
          <a class="button secondary" href="/browse">Browse contests</a>
        </div>
      </header>
      <section class="panel">
        <h2>Open contests</h2>
`)
			if len(data.Contests) == 0 {
				_, _ = io.WriteString(w, `        <p class="empty">No contests are running right now. Check back soon.</p>
`)
			} else {
				_, _ = io.WriteString(w, `        <ul class="contest-list">
`)
				for _, contest := range data.Contests {
					_, _ = io.WriteString(w, `          <li><a href="`+browseURL(contest.ID)+`">`+esc(contest.Name)+`</a> `)
					writeContestBadge(w, contest)
					if contest.Description != nil {
						_, _ = io.WriteString(w, `<p>`+esc(*contest.Description)+`</p>`)
					}
					_, _ = io.WriteString(w, `</li>
`)
				}
				_, _ = io.WriteString(w, `        </ul>
`)
			}
			_, _ = io.WriteString(w, `      </section>`)
		})
		return nil
	})
}

func ErrorPage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePage(ctx, w, "Error", "", func(w io.Writer) {
			_, _ = io.WriteString(w, `
      <section class="panel">
        <h2>Oops</h2>
        <p>`+esc(message)+`</p>
        <a class="button secondary" href="/">Back home</a>
      </section>`)
		})
		return nil
	})
}

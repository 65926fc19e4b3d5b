package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Submit(data SubmitData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePage(ctx, w, "Submit", data.VoterID, func(w io.Writer) {
			_, _ = io.WriteString(w, `
      <section class="panel">
        <h2>Submit a photo</h2>
`)
			if !data.UploadsEnabled {
				_, _ = io.WriteString(w, `        <p class="empty">Uploads are not available right now.</p>
      </section>`)
				return
			}
			if len(data.Contests) == 0 {
				_, _ = io.WriteString(w, `        <p class="empty">No contests are accepting submissions right now.</p>
      </section>`)
				return
			}
			_, _ = io.WriteString(w, `        <form id="submitForm" class="submit-form">
          <label for="contestId">Contest</label>
          <select id="contestId" name="contestId" required>
`)
			for _, contest := range data.Contests {
				attrs := ""
				if contest.ID == data.Selected {
					attrs = " selected"
				}
				label := contest.Name
				if contest.EndsAt != nil {
					if left := timeRemaining(nowUTC(), *contest.EndsAt); left != "" {
						label += " (" + left + ")"
					}
				}
				_, _ = io.WriteString(w, `            <option value="`+esc(contest.ID)+`"`+attrs+`>`+esc(label)+`</option>
`)
			}
			_, _ = io.WriteString(w, `          </select>
          <label for="title">Title</label>
          <input id="title" name="title" maxlength="80" placeholder="Optional"/>
          <label for="submitterEmail">Email</label>
          <input id="submitterEmail" name="submitterEmail" type="email" placeholder="Optional, for prize notifications"/>
          <label for="file">Photo</label>
          <input id="file" name="file" type="file" accept="image/*" required/>
          <button type="submit" class="primary">Upload</button>
        </form>
        <div id="submitResult" class="result"></div>
      </section>`)
		})
		return nil
	})
}

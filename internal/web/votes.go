package web

import (
	"io"
	"strconv"

	"prized-pic/internal/voting"
)

// writeVoteControls renders one toggle button per category. Closed contests get disabled buttons.
func writeVoteControls(w io.Writer, photo voting.PhotoAggregate, contestID string, closed bool) {
	_, _ = io.WriteString(w, `<div class="votes" data-photo-id="`+esc(photo.ID)+`" data-contest-id="`+esc(contestID)+`">`)
	for _, category := range voting.Categories {
		class := "vote-btn"
		if photo.ViewerVoted.Get(category) {
			class += " active"
		}
		disabled := ""
		if closed {
			disabled = ` disabled title="Voting has closed"`
		}
		_, _ = io.WriteString(w, `<button type="button" class="`+class+`" data-category="`+string(category)+`"`+disabled+`>`+
			esc(category.Label())+` <span class="count">`+strconv.FormatInt(photo.TotalVotes.Get(category), 10)+`</span></button>`)
	}
	_, _ = io.WriteString(w, `</div>`)
}

func writeContestBadge(w io.Writer, contest voting.ContestView) {
	switch {
	case contest.IsClosed:
		_, _ = io.WriteString(w, `<span class="badge closed">Voting closed</span>`)
	case contest.EndsAt != nil:
		_, _ = io.WriteString(w, `<span class="badge open">`+esc(timeRemaining(nowUTC(), *contest.EndsAt))+`</span>`)
	default:
		_, _ = io.WriteString(w, `<span class="badge open">Open</span>`)
	}
	if !contest.SubmissionsOpen && !contest.IsClosed {
		_, _ = io.WriteString(w, ` <span class="badge muted">Submissions closed</span>`)
	}
}

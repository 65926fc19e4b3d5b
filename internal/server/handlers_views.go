package server

import (
	"errors"
	"net/http"
	"net/url"

	"prized-pic/internal/logging"
	"prized-pic/internal/store"
	"prized-pic/internal/voting"
	"prized-pic/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

type photoViewURI struct {
	ContestID string `uri:"contestID" binding:"required"`
	PhotoID   string `uri:"photoID" binding:"required"`
}

func (s *Server) handleHome(c *gin.Context) {
	contests, err := s.voting.ListContests(c.Request.Context(), false)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	templ.Handler(web.Home(web.HomeData{
		Contests: contests,
		VoterID:  ensureVoterID(c),
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleBrowse(c *gin.Context) {
	contests, err := s.voting.ListContests(c.Request.Context(), true)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	if id := c.Query("contest"); id != "" {
		c.Redirect(http.StatusFound, "/browse/"+url.PathEscape(id))
		return
	}
	templ.Handler(web.Browse(web.BrowseData{
		Contests: contests,
		VoterID:  ensureVoterID(c),
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleBrowseContest(c *gin.Context) {
	var uri contestURI
	if !bindURI(c, &uri) {
		return
	}
	ctx := c.Request.Context()
	voterID := ensureVoterID(c)
	contest, err := s.voting.GetContest(ctx, uri.ContestID)
	if errors.Is(err, store.ErrNotFound) {
		logging.Log.WithField("contest_id", uri.ContestID).Info("browse view missing contest")
		c.Redirect(http.StatusFound, "/browse")
		return
	}
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	contests, err := s.voting.ListContests(ctx, true)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	window := parsePagination(c, s.cfg.PhotosPerPage)
	page, err := s.voting.ListAggregatedPhotosPage(ctx, contest.ID, voterID, window.Offset(), window.PerPage)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	if clamped := window.clamp(page.Total); clamped.Page != window.Page {
		window = clamped
		page, err = s.voting.ListAggregatedPhotosPage(ctx, contest.ID, voterID, window.Offset(), window.PerPage)
		if err != nil {
			s.renderViewError(c, err)
			return
		}
	}
	templ.Handler(web.Browse(web.BrowseData{
		Contests:   contests,
		Selected:   contest,
		Photos:     page.Photos,
		Pagination: buildPaginationData("/browse/"+contest.ID, window, page.Total),
		VoterID:    voterID,
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handlePhotoView(c *gin.Context) {
	var uri photoViewURI
	if !bindURI(c, &uri) {
		return
	}
	ctx := c.Request.Context()
	voterID := ensureVoterID(c)
	contest, err := s.voting.GetContest(ctx, uri.ContestID)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	photos, err := s.voting.ListAggregatedPhotosForContest(ctx, contest.ID, voterID)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	data := web.PhotoViewData{Contest: contest, VoterID: voterID}
	for i := range photos {
		if photos[i].ID != uri.PhotoID {
			continue
		}
		data.Photo = &photos[i]
		if i > 0 {
			data.PrevID = photos[i-1].ID
		}
		if i < len(photos)-1 {
			data.NextID = photos[i+1].ID
		}
		break
	}
	if data.Photo == nil {
		logging.Log.WithField("photo_id", uri.PhotoID).Info("photo view missing photo")
		c.Redirect(http.StatusFound, "/browse/"+contest.ID)
		return
	}
	templ.Handler(web.PhotoView(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleSubmitView(c *gin.Context) {
	contests, err := s.voting.ListContests(c.Request.Context(), false)
	if err != nil {
		s.renderViewError(c, err)
		return
	}
	open := make([]voting.ContestView, 0, len(contests))
	for _, contest := range contests {
		if contest.SubmissionsOpen {
			open = append(open, contest)
		}
	}
	templ.Handler(web.Submit(web.SubmitData{
		Contests:       open,
		UploadsEnabled: s.signer.Configured(),
		VoterID:        ensureVoterID(c),
		Selected:       c.Query("contest"),
	})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) renderViewError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again."
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		message = "We couldn't find that."
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "The gallery is temporarily unavailable. Please try again shortly."
	}
	if status != http.StatusNotFound {
		logging.Log.WithError(err).WithField("path", c.FullPath()).Error("view failed")
	}
	templ.Handler(web.ErrorPage(message), templ.WithStatus(status)).ServeHTTP(c.Writer, c.Request)
}

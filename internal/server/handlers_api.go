package server

import (
	"net/http"

	"prized-pic/internal/logging"
	"prized-pic/internal/voting"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type votesRequest struct {
	PhotoID      string `json:"photoId" binding:"required"`
	VoterID      string `json:"voterId" binding:"required,voterid"`
	VoteCategory string `json:"voteCategory" binding:"required,votecategory"`
	ContestID    string `json:"contestId" binding:"required"`
}

var votesMessages = bindMessages{
	"PhotoID":      {"required": "photoId, voterId, voteCategory and contestId are required"},
	"VoterID":      {"required": "photoId, voterId, voteCategory and contestId are required", "voterid": "voterId is invalid"},
	"VoteCategory": {"required": "photoId, voterId, voteCategory and contestId are required", "votecategory": "voteCategory must be OVERALL, TECHNICAL, or FUNNY"},
	"ContestID":    {"required": "photoId, voterId, voteCategory and contestId are required"},
}

type photosRequest struct {
	PublicID       string         `json:"publicId" binding:"required"`
	SecureURL      string         `json:"secureUrl" binding:"required,url"`
	Title          string         `json:"title"`
	ContestID      string         `json:"contestId"`
	SubmitterEmail string         `json:"submitterEmail" binding:"omitempty,email"`
	SubmitterID    string         `json:"submitterId"`
	UploadInfo     map[string]any `json:"uploadInfo"`
}

var photosMessages = bindMessages{
	"PublicID":       {"required": "publicId and secureUrl are required"},
	"SecureURL":      {"required": "publicId and secureUrl are required", "url": "secureUrl must be a URL"},
	"SubmitterEmail": {"email": "submitterEmail must be a valid email address"},
}

type contestURI struct {
	ContestID string `uri:"contestID" binding:"required"`
}

type photoURI struct {
	PhotoID string `uri:"photoID" binding:"required"`
}

type contestsQuery struct {
	IncludeClosed bool `form:"includeClosed"`
}

type signRequest struct {
	ParamsToSign map[string]any `json:"paramsToSign"`
	PublicID     string         `json:"public_id"`
}

func (s *Server) handleToggleVote(c *gin.Context) {
	var req votesRequest
	if !bindJSON(c, &req, votesMessages, "invalid vote request") {
		return
	}
	agg, err := s.voting.ToggleVote(c.Request.Context(), voting.ToggleInput{
		PhotoID:   req.PhotoID,
		VoterID:   req.VoterID,
		Category:  req.VoteCategory,
		ContestID: req.ContestID,
	})
	if err != nil {
		writeServiceError(c, err, errorMessages{NotFound: "photo not found", Failure: "failed to process vote"})
		return
	}
	writeJSON(c, http.StatusOK, agg)
}

func (s *Server) handleCreatePhoto(c *gin.Context) {
	var req photosRequest
	if !bindJSON(c, &req, photosMessages, "invalid photo request") {
		return
	}
	photo, err := s.voting.SubmitPhoto(c.Request.Context(), voting.SubmitPhotoInput{
		PublicID:       req.PublicID,
		SecureURL:      req.SecureURL,
		Title:          req.Title,
		ContestID:      req.ContestID,
		SubmitterEmail: req.SubmitterEmail,
		SubmitterID:    req.SubmitterID,
		UploadInfo:     req.UploadInfo,
	})
	if err != nil {
		writeServiceError(c, err, errorMessages{NotFound: "contest not found", Failure: "failed to save photo"})
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": photo.ID})
}

func (s *Server) handleGetPhoto(c *gin.Context) {
	var uri photoURI
	if !bindURI(c, &uri) {
		return
	}
	agg, err := s.voting.GetAggregatedPhoto(c.Request.Context(), uri.PhotoID, viewerID(c))
	if err != nil {
		writeServiceError(c, err, errorMessages{NotFound: "photo not found", Failure: "failed to load photo"})
		return
	}
	writeJSON(c, http.StatusOK, agg)
}

func (s *Server) handleListContests(c *gin.Context) {
	var query contestsQuery
	if !bindQuery(c, &query) {
		return
	}
	contests, err := s.voting.ListContests(c.Request.Context(), query.IncludeClosed)
	if err != nil {
		writeServiceError(c, err, errorMessages{Failure: "failed to load contests"})
		return
	}
	writeJSON(c, http.StatusOK, contests)
}

func (s *Server) handleContestStatus(c *gin.Context) {
	var uri contestURI
	if !bindURI(c, &uri) {
		return
	}
	status, err := s.voting.GetContestStatus(c.Request.Context(), uri.ContestID)
	if err != nil {
		writeServiceError(c, err, errorMessages{NotFound: "contest not found", Failure: "failed to load contest"})
		return
	}
	writeJSON(c, http.StatusOK, status)
}

func (s *Server) handleContestPhotos(c *gin.Context) {
	var uri contestURI
	if !bindURI(c, &uri) {
		return
	}
	ctx := c.Request.Context()
	if _, err := s.voting.GetContest(ctx, uri.ContestID); err != nil {
		writeServiceError(c, err, errorMessages{NotFound: "contest not found", Failure: "failed to load photos"})
		return
	}
	photos, err := s.voting.ListAggregatedPhotosForContest(ctx, uri.ContestID, viewerID(c))
	if err != nil {
		writeServiceError(c, err, errorMessages{NotFound: "contest not found", Failure: "failed to load photos"})
		return
	}
	writeJSON(c, http.StatusOK, photos)
}

func (s *Server) handleSignUpload(c *gin.Context) {
	var req signRequest
	if !bindJSON(c, &req, nil, "invalid signing request") {
		return
	}
	params := req.ParamsToSign
	if params == nil {
		params = make(map[string]any)
	}
	if req.PublicID != "" {
		params["public_id"] = req.PublicID
	}
	signed, err := s.signer.Sign(params)
	if err != nil {
		writeServiceError(c, err, errorMessages{Failure: "failed to sign upload"})
		return
	}
	logging.Log.WithFields(logrus.Fields{
		"folder":    signed.Folder,
		"timestamp": signed.Timestamp,
	}).Debug("upload signed")
	writeJSON(c, http.StatusOK, signed)
}

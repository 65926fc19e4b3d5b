package web

import "prized-pic/internal/voting"

type HomeData struct {
	Contests []voting.ContestView
	VoterID  string
}

type BrowseData struct {
	Contests   []voting.ContestView
	Selected   *voting.ContestView
	Photos     []voting.PhotoAggregate
	Pagination PaginationData
	VoterID    string
}

type PhotoViewData struct {
	Contest *voting.ContestView
	Photo   *voting.PhotoAggregate
	PrevID  string
	NextID  string
	VoterID string
}

type SubmitData struct {
	Contests       []voting.ContestView
	UploadsEnabled bool
	VoterID        string
	Selected       string
}

type PaginationData struct {
	BasePath   string
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

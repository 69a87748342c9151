package handler

import (
	"payscope/internal/comp/models"
	"payscope/internal/comp/service/query"
)

// SearchResponse is the page envelope for record listings.
type SearchResponse struct {
	Total   int                        `json:"total"`
	Limit   int                        `json:"limit"`
	Offset  int                        `json:"offset"`
	Records []*models.CompensationView `json:"records"`
}

func fromResult(res *query.Result) SearchResponse {
	records := res.Records
	if records == nil {
		records = []*models.CompensationView{}
	}
	return SearchResponse{
		Total:   res.Total,
		Limit:   res.Limit,
		Offset:  res.Offset,
		Records: records,
	}
}

// LocationSalariesResponse adds the city mean to a location listing.
type LocationSalariesResponse struct {
	SearchResponse
	City            string  `json:"city"`
	AverageTotal    float64 `json:"average_total_compensation"`
	MatchingRecords int     `json:"matching_records"`
}

// SubmitRecordResponse acknowledges a stored observation.
type SubmitRecordResponse struct {
	Record *models.CompensationRecord `json:"record"`
}

// GenerateResponse reports a generator run.
type GenerateResponse struct {
	Generated int `json:"generated"`
}

// DeleteResponse reports a delete-all run.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

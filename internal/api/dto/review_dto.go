package dto

type SubmitReviewRequest struct {
	SubjectID       string `json:"subject_id" binding:"required"`
	OverallRating   int    `json:"overall_rating" binding:"required"`
	Quality         int    `json:"quality" binding:"required"`
	Timeliness      int    `json:"timeliness" binding:"required"`
	Communication   int    `json:"communication" binding:"required"`
	Professionalism int    `json:"professionalism" binding:"required"`
	Comment         string `json:"comment"`
}

type AttachResponseRequest struct {
	Response string `json:"response" binding:"required"`
}

type ReviewDTO struct {
	ReviewID        string `json:"review_id"`
	JobID           string `json:"job_id"`
	AuthorRole      string `json:"author_role"`
	AuthorID        string `json:"author_id"`
	SubjectID       string `json:"subject_id"`
	OverallRating   int    `json:"overall_rating"`
	Quality         int    `json:"quality"`
	Timeliness      int    `json:"timeliness"`
	Communication   int    `json:"communication"`
	Professionalism int    `json:"professionalism"`
	Comment         string `json:"comment,omitempty"`
	Response        string `json:"response,omitempty"`
	CreatedAt       string `json:"created_at"`
}

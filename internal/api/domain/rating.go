package domain

// Review author roles
const (
	ReviewAuthorHotel   = "hotel"
	ReviewAuthorCleaner = "cleaner"
)

// Rating category names
const (
	CategoryQuality         = "quality"
	CategoryTimeliness      = "timeliness"
	CategoryCommunication   = "communication"
	CategoryProfessionalism = "professionalism"
)

// Rating holds one review's scores as fed into aggregation.
type Rating struct {
	Overall         int
	Quality         int
	Timeliness      int
	Communication   int
	Professionalism int
}

// RatingAggregate holds derived mean statistics for a review subject.
// An empty review set yields the zero aggregate, never an error.
type RatingAggregate struct {
	ReviewCount     int     `json:"review_count"`
	Overall         float64 `json:"overall"`
	Quality         float64 `json:"quality"`
	Timeliness      float64 `json:"timeliness"`
	Communication   float64 `json:"communication"`
	Professionalism float64 `json:"professionalism"`
}

// ValidRating reports whether every score of r lies in [1,5].
func ValidRating(r Rating) bool {
	for _, v := range []int{r.Overall, r.Quality, r.Timeliness, r.Communication, r.Professionalism} {
		if v < 1 || v > 5 {
			return false
		}
	}
	return true
}

// AggregateRatings computes arithmetic means across a subject's reviews.
func AggregateRatings(ratings []Rating) RatingAggregate {
	if len(ratings) == 0 {
		return RatingAggregate{}
	}

	var agg RatingAggregate
	var overall, quality, timeliness, communication, professionalism int

	for _, r := range ratings {
		overall += r.Overall
		quality += r.Quality
		timeliness += r.Timeliness
		communication += r.Communication
		professionalism += r.Professionalism
	}

	n := float64(len(ratings))
	agg.ReviewCount = len(ratings)
	agg.Overall = float64(overall) / n
	agg.Quality = float64(quality) / n
	agg.Timeliness = float64(timeliness) / n
	agg.Communication = float64(communication) / n
	agg.Professionalism = float64(professionalism) / n

	return agg
}

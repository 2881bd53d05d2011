package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name    string
		ratings []Rating
		want    RatingAggregate
	}{
		{
			name:    "no reviews yields the zero aggregate",
			ratings: nil,
			want:    RatingAggregate{},
		},
		{
			name: "single review is its own mean",
			ratings: []Rating{
				{Overall: 5, Quality: 5, Timeliness: 4, Communication: 5, Professionalism: 3},
			},
			want: RatingAggregate{
				ReviewCount:     1,
				Overall:         5,
				Quality:         5,
				Timeliness:      4,
				Communication:   5,
				Professionalism: 3,
			},
		},
		{
			name: "means across several reviews",
			ratings: []Rating{
				{Overall: 5, Quality: 5, Timeliness: 5, Communication: 5, Professionalism: 5},
				{Overall: 3, Quality: 4, Timeliness: 2, Communication: 3, Professionalism: 4},
				{Overall: 4, Quality: 3, Timeliness: 5, Communication: 4, Professionalism: 3},
			},
			want: RatingAggregate{
				ReviewCount:     3,
				Overall:         4,
				Quality:         4,
				Timeliness:      4,
				Communication:   4,
				Professionalism: 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateRatings(tt.ratings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidRating(t *testing.T) {
	valid := Rating{Overall: 3, Quality: 1, Timeliness: 5, Communication: 2, Professionalism: 4}
	assert.True(t, ValidRating(valid))

	tooLow := valid
	tooLow.Timeliness = 0
	assert.False(t, ValidRating(tooLow))

	tooHigh := valid
	tooHigh.Overall = 6
	assert.False(t, ValidRating(tooHigh))
}

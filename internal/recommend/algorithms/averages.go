// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"github.com/tomtom215/forkcast/internal/models"
)

// UserAverage returns the mean of all the user's rating values, repeated
// ratings included. A user without ratings averages 0.
func UserAverage(u *models.User) float64 {
	if len(u.Ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range u.Ratings {
		sum += r.Value
	}
	return sum / float64(len(u.Ratings))
}

// ItemAverages returns the mean rating of every rated item, scanning from the
// users side and counting each user's first rating of an item once. Items no
// one rated are absent from the result.
func ItemAverages(users []*models.User) map[int64]float64 {
	type acc struct {
		sum   float64
		count int
	}

	totals := make(map[int64]*acc)
	for _, u := range users {
		for itemID, value := range firstRatings(u) {
			a, ok := totals[itemID]
			if !ok {
				a = &acc{}
				totals[itemID] = a
			}
			a.sum += value
			a.count++
		}
	}

	avgs := make(map[int64]float64, len(totals))
	for itemID, a := range totals {
		avgs[itemID] = a.sum / float64(a.count)
	}
	return avgs
}

package dataset

import (
	"math/rand"
	"sort"

	"grafoml-pc5/internal/models"
)

// seed fija para que el subsampleo sea reproducible entre rebuilds
const sampleSeed = 42

// FilterActiveUsers se queda con las interacciones positivas (rating >=
// threshold) de usuarios con al menos minLikes de esas interacciones. Si
// sampleN > 0 y hay más usuarios elegibles, subsamplea a sampleN usuarios con
// seed fija.
//
// El resultado es determinista: los usuarios elegibles se ordenan por id
// antes de samplear y las filas conservan el orden del input.
func FilterActiveUsers(ratings []models.RatingDoc, minLikes int, threshold float64, sampleN int) []models.RatingDoc {
	positive := make([]models.RatingDoc, 0, len(ratings))
	counts := make(map[int]int)
	for _, r := range ratings {
		if r.Rating >= threshold {
			positive = append(positive, r)
			counts[r.UserID]++
		}
	}

	var eligible []int
	for uid, n := range counts {
		if n >= minLikes {
			eligible = append(eligible, uid)
		}
	}
	sort.Ints(eligible)

	if sampleN > 0 && sampleN < len(eligible) {
		rng := rand.New(rand.NewSource(sampleSeed))
		rng.Shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
		eligible = eligible[:sampleN]
	}

	keep := make(map[int]struct{}, len(eligible))
	for _, uid := range eligible {
		keep[uid] = struct{}{}
	}

	out := make([]models.RatingDoc, 0, len(positive))
	for _, r := range positive {
		if _, ok := keep[r.UserID]; ok {
			out = append(out, r)
		}
	}
	return out
}

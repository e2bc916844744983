package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecMovie es una película recomendada con sus señales de score.
type RecMovie struct {
	MovieNode  string   `bson:"movieNode" json:"movieNode"`
	MovieID    int      `bson:"movieId"   json:"movieId"`
	Title      string   `bson:"title"     json:"title"`
	Genres     []string `bson:"genres"    json:"genres"`
	Jaccard    float64  `bson:"jaccard"   json:"jaccard"`
	Common2Hop int      `bson:"common2hop" json:"common2hop"`
	AvgRating  *float64 `bson:"avgRating,omitempty" json:"avgRating,omitempty"`
	Score      float64  `bson:"score"     json:"score"`
}

// Recommendation es el historial que guardamos en Mongo por cada
// recomendación servida.
type Recommendation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int                `bson:"userId"        json:"userId"`
	Algo      string             `bson:"algo"          json:"algo"`
	Params    any                `bson:"params"        json:"params"`
	Items     []RecMovie         `bson:"items"         json:"items"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}

// SimilarUser es un usuario de referencia rankeado por cuántas de las
// películas marcadas como "me gusta" comparte.
type SimilarUser struct {
	UserNode    string `json:"userNode"`
	UserID      int    `json:"userId"`
	SharedLiked int    `json:"sharedLiked"`
}

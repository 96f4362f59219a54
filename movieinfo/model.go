package movieinfo

import (
	"embed"

	"github.com/kbukum/fluxkit/store"
)

// MovieInfo describes one movie.
type MovieInfo struct {
	ID          string   `json:"movieInfoId" bson:"_id" gorm:"column:movie_info_id;primaryKey"`
	Name        string   `json:"name" bson:"name" gorm:"column:name" validate:"required" msg:"movieInfo.name must be present"`
	Year        int      `json:"year" bson:"year" gorm:"column:year" validate:"gt=0" msg:"movieInfo.year must be present and positive"`
	Cast        []string `json:"cast" bson:"cast" gorm:"column:cast_members;serializer:json" validate:"required,min=1,dive,notblank" msg:"movieInfo.cast must be present"`
	ReleaseDate string   `json:"releaseDate,omitempty" bson:"release_date,omitempty" gorm:"column:release_date" validate:"omitempty,datetime=2006-01-02" msg:"movieInfo.releaseDate must be a yyyy-mm-dd date"`
}

// TableName is the sqlite table holding movie infos.
func (MovieInfo) TableName() string { return "movie_infos" }

// Identity exposes the MovieInfo ID to the stores.
var Identity = store.Identity[MovieInfo]{
	ID: func(m MovieInfo) string { return m.ID },
	WithID: func(m MovieInfo, id string) MovieInfo {
		m.ID = id
		return m
	},
}

const (
	// Resource names the record in errors and logs.
	Resource = "movieInfo"
	// KeyColumn is the primary key column of the sqlite table.
	KeyColumn = "movie_info_id"
	// Collection is the mongo collection and redis hash holding records.
	Collection = "movieInfo"
)

// Migrations holds the sqlite schema, applied from the "migrations"
// directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS

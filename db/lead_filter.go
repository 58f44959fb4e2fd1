package db

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadFilters holds the optional leads query parameters. Unset fields put
// no constraint on the query; set fields combine with logical AND.
type LeadFilters struct {
	Company string
	City    string
	State   string

	Status []string
	Source []string

	ScoreMin *int
	ScoreMax *int

	LeadValueMin *float64
	LeadValueMax *float64

	IsQualified *bool

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	LastActivityFrom *time.Time
	LastActivityTo   *time.Time
}

// Filter builds the combined mongo filter document, one clause per set
// field. An empty LeadFilters yields the match-all filter.
func (f *LeadFilters) Filter() bson.M {
	filter := bson.M{}

	if f == nil {
		return filter
	}

	// case-insensitive substring match
	if f.Company != "" {
		filter["company"] = containsPattern(f.Company)
	}

	if f.City != "" {
		filter["city"] = containsPattern(f.City)
	}

	if f.State != "" {
		filter["state"] = containsPattern(f.State)
	}

	// membership in the allowed enum lists
	if len(f.Status) > 0 {
		filter["status"] = bson.M{"$in": f.Status}
	}

	if len(f.Source) > 0 {
		filter["source"] = bson.M{"$in": f.Source}
	}

	// inclusive numeric ranges, either bound optional
	if f.ScoreMin != nil || f.ScoreMax != nil {
		score := bson.M{}
		if f.ScoreMin != nil {
			score["$gte"] = *f.ScoreMin
		}
		if f.ScoreMax != nil {
			score["$lte"] = *f.ScoreMax
		}
		filter["score"] = score
	}

	if f.LeadValueMin != nil || f.LeadValueMax != nil {
		leadValue := bson.M{}
		if f.LeadValueMin != nil {
			leadValue["$gte"] = *f.LeadValueMin
		}
		if f.LeadValueMax != nil {
			leadValue["$lte"] = *f.LeadValueMax
		}
		filter["lead_value"] = leadValue
	}

	if f.IsQualified != nil {
		filter["is_qualified"] = *f.IsQualified
	}

	// inclusive date ranges; the upper bound covers its whole day
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		createdAt := bson.M{}
		if f.CreatedFrom != nil {
			createdAt["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			createdAt["$lte"] = EndOfDay(*f.CreatedTo)
		}
		filter["created_at"] = createdAt
	}

	if f.LastActivityFrom != nil || f.LastActivityTo != nil {
		lastActivity := bson.M{}
		if f.LastActivityFrom != nil {
			lastActivity["$gte"] = *f.LastActivityFrom
		}
		if f.LastActivityTo != nil {
			lastActivity["$lte"] = EndOfDay(*f.LastActivityTo)
		}
		filter["last_activity_at"] = lastActivity
	}

	return filter
}

// EndOfDay extends t to 23:59:59.999 of its day so range upper bounds
// include the whole final day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

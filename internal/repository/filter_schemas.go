package repository

import "github.com/spec-kit/resume-server/internal/query"

// ResumeFilterSchema is the allow-list for resume list queries.
var ResumeFilterSchema = query.Schema{
	Fields: map[string]query.Field{
		"status":        {Column: "status", Kind: query.MatchExact},
		"resumeName":    {Column: "resume_name", Kind: query.MatchSubstring},
		"candidateName": {Column: "candidate_name", Kind: query.MatchSubstring},
		"phone":         {Column: "phone", Kind: query.MatchSubstring},
		"email":         {Column: "email", Kind: query.MatchSubstring},
	},
	SearchColumns: []string{"resume_name", "candidate_name", "email", "phone"},
	Sortable: map[string]string{
		"uploadTime":    "upload_time",
		"reviewTime":    "review_time",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
		"status":        "status",
		"resumeName":    "resume_name",
		"candidateName": "candidate_name",
		"aiScore":       "ai_score",
	},
	DefaultSortColumn: "upload_time",
	OwnerColumn:       "user_id",
}

// PositionFilterSchema is the allow-list for position list queries.
var PositionFilterSchema = query.Schema{
	Fields: map[string]query.Field{
		"status":          {Column: "status", Kind: query.MatchExact},
		"department":      {Column: "department", Kind: query.MatchExact},
		"workType":        {Column: "work_type", Kind: query.MatchExact},
		"experienceLevel": {Column: "experience_level", Kind: query.MatchExact},
		"positionName":    {Column: "position_name", Kind: query.MatchSubstring},
		"workLocation":    {Column: "work_location", Kind: query.MatchSubstring},
	},
	SearchColumns: []string{"position_name", "department", "description", "work_location"},
	Sortable: map[string]string{
		"createdAt":       "created_at",
		"updatedAt":       "updated_at",
		"publishTime":     "publish_time",
		"status":          "status",
		"positionName":    "position_name",
		"department":      "department",
		"salaryMin":       "salary_min",
		"salaryMax":       "salary_max",
		"experienceLevel": "experience_level",
	},
	DefaultSortColumn: "created_at",
	OwnerColumn:       "user_id",
}

package schema

// ReviewTable represents the 'reviews' table
type ReviewTable struct {
	Table     string
	ID        string
	UserID    string
	CourseID  string
	Rating    string
	Comment   string
	CreatedAt string
}

// Review is the schema definition for reviews
var Review = ReviewTable{
	Table:     "reviews",
	ID:        "id",
	UserID:    "user_id",
	CourseID:  "course_id",
	Rating:    "rating",
	Comment:   "comment",
	CreatedAt: "created_at",
}

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.UserID, t.CourseID, t.Rating, t.Comment, t.CreatedAt}
}

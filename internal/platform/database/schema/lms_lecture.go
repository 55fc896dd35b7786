package schema

// LectureTable represents the 'lectures' table
type LectureTable struct {
	Table      string
	ID         string
	CourseID   string
	Title      string
	VideoURL   string
	OrderIndex string
	CreatedAt  string
}

// Lecture is the schema definition for lectures
var Lecture = LectureTable{
	Table:      "lectures",
	ID:         "id",
	CourseID:   "course_id",
	Title:      "title",
	VideoURL:   "video_url",
	OrderIndex: "order_index",
	CreatedAt:  "created_at",
}

func (t LectureTable) Columns() []string {
	return []string{t.ID, t.CourseID, t.Title, t.VideoURL, t.OrderIndex, t.CreatedAt}
}

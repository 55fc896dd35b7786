package schema

// CourseTable represents the 'courses' table
type CourseTable struct {
	Table        string
	ID           string
	Title        string
	Description  string
	Price        string
	Level        string
	ThumbnailURL string
	IsPublic     string
	InstructorID string
	CategoryID   string
	CreatedAt    string
	UpdatedAt    string
}

// Course is the schema definition for courses
var Course = CourseTable{
	Table:        "courses",
	ID:           "id",
	Title:        "title",
	Description:  "description",
	Price:        "price",
	Level:        "level",
	ThumbnailURL: "thumbnail_url",
	IsPublic:     "is_public",
	InstructorID: "instructor_id",
	CategoryID:   "category_id",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t CourseTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Price, t.Level, t.ThumbnailURL,
		t.IsPublic, t.InstructorID, t.CategoryID, t.CreatedAt, t.UpdatedAt,
	}
}

package schema

// EnrollmentTable represents the 'enrollments' table
type EnrollmentTable struct {
	Table      string
	ID         string
	UserID     string
	CourseID   string
	Status     string
	EnrolledAt string
}

// Enrollment is the schema definition for enrollments
var Enrollment = EnrollmentTable{
	Table:      "enrollments",
	ID:         "id",
	UserID:     "user_id",
	CourseID:   "course_id",
	Status:     "status",
	EnrolledAt: "enrolled_at",
}

func (t EnrollmentTable) Columns() []string {
	return []string{t.ID, t.UserID, t.CourseID, t.Status, t.EnrolledAt}
}

package specification

import "gorm.io/gorm"

type ByTeacherID struct {
	TeacherID string
}

func (s ByTeacherID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("teacher_id = ?", s.TeacherID)
}

package models

// Note is a free-form note attached to exactly one subject.
type Note struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	SubjectID int64  `json:"subject_id"`
}

// NoteGroup is the pre-grouped shape the backend returns from the notes
// fetch endpoint: one entry per subject that has notes.
type NoteGroup struct {
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Notes       []Note `json:"notes"`
}

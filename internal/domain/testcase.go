package domain

// TestCase is evaluated in Position order. Hidden cases are withheld from participants but still run.
type TestCase struct {
	ID             int64  `db:"id" json:"id"`
	QuestionID     int64  `db:"question_id" json:"questionId"`
	Position       int    `db:"position" json:"position"`
	Input          string `db:"input" json:"input"`
	ExpectedOutput string `db:"expected_output" json:"expectedOutput"`
	IsHidden       bool   `db:"is_hidden" json:"isHidden"`
	Description    string `db:"description" json:"description"`
}

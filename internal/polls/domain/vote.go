package domain

import "time"

// Vote is one user's decision on one question. At most one exists per
// (UserID, QuestionID).
type Vote struct {
	ID         int64
	UserID     int64
	QuestionID int64
	ChoiceID   int64
	CreatedAt  time.Time
}

// VotedQuestion pairs a question with the text of the choice a user picked.
type VotedQuestion struct {
	QuestionID   int64
	QuestionText string
	ChoiceText   string
	VotedAt      time.Time
}

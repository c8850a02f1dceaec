package domain

import "time"

// QuestionFilter narrows ListQuestions. Zero values mean "no constraint".
type QuestionFilter struct {
	Search string     // case-insensitive substring of the question text
	Since  *time.Time // pub_date >= Since
	Until  *time.Time // pub_date <= Until
	Limit  int
	Offset int
}

type UserFilter struct {
	Role   Role
	Search string // username, first or last name
	Limit  int
	Offset int
}

type VoteFilter struct {
	QuestionID int64
	UserID     int64
	Limit      int
	Offset     int
}

package domain

import "time"

// Question together with its choices forms the aggregate returned to callers.
type Question struct {
	ID      int64
	Text    string
	PubDate time.Time
	Choices []Choice // insertion order
}

type Choice struct {
	ID         int64
	QuestionID int64
	Text       string
	Votes      int64
}

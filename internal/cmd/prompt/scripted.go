package prompt

import (
	"context"
	"strings"
)

// Scripted replays canned answers in order and records every question it
// was asked. Once the answers run out it answers no and the empty string.
type Scripted struct {
	Answers []string
	Asked   []string
}

var _ Dialog = (*Scripted)(nil)

// NewScripted returns a Scripted dialog with the given answers.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

// Confirm implements Dialog.
func (s *Scripted) Confirm(_ context.Context, message string) (bool, error) {
	answer := strings.ToLower(strings.TrimSpace(s.next(message)))
	return answer == "y" || answer == "yes", nil
}

// Input implements Dialog.
func (s *Scripted) Input(_ context.Context, message string) (string, error) {
	return strings.TrimSpace(s.next(message)), nil
}

func (s *Scripted) next(message string) string {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return ""
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer
}

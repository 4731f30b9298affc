package domain

import "errors"

var (
	// ErrQuestionNotFound is returned when a question ID does not resolve.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrExamNotFound is returned when an exam ID does not resolve.
	ErrExamNotFound = errors.New("exam not found")
	// ErrResultNotFound is returned when a result ID does not resolve.
	ErrResultNotFound = errors.New("exam result not found")
	// ErrUserNotFound is returned when a username does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when login fails; it deliberately does
	// not distinguish a missing account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering a username that already
	// exists (case-insensitively).
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidUsername is returned when registering a blank username.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrNoQuestions is returned when an exam resolves to zero questions and a
	// session cannot start.
	ErrNoQuestions = errors.New("exam has no resolvable questions")
	// ErrSessionClosed is returned when acting on a session that has already
	// been submitted or abandoned.
	ErrSessionClosed = errors.New("exam session is no longer in progress")
)

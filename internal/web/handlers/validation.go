package handlers

import (
	"fmt"
	"strings"

	"github.com/alphalearn/alphalearn/internal/database"
)

const maxUsernameLength = 64

// ValidationError represents a rejected request field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks that a username is present and sane.
func ValidateUsername(username string) error {
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > maxUsernameLength {
		return ValidationError{Field: "username", Message: "username is too long"}
	}
	if strings.ContainsRune(username, '\x00') {
		return ValidationError{Field: "username", Message: "username contains invalid characters"}
	}
	return nil
}

// ValidatePassword checks that a credential was supplied. Its storage
// form is the caller's concern; the server does not inspect it further.
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// ValidateMode checks the difficulty mode against the closed enumeration.
func ValidateMode(mode string) error {
	if !database.Mode(mode).Valid() {
		return ValidationError{Field: "mode", Message: "mode must be one of beginner, intermediate, proficient"}
	}
	return nil
}

// ValidateScorePercent checks that a score is a percentage.
func ValidateScorePercent(score int) error {
	if score < 0 || score > 100 {
		return ValidationError{Field: "score_percent", Message: "score must be between 0 and 100"}
	}
	return nil
}

// ValidateWord checks the required fields of one word entry.
func ValidateWord(index int, letter, wordText, meaning string) error {
	field := fmt.Sprintf("words[%d]", index)
	if letter == "" {
		return ValidationError{Field: field, Message: "letter is required"}
	}
	if wordText == "" {
		return ValidationError{Field: field, Message: "word_text is required"}
	}
	if meaning == "" {
		return ValidationError{Field: field, Message: "meaning is required"}
	}
	return nil
}

package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taskboard-dev/taskboard/shared/errors"
)

const maxTitleLength = 255

// TitleValidator checks board, card and item titles. Titles are plain text
// and are stored as given apart from surrounding whitespace.
type TitleValidator struct{}

func NewTitleValidator() *TitleValidator {
	return &TitleValidator{}
}

func (v *TitleValidator) Title(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.BadRequest("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", errors.BadRequest(fmt.Sprintf("title is too long, max %d characters", maxTitleLength))
	}
	return title, nil
}

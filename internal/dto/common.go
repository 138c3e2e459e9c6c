package dto

import (
	"strings"

	"github.com/aarondl/null/v8"
)

// BlankToNull: пустое или состоящее из пробелов значение считается отсутствующим.
func BlankToNull(s null.String) null.String {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return null.String{}
	}
	return s
}

package services

import (
	"strings"

	"github.com/google/uuid"
)

// isID reports whether s is a well-formed record identifier.
func isID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

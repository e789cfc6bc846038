package db

import (
	"fmt"
	"strings"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/schema"
)

// Classify converts a store error into an application error. Errors that are
// already *apperr.Error pass through. notFound is used for a missing row;
// internal is the client-facing message for anything unexpected.
func Classify(err error, notFound, internal string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	switch {
	case IsNotFound(err):
		return apperr.NotFound(notFound)
	case IsForeignKeyViolation(err):
		return apperr.NotFound(parentNotFound(ConstraintName(err)))
	case IsUniqueViolation(err):
		return apperr.Conflict(duplicateMessage(ConstraintName(err)))
	case IsConstraintViolation(err):
		msg := "Invalid field value"
		if c := ConstraintName(err); c != "" {
			msg = fmt.Sprintf("Invalid field value (%s)", c)
		}
		return apperr.Validation(msg)
	default:
		return apperr.Internal(internal, err)
	}
}

// parentNotFound maps "<table>_<column>_fkey" to "<Parent> not found".
func parentNotFound(constraint string) string {
	reg := schema.MedTrack()
	for _, t := range reg.Tables() {
		for _, fk := range t.ForeignKeys {
			if constraint == t.Name+"_"+fk.Column+"_fkey" {
				return capitalize(fk.RefTable) + " not found"
			}
		}
	}
	return "Referenced record not found"
}

// duplicateMessage maps "<table>_<column>_key" to "<Column> already exists".
func duplicateMessage(constraint string) string {
	reg := schema.MedTrack()
	for _, t := range reg.Tables() {
		for _, col := range t.Columns {
			if col.Unique && constraint == t.Name+"_"+col.Name+"_key" {
				return capitalize(col.Name) + " already exists"
			}
		}
	}
	return "Record already exists"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

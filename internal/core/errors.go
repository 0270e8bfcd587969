// Package core provides the business logic for the gallery's record keeping.
//
// # Error Codes Reference
//
// This file maps structured failure reasons to user-friendly messages with
// codes for support reference. When users encounter errors they can quote
// the error code for faster diagnosis.
//
//	VAL001 - Missing field: A required field is absent or empty
//	         Action: Ensure all required columns have values
//
//	VAL002 - Invalid number: A numeric field could not be parsed
//	         Action: Use plain decimal numbers without symbols
//
//	VAL003 - Out of range: Commission rate outside the allowed 0-1 range
//	         Action: Enter the rate as a fraction, e.g. 0.4 for 40%
//
//	VAL004 - Invalid enum: Classification is not one of the recognized values
//	         Action: Use one of the listed classifications exactly
//
//	VAL005 - Invalid date: A date did not match an accepted form
//	         Action: Use YYYY-MM-DD or MM/DD/YYYY
//
//	FILE001 - Empty import: The file held no data rows
//	          Action: Upload a CSV with a header row and at least one record
//
//	FILE002 - File read: The file could not be read or parsed as CSV
//	          Action: Ensure the file is comma-separated UTF-8 text
//
//	ERR000 - Unknown error (fallback)
//	         Action: Please try again or contact support
//
// Unlike string-pattern matching, the reason on a RowError is authoritative:
// the first matching reason wins and there is no ambiguity between
// categories.
package core

import (
	"errors"
	"fmt"
)

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var reasonMessages = map[Reason]UserMessage{
	ReasonMissingField: {
		Message: "A required field is missing or empty",
		Action:  "Ensure all required columns have values",
		Code:    "VAL001",
	},
	ReasonInvalidNumber: {
		Message: "Invalid number format detected",
		Action:  "Use plain decimal numbers without symbols",
		Code:    "VAL002",
	},
	ReasonOutOfRange: {
		Message: "Commission rate must be between 0 and 1",
		Action:  "Enter the rate as a fraction, e.g. 0.4 for 40%",
		Code:    "VAL003",
	},
	ReasonInvalidEnum: {
		Message: "Classification is not a recognized value",
		Action:  "Use one of the listed classifications exactly",
		Code:    "VAL004",
	},
	ReasonInvalidDate: {
		Message: "Invalid date format detected",
		Action:  "Use YYYY-MM-DD or MM/DD/YYYY",
		Code:    "VAL005",
	},
	ReasonEmptyImport: {
		Message: "The file held no data rows",
		Action:  "Upload a CSV with a header row and at least one record",
		Code:    "FILE001",
	},
	ReasonFileRead: {
		Message: "The file could not be read",
		Action:  "Ensure the file is comma-separated UTF-8 text",
		Code:    "FILE002",
	},
}

// defaultMessage is returned when an error carries no known reason (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message. Errors produced by
// the validators and importer carry a Reason; anything else falls back to
// the generic ERR000 message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var re *RowError
	if errors.As(err, &re) {
		if msg, ok := reasonMessages[re.Reason]; ok {
			return msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

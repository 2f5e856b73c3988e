package torznab

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexerError is the error document a torznab endpoint answers with, e.g.
// <error code="100" description="Incorrect user credentials"/>
type IndexerError struct {
	XMLName     xml.Name `xml:"error"`
	Code        int      `xml:"code,attr"`
	Description string   `xml:"description,attr"`
}

func (e *IndexerError) Error() string {
	return fmt.Sprintf("indexer error %d: %s", e.Code, e.Description)
}

// Is matches indexer errors by code, so errors.Is(err, ErrAPIDisabled) works on decoded documents.
func (e *IndexerError) Is(target error) bool {
	t, ok := target.(*IndexerError)
	return ok && t.Code == e.Code
}

func (e *IndexerError) httpStatus() int {
	switch {
	case e.Code >= 100 && e.Code < 200:
		return http.StatusUnauthorized
	case e.Code >= 200 && e.Code < 300:
		return http.StatusBadRequest
	case e.Code >= 300 && e.Code < 400:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

var (
	ErrIncorrectUserCreds     = &IndexerError{Code: 100, Description: "Incorrect user credentials"}
	ErrAccountSuspended       = &IndexerError{Code: 101, Description: "Account suspended"}
	ErrInsufficientPrivs      = &IndexerError{Code: 102, Description: "Insufficient privileges/not authorized"}
	ErrRegistrationDenied     = &IndexerError{Code: 103, Description: "Registration denied"}
	ErrRegistrationsAreClosed = &IndexerError{Code: 104, Description: "Registrations are closed"}
	ErrEmailAddressTaken      = &IndexerError{Code: 105, Description: "Invalid registration (Email Address Taken)"}
	ErrEmailAddressBadFormat  = &IndexerError{Code: 106, Description: "Invalid registration (Email Address Bad Format)"}
	ErrRegistrationFailed     = &IndexerError{Code: 107, Description: "Registration Failed (Data error)"}
	ErrMissingParameter       = &IndexerError{Code: 200, Description: "Missing parameter"}
	ErrIncorrectParameter     = &IndexerError{Code: 201, Description: "Incorrect parameter"}
	ErrNoSuchFunction         = &IndexerError{Code: 202, Description: "No such function. (Function not defined in this specification)."}
	ErrFunctionNotAvailable   = &IndexerError{Code: 203, Description: "Function not available. (Optional function is not implemented)."}
	ErrNoSuchItem             = &IndexerError{Code: 300, Description: "No such item."}
	ErrItemAlreadyExists      = &IndexerError{Code: 310, Description: "Item already exists."}
	ErrUnknownError           = &IndexerError{Code: 900, Description: "Unknown error"}
	ErrAPIDisabled            = &IndexerError{Code: 910, Description: "API Disabled"}
)

// Error writes a torznab error document with the code of err and the given description.
func Error(c *gin.Context, description string, err *IndexerError) {
	resp := &IndexerError{Code: err.Code, Description: description}
	x, mErr := xml.MarshalIndent(resp, "", "  ")
	if mErr != nil {
		http.Error(c.Writer, mErr.Error(), http.StatusInternalServerError)
		return
	}
	c.Header("Content-Type", "application/xml")
	c.Writer.WriteHeader(err.httpStatus())
	_, _ = c.Writer.Write(x)
}

// StatusError is returned when the indexer answers with a non-success HTTP status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Item mapping errors. Each one rejects a single feed item, never the whole search.
var (
	ErrNilItem      = errors.New("nil feed item")
	ErrMissingTitle = errors.New("missing title")
	ErrMissingSize  = errors.New("missing size")
	ErrMissingLink  = errors.New("missing link")
)

// EmptyExtensionError is returned when an item carries a torznab namespace without any attr records.
type EmptyExtensionError struct {
	Key string
}

func (e *EmptyExtensionError) Error() string {
	return fmt.Sprintf("empty extension %q", e.Key)
}

// ParseError is returned when a field is present but can't be converted to its type.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NameError is returned when a required release name parser rejected the item title.
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("failed to parse torrent name %q: %v", e.Name, e.Err)
}

func (e *NameError) Unwrap() error {
	return e.Err
}

package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the client lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrUnsupportedMediaType indicates no document codec handles the media type
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrDocumentDecode indicates the document model could not be built from the payload
	ErrDocumentDecode = errors.New("document decode failed")

	// ErrDocumentEncode indicates the redacted document could not be serialized
	ErrDocumentEncode = errors.New("document encode failed")

	// ErrRecognizerUnavailable indicates the entity recognizer could not be reached
	ErrRecognizerUnavailable = errors.New("recognizer unavailable")

	// ErrRateLimited indicates the client exceeded its request budget
	ErrRateLimited = errors.New("rate limited")
)

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven/mocks"
)

type redactionFixture struct {
	recognizer *mocks.MockRecognizer
	codec      *mocks.MockCodec
	audit      *mocks.MockAuditStore
	usage      *mocks.MockUsageStore
	svc        *redactionService
}

func newTestRedactionService() *redactionFixture {
	f := &redactionFixture{
		recognizer: mocks.NewMockRecognizer().
			WithTerm("Kai Muster", "PER").
			WithTerm("Acme GmbH", "ORG"),
		codec: mocks.NewMockCodec(),
		audit: mocks.NewMockAuditStore(),
		usage: mocks.NewMockUsageStore(),
	}
	f.svc = NewRedactionService(RedactionServiceConfig{
		Recognizers: mocks.StaticProvider{R: f.recognizer},
		Codecs:      mocks.NewMockCodecRegistry(f.codec),
		AuditStore:  f.audit,
		UsageStore:  f.usage,
	}).(*redactionService)
	return f
}

func TestRedactionService_RedactText(t *testing.T) {
	f := newTestRedactionService()

	out, err := f.svc.RedactText(context.Background(), domain.TextRedactionRequest{
		ClientID: "client-1",
		Text:     "Kai Muster works at Acme GmbH, mail kai@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "<PER_1> works at <ORG_1>, mail <EMAIL_1>", out.CleanText)
	assert.Equal(t, []domain.Replacement{
		{Original: "Kai Muster", Placeholder: "<PER_1>"},
		{Original: "Acme GmbH", Placeholder: "<ORG_1>"},
		{Original: "kai@example.com", Placeholder: "<EMAIL_1>"},
	}, out.Replacements)
}

func TestRedactionService_RedactText_Categories(t *testing.T) {
	f := newTestRedactionService()

	out, err := f.svc.RedactText(context.Background(), domain.TextRedactionRequest{
		Text:       "Kai Muster, kai@example.com",
		Categories: []string{"email"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kai Muster, <EMAIL_1>", out.CleanText)
	assert.Empty(t, f.recognizer.Calls(), "recognizer must not run for email-only requests")

	_, err = f.svc.RedactText(context.Background(), domain.TextRedactionRequest{
		Text:       "x",
		Categories: []string{"PHONE"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRedactionService_RecordsEventWithoutText(t *testing.T) {
	f := newTestRedactionService()

	_, err := f.svc.RedactText(context.Background(), domain.TextRedactionRequest{
		ClientID: "client-1",
		Text:     "Kai Muster und Kai Muster",
	})
	require.NoError(t, err)

	events := f.audit.Events()
	require.Len(t, events, 1)
	event := events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "client-1", event.ClientID)
	assert.Equal(t, domain.ModeText, event.Mode)
	assert.Equal(t, 1, event.Counts[domain.CategoryPerson])
	assert.Equal(t, len("Kai Muster und Kai Muster"), event.InputBytes)
	assert.False(t, event.CreatedAt.IsZero())

	stats, err := f.usage.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Requests)
	assert.Equal(t, int64(1), stats.TextRequests)
	assert.Equal(t, int64(1), stats.Redactions[domain.CategoryPerson])
}

func TestRedactionService_StoreFailuresDoNotFailRequest(t *testing.T) {
	f := newTestRedactionService()
	f.audit.SaveFn = func(*domain.RedactionEvent) error { return errors.New("connection refused") }
	f.usage.RecordFn = func(domain.RedactionMode, domain.CategoryCounts, int) error {
		return errors.New("connection refused")
	}

	out, err := f.svc.RedactText(context.Background(), domain.TextRedactionRequest{Text: "kai@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "<EMAIL_1>", out.CleanText)
}

func TestRedactionService_WithoutStores(t *testing.T) {
	svc := NewRedactionService(RedactionServiceConfig{
		Codecs: mocks.NewMockCodecRegistry(mocks.NewMockCodec()),
	})

	out, err := svc.RedactText(context.Background(), domain.TextRedactionRequest{Text: "kai@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "<EMAIL_1>", out.CleanText)
}

func TestRedactionService_RecognizerFailure(t *testing.T) {
	f := newTestRedactionService()
	f.recognizer.RecognizeFn = func(string) ([]domain.Entity, error) {
		return nil, domain.ErrRecognizerUnavailable
	}

	_, err := f.svc.RedactText(context.Background(), domain.TextRedactionRequest{Text: "Kai Muster"})
	assert.ErrorIs(t, err, domain.ErrRecognizerUnavailable)
	assert.Empty(t, f.audit.Events())
}

func TestRedactionService_RedactDocument(t *testing.T) {
	f := newTestRedactionService()

	resp, err := f.svc.RedactDocument(context.Background(), domain.DocumentRedactionRequest{
		ClientID:           "client-1",
		Content:            []byte("Kai Muster\nkai@example.com"),
		MediaType:          "text/plain",
		PreserveFormatting: true,
		Output:             domain.OutputBoth,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.CleanText)
	assert.Equal(t, "<PER_1>\n<EMAIL_1>", *resp.CleanText)
	assert.Equal(t, "<PER_1>\n<EMAIL_1>", string(resp.Content))
	assert.Equal(t, "text/plain", resp.MediaType)
	assert.Len(t, resp.Replacements, 2)
	assert.NotNil(t, resp.Warnings)

	events := f.audit.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.ModeDocument, events[0].Mode)
	assert.Equal(t, "text/plain", events[0].MediaType)
	assert.True(t, events[0].PreserveFormatting)
}

func TestRedactionService_RedactDocument_OutputModes(t *testing.T) {
	tests := []struct {
		output      domain.OutputMode
		wantText    bool
		wantContent bool
	}{
		{domain.OutputText, true, false},
		{domain.OutputDocument, false, true},
		{domain.OutputBoth, true, true},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			f := newTestRedactionService()
			var decoded *mocks.MockDecodedDocument
			f.codec.DecodeFn = func(data []byte) (driven.DecodedDocument, error) {
				decoded = &mocks.MockDecodedDocument{
					Doc: &domain.Document{Paragraphs: []*domain.Paragraph{domain.NewParagraph(string(data))}},
				}
				return decoded, nil
			}

			resp, err := f.svc.RedactDocument(context.Background(), domain.DocumentRedactionRequest{
				Content:   []byte("Kai Muster"),
				MediaType: "text/plain",
				Output:    tt.output,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantText, resp.CleanText != nil)
			assert.Equal(t, tt.wantContent, resp.Content != nil)
			if tt.wantContent {
				assert.Equal(t, 1, decoded.Encoded)
			} else {
				assert.Equal(t, 0, decoded.Encoded)
				assert.Equal(t, "Kai Muster", decoded.Doc.Paragraphs[0].Text())
			}
		})
	}
}

func TestRedactionService_RedactDocument_Errors(t *testing.T) {
	decodeErr := errors.New("not a zip")

	tests := []struct {
		name    string
		req     domain.DocumentRedactionRequest
		wantErr error
	}{
		{
			name:    "empty content",
			req:     domain.DocumentRedactionRequest{MediaType: "text/plain"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing media type",
			req:     domain.DocumentRedactionRequest{Content: []byte("x")},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown media type",
			req:     domain.DocumentRedactionRequest{Content: []byte("x"), MediaType: "application/pdf"},
			wantErr: domain.ErrUnsupportedMediaType,
		},
		{
			name:    "unknown output mode",
			req:     domain.DocumentRedactionRequest{Content: []byte("x"), MediaType: "text/plain", Output: "pdf"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown category",
			req:     domain.DocumentRedactionRequest{Content: []byte("x"), MediaType: "text/plain", Categories: []string{"IBAN"}},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "decode failure",
			req:     domain.DocumentRedactionRequest{Content: []byte("broken"), MediaType: "text/plain"},
			wantErr: domain.ErrDocumentDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestRedactionService()
			f.codec.DecodeFn = func(data []byte) (driven.DecodedDocument, error) {
				if string(data) == "broken" {
					return nil, errors.Join(domain.ErrDocumentDecode, decodeErr)
				}
				return mocks.NewMockCodec().Decode(data)
			}

			resp, err := f.svc.RedactDocument(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.audit.Events())
		})
	}
}

func TestRedactionService_RedactDocument_EncodeFailure(t *testing.T) {
	f := newTestRedactionService()
	f.codec.EncodeFn = func(*domain.Document) ([]byte, error) {
		return nil, domain.ErrDocumentEncode
	}

	_, err := f.svc.RedactDocument(context.Background(), domain.DocumentRedactionRequest{
		Content:   []byte("Kai Muster"),
		MediaType: "text/plain",
		Output:    domain.OutputDocument,
	})
	assert.ErrorIs(t, err, domain.ErrDocumentEncode)
}

func TestRedactionService_MediaTypes(t *testing.T) {
	f := newTestRedactionService()
	assert.Equal(t, []string{"text/plain"}, f.svc.MediaTypes())
}

package upstream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		status   int
		cause    string
		typ      string
		detail   string
		wantName string
		wantMsg  string
	}{
		{
			name:     "error field names the type",
			service:  "Panda",
			status:   404,
			cause:    `{"error":"NotFoundError","message":"Not Found"}`,
			wantName: "PandaNotFound",
			wantMsg:  "Not Found",
		},
		{
			name:     "generic code falls back to status",
			service:  "X",
			status:   400,
			cause:    `{"code":"Error","message":"bad uuid"}`,
			wantName: "X400",
			wantMsg:  "bad uuid",
		},
		{
			name:     "code used when ending in Error",
			service:  "Bridge",
			status:   422,
			cause:    `{"code":"ValidationError","message":"invalid"}`,
			wantName: "BridgeValidation",
			wantMsg:  "invalid",
		},
		{
			name:     "code without Error suffix ignored",
			service:  "Bridge",
			status:   422,
			cause:    `{"code":"invalid_parameters","message":"invalid"}`,
			wantName: "Bridge422",
			wantMsg:  "invalid",
		},
		{
			name:     "literal Error in error field ignored",
			service:  "M",
			status:   500,
			cause:    `{"error":"Error","code":"TimeoutError"}`,
			wantName: "MTimeout",
			wantMsg:  "500",
		},
		{
			name:     "errors title used when message missing",
			service:  "Persona",
			status:   400,
			cause:    `{"errors":[{"title":"Record not found"}],"err":"ignored"}`,
			wantName: "Persona400",
			wantMsg:  "Record not found",
		},
		{
			name:     "err used last",
			service:  "M",
			status:   400,
			cause:    `{"err":"USER_NF"}`,
			wantName: "M400",
			wantMsg:  "USER_NF",
		},
		{
			name:     "message wins over errors title",
			service:  "M",
			status:   400,
			cause:    `{"message":"first","errors":[{"title":"second"}]}`,
			wantName: "M400",
			wantMsg:  "first",
		},
		{
			name:     "html title",
			service:  "Bridge",
			status:   502,
			cause:    "<html><TITLE>502 Bad Gateway</TITLE></html>",
			wantName: "Bridge502",
			wantMsg:  "502 Bad Gateway",
		},
		{
			name:     "bare title",
			service:  "Bridge",
			status:   502,
			cause:    "<title>502 Bad Gateway</title>",
			wantName: "Bridge502",
			wantMsg:  "502 Bad Gateway",
		},
		{
			name:     "short plain text",
			service:  "Manteca",
			status:   404,
			cause:    "USER_NF",
			wantName: "Manteca404",
			wantMsg:  "USER_NF",
		},
		{
			name:     "plain text over limit",
			service:  "X",
			status:   500,
			cause:    strings.Repeat("a", 201),
			wantName: "X500",
			wantMsg:  "500",
		},
		{
			name:     "plain text at limit",
			service:  "X",
			status:   500,
			cause:    strings.Repeat("a", 200),
			wantName: "X500",
			wantMsg:  strings.Repeat("a", 200),
		},
		{
			name:     "html without title",
			service:  "X",
			status:   503,
			cause:    "<html><body>down</body></html>",
			wantName: "X503",
			wantMsg:  "503",
		},
		{
			name:     "json array is not an object",
			service:  "X",
			status:   400,
			cause:    `[{"message":"nope"}]`,
			wantName: "X400",
			wantMsg:  `[{"message":"nope"}]`,
		},
		{
			name:     "explicit type and detail skip parsing",
			service:  "X",
			status:   409,
			cause:    `{"error":"IgnoredError","message":"ignored"}`,
			typ:      "ConflictError",
			detail:   "already exists",
			wantName: "XConflict",
			wantMsg:  "already exists",
		},
		{
			name:     "empty cause",
			service:  "X",
			status:   500,
			wantName: "X500",
			wantMsg:  "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.service, tt.status, tt.cause, tt.typ, tt.detail)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestExtractorPrecedence(t *testing.T) {
	typeFields := make([]string, 0, len(TypeExtractors))
	for _, e := range TypeExtractors {
		typeFields = append(typeFields, e.Field)
	}
	detailFields := make([]string, 0, len(DetailExtractors))
	for _, e := range DetailExtractors {
		detailFields = append(detailFields, e.Field)
	}

	assert.Equal(t, []string{"error", "code"}, typeFields)
	assert.Equal(t, []string{"message", "errors[0].title", "err"}, detailFields)
}

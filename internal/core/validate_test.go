package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://test.com", true},
		{"https://test.com", true},
		{"test.com", true},
		{"HTTP://TEST.COM", true},
		{"https://sub.example.co.uk:8080/a/b.html?x=1&y=2#top", true},
		{"192.168.0.1", true},
		{"http://10.0.0.1:3000/health", true},
		{"not a url", false},
		{"http//missing-colon.com", false},
		{"localhost", false},
		{"ftp://test.com", false},
		{"http://test.c", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateFormat(tt.in))
		})
	}
}

func TestFind(t *testing.T) {
	records := []Record{
		{URL: "http://test.com", Type: "file"},
		{URL: "http://test1.com", Type: "folder"},
	}

	r, ok := Find(records, "http://test1.com")
	require.True(t, ok)
	assert.Equal(t, "folder", r.Type)

	// exact match only
	_, ok = Find(records, "http://test.com/")
	assert.False(t, ok)
	_, ok = Find(records, "HTTP://test.com")
	assert.False(t, ok)
	_, ok = Find(nil, "http://test.com")
	assert.False(t, ok)
}

func TestCheckStateMessage(t *testing.T) {
	assert.Equal(t, "", IdleState().Message("x"))
	assert.Equal(t, "Invalid URL format", InvalidFormatState().Message("x"))
	assert.Equal(t, "Invalid URL, URL does not exist!", NotFoundState().Message("x"))
	assert.Equal(t, "http://test.com exists, it is a file", FoundState("file").Message("http://test.com"))
	assert.True(t, NotFoundState().IsError())
	assert.False(t, FoundState("file").IsError())
	assert.Equal(t, "found(file)", FoundState("file").String())
}

func TestProviderError(t *testing.T) {
	base := errors.New("boom")
	err := NewProviderError("http", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, base)

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "http", pe.Provider)
	assert.Nil(t, NewProviderError("http", nil))
}

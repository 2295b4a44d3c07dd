package search

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom/domtest"
)

func TestAttachLogsQueries(t *testing.T) {
	doc, err := domtest.NewDocument(`<html><body><input id="search-input" type="search"></body></html>`)
	require.NoError(t, err)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := Attach(doc, logger)
	require.True(t, s.Active())

	doc.Input(doc.GetElementByID(InputID), "goroutines")
	assert.Contains(t, buf.String(), "msg=Search")
	assert.Contains(t, buf.String(), "query=goroutines")

	s.Detach()
	buf.Reset()
	doc.Input(doc.GetElementByID(InputID), "ignored")
	assert.Empty(t, buf.String())
}

func TestAttachWithoutInput(t *testing.T) {
	doc, err := domtest.NewDocument(`<html><body></body></html>`)
	require.NoError(t, err)
	s := Attach(doc, nil)
	assert.False(t, s.Active())
	s.Detach()
}

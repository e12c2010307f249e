package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipolls/internal/domain/comment"
)

func TestCSVRoundtrip(t *testing.T) {
	original := []comment.Comment{
		{
			ID:        "a1",
			PostTitle: "Debate de ontem",
			Text:      "o PS ganhou o debate",
			PostedAt:  "2025-05-01 10:00:00",
			Score:     42,
			Party:     "PS",
			Sentiment: comment.SentimentPositive,
		},
		{
			ID:       "a2",
			Text:     "texto com, vírgula e \"aspas\"",
			PostedAt: "2025-05-02",
			Score:    -3,
			Party:    comment.Undefined,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComments(&buf, original))

	got, err := ReadComments(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestReadCommentsHeaderAliases(t *testing.T) {
	input := "Comment,Date,Title\nadorei o debate,2025-05-01,Debate\n"

	got, err := ReadComments(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "adorei o debate", got[0].Text)
	assert.Equal(t, "2025-05-01", got[0].PostedAt)
	assert.Equal(t, "Debate", got[0].PostTitle)
}

func TestReadCommentsSkipsEmptyText(t *testing.T) {
	input := "texto_comentario,data_comentario\n,2025-05-01\nolá,2025-05-02\n"

	got, err := ReadComments(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "olá", got[0].Text)
}

func TestReadCommentsMissingTextColumn(t *testing.T) {
	input := "data_comentario,score\n2025-05-01,3\n"

	_, err := ReadComments(strings.NewReader(input))
	assert.Error(t, err)
}

func TestReadCommentsEmptyInput(t *testing.T) {
	_, err := ReadComments(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCommentsShortRows(t *testing.T) {
	input := "texto_comentario,data_comentario,score\nsó texto\n"

	got, err := ReadComments(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "só texto", got[0].Text)
	assert.Equal(t, "", got[0].PostedAt)
	assert.Equal(t, 0, got[0].Score)
}

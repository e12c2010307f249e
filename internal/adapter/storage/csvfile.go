package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ipolls/internal/domain/comment"
)

// csvHeader is the export column layout, kept compatible with the
// historical interchange files produced by the original pipeline.
var csvHeader = []string{"id", "titulo_post", "texto_comentario", "data_comentario", "score", "party", "sentiment"}

// ReadComments parses a labeled-comment CSV. The header decides column
// meaning; names are matched case-insensitively and the timestamp column
// may use any recognized alias (data_comentario, date, datetime, time,
// timestamp). Rows without text are skipped.
func ReadComments(r io.Reader) ([]comment.Comment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	textCol, timeCol, titleCol, scoreCol, partyCol, sentimentCol, idCol := -1, -1, -1, -1, -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "texto_comentario", "text", "body", "comment":
			textCol = i
		case "titulo_post", "post_title", "title":
			titleCol = i
		case "score", "score_comentario":
			scoreCol = i
		case "party":
			partyCol = i
		case "sentiment":
			sentimentCol = i
		case "id", "id_comentario", "comentario_id":
			idCol = i
		default:
			if timeCol == -1 && comment.IsTimestampField(name) {
				timeCol = i
			}
		}
	}
	if textCol == -1 {
		return nil, errors.New("csv must contain a comment text column")
	}

	field := func(row []string, col int) string {
		if col >= 0 && col < len(row) {
			return strings.TrimSpace(row[col])
		}
		return ""
	}

	var comments []comment.Comment
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		text := field(row, textCol)
		if text == "" {
			continue
		}
		score, _ := strconv.Atoi(field(row, scoreCol))
		comments = append(comments, comment.Comment{
			ID:        field(row, idCol),
			PostTitle: field(row, titleCol),
			Text:      text,
			PostedAt:  field(row, timeCol),
			Score:     score,
			Party:     field(row, partyCol),
			Sentiment: field(row, sentimentCol),
		})
	}

	return comments, nil
}

// WriteComments writes comments in the interchange CSV layout.
func WriteComments(w io.Writer, comments []comment.Comment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, c := range comments {
		row := []string{
			c.ID,
			c.PostTitle,
			c.Text,
			c.PostedAt,
			strconv.Itoa(c.Score),
			c.Party,
			c.Sentiment,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

package capture

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/models"
)

func TestLocator_Selection(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the selection on the first try", func(t *testing.T) {
		messenger := &MockPageMessenger{}
		messenger.On("QuerySelection", mock.Anything).Return("hello", nil).Once()

		text, err := NewLocator(messenger).Selection(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "hello", text)
		messenger.AssertExpectations(t)
	})

	t.Run("should reinject once and retry after a failed query", func(t *testing.T) {
		messenger := &MockPageMessenger{}
		messenger.On("QuerySelection", mock.Anything).Return("", errors.New("no receiver")).Once()
		messenger.On("Inject", mock.Anything).Return(nil).Once()
		messenger.On("QuerySelection", mock.Anything).Return("recovered", nil).Once()

		text, err := NewLocator(messenger).Selection(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "recovered", text)
		messenger.AssertExpectations(t)
	})

	t.Run("should give up when injection fails", func(t *testing.T) {
		messenger := &MockPageMessenger{}
		messenger.On("QuerySelection", mock.Anything).Return("", errors.New("no receiver")).Once()
		messenger.On("Inject", mock.Anything).Return(errors.New("cannot inject")).Once()

		_, err := NewLocator(messenger).Selection(ctx)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeCapture, appErr.Type)
		messenger.AssertNumberOfCalls(t, "QuerySelection", 1)
	})

	t.Run("should not retry more than once", func(t *testing.T) {
		messenger := &MockPageMessenger{}
		messenger.On("QuerySelection", mock.Anything).Return("", errors.New("still broken"))
		messenger.On("Inject", mock.Anything).Return(nil)

		_, err := NewLocator(messenger).Selection(ctx)

		assert.Error(t, err)
		messenger.AssertNumberOfCalls(t, "QuerySelection", 2)
		messenger.AssertNumberOfCalls(t, "Inject", 1)
	})
}

func TestSnapshotMessenger(t *testing.T) {
	ctx := context.Background()

	t.Run("should serve selection and image from the snapshot", func(t *testing.T) {
		messenger := NewSnapshotMessenger(&models.PageSnapshot{
			SelectionText: " snapshot text ",
			SelectionNode: -1,
			ClickedNode:   0,
			Nodes: []models.PageNode{
				{Parent: -1, Tag: "img", Src: "https://example.com/a.png", W: 1, H: 1},
			},
		})

		text, err := messenger.QuerySelection(ctx)
		require.NoError(t, err)
		assert.Equal(t, "snapshot text", text)

		url, err := messenger.QueryRelevantImage(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a.png", url)
	})

	t.Run("should fail every query without a snapshot", func(t *testing.T) {
		messenger := NewSnapshotMessenger(nil)

		_, err := messenger.QuerySelection(ctx)
		assert.Error(t, err)

		_, err = messenger.QueryRelevantImage(ctx)
		assert.Error(t, err)

		assert.Error(t, messenger.Inject(ctx))
	})
}

func TestLoadSnapshot(t *testing.T) {
	t.Run("should decode a snapshot from JSON", func(t *testing.T) {
		payload := `{
			"url": "https://example.com/article",
			"selection_text": "quoted",
			"selection_node": 1,
			"clicked_node": -1,
			"nodes": [
				{"parent": -1, "tag": "body"},
				{"parent": 0, "tag": "p"}
			]
		}`

		snap, err := LoadSnapshot(strings.NewReader(payload))

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/article", snap.URL)
		assert.Equal(t, "quoted", snap.SelectionText)
		assert.Len(t, snap.Nodes, 2)
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		_, err := LoadSnapshot(strings.NewReader("{not json"))

		assert.Error(t, err)
	})
}

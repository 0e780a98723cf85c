package emojiart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojiart/emojiart"
	"emojiart/geom"
	"emojiart/undo"
)

type recordingResolver struct {
	resolved []emojiart.Background
}

func (r *recordingResolver) Resolve(bg emojiart.Background) {
	r.resolved = append(r.resolved, bg)
}

func TestAddUndoRedo(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	um := undo.New(0)

	id, err := doc.AddEmoji("🔥", geom.DocPoint{X: 10, Y: 10}, 40, um)
	require.NoError(t, err)
	want := []emojiart.Emoji{{ID: 1, Text: "🔥", X: 10, Y: 10, Size: 40}}
	assert.Equal(t, 1, id)
	assert.Equal(t, want, doc.Emojis())
	assert.Equal(t, emojiart.ActionAddEmoji, um.UndoName())

	require.True(t, um.Undo())
	assert.Empty(t, doc.Emojis())

	require.True(t, um.Redo())
	assert.Equal(t, want, doc.Emojis())
}

func TestIDsNotReusedAfterUndo(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	um := undo.New(0)
	doc.AddEmoji("🔥", geom.DocPoint{}, 40, um)
	um.Undo()
	id, err := doc.AddEmoji("🐶", geom.DocPoint{}, 40, um)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestInvalidGlyphRecordsNothing(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	um := undo.New(0)
	changes := 0
	doc.Subscribe(func(emojiart.Change) { changes++ })

	_, err := doc.AddEmoji("x", geom.DocPoint{}, 40, um)
	assert.ErrorIs(t, err, emojiart.ErrInvalidGlyph)
	assert.False(t, um.CanUndo())
	assert.Zero(t, changes)
}

func TestNoOpMutationsRecordNothing(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	um := undo.New(0)
	doc.RemoveEmoji(42, um)
	doc.MoveEmoji(42, geom.DocPoint{X: 3}, um)
	doc.ScaleEmoji(42, 3, um)
	doc.SetBackground(emojiart.Blank(), um)
	assert.False(t, um.CanUndo())
}

func TestMutationsWithoutRecorder(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	id, err := doc.AddEmoji("🔥", geom.DocPoint{}, 40, nil)
	require.NoError(t, err)
	doc.MoveEmoji(id, geom.DocPoint{X: 2, Y: 3}, nil)
	doc.ScaleEmoji(id, 2, nil)

	var nilManager *undo.Manager
	doc.SetBackground(emojiart.RemoteURL("https://x/y.png"), nilManager)

	e, ok := doc.Emoji(id)
	require.True(t, ok)
	assert.Equal(t, emojiart.Emoji{ID: id, Text: "🔥", X: 2, Y: 3, Size: 80}, e)
	assert.Equal(t, emojiart.BackgroundURL, doc.Background().Kind())
}

func TestEachMutationUndoable(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	um := undo.New(0)
	id, _ := doc.AddEmoji("🔥", geom.DocPoint{X: 1, Y: 1}, 40, um)
	doc.SetBackground(emojiart.RemoteURL("https://x/y.png"), um)
	doc.MoveEmoji(id, geom.DocPoint{X: 5, Y: 5}, um)
	doc.ScaleEmoji(id, 0.5, um)
	doc.RemoveEmoji(id, um)

	names := []string{
		emojiart.ActionRemoveEmoji,
		emojiart.ActionScaleEmoji,
		emojiart.ActionMoveEmoji,
		emojiart.ActionSetBackground,
		emojiart.ActionAddEmoji,
	}
	states := []emojiart.Emoji{
		{ID: id, Text: "🔥", X: 6, Y: 6, Size: 20},
		{ID: id, Text: "🔥", X: 6, Y: 6, Size: 40},
		{ID: id, Text: "🔥", X: 1, Y: 1, Size: 40},
		{ID: id, Text: "🔥", X: 1, Y: 1, Size: 40},
	}
	for i, name := range names {
		assert.Equal(t, name, um.UndoName())
		require.True(t, um.Undo())
		if i < len(states) {
			e, ok := doc.Emoji(id)
			require.True(t, ok, "step %d", i)
			assert.Equal(t, states[i], e, "after undoing %s", name)
		}
	}
	assert.Empty(t, doc.Emojis())
	assert.Equal(t, emojiart.BackgroundBlank, doc.Background().Kind())

	for um.Redo() {
	}
	assert.Empty(t, doc.Emojis())
	assert.Equal(t, emojiart.BackgroundURL, doc.Background().Kind())
}

func TestGroupedMoveIsOneStep(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	um := undo.New(0)
	a, _ := doc.AddEmoji("🔥", geom.DocPoint{}, 40, nil)
	b, _ := doc.AddEmoji("🐶", geom.DocPoint{X: 10}, 40, nil)

	emojiart.Group(um, emojiart.ActionMoveEmoji, func() {
		doc.MoveEmoji(a, geom.DocPoint{X: 3, Y: 3}, um)
		doc.MoveEmoji(b, geom.DocPoint{X: 3, Y: 3}, um)
	})

	require.True(t, um.Undo())
	assert.False(t, um.CanUndo())
	ea, _ := doc.Emoji(a)
	eb, _ := doc.Emoji(b)
	assert.Equal(t, geom.DocPoint{}, ea.Location())
	assert.Equal(t, geom.DocPoint{X: 10}, eb.Location())

	require.True(t, um.Redo())
	ea, _ = doc.Emoji(a)
	eb, _ = doc.Emoji(b)
	assert.Equal(t, geom.DocPoint{X: 3, Y: 3}, ea.Location())
	assert.Equal(t, geom.DocPoint{X: 13, Y: 3}, eb.Location())
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	doc := emojiart.NewDocument(nil)
	var seen []emojiart.Change
	cancel := doc.Subscribe(func(c emojiart.Change) {
		seen = append(seen, c)
		// the model is already updated when observers run
		assert.NotEmpty(t, doc.Emojis())
	})
	doc.AddEmoji("🔥", geom.DocPoint{}, 40, nil)
	require.Len(t, seen, 1)
	assert.Equal(t, emojiart.Change{Emojis: true}, seen[0])

	cancel()
	doc.AddEmoji("🐶", geom.DocPoint{}, 40, nil)
	assert.Len(t, seen, 1)
}

func TestResolverFollowsBackground(t *testing.T) {
	res := &recordingResolver{}
	doc := emojiart.NewDocument(nil, emojiart.WithResolver(res))
	um := undo.New(0)

	url := emojiart.RemoteURL("https://example.com/a.png")
	doc.SetBackground(url, um)
	doc.AddEmoji("🔥", geom.DocPoint{}, 40, um)
	um.Undo()
	um.Undo()

	require.Len(t, res.resolved, 2)
	assert.True(t, res.resolved[0].Equal(url))
	assert.Equal(t, emojiart.BackgroundBlank, res.resolved[1].Kind())
}

func TestReplace(t *testing.T) {
	res := &recordingResolver{}
	doc := emojiart.NewDocument(nil, emojiart.WithResolver(res))
	m := emojiart.NewModel()
	m.AddEmoji("🚀", geom.DocPoint{}, 10)

	var got emojiart.Change
	doc.Subscribe(func(c emojiart.Change) { got = c })
	doc.Replace(m)

	assert.Equal(t, emojiart.Change{Emojis: true, Background: true}, got)
	assert.Len(t, doc.Emojis(), 1)
	assert.Len(t, res.resolved, 1)
}

package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/notify"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := notify.NewRecorder()
	rec.Notify(context.Background(), notify.Success("saved"))
	rec.Notify(context.Background(), notify.Failure("nope"))

	sent := rec.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, notify.KindSuccess, sent[0].Kind)
	assert.Equal(t, "saved", sent[0].Message)
	assert.Equal(t, notify.KindFailure, sent[1].Kind)

	rec.Reset()
	assert.Empty(t, rec.Sent())
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var got notify.Notification
	n := notify.Func(func(_ context.Context, nn notify.Notification) { got = nn })
	n.Notify(context.Background(), notify.Failure("broken"))
	assert.Equal(t, notify.KindFailure, got.Kind)
	assert.Equal(t, "broken", got.Message)
}

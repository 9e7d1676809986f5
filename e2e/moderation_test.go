//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWithEvents(t *testing.T, svc *fakeService) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	events := tf.WriteEvents(sampleEvents())
	require.NoError(t, tf.StartApp("--base-url", svc.URL(), "--events", events))
	require.True(t, tf.Ready(), "Listing should load")
	require.True(t, tf.SeePlain("Laser cutter intro"))
	return tf
}

func TestToolbarAppearsOnSelection(t *testing.T) {
	t.Parallel()
	svc := newFakeService(t, "approve", "onhold")
	tf := startWithEvents(t, svc)

	tf.Toggle()
	require.True(t, tf.SeePlain("1 event selected"), "toolbar should show the selection count")
	assert.True(t, tf.SeePlain("Approve (a)"))

	tf.Down()
	tf.Toggle()
	assert.True(t, tf.SeePlain("2 events selected"))
}

func TestApproveRemovesRowsInPendingView(t *testing.T) {
	t.Parallel()
	svc := newFakeService(t, "approve")
	tf := startWithEvents(t, svc)

	tf.Toggle()
	require.True(t, tf.SeePlain("1 event selected"))
	tf.Settle()

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyApprove))
	require.True(t, tf.SeePlainSince(mark, "Approved 1 event"), "success banner expected")

	require.Eventually(t, func() bool { return len(svc.Requests()) == 1 }, 3*time.Second, 25*time.Millisecond)
	req := svc.Requests()[0]
	assert.Equal(t, "approve", req.Action)
	assert.Equal(t, []string{"101"}, req.Events)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	t.Parallel()
	svc := newFakeService(t, "delete")
	tf := startWithEvents(t, svc)

	tf.Toggle()
	require.True(t, tf.SeePlain("1 event selected"))
	tf.Settle()

	require.NoError(t, tf.SendKeys(KeyDelete))
	require.True(t, tf.SeePlain("Delete 1 event? (y/n)"))

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyNo))
	require.True(t, tf.SeePlainSince(mark, "Cancelled"))
	assert.Empty(t, svc.Requests(), "nothing is sent when cancelled")

	require.NoError(t, tf.SendKeys(KeyDelete))
	require.True(t, tf.SeePlain("Delete 1 event? (y/n)"))
	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyYes))
	require.True(t, tf.SeePlainSince(mark, "Deleted 1 event"))
}

func TestFailedActionShowsBanner(t *testing.T) {
	t.Parallel()
	svc := newFakeService(t, "onhold")
	svc.setFail(true)
	tf := startWithEvents(t, svc)

	tf.Toggle()
	require.True(t, tf.SeePlain("1 event selected"))
	tf.Settle()

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyHold))
	require.True(t, tf.SeePlainSince(mark, "Hold failed"), "failure banner expected")
	require.Len(t, svc.Requests(), 1)
	assert.Equal(t, "onhold", svc.Requests()[0].Action)
}

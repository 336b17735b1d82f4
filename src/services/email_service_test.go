package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueNeverBlocks(t *testing.T) {
	service := NewEmailService("", "no-reply@example.com", "UnLinked", testLogger())

	// No worker started; overfill the queue and make sure callers are not
	// stalled. Overflow jobs are dropped.
	for i := 0; i < 200; i++ {
		service.QueueWelcomeEmail("alice@example.com", "Alice", "http://localhost:5173/profile/alice")
	}
	assert.Len(t, service.jobs, cap(service.jobs))
}

func TestQueuedJobContent(t *testing.T) {
	service := NewEmailService("", "no-reply@example.com", "UnLinked", testLogger())

	service.QueueConnectionAcceptedEmail("alice@example.com", "Alice", "Bob", "http://localhost:5173/profile/bob")

	require.Len(t, service.jobs, 1)
	job := <-service.jobs
	assert.Equal(t, "connection_accepted", job.kind)
	assert.Equal(t, "alice@example.com", job.to)
	assert.Equal(t, "Bob accepted your Connection Request", job.subject)
	assert.True(t, strings.Contains(job.html, "Bob"))
	assert.True(t, strings.Contains(job.html, "http://localhost:5173/profile/bob"))
}

func TestCommentEmailEscapesContent(t *testing.T) {
	service := NewEmailService("", "no-reply@example.com", "UnLinked", testLogger())

	service.QueueCommentEmail("alice@example.com", "Alice", "Bob",
		"http://localhost:5173/post/abc", "<script>alert(1)</script>")

	require.Len(t, service.jobs, 1)
	job := <-service.jobs
	assert.False(t, strings.Contains(job.html, "<script>"))
}

package fifo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarnfeld/spark/pkg/scheduler"
)

func workerOffer(id string, cores int) *scheduler.WorkerOffer {
	return &scheduler.WorkerOffer{WorkerID: id, Host: id + ".local", Cores: cores}
}

func TestAssignsInSubmissionOrder(t *testing.T) {
	s := New(2)
	s.Submit(
		&scheduler.TaskDescription{TaskID: "a"},
		&scheduler.TaskDescription{TaskID: "b"},
		&scheduler.TaskDescription{TaskID: "c"},
	)

	assignments, err := s.ResourceOffers([]*scheduler.WorkerOffer{
		workerOffer("w1", 4),
		workerOffer("w2", 4),
	})
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	require.Len(t, assignments[0], 2)
	assert.Equal(t, "a", assignments[0][0].TaskID)
	assert.Equal(t, "b", assignments[0][1].TaskID)
	assert.Equal(t, "w1", assignments[0][0].WorkerID)

	require.Len(t, assignments[1], 1)
	assert.Equal(t, "c", assignments[1][0].TaskID)
	assert.Equal(t, "w2", assignments[1][0].WorkerID)

	assert.Equal(t, 0, s.PendingCount())
}

func TestRespectsCPUShares(t *testing.T) {
	s := New(2)
	s.Submit(
		&scheduler.TaskDescription{TaskID: "a"},
		&scheduler.TaskDescription{TaskID: "b"},
	)

	// Three cores fit a single two-cpu task.
	assignments, err := s.ResourceOffers(
		[]*scheduler.WorkerOffer{workerOffer("w1", 3)})
	require.NoError(t, err)
	require.Len(t, assignments[0], 1)
	assert.Equal(t, 1, s.PendingCount())
}

func TestEmptyQueueYieldsEmptyAssignments(t *testing.T) {
	s := New(1)
	assignments, err := s.ResourceOffers(
		[]*scheduler.WorkerOffer{workerOffer("w1", 4)})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Empty(t, assignments[0])
}

func TestSubmitAssignsTaskIDs(t *testing.T) {
	s := New(1)
	task := &scheduler.TaskDescription{}
	s.Submit(task)
	assert.NotEmpty(t, task.TaskID)
}

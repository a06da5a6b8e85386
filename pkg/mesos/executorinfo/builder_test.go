package executorinfo

import (
	"testing"

	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const _testWorkerID = "worker-1"

func memReservation(t *testing.T, info *mesos.ExecutorInfo) float64 {
	for _, r := range info.GetResources() {
		if r.GetName() == "mem" {
			return r.GetScalar().GetValue()
		}
	}
	t.Fatal("executor has no mem reservation")
	return 0
}

func TestBuildFromHomePath(t *testing.T) {
	b := NewBuilder(Config{Home: "/usr/local/spark", MemoryMB: 512})
	info := b.Build(_testWorkerID)

	assert.Equal(t, _testWorkerID, info.GetExecutorId().GetValue())
	assert.Equal(t, "/usr/local/spark/bin/spark-executor", info.GetCommand().GetValue())
	assert.Empty(t, info.GetCommand().GetUris())
	assert.Nil(t, info.GetContainer())
	assert.Equal(t, 512.0, memReservation(t, info))
}

func TestBuildFromArchiveURI(t *testing.T) {
	b := NewBuilder(Config{
		Home: "/usr/local/spark",
		URI:  "hdfs://nn:9000/dist/spark-1.2.0.tgz",
	})
	info := b.Build(_testWorkerID)

	assert.Equal(t, "cd spark-1*; ./bin/spark-executor", info.GetCommand().GetValue())
	require.Len(t, info.GetCommand().GetUris(), 1)
	assert.Equal(
		t,
		"hdfs://nn:9000/dist/spark-1.2.0.tgz",
		info.GetCommand().GetUris()[0].GetValue())
}

func TestBuildDefaultMemory(t *testing.T) {
	info := NewBuilder(Config{Home: "/opt/spark"}).Build(_testWorkerID)
	assert.Equal(t, float64(_defaultMemoryMB), memReservation(t, info))
}

func TestBuildDockerContainer(t *testing.T) {
	b := NewBuilder(Config{
		Home: "/opt/spark",
		Docker: DockerConfig{
			Image:        "repo/spark:latest",
			Volumes:      "/host/logs:/logs:ro",
			PortMappings: "4040:4040",
			Network:      "bridge",
		},
	})
	info := b.Build(_testWorkerID)

	ct := info.GetContainer()
	require.NotNil(t, ct)
	assert.Equal(t, mesos.ContainerInfo_DOCKER, ct.GetType())
	assert.Equal(t, "repo/spark:latest", ct.GetDocker().GetImage())
	assert.Equal(t, mesos.ContainerInfo_DockerInfo_BRIDGE, ct.GetDocker().GetNetwork())

	require.Len(t, ct.GetVolumes(), 1)
	assert.Equal(t, "/host/logs", ct.GetVolumes()[0].GetHostPath())
	assert.Equal(t, "/logs", ct.GetVolumes()[0].GetContainerPath())
	assert.Equal(t, mesos.Volume_RO, ct.GetVolumes()[0].GetMode())

	require.Len(t, ct.GetDocker().GetPortMappings(), 1)
	assert.Equal(t, uint32(4040), ct.GetDocker().GetPortMappings()[0].GetHostPort())
}

func TestBuildUnknownNetworkModeLeftUnset(t *testing.T) {
	b := NewBuilder(Config{
		Docker: DockerConfig{Image: "repo/spark:latest", Network: "overlay9"},
	})
	info := b.Build(_testWorkerID)
	require.NotNil(t, info.GetContainer())
	assert.Nil(t, info.GetContainer().GetDocker().Network)
}

func TestBuildIdempotent(t *testing.T) {
	b := NewBuilder(Config{
		Home: "/opt/spark",
		Env:  map[string]string{"SPARK_LOCAL_IP": "0.0.0.0", "A": "1", "Z": "2"},
	})
	assert.Equal(t, b.Build(_testWorkerID), b.Build(_testWorkerID))
}

package dispatcher

import (
	"fmt"
	"testing"

	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarnfeld/spark/pkg/common/util"
)

const (
	_minMemMB    = 512.0
	_cpusPerTask = 2
)

func generateOffer(seq int, memMB, cpus float64) *mesos.Offer {
	return &mesos.Offer{
		Id:       &mesos.OfferID{Value: proto.String(fmt.Sprintf("offer-%d", seq))},
		SlaveId:  &mesos.SlaveID{Value: proto.String(fmt.Sprintf("agent-%d", seq))},
		Hostname: proto.String(fmt.Sprintf("host-%d", seq)),
		Resources: []*mesos.Resource{
			util.NewResourceBuilder().WithName("mem").WithValue(memMB).Build(),
			util.NewResourceBuilder().WithName("cpus").WithValue(cpus).Build(),
		},
	}
}

func TestMatchOffersPartitionsByThreshold(t *testing.T) {
	offers := []*mesos.Offer{
		generateOffer(0, _minMemMB, 4),
		generateOffer(1, _minMemMB-1, 4),
		generateOffer(2, _minMemMB, 1),
	}

	result := matchOffers(offers, _minMemMB, _cpusPerTask)

	require.Len(t, result.usable, 1)
	require.Len(t, result.rejected, 2)
	assert.Equal(t, "offer-0", result.usable[0].GetId().GetValue())
	assert.Equal(t, "offer-1", result.rejected[0].GetId().GetValue())
	assert.Equal(t, "offer-2", result.rejected[1].GetId().GetValue())
}

func TestMatchOffersAdvertisesWholeTaskShares(t *testing.T) {
	offers := []*mesos.Offer{
		generateOffer(0, _minMemMB, 4),
		generateOffer(1, _minMemMB, 5),
		generateOffer(2, _minMemMB, 7.5),
		generateOffer(3, _minMemMB, 2),
	}

	result := matchOffers(offers, _minMemMB, _cpusPerTask)

	require.Len(t, result.workers, 4)
	assert.Equal(t, 4, result.workers[0].Cores)
	assert.Equal(t, 4, result.workers[1].Cores)
	assert.Equal(t, 6, result.workers[2].Cores)
	assert.Equal(t, 2, result.workers[3].Cores)
}

func TestMatchOffersWorkerFields(t *testing.T) {
	result := matchOffers(
		[]*mesos.Offer{generateOffer(7, _minMemMB, 4)}, _minMemMB, _cpusPerTask)

	require.Len(t, result.workers, 1)
	assert.Equal(t, "agent-7", result.workers[0].WorkerID)
	assert.Equal(t, "host-7", result.workers[0].Host)
}

func TestMatchOffersMissingScalarsTreatedAsZero(t *testing.T) {
	offer := &mesos.Offer{
		Id:       &mesos.OfferID{Value: proto.String("offer-empty")},
		SlaveId:  &mesos.SlaveID{Value: proto.String("agent-empty")},
		Hostname: proto.String("host-empty"),
	}

	result := matchOffers([]*mesos.Offer{offer}, _minMemMB, _cpusPerTask)

	assert.Empty(t, result.usable)
	require.Len(t, result.rejected, 1)
}

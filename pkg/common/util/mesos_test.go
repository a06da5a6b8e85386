package util

import (
	"testing"

	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/stretchr/testify/assert"
)

func TestGetOfferScalar(t *testing.T) {
	offer := &mesos.Offer{
		Resources: []*mesos.Resource{
			NewResourceBuilder().WithName("cpus").WithValue(4).Build(),
			NewResourceBuilder().WithName("cpus").WithValue(2).WithRole("spark").Build(),
			NewResourceBuilder().WithName("mem").WithValue(1024).Build(),
		},
	}

	assert.Equal(t, 6.0, GetOfferScalar(offer, "cpus"))
	assert.Equal(t, 1024.0, GetOfferScalar(offer, "mem"))
	assert.Equal(t, 0.0, GetOfferScalar(offer, "disk"))
}

func TestResourceBuilderDefaults(t *testing.T) {
	r := NewResourceBuilder().WithName("mem").WithValue(512).Build()
	assert.Equal(t, "mem", r.GetName())
	assert.Equal(t, "*", r.GetRole())
	assert.Equal(t, mesos.Value_SCALAR, r.GetType())
	assert.Equal(t, 512.0, r.GetScalar().GetValue())
}

func TestIsZeroScalar(t *testing.T) {
	assert.True(t, IsZeroScalar(0))
	assert.True(t, IsZeroScalar(0.0001))
	assert.False(t, IsZeroScalar(0.001))
}
